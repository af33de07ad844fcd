package client

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mahmudulbisd/stockgen-ai-pro/common"
	"github.com/mahmudulbisd/stockgen-ai-pro/internal/logging"
	"github.com/mahmudulbisd/stockgen-ai-pro/models"
	"github.com/mahmudulbisd/stockgen-ai-pro/normalize"
	"github.com/mahmudulbisd/stockgen-ai-pro/providers/googlegemini"
	"github.com/mahmudulbisd/stockgen-ai-pro/providers/openai"
)

// Provider interface defines the method each upstream adapter must implement.
// Implementations make exactly one attempt per call and keep no state between calls.
//
//go:generate mockgen -package=client -destination=mock_provider_test.go -source=client.go Provider
type Provider interface {
	Generate(ctx context.Context, credential, niche string, temperature float64, quantity int) ([]models.RawVariation, error)
}

// CredentialSource returns the API key to use for the next call.
type CredentialSource func() string

// Client is the entry point for generating stock metadata.
type Client struct {
	providers     map[ProviderID]Provider
	credentials   CredentialSource
	normalizer    normalize.Normalizer
	openAIOptions []openai.Option
	geminiOptions []googlegemini.Option
	logger        logging.Logger
	mu            sync.RWMutex
}

// NewClient creates a client with the OpenAI and Gemini adapters registered.
// Without WithAPIKey or WithCredentialSource every call fails with a
// missing-credential error.
func NewClient(options ...ClientOption) (*Client, error) {
	c := &Client{
		providers: make(map[ProviderID]Provider),
		logger:    logging.NewDefaultLogger(),
	}

	// Set default log level to Disabled
	c.logger.SetLevel(common.DisabledLevel)

	for _, option := range options {
		option(c)
	}

	if _, ok := c.providers[ProviderOpenAI]; !ok {
		c.providers[ProviderOpenAI] = openai.NewOpenAIProvider(c.openAIOptions...)
	}
	if _, ok := c.providers[ProviderGemini]; !ok {
		c.providers[ProviderGemini] = googlegemini.NewGoogleGeminiProvider(c.geminiOptions...)
	}

	for id, p := range c.providers {
		if p == nil {
			return nil, fmt.Errorf("provider %s is nil", id)
		}
	}
	if c.credentials == nil {
		c.credentials = func() string { return "" }
	}

	c.logger.Info("Initializing stockgen client")

	return c, nil
}

// RegisterProvider registers a provider with the client
func (c *Client) RegisterProvider(id ProviderID, provider Provider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.providers[id] = provider
}

func (c *Client) provider(id ProviderID) (Provider, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.providers[id]
	return p, ok && p != nil
}

// GenerateStockAssets resolves the credential, routes it to one provider,
// and normalizes what comes back. Every failure is returned as a
// *GenerationError and no variations are returned alongside it.
func (c *Client) GenerateStockAssets(ctx context.Context, cfg models.GeneratorConfig) ([]models.StockAssetVariation, error) {
	credential := c.credentials()
	if strings.TrimSpace(credential) == "" {
		return nil, c.fail(&GenerationError{Kind: models.KindMissingCredential, Message: missingCredentialMessage})
	}

	id := SelectProvider(credential)
	p, ok := c.provider(id)
	if !ok {
		return nil, c.fail(fmt.Errorf("%w: %s", ErrUnsupportedProvider, id))
	}

	c.logger.Debugf("Generating %d variations with provider %s", cfg.Quantity, id)
	raw, err := p.Generate(ctx, credential, cfg.TrimmedNiche(), cfg.Temperature, cfg.Quantity)
	if err != nil {
		return nil, c.fail(err)
	}

	variations := c.normalizer.Normalize(raw, cfg.Assets)
	c.logger.Infof("Generated %d variations with provider %s (requested %d)", len(variations), id, cfg.Quantity)
	return variations, nil
}

func (c *Client) fail(err error) error {
	genErr := unify(err)
	c.logger.Error("AI Generation Failed:", genErr.Kind, genErr.Message)
	return genErr
}
