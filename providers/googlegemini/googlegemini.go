package googlegemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/mahmudulbisd/stockgen-ai-pro/models"
	"google.golang.org/api/option"
)

const (
	ProviderName = "googlegemini"

	defaultModel = "gemini-3-flash-preview"

	emptyResponseMessage = "Empty response from Gemini AI engine."
	parseErrorMessage    = "Failed to parse Gemini JSON response."
)

const systemInstruction = "You are a world-class Stock Photography SEO Expert. Your mission is to generate " +
	"professional titles, descriptions, exactly 40 keywords, and highly detailed AI prompts that maximize " +
	"sales on platforms like Adobe Stock. Output must be valid JSON."

// ContentGenerator is the part of *genai.GenerativeModel the provider drives.
//
//go:generate mockgen -package=googlegemini -destination=mock_content_generator_test.go -source=googlegemini.go ContentGenerator
type ContentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// ModelConfig is everything configured on the model for one call.
type ModelConfig struct {
	Name              string
	SystemInstruction *genai.Content
	GenerationConfig  genai.GenerationConfig
}

// ModelBuilder opens a model for a single call. The returned func releases
// whatever the builder allocated and is called once the call completes.
type ModelBuilder func(ctx context.Context, apiKey string, mc ModelConfig) (ContentGenerator, func() error, error)

// GoogleGeminiProvider generates variations with schema-constrained Gemini
// output. A fresh SDK client is opened per call so no credential or session
// outlives it.
type GoogleGeminiProvider struct {
	model         string
	clientOptions []option.ClientOption
	newModel      ModelBuilder
}

// Option configures a GoogleGeminiProvider.
type Option func(*GoogleGeminiProvider)

// WithModel overrides the model name (default gemini-3-flash-preview).
func WithModel(model string) Option {
	return func(p *GoogleGeminiProvider) {
		if model = strings.TrimSpace(model); model != "" {
			p.model = model
		}
	}
}

// WithClientOptions appends SDK client options, e.g. option.WithEndpoint.
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(p *GoogleGeminiProvider) {
		p.clientOptions = append(p.clientOptions, opts...)
	}
}

// WithModelBuilder replaces the SDK-backed model.
func WithModelBuilder(builder ModelBuilder) Option {
	return func(p *GoogleGeminiProvider) {
		p.newModel = builder
	}
}

// NewGoogleGeminiProvider creates a new Google Gemini provider
func NewGoogleGeminiProvider(options ...Option) *GoogleGeminiProvider {
	p := &GoogleGeminiProvider{
		model: defaultModel,
	}
	for _, opt := range options {
		opt(p)
	}
	if p.newModel == nil {
		p.newModel = sdkModelBuilder(p.clientOptions)
	}
	return p
}

func sdkModelBuilder(clientOptions []option.ClientOption) ModelBuilder {
	return func(ctx context.Context, apiKey string, mc ModelConfig) (ContentGenerator, func() error, error) {
		opts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, clientOptions...)
		client, err := genai.NewClient(ctx, opts...)
		if err != nil {
			return nil, nil, err
		}

		model := client.GenerativeModel(mc.Name)
		model.GenerationConfig = mc.GenerationConfig
		model.SystemInstruction = mc.SystemInstruction
		return model, client.Close, nil
	}
}

func userInstruction(niche string, quantity int) string {
	return fmt.Sprintf(`Generate %d unique variations of stock photo metadata for the niche: "%s". Focus on high commercial value and professional SEO standards.`,
		quantity, niche)
}

func (p *GoogleGeminiProvider) modelConfig(temperature float64) ModelConfig {
	config := genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   variationsSchema(),
	}
	config.SetTemperature(float32(temperature))

	return ModelConfig{
		Name:              p.model,
		SystemInstruction: genai.NewUserContent(genai.Text(systemInstruction)),
		GenerationConfig:  config,
	}
}

// Generate makes one structured-output call and returns the records of its
// variations envelope.
func (p *GoogleGeminiProvider) Generate(ctx context.Context, credential, niche string, temperature float64, quantity int) ([]models.RawVariation, error) {
	model, closeModel, err := p.newModel(ctx, credential, p.modelConfig(temperature))
	if err != nil {
		return nil, classifyError(err)
	}
	if closeModel != nil {
		defer func() {
			_ = closeModel()
		}()
	}

	resp, err := model.GenerateContent(ctx, genai.Text(userInstruction(niche, quantity)))
	if err != nil {
		return nil, classifyError(err)
	}

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return nil, &models.UpstreamError{Kind: models.KindResponseParse, Provider: ProviderName, Message: emptyResponseMessage}
	}

	var envelope *models.VariationEnvelope
	if err := json.Unmarshal([]byte(text), &envelope); err != nil || envelope == nil {
		return nil, &models.UpstreamError{Kind: models.KindResponseParse, Provider: ProviderName, Message: parseErrorMessage, Err: err}
	}

	if envelope.Variations == nil {
		return []models.RawVariation{}, nil
	}
	return envelope.Variations, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}
