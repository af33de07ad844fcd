package client

import (
	"errors"

	"github.com/mahmudulbisd/stockgen-ai-pro/common"
	"github.com/mahmudulbisd/stockgen-ai-pro/internal/logging"
	"github.com/mahmudulbisd/stockgen-ai-pro/normalize"
	"github.com/mahmudulbisd/stockgen-ai-pro/providers/googlegemini"
	"github.com/mahmudulbisd/stockgen-ai-pro/providers/openai"
)

// ErrUnsupportedProvider is returned when no adapter is registered for the selected provider
var ErrUnsupportedProvider = errors.New("unsupported provider")

// ClientOption is a function type for configuring the Client.
// It allows for flexible and extensible client configuration.
type ClientOption func(*Client)

// WithAPIKey sets a fixed credential.
func WithAPIKey(apiKey string) ClientOption {
	return func(c *Client) {
		c.credentials = func() string { return apiKey }
	}
}

// WithCredentialSource sets a function consulted on every generation call.
func WithCredentialSource(source CredentialSource) ClientOption {
	return func(c *Client) {
		c.credentials = source
	}
}

// WithProvider registers provider under id, replacing the default adapter.
func WithProvider(id ProviderID, provider Provider) ClientOption {
	return func(c *Client) {
		c.providers[id] = provider
	}
}

// WithOpenAIOptions configures the default OpenAI adapter.
func WithOpenAIOptions(opts ...openai.Option) ClientOption {
	return func(c *Client) {
		c.openAIOptions = append(c.openAIOptions, opts...)
	}
}

// WithGeminiOptions configures the default Gemini adapter.
func WithGeminiOptions(opts ...googlegemini.Option) ClientOption {
	return func(c *Client) {
		c.geminiOptions = append(c.geminiOptions, opts...)
	}
}

// WithNormalizer replaces the normalizer, typically to make ids deterministic.
func WithNormalizer(n normalize.Normalizer) ClientOption {
	return func(c *Client) {
		c.normalizer = n
	}
}

// WithLogger sets the logger for the client.
// The provided logger will be used for all logging operations within the client.
func WithLogger(logger logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithLogLevel sets the log level for the client.
// This option will only take effect if the client's logger supports setting log levels.
func WithLogLevel(level common.LogLevel) ClientOption {
	return func(c *Client) {
		if logger, ok := c.logger.(interface{ SetLevel(common.LogLevel) }); ok {
			logger.SetLevel(level)
		}
	}
}
