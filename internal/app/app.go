// Package app wires configuration into the logger and client shared by the binaries.
package app

import (
	"io"

	"github.com/mahmudulbisd/stockgen-ai-pro/client"
	"github.com/mahmudulbisd/stockgen-ai-pro/config"
	"github.com/mahmudulbisd/stockgen-ai-pro/internal/logging"
	"github.com/mahmudulbisd/stockgen-ai-pro/providers/googlegemini"
	"github.com/mahmudulbisd/stockgen-ai-pro/providers/openai"
)

// NewLogger returns a logger at the configured level. Console output is for
// terminals; otherwise lines are JSON.
func NewLogger(cfg *config.Config, w io.Writer, console bool) (logging.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}

	var logger logging.Logger
	if console {
		logger = logging.NewConsoleLogger(w)
	} else {
		logger = logging.NewLogger(w)
	}
	logger.SetLevel(level)
	return logger, nil
}

// NewClient builds a client whose adapters follow cfg. The API key is read
// from cfg on every call.
func NewClient(cfg *config.Config, logger logging.Logger) (*client.Client, error) {
	return client.NewClient(
		client.WithCredentialSource(func() string { return cfg.APIKey }),
		client.WithOpenAIOptions(
			openai.WithBaseURL(cfg.OpenAI.BaseURL),
			openai.WithModel(cfg.OpenAI.Model),
		),
		client.WithGeminiOptions(googlegemini.WithModel(cfg.Gemini.Model)),
		client.WithLogger(logger),
	)
}
