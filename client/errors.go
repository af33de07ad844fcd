package client

import (
	"errors"
	"strings"

	"github.com/mahmudulbisd/stockgen-ai-pro/models"
)

const (
	missingCredentialMessage = "API_KEY is missing. Ensure the 'API_KEY' environment variable is correctly configured."
	fallbackMessage          = "An error occurred during metadata generation."
)

// GenerationError is the single error type GenerateStockAssets returns.
// Message is ready to show to a user as-is.
type GenerationError struct {
	Kind    models.ErrorKind
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a GenerationError or UpstreamError of the given kind.
func IsKind(err error, kind models.ErrorKind) bool {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind == kind
	}
	var upstream *models.UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Kind == kind
	}
	return false
}

// unify funnels any failure into a GenerationError, keeping the original
// message and the kind reported by the adapter.
func unify(err error) *GenerationError {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr
	}

	kind := models.KindGeneric
	var upstream *models.UpstreamError
	if errors.As(err, &upstream) {
		kind = upstream.Kind
	}

	message := err.Error()
	if strings.TrimSpace(message) == "" {
		message = fallbackMessage
	}
	return &GenerationError{Kind: kind, Message: message, Err: err}
}
