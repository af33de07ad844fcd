package googlegemini

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mahmudulbisd/stockgen-ai-pro/models"
	"google.golang.org/api/googleapi"
)

const invalidKeyMessage = "Invalid Gemini API Key. Please verify your API_KEY environment variable."

// isInvalidKeyError reports whether err means the API key was rejected.
// The structured status is checked first; the message markers cover errors
// that only carry text.
func isInvalidKeyError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusForbidden {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "403") || strings.Contains(msg, "API_KEY_INVALID")
}

// classifyError rewrites key rejections into an actionable message and keeps
// every other message unchanged.
func classifyError(err error) error {
	if isInvalidKeyError(err) {
		return &models.UpstreamError{
			Kind:       models.KindUpstreamAuth,
			Provider:   ProviderName,
			Message:    invalidKeyMessage,
			StatusCode: http.StatusForbidden,
			Err:        err,
		}
	}

	status := 0
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		status = apiErr.Code
	}
	return &models.UpstreamError{
		Kind:       models.KindUpstreamTransport,
		Provider:   ProviderName,
		Message:    err.Error(),
		StatusCode: status,
		Err:        err,
	}
}
