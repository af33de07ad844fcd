package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mahmudulbisd/stockgen-ai-pro/models"
)

const (
	ProviderName = "openai"

	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o"

	parseErrorMessage = "Failed to parse OpenAI JSON response."

	// maxErrorBody bounds how much of a failed response is read for its message.
	maxErrorBody = 1 << 20
)

const systemInstruction = "You are a Stock Photography SEO Expert. Generate high-quality titles, descriptions, " +
	"exactly 40 keywords, and highly detailed AI prompts. Return a JSON object with a 'variations' array."

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=openai -destination=mock_http_client_test.go -source=openai.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// OpenAIProvider generates variations through the chat completions endpoint.
// It keeps no per-call state; the credential is supplied on every call.
type OpenAIProvider struct {
	baseURL string
	model   string
	client  HTTPClient
}

// Option configures an OpenAIProvider.
type Option func(*OpenAIProvider)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(client HTTPClient) Option {
	return func(p *OpenAIProvider) {
		p.client = client
	}
}

// WithBaseURL overrides the API base URL (default https://api.openai.com/v1).
func WithBaseURL(baseURL string) Option {
	return func(p *OpenAIProvider) {
		if baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/"); baseURL != "" {
			p.baseURL = baseURL
		}
	}
}

// WithModel overrides the model identifier (default gpt-4o).
func WithModel(model string) Option {
	return func(p *OpenAIProvider) {
		if model = strings.TrimSpace(model); model != "" {
			p.model = model
		}
	}
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(options ...Option) *OpenAIProvider {
	p := &OpenAIProvider{
		baseURL: defaultBaseURL,
		model:   defaultModel,
		client:  &http.Client{},
	}
	for _, option := range options {
		option(p)
	}
	return p
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string               `json:"model"`
	Messages       []models.ChatMessage `json:"messages"`
	Temperature    float64              `json:"temperature"`
	ResponseFormat responseFormat       `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func userInstruction(niche string, quantity int) string {
	return fmt.Sprintf(`Generate %d unique variations for the niche: "%s". JSON format: { "variations": [ { "variationIndex": 1, "title": "...", "description": "...", "keywords": "...", "imagePrompt": "..." } ] }`,
		quantity, niche)
}

// Generate issues a single JSON-object chat completion and returns the
// records of its variations envelope.
func (p *OpenAIProvider) Generate(ctx context.Context, credential, niche string, temperature float64, quantity int) ([]models.RawVariation, error) {
	url := p.baseURL + "/chat/completions"

	requestBody := chatRequest{
		Model: p.model,
		Messages: []models.ChatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: userInstruction(niche, quantity)},
		},
		Temperature:    temperature,
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, p.fail(models.KindGeneric, err.Error(), 0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, p.fail(models.KindGeneric, err.Error(), 0, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, p.fail(models.KindUpstreamTransport, err.Error(), 0, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, p.statusError(resp)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || len(out.Choices) == 0 {
		return nil, p.fail(models.KindResponseParse, parseErrorMessage, resp.StatusCode, err)
	}

	var envelope *models.VariationEnvelope
	if err := json.Unmarshal([]byte(out.Choices[0].Message.Content), &envelope); err != nil || envelope == nil {
		return nil, p.fail(models.KindResponseParse, parseErrorMessage, resp.StatusCode, err)
	}

	if envelope.Variations == nil {
		return []models.RawVariation{}, nil
	}
	return envelope.Variations, nil
}

// statusError prefers the message OpenAI puts in its error body.
func (p *OpenAIProvider) statusError(resp *http.Response) error {
	message := fmt.Sprintf("OpenAI API Error: %d", resp.StatusCode)

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var errBody errorResponse
	if err := json.Unmarshal(body, &errBody); err == nil && errBody.Error.Message != "" {
		message = errBody.Error.Message
	}

	return p.fail(models.KindUpstreamTransport, message, resp.StatusCode, fmt.Errorf("status code: %d, body: %s", resp.StatusCode, string(body)))
}

func (p *OpenAIProvider) fail(kind models.ErrorKind, message string, status int, cause error) error {
	return &models.UpstreamError{
		Kind:       kind,
		Provider:   ProviderName,
		Message:    message,
		StatusCode: status,
		Err:        cause,
	}
}
