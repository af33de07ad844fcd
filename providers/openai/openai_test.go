package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mahmudulbisd/stockgen-ai-pro/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// completion wraps content the way chat/completions embeds it: as a JSON string.
func completion(t *testing.T, content string) string {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"choices": []any{
			map[string]any{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	require.NoError(t, err)
	return string(body)
}

func requireUpstreamError(t *testing.T, err error) *models.UpstreamError {
	t.Helper()
	var upstream *models.UpstreamError
	require.True(t, errors.As(err, &upstream), "expected *models.UpstreamError, got %T", err)
	assert.Equal(t, ProviderName, upstream.Provider)
	return upstream
}

func TestOpenAIProviderRequestShape(t *testing.T) {
	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, http.MethodPost, req.Method)
			assert.Equal(t, "https://api.openai.com/v1/chat/completions", req.URL.String())
			assert.Equal(t, "Bearer sk-test", req.Header.Get("Authorization"))
			assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			assert.Equal(t, "gpt-4o", body["model"])
			assert.Equal(t, 0.0, body["temperature"])
			assert.Equal(t, map[string]any{"type": "json_object"}, body["response_format"])

			messages, ok := body["messages"].([]any)
			require.True(t, ok)
			require.Len(t, messages, 2)
			system := messages[0].(map[string]any)
			user := messages[1].(map[string]any)
			assert.Equal(t, "system", system["role"])
			assert.Contains(t, system["content"], "exactly 40 keywords")
			assert.Equal(t, "user", user["role"])
			assert.Contains(t, user["content"], `Generate 3 unique variations for the niche: "rustic coffee shop"`)
			assert.Contains(t, user["content"], `"variations"`)

			return jsonResponse(http.StatusOK, completion(t, `{"variations":[]}`)), nil
		}).
		Times(1)

	provider := NewOpenAIProvider(WithHTTPClient(httpClient))
	raw, err := provider.Generate(context.Background(), "sk-test", "rustic coffee shop", 0, 3)
	require.NoError(t, err)
	assert.NotNil(t, raw)
	assert.Empty(t, raw)
}

func TestOpenAIProviderGenerate(t *testing.T) {
	content := `{"variations":[{"variationIndex":1,"title":"A","description":"B","keywords":"c,d","imagePrompt":"E"},{"variationIndex":2,"title":"F","description":"G","keywords":"h,i","imagePrompt":"J"}]}`

	cases := []struct {
		name       string
		resp       *http.Response
		doErr      error
		wantLen    int
		wantKind   models.ErrorKind
		wantMsg    string
		wantStatus int
	}{
		{
			name:    "success",
			resp:    jsonResponse(http.StatusOK, completion(t, content)),
			wantLen: 2,
		},
		{
			name:    "missing variations",
			resp:    jsonResponse(http.StatusOK, completion(t, `{"result":"nothing"}`)),
			wantLen: 0,
		},
		{
			name:       "upstream error message",
			resp:       jsonResponse(http.StatusUnauthorized, `{"error":{"message":"Incorrect API key provided: sk-bad."}}`),
			wantKind:   models.KindUpstreamTransport,
			wantMsg:    "Incorrect API key provided: sk-bad.",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "status fallback",
			resp:       jsonResponse(http.StatusBadGateway, `<html>bad gateway</html>`),
			wantKind:   models.KindUpstreamTransport,
			wantMsg:    "OpenAI API Error: 502",
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "malformed inner json",
			resp:       jsonResponse(http.StatusOK, completion(t, `{"variations": [ {"title": "A"`)),
			wantKind:   models.KindResponseParse,
			wantMsg:    "Failed to parse OpenAI JSON response.",
			wantStatus: http.StatusOK,
		},
		{
			name:       "null inner json",
			resp:       jsonResponse(http.StatusOK, completion(t, `null`)),
			wantKind:   models.KindResponseParse,
			wantMsg:    "Failed to parse OpenAI JSON response.",
			wantStatus: http.StatusOK,
		},
		{
			name:       "no choices",
			resp:       jsonResponse(http.StatusOK, `{"choices":[]}`),
			wantKind:   models.KindResponseParse,
			wantMsg:    "Failed to parse OpenAI JSON response.",
			wantStatus: http.StatusOK,
		},
		{
			name:     "transport failure",
			doErr:    errors.New("dial tcp: connection refused"),
			wantKind: models.KindUpstreamTransport,
			wantMsg:  "dial tcp: connection refused",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			httpClient := NewMockHTTPClient(ctrl)
			httpClient.EXPECT().Do(gomock.Any()).Return(tc.resp, tc.doErr).Times(1)

			provider := NewOpenAIProvider(WithHTTPClient(httpClient))
			raw, err := provider.Generate(context.Background(), "sk-test", "niche", 0.7, 2)

			if tc.wantMsg == "" {
				require.NoError(t, err)
				assert.Len(t, raw, tc.wantLen)
				return
			}

			require.Error(t, err)
			assert.Nil(t, raw)
			upstream := requireUpstreamError(t, err)
			assert.Equal(t, tc.wantKind, upstream.Kind)
			assert.Equal(t, tc.wantMsg, err.Error())
			assert.Equal(t, tc.wantStatus, upstream.StatusCode)
		})
	}
}

func TestOpenAIProviderAgainstServer(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completion(t, `{"variations":[{"title":"Cozy latte art","keywords":"coffee,latte"}]}`))
	}))
	defer server.Close()

	provider := NewOpenAIProvider(WithBaseURL(server.URL+"/v1/"), WithModel("gpt-4o-mini"), WithHTTPClient(server.Client()))
	raw, err := provider.Generate(context.Background(), "sk-live", "coffee", 0.8, 1)

	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Nil(t, raw[0].VariationIndex)
	assert.Equal(t, "Cozy latte art", models.Deref(raw[0].Title))
	assert.Equal(t, "coffee,latte", models.Deref(raw[0].Keywords))
	assert.Equal(t, 1, calls, "no retries")
}

func TestOpenAIProviderDoesNotRetry(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"message":"Rate limit reached"}}`)
	}))
	defer server.Close()

	provider := NewOpenAIProvider(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	_, err := provider.Generate(context.Background(), "sk-live", "coffee", 0.8, 1)

	require.EqualError(t, err, "Rate limit reached")
	assert.Equal(t, 1, calls)
}
