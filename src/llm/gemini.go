// Package llm holds the client for the external text-generation service.
// The service is an opaque collaborator: one prompt in, one text payload
// out. Anything else is an upstream error.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/username/salescope/src/apperrors"
	"github.com/username/salescope/src/logger"
)

// TextGenerator is the boundary the orchestrator depends on.
type TextGenerator interface {
	GenerateContent(ctx context.Context, promptText string) (string, error)
}

type GeminiClient struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
}

func NewGeminiClient(baseURL, model, apiKey string, timeout time.Duration) *GeminiClient {
	return &GeminiClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		model:      model,
		apiKey:     apiKey,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateContent sends one prompt and extracts the generated text. A
// non-2xx status or a response missing the expected text field is surfaced
// as an upstream error carrying the raw body as diagnostic detail. No
// retries.
func (c *GeminiClient) GenerateContent(ctx context.Context, promptText string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: promptText}}}},
	})
	if err != nil {
		return "", apperrors.InternalWrap(err, "failed to encode LLM request")
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", apperrors.InternalWrap(err, "failed to build LLM request")
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.UpstreamWrap(err, "LLM request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.UpstreamWrap(err, "failed to read LLM response body")
	}

	if logger.L != nil {
		logger.L.Debug("LLM call finished", "model", c.model, "status", resp.StatusCode, "duration", time.Since(start))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apperrors.Upstream(fmt.Sprintf("LLM returned status %d", resp.StatusCode)).WithDetails(string(body))
	}

	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", apperrors.UpstreamWrap(err, "LLM response is not valid JSON").WithDetails(string(body))
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", apperrors.Upstream("LLM response missing generated text").WithDetails(string(body))
	}

	return decoded.Candidates[0].Content.Parts[0].Text, nil
}
