package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-1.5-flash"

// Generator produces a reply for a single self-contained prompt.
type Generator interface {
	Generate(ctx context.Context, prompt, apiKey string) (string, error)
}

// GeminiClient is a stateless wrapper around the Gemini generateContent
// endpoint. Each call is one independent turn; no conversation history
// is threaded through. The client never logs or stores the credential
// or the prompt.
type GeminiClient struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewGeminiClient creates a client for the given model id.
func NewGeminiClient(model string) *GeminiClient {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiClient{
		baseURL: defaultBaseURL,
		model:   model,
		client:  &http.Client{},
	}
}

type geminiRequest struct {
	Contents         []geminiContent       `json:"contents"`
	GenerationConfig geminiGenConfig       `json:"generationConfig"`
	SafetySettings   []geminiSafetySetting `json:"safetySettings"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiSafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type geminiErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generation parameters are fixed, not user-tunable.
func buildGenerateRequest(prompt string) geminiRequest {
	return geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenConfig{
			Temperature:     0.9,
			TopK:            1,
			TopP:            1,
			MaxOutputTokens: 2048,
		},
		SafetySettings: []geminiSafetySetting{
			{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
			{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
			{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
			{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
		},
	}
}

// Generate sends one prompt and returns the model's reply text. All
// failures resolve to a typed *InferenceError; the caller is never
// crashed by an unexpected payload.
func (c *GeminiClient) Generate(ctx context.Context, prompt, apiKey string) (string, error) {
	body, err := json.Marshal(buildGenerateRequest(prompt))
	if err != nil {
		return "", &InferenceError{Kind: KindMalformedResponse, Message: "encode request", Err: err}
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.model, apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &InferenceError{Kind: KindUnreachable, Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &InferenceError{Kind: KindUnreachable, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &InferenceError{Kind: KindUnreachable, Message: "read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyStatus(resp.StatusCode, respBody)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &InferenceError{Kind: KindMalformedResponse, Status: resp.StatusCode, Message: "invalid JSON payload", Err: err}
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", &InferenceError{Kind: KindMalformedResponse, Status: resp.StatusCode, Message: "no candidate text in response"}
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// classifyStatus maps a non-2xx response to a failure kind, carrying
// the upstream status and structured error message when present.
func classifyStatus(status int, body []byte) *InferenceError {
	message := "unknown error"
	var parsed geminiErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		message = parsed.Error.Message
	}

	kind := KindServerError
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = KindUnauthorized
	case status == http.StatusTooManyRequests:
		kind = KindRateLimited
	}

	return &InferenceError{Kind: kind, Status: status, Message: message}
}
