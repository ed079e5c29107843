package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OllamaClient implements VisionProvider against a local Ollama instance
// running a multimodal model. All HTTP calls are wrapped with circuit
// breaker protection.
type OllamaClient struct {
	baseURL        string
	client         *http.Client
	circuitBreaker *CircuitBreaker
	model          string
	timeout        time.Duration
}

// OllamaConfig holds Ollama client configuration.
type OllamaConfig struct {
	// BaseURL is the base URL for the Ollama API (default: http://localhost:11434)
	BaseURL string

	// Model is the multimodal model name (default: llava:7b)
	Model string

	// Timeout is the request timeout duration (default: 60s; local vision
	// models are slow on first load)
	Timeout time.Duration
}

// generateRequest is the request body for /api/generate. Images carries raw
// base64 payloads, without a data URL prefix.
type generateRequest struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Stream bool     `json:"stream"`
	Images []string `json:"images,omitempty"`
}

// generateResponse is the response body from /api/generate.
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewOllamaClient creates a new Ollama vision client with the given
// configuration, applying defaults for anything unset.
func NewOllamaClient(config OllamaConfig) *OllamaClient {
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:11434"
	}
	if config.Model == "" {
		config.Model = "llava:7b"
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}

	return &OllamaClient{
		baseURL: config.BaseURL,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		circuitBreaker: NewCircuitBreaker(),
		model:          config.Model,
		timeout:        config.Timeout,
	}
}

// AnalyzeFace sends the image with the fixed analysis prompt.
func (c *OllamaClient) AnalyzeFace(ctx context.Context, imageBase64 string) (*Assessment, error) {
	content, err := c.generate(ctx, analysisPrompt, imageBase64)
	if err != nil {
		return nil, err
	}
	return ParseAssessment(content)
}

// DialogueTurn produces the next assistant turn of the conversation.
func (c *OllamaClient) DialogueTurn(ctx context.Context, req DialogueRequest) (*DialogueTurn, error) {
	content, err := c.generate(ctx, buildDialoguePrompt(dialoguePromptHeader, req), req.ImageBase64)
	if err != nil {
		return nil, err
	}
	return ParseDialogueTurn(content)
}

// SummarizeDialogue closes the conversation with the structured summary.
func (c *OllamaClient) SummarizeDialogue(ctx context.Context, req DialogueRequest) (*DialogueSummary, error) {
	content, err := c.generate(ctx, buildDialoguePrompt(summaryPromptHeader, req), req.ImageBase64)
	if err != nil {
		return nil, err
	}
	return ParseDialogueSummary(content)
}

// generate sends a non-streaming generation request with one image attached,
// wrapped with the circuit breaker.
func (c *OllamaClient) generate(ctx context.Context, prompt, imageBase64 string) (string, error) {
	result, err := c.circuitBreaker.Execute(ctx, func() (interface{}, error) {
		return c.doGenerate(ctx, prompt, imageBase64)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (c *OllamaClient) doGenerate(ctx context.Context, prompt, imageBase64 string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqBody := generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Images: []string{stripDataURL(imageBase64)},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/generate", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, string(body))
	}

	var respData generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&respData); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return respData.Response, nil
}

// GetModel returns the configured model name.
func (c *OllamaClient) GetModel() string {
	return c.model
}

// stripDataURL reduces a data URL to its raw base64 payload; Ollama's images
// field takes bare base64.
func stripDataURL(imageBase64 string) string {
	if idx := strings.Index(imageBase64, ";base64,"); idx != -1 {
		return imageBase64[idx+len(";base64,"):]
	}
	return imageBase64
}

// Compile-time assertion.
var _ VisionProvider = (*OllamaClient)(nil)
