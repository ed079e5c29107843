package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIConfig holds configuration for the OpenAI vision client.
type OpenAIConfig struct {
	APIKey  string
	Model   string        // default: gpt-4o-mini
	BaseURL string        // optional, for OpenAI-compatible endpoints
	Timeout time.Duration // default: 60s
}

// OpenAIClient implements VisionProvider using the OpenAI chat completions
// API with multi-content image messages.
type OpenAIClient struct {
	cfg            OpenAIConfig
	client         *openai.Client
	circuitBreaker *CircuitBreaker
}

// NewOpenAIClient creates a new OpenAI vision client.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenAIClient{
		cfg:            cfg,
		client:         openai.NewClientWithConfig(clientCfg),
		circuitBreaker: NewCircuitBreaker(),
	}
}

// AnalyzeFace sends the image with the fixed analysis prompt and parses the
// structured assessment out of the reply.
func (c *OpenAIClient) AnalyzeFace(ctx context.Context, imageBase64 string) (*Assessment, error) {
	content, err := c.visionCompletion(ctx, analysisPrompt, imageBase64)
	if err != nil {
		return nil, err
	}
	return ParseAssessment(content)
}

// DialogueTurn sends the image plus conversation context and parses one
// assistant turn.
func (c *OpenAIClient) DialogueTurn(ctx context.Context, req DialogueRequest) (*DialogueTurn, error) {
	prompt := buildDialoguePrompt(dialoguePromptHeader, req)
	content, err := c.visionCompletion(ctx, prompt, req.ImageBase64)
	if err != nil {
		return nil, err
	}
	return ParseDialogueTurn(content)
}

// SummarizeDialogue closes the conversation with the structured summary
// payload.
func (c *OpenAIClient) SummarizeDialogue(ctx context.Context, req DialogueRequest) (*DialogueSummary, error) {
	prompt := buildDialoguePrompt(summaryPromptHeader, req)
	content, err := c.visionCompletion(ctx, prompt, req.ImageBase64)
	if err != nil {
		return nil, err
	}
	return ParseDialogueSummary(content)
}

// visionCompletion runs one chat completion carrying the prompt and image as
// a multi-content user message, wrapped with circuit breaker protection.
func (c *OpenAIClient) visionCompletion(ctx context.Context, prompt, imageBase64 string) (string, error) {
	result, err := c.circuitBreaker.Execute(ctx, func() (interface{}, error) {
		return c.complete(ctx, prompt, imageBase64)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (c *OpenAIClient) complete(ctx context.Context, prompt, imageBase64 string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: 0.4,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    asDataURL(imageBase64),
							Detail: openai.ImageURLDetailLow,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// GetModel returns the configured model name.
func (c *OpenAIClient) GetModel() string {
	return c.cfg.Model
}

// asDataURL ensures the image payload is a data URL; raw base64 input is
// assumed to be JPEG, matching the capture flow's export format.
func asDataURL(imageBase64 string) string {
	if strings.HasPrefix(imageBase64, "data:") {
		return imageBase64
	}
	return "data:image/jpeg;base64," + imageBase64
}

// Compile-time assertion.
var _ VisionProvider = (*OpenAIClient)(nil)
