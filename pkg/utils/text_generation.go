package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

// TextGenerator turns a free-text prompt into a free-text answer. Answers are
// advisory.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

var ErrEmptyCompletion = errors.New("text generation returned no content")

const generationTimeout = 30 * time.Second

// GeminiTextClient implements TextGenerator using Google's Gemini models
type GeminiTextClient struct {
	client *genai.Client
	model  string
}

func NewGeminiTextClient(apiKey, model string) (*GeminiTextClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiTextClient{client: client, model: model}, nil
}

func (c *GeminiTextClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(0.2)
	m.SetTopP(0.95)
	m.SetTopK(40)
	m.SetMaxOutputTokens(1024)

	ctx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyCompletion
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyCompletion
	}
	return sb.String(), nil
}

func (c *GeminiTextClient) Close() error {
	return c.client.Close()
}

// OpenAITextClient implements TextGenerator with the chat completions API.
type OpenAITextClient struct {
	client *openai.Client
	model  string
}

func NewOpenAITextClient(apiKey, model string) (*OpenAITextClient, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is empty")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAITextClient{client: openai.NewClient(apiKey), model: model}, nil
}

func (c *OpenAITextClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.2,
		MaxTokens:   1024,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

// NewTextGenerator Factory function to create either OpenAI or Gemini client based on config.
// Provider "none" (or empty) disables text generation and returns nil, nil.
func NewTextGenerator(provider, apiKey, model string) (TextGenerator, error) {
	switch strings.ToLower(provider) {
	case "", "none":
		return nil, nil
	case "openai":
		c, err := NewOpenAITextClient(apiKey, model)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "gemini":
		c, err := NewGeminiTextClient(apiKey, model)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported text provider: %s. Use 'openai', 'gemini' or 'none'", provider)
	}
}
