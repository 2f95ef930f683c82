package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"google.golang.org/genai"
)

type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGemini    Provider = "gemini"
	ProviderNone      Provider = "none"
)

// ErrNotConfigured means the deployment has no usable provider credential.
var ErrNotConfigured = errors.New("LLM provider not configured")

// Message is one conversational turn. Role is "user" or "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Service struct {
	provider Provider
	apiKey   string
	model    string
	timeout  time.Duration

	// anthropicURL and openaiURL are overridable for tests.
	anthropicURL string
	openaiURL    string
}

func NewService(provider, apiKey, model string) *Service {
	return &Service{
		provider:     Provider(provider),
		apiKey:       apiKey,
		model:        model,
		timeout:      120 * time.Second, // single attempt, generous budget for long prompts
		anthropicURL: "https://api.anthropic.com/v1/messages",
		openaiURL:    "https://api.openai.com/v1/chat/completions",
	}
}

// Complete sends the system prompt plus ordered turns to the configured
// provider and returns the raw text reply. One attempt, no retries; the
// caller decides what a failure means.
func (s *Service) Complete(ctx context.Context, system string, messages []Message, maxTokens int) (string, error) {
	if s == nil || s.provider == ProviderNone {
		return "", ErrNotConfigured
	}
	if s.apiKey == "" {
		return "", ErrNotConfigured
	}

	switch s.provider {
	case ProviderAnthropic:
		return s.callAnthropic(ctx, system, messages, maxTokens)
	case ProviderOpenAI:
		return s.callOpenAI(ctx, system, messages, maxTokens)
	case ProviderGemini:
		return s.callGemini(ctx, system, messages, maxTokens)
	default:
		return "", fmt.Errorf("unknown provider: %s", s.provider)
	}
}

func (s *Service) callAnthropic(ctx context.Context, system string, messages []Message, maxTokens int) (string, error) {
	reqBody := map[string]interface{}{
		"model":      s.model,
		"max_tokens": maxTokens,
		"system":     system,
		"messages":   messages,
	}

	jsonData, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, "POST", s.anthropicURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := &http.Client{Timeout: s.timeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("Anthropic API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorText, _ := io.ReadAll(resp.Body)
		log.Printf("[LLM] Anthropic API error: %s", errorText)
		return "", fmt.Errorf("Anthropic API error: %d", resp.StatusCode)
	}

	var result struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	if result.Error.Message != "" {
		return "", fmt.Errorf("Anthropic error: %s", result.Error.Message)
	}

	if len(result.Content) == 0 {
		return "", fmt.Errorf("no response from Anthropic")
	}

	return result.Content[0].Text, nil
}

func (s *Service) callOpenAI(ctx context.Context, system string, messages []Message, maxTokens int) (string, error) {
	chatMessages := make([]map[string]string, 0, len(messages)+1)
	chatMessages = append(chatMessages, map[string]string{
		"role":    "system",
		"content": system,
	})
	for _, m := range messages {
		chatMessages = append(chatMessages, map[string]string{
			"role":    m.Role,
			"content": m.Content,
		})
	}

	reqBody := map[string]interface{}{
		"model":      s.model,
		"messages":   chatMessages,
		"max_tokens": maxTokens,
	}

	jsonData, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, "POST", s.openaiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: s.timeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OpenAI API error: %d", resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	if result.Error.Message != "" {
		return "", fmt.Errorf("OpenAI error: %s", result.Error.Message)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return result.Choices[0].Message.Content, nil
}

func (s *Service) callGemini(ctx context.Context, system string, messages []Message, maxTokens int) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  s.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create genai client: %w", err)
	}

	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		role := genai.RoleUser
		if m.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}

	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
	}
	if system != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	resp, err := client.Models.GenerateContent(ctx, s.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("Gemini API call failed: %w", err)
	}

	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && part.Text != "" {
				return part.Text, nil
			}
		}
	}

	return "", fmt.Errorf("no response from Gemini")
}
