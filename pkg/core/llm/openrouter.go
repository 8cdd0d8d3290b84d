package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// OpenRouterProvider talks to the OpenRouter chat-completions gateway.
// It is the default provider: the free DeepSeek route keeps narrative
// generation costless for small dashboards.
type OpenRouterProvider struct {
	Model string // e.g. "deepseek/deepseek-chat-v3.1:free"
}

var _ Provider = (*OpenRouterProvider)(nil)

const openRouterURL = "https://openrouter.ai/api/v1/chat/completions"

type openRouterRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *OpenRouterProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if val, ok := options["api_key"].(string); ok && val != "" {
		apiKey = val
	}
	if apiKey == "" {
		return "", fmt.Errorf("OPENROUTER_API_KEY_MISSING: Please set OPENROUTER_API_KEY env var")
	}

	model := p.Model
	if model == "" {
		model = "deepseek/deepseek-chat-v3.1:free"
	}
	if val, ok := options["model"].(string); ok && val != "" {
		model = val
	}

	temperature := 0.3
	if val, ok := options["temperature"].(float64); ok {
		temperature = val
	}
	maxTokens := 500
	if val, ok := options["max_tokens"].(int); ok && val > 0 {
		maxTokens = val
	}

	var messages []Message
	if systemPrompt != "" {
		messages = append(messages, Message{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, Message{Role: "user", Content: prompt})

	jsonBytes, err := json.Marshal(openRouterRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("OPENROUTER_MARSHAL_ERROR: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", openRouterURL, bytes.NewBuffer(jsonBytes))
	if err != nil {
		return "", fmt.Errorf("OPENROUTER_REQ_CREATE_ERROR: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)
	// OpenRouter attribution headers
	referer := os.Getenv("OPENROUTER_SITE_URL")
	if referer == "" {
		referer = "http://localhost:3000"
	}
	req.Header.Set("HTTP-Referer", referer)
	req.Header.Set("X-Title", "Dashboard Vendas IA")

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("OPENROUTER_API_CALL_ERROR: %v", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("OPENROUTER_READ_BODY_ERROR: %v", err)
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OPENROUTER_API_ERROR: status=%d body=%s", res.StatusCode, string(body))
	}

	var response chatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("OPENROUTER_UNMARSHAL_ERROR: %v", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("OPENROUTER_NO_CHOICES: %s", string(body))
	}

	return response.Choices[0].Message.Content, nil
}

func (p *OpenRouterProvider) AdaptInstructions(raw string) string {
	return raw
}
