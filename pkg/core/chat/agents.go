package chat

import (
	"context"
	"fmt"
	"os"
	"strings"

	"vendas_insights/pkg/core/agent"
	"vendas_insights/pkg/core/utils"
	"vendas_insights/pkg/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Agent answers one dashboard question given the chart context and the
// conversation so far.
type Agent interface {
	Reply(ctx context.Context, dashboardContext string, history []models.ChatMessage, userMessage string) (string, error)
}

// UniversalAgent routes the question through the configured provider
// via the agent manager.
type UniversalAgent struct {
	mgr *agent.Manager
}

func NewUniversalAgent(mgr *agent.Manager) *UniversalAgent {
	return &UniversalAgent{mgr: mgr}
}

func (a *UniversalAgent) Reply(ctx context.Context, dashboardContext string, history []models.ChatMessage, userMessage string) (string, error) {
	reply, err := a.mgr.ExecutePrompt(ctx, "chat", transcript(history, userMessage), systemPrompt(dashboardContext), map[string]interface{}{
		"temperature": 0.3,
		"max_tokens":  400,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(utils.CleanMarkdown(reply)), nil
}

// GeminiAgent talks to Gemini directly and keeps the conversation as
// native chat history instead of a flattened transcript.
type GeminiAgent struct {
	client    *genai.Client
	modelName string
}

func NewGeminiAgent(ctx context.Context) (*GeminiAgent, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}

	return &GeminiAgent{
		client:    client,
		modelName: "gemini-2.0-flash",
	}, nil
}

func (a *GeminiAgent) Reply(ctx context.Context, dashboardContext string, history []models.ChatMessage, userMessage string) (string, error) {
	model := a.client.GenerativeModel(a.modelName)
	model.SetTemperature(0.3)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt(dashboardContext))},
	}

	session := model.StartChat()
	session.History = geminiHistory(history)

	resp, err := session.SendMessage(ctx, genai.Text(userMessage))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty gemini reply")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(utils.CleanMarkdown(sb.String())), nil
}

// geminiHistory converts the bounded stored turns into native chat
// history. Assistant turns map to the "model" role.
func geminiHistory(history []models.ChatMessage) []*genai.Content {
	var out []*genai.Content
	for _, msg := range boundHistory(history) {
		role := "user"
		if msg.Role == "assistant" {
			role = "model"
		}
		out = append(out, &genai.Content{
			Parts: []genai.Part{genai.Text(msg.Content)},
			Role:  role,
		})
	}
	return out
}
