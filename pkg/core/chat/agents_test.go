package chat

import (
	"fmt"
	"testing"

	"vendas_insights/pkg/models"

	"github.com/google/generative-ai-go/genai"
)

func TestGeminiHistory_RoleMapping(t *testing.T) {
	history := []models.ChatMessage{
		{Role: "user", Content: "qual o total?"},
		{Role: "assistant", Content: "R$ 300,00"},
	}

	contents := geminiHistory(history)
	if len(contents) != 2 {
		t.Fatalf("Expected 2 turns, got %d", len(contents))
	}
	if contents[0].Role != "user" || contents[1].Role != "model" {
		t.Errorf("Expected roles user/model, got %s/%s", contents[0].Role, contents[1].Role)
	}
	if txt, ok := contents[1].Parts[0].(genai.Text); !ok || string(txt) != "R$ 300,00" {
		t.Errorf("Expected assistant content preserved, got %v", contents[1].Parts[0])
	}
}

func TestGeminiHistory_Bounded(t *testing.T) {
	var history []models.ChatMessage
	for i := 0; i < historyLimit+6; i++ {
		history = append(history, models.ChatMessage{Role: "user", Content: fmt.Sprintf("pergunta %d", i)})
	}

	contents := geminiHistory(history)
	if len(contents) != historyLimit {
		t.Fatalf("Expected %d turns, got %d", historyLimit, len(contents))
	}
	// Oldest turns are dropped, newest kept.
	want := fmt.Sprintf("pergunta %d", historyLimit+5)
	if txt := contents[len(contents)-1].Parts[0].(genai.Text); string(txt) != want {
		t.Errorf("Expected newest turn %q, got %q", want, string(txt))
	}
}

func TestGeminiHistory_Empty(t *testing.T) {
	if contents := geminiHistory(nil); len(contents) != 0 {
		t.Errorf("Expected empty history, got %v", contents)
	}
}
