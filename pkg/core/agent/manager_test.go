package agent

import (
	"testing"

	"vendas_insights/pkg/core/llm"
)

func TestGetProvider_AgentOverride(t *testing.T) {
	mgr := NewManager(Config{
		ActiveProvider: "openrouter",
		Agents: map[string]AgentConfig{
			"chat": {Provider: "gemini"},
		},
	})

	if _, ok := mgr.GetProvider("chat").(*llm.GeminiProvider); !ok {
		t.Errorf("Expected gemini override for chat, got %T", mgr.GetProvider("chat"))
	}
	if _, ok := mgr.GetProvider("narrativa").(*llm.OpenRouterProvider); !ok {
		t.Errorf("Expected active provider for narrativa, got %T", mgr.GetProvider("narrativa"))
	}
}

func TestGetProvider_FallbackOnUnknown(t *testing.T) {
	mgr := NewManager(Config{ActiveProvider: "does-not-exist"})
	if _, ok := mgr.GetProvider("chat").(*llm.OpenRouterProvider); !ok {
		t.Errorf("Expected openrouter fallback, got %T", mgr.GetProvider("chat"))
	}
}

func TestSetGlobalProvider(t *testing.T) {
	mgr := NewManager(Config{ActiveProvider: "openrouter"})

	if err := mgr.SetGlobalProvider("deepseek"); err != nil {
		t.Fatalf("Expected switch to succeed: %v", err)
	}
	if mgr.GetActiveProvider() != "deepseek" {
		t.Errorf("Expected active provider deepseek, got %s", mgr.GetActiveProvider())
	}

	if err := mgr.SetGlobalProvider("nope"); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestAvailable(t *testing.T) {
	mgr := NewManager(Config{})
	if got := len(mgr.Available()); got != 3 {
		t.Errorf("Expected 3 providers, got %d", got)
	}
}
