package chat

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"vendas_insights/pkg/core/agent"
	corechat "vendas_insights/pkg/core/chat"
	"vendas_insights/pkg/models"
)

// ChatRequest is one dashboard question. ChatHistory is optional; when
// present the client owns the transcript and the server-side session is
// neither read nor updated. When absent, history is kept per SessionID.
type ChatRequest struct {
	DashboardData json.RawMessage      `json:"dashboardData"`
	DashboardType string               `json:"dashboardType"`
	UserMessage   string               `json:"userMessage"`
	ChatHistory   []models.ChatMessage `json:"chatHistory"`
	SessionID     string               `json:"sessionId"`
}

type ChatResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
	Timestamp string `json:"timestamp"`
}

// Handler answers questions about the dashboard the user is viewing.
type Handler struct {
	agent    corechat.Agent
	sessions *corechat.SessionStore
}

func NewHandler(agentMgr *agent.Manager) *Handler {
	return &Handler{
		agent:    corechat.NewUniversalAgent(agentMgr),
		sessions: corechat.NewSessionStore(),
	}
}

// SetAgent swaps the chat agent (e.g. for the direct Gemini client or tests).
func (h *Handler) SetAgent(a corechat.Agent) {
	h.agent = a
}

func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.DashboardData) == 0 || req.DashboardType == "" {
		http.Error(w, "Dados do dashboard são obrigatórios", http.StatusBadRequest)
		return
	}

	sessionID := h.sessions.Touch(req.SessionID)
	history := req.ChatHistory
	clientOwnsHistory := history != nil
	if !clientOwnsHistory {
		history = h.sessions.History(sessionID)
	}

	dashboardContext := corechat.BuildDashboardContext(req.DashboardType, req.DashboardData)
	reply, err := h.agent.Reply(r.Context(), dashboardContext, history, req.UserMessage)
	if err != nil {
		fmt.Printf("[CHAT] Generation failed: %v\n", err)
		http.Error(w, "Erro interno do servidor", http.StatusInternalServerError)
		return
	}

	// Only server-kept sessions record the exchange; storing turns the
	// client never sent us back would fork the transcript.
	if !clientOwnsHistory {
		h.sessions.Append(sessionID,
			models.ChatMessage{Role: "user", Content: req.UserMessage},
			models.ChatMessage{Role: "assistant", Content: reply},
		)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ChatResponse{
		Message:   reply,
		SessionID: sessionID,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
