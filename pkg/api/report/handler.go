package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"vendas_insights/pkg/core/agent"
	"vendas_insights/pkg/core/narrative"
	"vendas_insights/pkg/core/pipeline"
	"vendas_insights/pkg/models"
)

// ProcessRequest is the inbound payload shared by all processing modes.
type ProcessRequest struct {
	CSVData []models.RawRow `json:"csvData"`
	Columns []string        `json:"columns"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves the three CSV processing modes:
// local-only, hybrid (local ETL + model narrative) and legacy
// full-model analysis.
type Handler struct {
	agentMgr *agent.Manager
	local    *pipeline.Orchestrator
	hybrid   *pipeline.Orchestrator
}

func NewHandler(agentMgr *agent.Manager) *Handler {
	return &Handler{
		agentMgr: agentMgr,
		local:    pipeline.NewOrchestrator(narrative.LocalComposer{}),
		hybrid:   pipeline.NewOrchestrator(narrative.NewRemoteComposer(agentMgr)),
	}
}

// HandleProcessOptimized computes the whole report locally. No external
// calls: the resumo is the deterministic template.
func (h *Handler) HandleProcessOptimized(w http.ResponseWriter, r *http.Request) {
	h.process(w, r, func(req *ProcessRequest) (*models.Report, error) {
		return h.local.Run(r.Context(), req.CSVData, req.Columns)
	})
}

// HandleProcessHybrid computes KPIs locally and asks the model only for
// the narrative, falling back to the deterministic text on failure.
func (h *Handler) HandleProcessHybrid(w http.ResponseWriter, r *http.Request) {
	h.process(w, r, func(req *ProcessRequest) (*models.Report, error) {
		return h.hybrid.Run(r.Context(), req.CSVData, req.Columns)
	})
}

// HandleProcess is the legacy mode: the model receives a digest plus a
// sample and answers with the full report JSON.
func (h *Handler) HandleProcess(w http.ResponseWriter, r *http.Request) {
	h.process(w, r, func(req *ProcessRequest) (*models.Report, error) {
		return h.hybrid.RunWithModelAnalysis(r.Context(), req.CSVData, req.Columns, h.agentMgr)
	})
}

func (h *Handler) process(w http.ResponseWriter, r *http.Request, run func(*ProcessRequest) (*models.Report, error)) {
	// CORS for the dashboard frontend
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

	var req ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Dados CSV inválidos ou vazios")
		return
	}

	report, err := run(&req)
	if err != nil {
		var colErr *pipeline.ColumnValidationError
		switch {
		case errors.Is(err, pipeline.ErrNoRows):
			writeError(w, http.StatusBadRequest, "Dados CSV inválidos ou vazios")
		case errors.As(err, &colErr):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(colErr.Result)
		default:
			fmt.Printf("[REPORT] Internal error: %v\n", err)
			writeError(w, http.StatusInternalServerError, "Erro interno do servidor")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
