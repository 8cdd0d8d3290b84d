package validate

import (
	"encoding/json"
	"net/http"

	"vendas_insights/pkg/core/etl"
)

// ValidateRequest carries the uploaded header list.
type ValidateRequest struct {
	Columns []string `json:"columns"`
}

// HandleValidateColumns runs the column pre-check clients call before
// uploading the full row set.
func HandleValidateColumns(w http.ResponseWriter, r *http.Request) {
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

	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result := etl.ValidateColumns(req.Columns)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
