package report

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendas_insights/pkg/models"
)

func postJSON(t *testing.T, handler http.HandlerFunc, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/processar-csv-otimizado", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleProcessOptimized_Success(t *testing.T) {
	h := NewHandler(nil)

	rec := postJSON(t, h.HandleProcessOptimized, ProcessRequest{
		CSVData: []models.RawRow{
			{"valor": "100", "produto": "X", "cliente": "A", "data": "2024-01-05"},
			{"valor": "200", "produto": "X", "cliente": "B", "data": "2024-02-10"},
		},
		Columns: []string{"valor", "data", "produto", "cliente"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var report models.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 300.0, report.KPIs.TotalVendas)
	assert.Equal(t, 150.0, report.KPIs.TicketMedio)
	assert.Equal(t, "X", report.KPIs.ProdutoMaisVendido)
	assert.Len(t, report.KPIs.VendasPorMes, 2)
	assert.NotEmpty(t, report.Resumo)
	assert.Len(t, report.DadosEstruturados, 2)
}

func TestHandleProcessOptimized_EmptyRows(t *testing.T) {
	h := NewHandler(nil)

	rec := postJSON(t, h.HandleProcessOptimized, ProcessRequest{CSVData: []models.RawRow{}})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Dados CSV inválidos ou vazios", resp["error"])
}

func TestHandleProcessOptimized_MissingColumns(t *testing.T) {
	h := NewHandler(nil)

	rec := postJSON(t, h.HandleProcessOptimized, ProcessRequest{
		CSVData: []models.RawRow{{"qtd": "1", "obs": "x"}},
		Columns: []string{"qtd", "obs"},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var result models.ValidationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.IsValid)
	assert.Len(t, result.MissingColumns, 4)
	assert.NotEmpty(t, result.Message)
}

func TestHandleProcessOptimized_MalformedBody(t *testing.T) {
	h := NewHandler(nil)

	req := httptest.NewRequest("POST", "/api/processar-csv-otimizado", bytes.NewReader([]byte("{nope")))
	rec := httptest.NewRecorder()
	h.HandleProcessOptimized(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleProcessOptimized_MethodHandling(t *testing.T) {
	h := NewHandler(nil)

	rec := httptest.NewRecorder()
	h.HandleProcessOptimized(rec, httptest.NewRequest("OPTIONS", "/api/processar-csv-otimizado", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.HandleProcessOptimized(rec, httptest.NewRequest("GET", "/api/processar-csv-otimizado", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
