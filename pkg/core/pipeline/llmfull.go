package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"vendas_insights/pkg/core/narrative"
	"vendas_insights/pkg/core/utils"
	"vendas_insights/pkg/models"
)

// llmSampleSize is how many rows the legacy mode shows to the model.
const llmSampleSize = 5

// localSummary is the compact digest sent to the model in the legacy
// full-analysis mode.
type localSummary struct {
	TotalRegistros       int     `json:"totalRegistros"`
	TotalVendas          float64 `json:"totalVendas"`
	TicketMedio          float64 `json:"ticketMedio"`
	ProdutoMaisVendido   string  `json:"produtoMaisVendido"`
	ClienteMaisFrequente string  `json:"clienteMaisFrequente"`
	ProdutosUnicos       int     `json:"produtosUnicos"`
	ClientesUnicos       int     `json:"clientesUnicos"`
}

// RunWithModelAnalysis is the legacy processing mode: the local digest
// and a small sample go to the model, which answers with the full
// report JSON. Any call or parse failure degrades to the locally
// computed figures with empty series, so the caller still gets a
// complete report.
func (o *Orchestrator) RunWithModelAnalysis(ctx context.Context, rows []models.RawRow, columns []string, gen narrative.Generator) (*models.Report, error) {
	kpis, agg, columns, err := o.computeKPIs(rows, columns)
	if err != nil {
		return nil, err
	}

	sample := sampleRows(rows, llmSampleSize)
	summary := localSummary{
		TotalRegistros:       len(rows),
		TotalVendas:          kpis.TotalVendas,
		TicketMedio:          kpis.TicketMedio,
		ProdutoMaisVendido:   kpis.ProdutoMaisVendido,
		ClienteMaisFrequente: kpis.ClienteMaisFrequente,
		ProdutosUnicos:       len(kpis.VendasPorProduto),
		ClientesUnicos:       len(agg.CustomerOrder),
	}

	report, err := o.requestModelReport(ctx, gen, summary, sample, columns)
	if err != nil {
		fmt.Printf("[PIPELINE] Model analysis failed, using local fallback: %v\n", err)
		return fallbackReport(summary, sample, columns), nil
	}
	return report, nil
}

func (o *Orchestrator) requestModelReport(ctx context.Context, gen narrative.Generator, summary localSummary, sample []models.RawRow, columns []string) (*models.Report, error) {
	if gen == nil {
		return nil, fmt.Errorf("no generator configured")
	}

	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}
	sampleJSON, err := json.Marshal(sample)
	if err != nil {
		return nil, err
	}
	columnsJSON, err := json.Marshal(columns)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Analise estes dados de vendas e retorne JSON com KPIs:

DADOS: %s
COLUNAS: %s

Calcule: totalVendas, ticketMedio, produtoMaisVendido, clienteMaisFrequente, vendasPorMes, vendasPorProduto, crescimentoPercentual.

Retorne APENAS JSON válido:
{
  "dadosEstruturados": %s,
  "kpis": {...},
  "resumo": "texto em português",
  "colunasDisponiveis": %s
}`, summaryJSON, columnsJSON, sampleJSON, columnsJSON)

	raw, err := gen.ExecutePrompt(ctx, "analise_completa", prompt, "", map[string]interface{}{
		"temperature": 0.1,
		"max_tokens":  2000,
		"response_format": map[string]interface{}{
			"type": "json_object",
		},
	})
	if err != nil {
		return nil, err
	}

	var report models.Report
	if err := utils.SmartParse(utils.CleanMarkdown(raw), &report); err != nil {
		return nil, err
	}
	if report.Resumo == "" {
		return nil, fmt.Errorf("model reply missing resumo")
	}
	if report.ColunasDisponiveis == nil {
		report.ColunasDisponiveis = columns
	}
	return &report, nil
}

// fallbackReport mirrors the locally computed digest into a complete
// report with empty month/product series.
func fallbackReport(summary localSummary, sample []models.RawRow, columns []string) *models.Report {
	kpis := models.KPIData{
		TotalVendas:          summary.TotalVendas,
		TicketMedio:          summary.TicketMedio,
		ProdutoMaisVendido:   summary.ProdutoMaisVendido,
		ClienteMaisFrequente: summary.ClienteMaisFrequente,
		VendasPorMes:         []models.MonthlySales{},
		VendasPorProduto:     []models.ProductSales{},
	}
	return &models.Report{
		DadosEstruturados: sample,
		KPIs:              kpis,
		Resumo: fmt.Sprintf("Análise baseada em %d registros. Total de vendas: R$ %.2f, Ticket médio: R$ %.2f.",
			summary.TotalRegistros, summary.TotalVendas, summary.TicketMedio),
		ColunasDisponiveis: columns,
	}
}
