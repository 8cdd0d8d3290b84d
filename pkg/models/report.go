package models

// RawRow is one record as parsed from the uploaded CSV. Keys follow
// whatever header the spreadsheet had; values arrive as strings or
// JSON numbers.
type RawRow map[string]interface{}

// MonthlySales is one bucket of the vendas-por-mes series.
// Mes is a YYYY-MM key.
type MonthlySales struct {
	Mes   string  `json:"mes"`
	Valor float64 `json:"valor"`
}

// ProductSales aggregates one product: how many rows mentioned it and
// the summed amount of the rows where the amount parsed.
type ProductSales struct {
	Produto    string  `json:"produto"`
	Quantidade int     `json:"quantidade"`
	Valor      float64 `json:"valor"`
}

// KPIData is the immutable KPI snapshot derived from one aggregation run.
type KPIData struct {
	TotalVendas           float64        `json:"totalVendas"`
	TicketMedio           float64        `json:"ticketMedio"`
	ProdutoMaisVendido    string         `json:"produtoMaisVendido"`
	ClienteMaisFrequente  string         `json:"clienteMaisFrequente"`
	VendasPorMes          []MonthlySales `json:"vendasPorMes"`
	VendasPorProduto      []ProductSales `json:"vendasPorProduto"`
	CrescimentoPercentual float64        `json:"crescimentoPercentual"`
}

// Report is the full response of one processing run.
// DadosEstruturados carries the first rows verbatim for display only.
type Report struct {
	DadosEstruturados  []RawRow `json:"dadosEstruturados"`
	KPIs               KPIData  `json:"kpis"`
	Resumo             string   `json:"resumo"`
	ColunasDisponiveis []string `json:"colunasDisponiveis"`
}

// ValidationResult is the outcome of the column pre-check that gates
// the report pipeline.
type ValidationResult struct {
	IsValid          bool     `json:"isValid"`
	MissingColumns   []string `json:"missingColumns"`
	AvailableColumns []string `json:"availableColumns"`
	Message          string   `json:"message"`
}

// ChatMessage is one turn of the dashboard chat.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}
