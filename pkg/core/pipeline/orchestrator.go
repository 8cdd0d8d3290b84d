package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"vendas_insights/pkg/core/etl"
	"vendas_insights/pkg/core/narrative"
	"vendas_insights/pkg/models"
)

// sampleSize is how many raw rows the report carries back for display.
const sampleSize = 10

// ErrNoRows rejects empty or missing row payloads before any
// aggregation starts.
var ErrNoRows = errors.New("dados CSV inválidos ou vazios")

// ColumnValidationError carries the validation result of a header that
// misses required semantic fields. The pipeline does not run past it.
type ColumnValidationError struct {
	Result models.ValidationResult
}

func (e *ColumnValidationError) Error() string {
	return e.Result.Message
}

// Orchestrator manages one report request end to end:
// validate -> coerce -> aggregate -> synthesize -> narrative -> report.
// All state is request-scoped; an Orchestrator is safe for concurrent use.
type Orchestrator struct {
	summarizer narrative.Summarizer
}

func NewOrchestrator(summarizer narrative.Summarizer) *Orchestrator {
	if summarizer == nil {
		summarizer = narrative.LocalComposer{}
	}
	return &Orchestrator{summarizer: summarizer}
}

// Run processes one batch of raw rows into a complete Report. It
// returns either a full report or an error, never a partial result.
func (o *Orchestrator) Run(ctx context.Context, rows []models.RawRow, columns []string) (*models.Report, error) {
	start := time.Now()

	kpis, _, columns, err := o.computeKPIs(rows, columns)
	if err != nil {
		return nil, err
	}

	resumo := o.summarizer.Compose(ctx, kpis, len(rows))

	report := &models.Report{
		DadosEstruturados:  sampleRows(rows, sampleSize),
		KPIs:               kpis,
		Resumo:             resumo,
		ColunasDisponiveis: columns,
	}
	fmt.Printf("[PIPELINE] Processed %d rows in %v\n", len(rows), time.Since(start))
	return report, nil
}

// computeKPIs runs the pure ETL stages shared by every processing mode.
// It also returns the consumed aggregate (the legacy mode needs its
// distinct counts) and the effective column list, derived from the
// first row when the request omitted the header.
func (o *Orchestrator) computeKPIs(rows []models.RawRow, columns []string) (models.KPIData, *etl.Aggregate, []string, error) {
	if len(rows) == 0 {
		return models.KPIData{}, nil, nil, ErrNoRows
	}
	if len(columns) == 0 {
		columns = headerFromRow(rows[0])
	}

	if result := etl.ValidateColumns(columns); !result.IsValid {
		fmt.Printf("[PIPELINE] Column validation failed: %v\n", result.MissingColumns)
		return models.KPIData{}, nil, nil, &ColumnValidationError{Result: result}
	}

	resolver := etl.NewResolver(columns)
	agg := etl.NewAggregate()
	for _, row := range rows {
		agg.Add(etl.CoerceRow(row, resolver))
	}

	return etl.Synthesize(agg), agg, columns, nil
}

func sampleRows(rows []models.RawRow, n int) []models.RawRow {
	if len(rows) < n {
		n = len(rows)
	}
	return rows[:n]
}

func headerFromRow(row models.RawRow) []string {
	columns := make([]string, 0, len(row))
	for key := range row {
		columns = append(columns, key)
	}
	sort.Strings(columns)
	return columns
}
