package etl

import (
	"math"
	"strconv"
	"strings"

	"vendas_insights/pkg/models"
)

// CoercedRow is the typed view of one raw row. Absent or unparseable
// fields stay at their zero value with HasAmount=false / empty string,
// and are skipped by the aggregator.
type CoercedRow struct {
	Amount    float64
	HasAmount bool
	Date      string
	Product   string
	Customer  string
}

// CoerceRow resolves and extracts the four canonical fields from a raw
// row. Pure per-row transform: rows never affect each other, so callers
// may process them in any order.
func CoerceRow(row models.RawRow, resolver *Resolver) CoercedRow {
	var out CoercedRow

	if key, ok := resolver.Resolve(FieldAmount, row); ok {
		if amount, ok := parseAmount(row[key]); ok {
			out.Amount = amount
			out.HasAmount = true
		}
	}
	if key, ok := resolver.Resolve(FieldDate, row); ok {
		out.Date = stringValue(row[key])
	}
	if key, ok := resolver.Resolve(FieldProduct, row); ok {
		out.Product = stringValue(row[key])
	}
	if key, ok := resolver.Resolve(FieldCustomer, row); ok {
		out.Customer = stringValue(row[key])
	}
	return out
}

// parseAmount coerces a cell to float64. Unparseable values are
// reported absent rather than zero, so they never dilute sums or the
// ticket-medio denominator.
func parseAmount(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) {
			return 0, false
		}
		return val, true
	case int:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// stringValue renders a cell verbatim. No trimming or normalization:
// grouping keys compare by exact identity.
func stringValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		return ""
	}
}
