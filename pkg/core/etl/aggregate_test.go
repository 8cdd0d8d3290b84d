package etl

import (
	"math/rand"
	"testing"

	"vendas_insights/pkg/models"
)

var scenarioColumns = []string{"valor", "data", "produto", "cliente"}

func scenarioRows() []models.RawRow {
	return []models.RawRow{
		{"valor": "100", "produto": "X", "cliente": "A", "data": "2024-01-05"},
		{"valor": "200", "produto": "X", "cliente": "B", "data": "2024-02-10"},
	}
}

func aggregateRows(rows []models.RawRow) *Aggregate {
	resolver := NewResolver(scenarioColumns)
	agg := NewAggregate()
	for _, row := range rows {
		agg.Add(CoerceRow(row, resolver))
	}
	return agg
}

func TestAggregate_ScenarioA(t *testing.T) {
	agg := aggregateRows(scenarioRows())

	if agg.TotalSales != 300 {
		t.Errorf("Expected totalSales 300, got %v", agg.TotalSales)
	}
	if agg.AmountCount != 2 {
		t.Errorf("Expected 2 amounts, got %d", agg.AmountCount)
	}
	if agg.ProductCounts["X"] != 2 {
		t.Errorf("Expected product X counted twice, got %d", agg.ProductCounts["X"])
	}
	if agg.ProductAmounts["X"] != 300 {
		t.Errorf("Expected product X amount 300, got %v", agg.ProductAmounts["X"])
	}
	if agg.MonthAmounts["2024-01"] != 100 || agg.MonthAmounts["2024-02"] != 200 {
		t.Errorf("Unexpected month buckets: %v", agg.MonthAmounts)
	}
}

func TestAggregate_UnparseableAmountExcluded(t *testing.T) {
	rows := append(scenarioRows(), models.RawRow{
		"valor": "abc", "produto": "Y", "cliente": "C", "data": "2024-03-01",
	})
	agg := aggregateRows(rows)

	if agg.TotalSales != 300 {
		t.Errorf("Unparseable amount must not affect totalSales, got %v", agg.TotalSales)
	}
	if agg.AmountCount != 2 {
		t.Errorf("Unparseable amount must not be counted, got %d", agg.AmountCount)
	}
	// Product and customer are still tallied.
	if agg.ProductCounts["Y"] != 1 || agg.CustomerCounts["C"] != 1 {
		t.Errorf("Product/customer should count without amount: %v %v", agg.ProductCounts, agg.CustomerCounts)
	}
	if agg.ProductAmounts["Y"] != 0 {
		t.Errorf("Product Y amount should stay 0, got %v", agg.ProductAmounts["Y"])
	}
	// No month bucket without a parseable amount.
	if _, ok := agg.MonthAmounts["2024-03"]; ok {
		t.Error("Month bucket must not exist for rows without a parseable amount")
	}
}

func TestAggregate_OrderIndependence(t *testing.T) {
	rows := []models.RawRow{}
	for i := 0; i < 6; i++ {
		rows = append(rows, scenarioRows()...)
	}
	rows = append(rows, models.RawRow{"valor": "50", "produto": "Z", "cliente": "A", "data": "2023-12-31"})

	base := aggregateRows(rows)

	shuffled := make([]models.RawRow, len(rows))
	copy(shuffled, rows)
	rng := rand.New(rand.NewSource(42))
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	other := aggregateRows(shuffled)

	if base.TotalSales != other.TotalSales || base.AmountCount != other.AmountCount {
		t.Errorf("Totals differ under shuffle: %v/%d vs %v/%d",
			base.TotalSales, base.AmountCount, other.TotalSales, other.AmountCount)
	}
	for p, v := range base.ProductAmounts {
		if other.ProductAmounts[p] != v {
			t.Errorf("ProductAmounts[%s] differs: %v vs %v", p, v, other.ProductAmounts[p])
		}
	}
	for c, v := range base.CustomerCounts {
		if other.CustomerCounts[c] != v {
			t.Errorf("CustomerCounts[%s] differs: %d vs %d", c, v, other.CustomerCounts[c])
		}
	}
	for m, v := range base.MonthAmounts {
		if other.MonthAmounts[m] != v {
			t.Errorf("MonthAmounts[%s] differs: %v vs %v", m, v, other.MonthAmounts[m])
		}
	}

	// The sorted month series is identical too.
	baseKPIs := Synthesize(base)
	otherKPIs := Synthesize(other)
	if len(baseKPIs.VendasPorMes) != len(otherKPIs.VendasPorMes) {
		t.Fatalf("Month series length differs: %d vs %d", len(baseKPIs.VendasPorMes), len(otherKPIs.VendasPorMes))
	}
	for i := range baseKPIs.VendasPorMes {
		if baseKPIs.VendasPorMes[i] != otherKPIs.VendasPorMes[i] {
			t.Errorf("Month series differs at %d: %+v vs %+v", i, baseKPIs.VendasPorMes[i], otherKPIs.VendasPorMes[i])
		}
	}
}
