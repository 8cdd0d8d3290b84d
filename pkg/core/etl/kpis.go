package etl

import (
	"sort"

	"vendas_insights/pkg/models"
)

// Synthesize derives the final KPI snapshot from an accumulated
// aggregate. The aggregate is fully consumed here; callers discard it
// afterwards.
func Synthesize(a *Aggregate) models.KPIData {
	kpis := models.KPIData{
		TotalVendas:          a.TotalSales,
		ProdutoMaisVendido:   topByCount(a.ProductOrder, a.ProductCounts),
		ClienteMaisFrequente: topByCount(a.CustomerOrder, a.CustomerCounts),
		VendasPorMes:         []models.MonthlySales{},
		VendasPorProduto:     []models.ProductSales{},
	}

	if a.AmountCount > 0 {
		kpis.TicketMedio = a.TotalSales / float64(a.AmountCount)
	}

	for _, produto := range a.ProductOrder {
		kpis.VendasPorProduto = append(kpis.VendasPorProduto, models.ProductSales{
			Produto:    produto,
			Quantidade: a.ProductCounts[produto],
			Valor:      a.ProductAmounts[produto],
		})
	}

	meses := make([]string, 0, len(a.MonthAmounts))
	for mes := range a.MonthAmounts {
		meses = append(meses, mes)
	}
	// YYYY-MM keys: lexicographic order is chronological order.
	sort.Strings(meses)
	for _, mes := range meses {
		kpis.VendasPorMes = append(kpis.VendasPorMes, models.MonthlySales{
			Mes:   mes,
			Valor: a.MonthAmounts[mes],
		})
	}

	kpis.CrescimentoPercentual = growthPercent(kpis.VendasPorMes)
	return kpis
}

// topByCount picks the entry with the highest occurrence count.
// Ties keep the first-encountered entry; an empty population yields "".
func topByCount(order []string, counts map[string]int) string {
	top := ""
	best := 0
	for _, key := range order {
		if counts[key] > best {
			top = key
			best = counts[key]
		}
	}
	return top
}

// growthPercent compares the first and last month of the sorted series.
// It is 0 with fewer than two months or a non-positive opening month,
// which also guards the division.
func growthPercent(meses []models.MonthlySales) float64 {
	if len(meses) < 2 {
		return 0
	}
	first := meses[0].Valor
	last := meses[len(meses)-1].Valor
	if first <= 0 {
		return 0
	}
	return (last - first) / first * 100
}
