package etl

// Aggregate accumulates grouped counts and sums over one request's row
// stream. Each report request builds its own Aggregate; nothing is
// shared across requests.
type Aggregate struct {
	TotalSales  float64
	AmountCount int

	ProductCounts  map[string]int
	ProductAmounts map[string]float64
	CustomerCounts map[string]int
	MonthAmounts   map[string]float64

	// First-encounter order, used downstream for stable tie-breaking
	// and for the vendas-por-produto listing.
	ProductOrder  []string
	CustomerOrder []string
}

func NewAggregate() *Aggregate {
	return &Aggregate{
		ProductCounts:  make(map[string]int),
		ProductAmounts: make(map[string]float64),
		CustomerCounts: make(map[string]int),
		MonthAmounts:   make(map[string]float64),
	}
}

// Add folds one coerced row into the accumulator. Sums and counts are
// commutative, so input order only affects first-encounter ordering.
func (a *Aggregate) Add(row CoercedRow) {
	if row.HasAmount {
		a.TotalSales += row.Amount
		a.AmountCount++
	}

	if row.Product != "" {
		if _, seen := a.ProductCounts[row.Product]; !seen {
			a.ProductOrder = append(a.ProductOrder, row.Product)
		}
		a.ProductCounts[row.Product]++
		if row.HasAmount {
			a.ProductAmounts[row.Product] += row.Amount
		}
	}

	if row.Customer != "" {
		if _, seen := a.CustomerCounts[row.Customer]; !seen {
			a.CustomerOrder = append(a.CustomerOrder, row.Customer)
		}
		a.CustomerCounts[row.Customer]++
	}

	// Month buckets need both a date and a parseable amount.
	if row.Date != "" && row.HasAmount {
		a.MonthAmounts[monthKey(row.Date)] += row.Amount
	}
}

// monthKey truncates a date string to its YYYY-MM prefix.
func monthKey(date string) string {
	if len(date) > 7 {
		return date[:7]
	}
	return date
}
