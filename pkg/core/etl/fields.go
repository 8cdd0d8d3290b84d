package etl

import (
	"fmt"
	"sort"
	"strings"

	"vendas_insights/pkg/models"
)

// Field is one of the four semantic roles every row is mapped into,
// regardless of how the uploaded CSV named its columns.
type Field string

const (
	FieldAmount   Field = "valor"
	FieldDate     Field = "data"
	FieldProduct  Field = "produto"
	FieldCustomer Field = "cliente"
)

// RequiredFields lists the canonical fields in validation order.
var RequiredFields = []Field{FieldAmount, FieldDate, FieldProduct, FieldCustomer}

// fieldAliases maps each canonical field to its accepted alternative
// column-name fragments, in priority order. Matching is symmetric
// substring containment, so prefixed/suffixed variants such as
// "valor_total" or "vlr" resolve too.
var fieldAliases = map[Field][]string{
	FieldAmount:   {"preco", "price", "total", "amount", "vlr"},
	FieldDate:     {"date", "data_venda", "created_at", "timestamp"},
	FieldProduct:  {"product", "item", "produto_nome", "nome_produto"},
	FieldCustomer: {"customer", "client", "cliente_nome", "nome_cliente", "comprador"},
}

// matchesField reports whether a raw column name refers to the given
// canonical field. Comparison is case-insensitive and trimmed; the raw
// key may contain the canonical name or alias, or be contained by it.
func matchesField(field Field, rawKey string) bool {
	key := strings.ToLower(strings.TrimSpace(rawKey))
	if key == "" {
		return false
	}
	candidates := append([]string{string(field)}, fieldAliases[field]...)
	for _, name := range candidates {
		if strings.Contains(key, name) || strings.Contains(name, key) {
			return true
		}
	}
	return false
}

// Resolver maps raw row keys to canonical fields using the original
// header order, so tie-breaking between matching columns is stable
// across runs.
type Resolver struct {
	order []string
}

func NewResolver(columns []string) *Resolver {
	return &Resolver{order: columns}
}

// Resolve returns the raw key of row that corresponds to field, or
// ok=false when no column matches. The header order is consulted
// first; keys a row carries beyond the header are checked afterwards
// in sorted order.
func (r *Resolver) Resolve(field Field, row models.RawRow) (string, bool) {
	seen := make(map[string]bool, len(r.order))
	for _, key := range r.order {
		seen[key] = true
		if _, present := row[key]; !present {
			continue
		}
		if matchesField(field, key) {
			return key, true
		}
	}

	var extras []string
	for key := range row {
		if !seen[key] {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	for _, key := range extras {
		if matchesField(field, key) {
			return key, true
		}
	}
	return "", false
}

// ValidateColumns checks whether the uploaded header carries every
// required semantic field under some accepted spelling. The report
// pipeline must not run when the result is invalid.
func ValidateColumns(columns []string) models.ValidationResult {
	missing := []string{}
	for _, field := range RequiredFields {
		found := false
		for _, col := range columns {
			if matchesField(field, col) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, string(field))
		}
	}

	result := models.ValidationResult{
		IsValid:          len(missing) == 0,
		MissingColumns:   missing,
		AvailableColumns: columns,
	}
	if result.IsValid {
		result.Message = "CSV válido! Colunas suficientes encontradas para gerar insights."
	} else {
		result.Message = fmt.Sprintf(
			"Colunas insuficientes para gerar insights. Faltam: %s. "+
				"Certifique-se de que seu CSV contém colunas com nomes similares a: valor, data, produto, cliente.",
			strings.Join(missing, ", "))
	}
	return result
}
