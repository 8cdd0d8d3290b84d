package narrative

import (
	"context"
	"fmt"
	"strings"

	"vendas_insights/pkg/core/utils"
	"vendas_insights/pkg/models"
)

// Generator is the slice of agent.Manager the composer needs. Keeping
// it narrow lets tests substitute a failing or canned generator.
type Generator interface {
	ExecutePrompt(ctx context.Context, agentType string, rawPrompt string, rawSystemPrompt string, options map[string]interface{}) (string, error)
}

// Summarizer turns a KPI snapshot into a short prose summary.
type Summarizer interface {
	Compose(ctx context.Context, kpis models.KPIData, totalRows int) string
}

// RemoteComposer asks the configured model for strategic insights and
// degrades to the deterministic local sentence when the call fails.
// One attempt, no retry: narrative is enrichment, never a hard
// dependency of the report.
type RemoteComposer struct {
	gen Generator
}

func NewRemoteComposer(gen Generator) *RemoteComposer {
	return &RemoteComposer{gen: gen}
}

const systemPrompt = "Você é um analista de vendas experiente. Responda sempre em português, com linguagem profissional mas acessível."

func (c *RemoteComposer) Compose(ctx context.Context, kpis models.KPIData, totalRows int) string {
	prompt := buildInsightsPrompt(kpis, totalRows)

	reply, err := c.gen.ExecutePrompt(ctx, "narrativa", prompt, systemPrompt, map[string]interface{}{
		"temperature": 0.3,
		"max_tokens":  500,
	})
	if err != nil {
		fmt.Printf("[NARRATIVE] Generation failed, using fallback: %v\n", err)
		return Fallback(kpis, totalRows)
	}

	reply = utils.CleanMarkdown(reply)
	if reply == "" {
		fmt.Println("[NARRATIVE] Empty model reply, using fallback")
		return Fallback(kpis, totalRows)
	}
	if !utils.ValidateMarkdown(reply) {
		fmt.Println("[NARRATIVE] Unrenderable model reply, using fallback")
		return Fallback(kpis, totalRows)
	}
	return reply
}

// LocalComposer always produces the deterministic sentence. Used by the
// local-only processing mode and as the degraded path everywhere else.
type LocalComposer struct{}

func (LocalComposer) Compose(_ context.Context, kpis models.KPIData, totalRows int) string {
	return Fallback(kpis, totalRows)
}

func buildInsightsPrompt(kpis models.KPIData, totalRows int) string {
	return fmt.Sprintf(`Você é um analista de vendas experiente. Analise os seguintes KPIs e forneça insights estratégicos em português:

DADOS ANALISADOS:
- Total de registros: %d
- Total de vendas: R$ %.2f
- Ticket médio: R$ %.2f
- Produto mais vendido: %s
- Cliente mais frequente: %s
- Crescimento no período: %.1f%%
- Número de produtos únicos: %d
- Período analisado: %d meses

INSTRUÇÕES:
1. Forneça insights estratégicos sobre o desempenho das vendas
2. Identifique oportunidades de melhoria
3. Sugira ações práticas baseadas nos dados
4. Seja conciso mas informativo (máximo 200 palavras)
5. Use linguagem profissional mas acessível

Retorne apenas o texto dos insights, sem formatação adicional.`,
		totalRows,
		kpis.TotalVendas,
		kpis.TicketMedio,
		kpis.ProdutoMaisVendido,
		kpis.ClienteMaisFrequente,
		kpis.CrescimentoPercentual,
		len(kpis.VendasPorProduto),
		len(kpis.VendasPorMes))
}

// Fallback builds the deterministic summary sentence from the KPI set.
// It must stay reproducible: tests pin its exact output.
func Fallback(kpis models.KPIData, totalRows int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Análise de %d vendas: Total de R$ %.2f com ticket médio de R$ %.2f. ",
		totalRows, kpis.TotalVendas, kpis.TicketMedio)
	fmt.Fprintf(&sb, "Produto mais vendido: %s. Cliente mais frequente: %s.",
		kpis.ProdutoMaisVendido, kpis.ClienteMaisFrequente)
	if len(kpis.VendasPorMes) > 0 {
		fmt.Fprintf(&sb, " Crescimento no período: %.1f%%.", kpis.CrescimentoPercentual)
	}
	return sb.String()
}
