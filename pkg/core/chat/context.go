package chat

import (
	"encoding/json"
	"fmt"

	"vendas_insights/pkg/models"
)

// historyLimit bounds how many past turns go into the prompt.
const historyLimit = 10

// BuildDashboardContext renders the dashboard payload the user is
// looking at into prompt text, one template per chart type.
func BuildDashboardContext(dashboardType string, dashboardData json.RawMessage) string {
	data := string(dashboardData)

	switch dashboardType {
	case "vendas-por-mes":
		return fmt.Sprintf("Dashboard: Vendas por Mês\nDados: %s\nAnálise: Este gráfico mostra a evolução das vendas ao longo do tempo.", data)
	case "vendas-por-produto":
		return fmt.Sprintf("Dashboard: Vendas por Produto\nDados: %s\nAnálise: Este gráfico mostra a performance de cada produto em termos de quantidade e valor.", data)
	case "kpis-gerais":
		return fmt.Sprintf("Dashboard: KPIs Gerais\nDados: %s\nAnálise: Este dashboard apresenta os principais indicadores de performance das vendas.", data)
	case "crescimento":
		return fmt.Sprintf("Dashboard: Crescimento\nDados: %s\nAnálise: Este indicador mostra a variação percentual no período analisado.", data)
	default:
		return fmt.Sprintf("Dashboard: %s\nDados: %s", dashboardType, data)
	}
}

// systemPrompt frames the assistant for a given dashboard context.
func systemPrompt(dashboardContext string) string {
	return fmt.Sprintf(`Você é um assistente de análise de vendas. O usuário está olhando para o seguinte dashboard:

%s

Responda perguntas sobre esses dados em português, de forma direta e objetiva. Quando a resposta não estiver nos dados, diga isso claramente.`, dashboardContext)
}

// transcript flattens the bounded chat history into prompt text for
// providers without native multi-turn support.
func transcript(history []models.ChatMessage, userMessage string) string {
	history = boundHistory(history)

	out := ""
	for _, msg := range history {
		role := "Usuário"
		if msg.Role == "assistant" {
			role = "Assistente"
		}
		out += fmt.Sprintf("%s: %s\n", role, msg.Content)
	}
	out += fmt.Sprintf("Usuário: %s", userMessage)
	return out
}

func boundHistory(history []models.ChatMessage) []models.ChatMessage {
	if len(history) > historyLimit {
		return history[len(history)-historyLimit:]
	}
	return history
}
