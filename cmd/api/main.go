package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	apichat "vendas_insights/pkg/api/chat"
	"vendas_insights/pkg/api/config"
	"vendas_insights/pkg/api/report"
	"vendas_insights/pkg/api/validate"
	"vendas_insights/pkg/core/agent"
	corechat "vendas_insights/pkg/core/chat"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize manager from config
	agentCfg := agent.Config{ActiveProvider: "openrouter"}
	configData, err := os.ReadFile("config/models.yaml")
	if err != nil {
		fmt.Printf("[WARNING] Failed to read config/models.yaml: %v\n", err)
		fmt.Println("  Falling back to default provider (openrouter)")
	} else if err := yaml.Unmarshal(configData, &agentCfg); err != nil {
		fmt.Printf("[WARNING] Failed to parse config/models.yaml: %v\n", err)
	}
	agentMgr := agent.NewManager(agentCfg)

	// Config endpoints
	configHandler := config.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	// CSV processing endpoints
	reportHandler := report.NewHandler(agentMgr)
	http.HandleFunc("/api/processar-csv", reportHandler.HandleProcess)
	http.HandleFunc("/api/processar-csv-otimizado", reportHandler.HandleProcessOptimized)
	http.HandleFunc("/api/processar-csv-hibrido", reportHandler.HandleProcessHybrid)

	// Column validation endpoint
	http.HandleFunc("/api/validar-colunas", validate.HandleValidateColumns)

	// Dashboard chat endpoint. CHAT_PROVIDER=gemini selects the direct
	// Gemini client with native multi-turn history; anything else goes
	// through the agent manager.
	chatHandler := apichat.NewHandler(agentMgr)
	if os.Getenv("CHAT_PROVIDER") == "gemini" {
		if geminiAgent, err := corechat.NewGeminiAgent(context.Background()); err != nil {
			fmt.Printf("[WARNING] Gemini chat agent unavailable, using configured provider: %v\n", err)
		} else {
			chatHandler.SetAgent(geminiAgent)
		}
	}
	http.HandleFunc("/api/chat-dashboard", chatHandler.HandleChat)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("API server starting on :%s...\n", port)
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")
	fmt.Println("  - POST /api/processar-csv            (legacy: full model analysis)")
	fmt.Println("  - POST /api/processar-csv-otimizado  (local only)")
	fmt.Println("  - POST /api/processar-csv-hibrido    (local ETL + model narrative)")
	fmt.Println("  - POST /api/validar-colunas")
	fmt.Println("  - POST /api/chat-dashboard")

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
