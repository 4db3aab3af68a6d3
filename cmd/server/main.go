package main

import (
	"log"
	"net/http"
	"time"

	"design-eval/internal/adapter/httpapi"
	"design-eval/internal/di"
	"design-eval/internal/infrastructure/env"
)

func main() {
	envs := env.NewEnvService()

	container, err := di.NewContainer(di.Config{
		OpenAIAPIKey:  envs.Get("OPENAI_API_KEY"),
		OpenAIModel:   envs.GetWithDefault("OPENAI_MODEL", "gpt-4o"),
		OpenAIBaseURL: envs.Get("OPENAI_BASE_URL"),
		OllamaHost:    envs.Get("OLLAMA_HOST"),
		OllamaModel:   envs.GetWithDefault("OLLAMA_MODEL", "llama3"),
		AppsScriptURL: envs.Get("GOOGLE_APPS_SCRIPT_URL"),
		SpreadsheetID: envs.Get("GOOGLE_SHEETS_ID"),
		Headless:      envs.GetBool("BROWSER_HEADLESS", true),
		LogLevel:      envs.GetWithDefault("LOG_LEVEL", "info"),
	})
	if err != nil {
		log.Fatalf("failed to build container: %v", err)
	}
	defer container.Close()

	server := httpapi.NewServer(
		container.Capture,
		container.Evaluator,
		container.Storage,
		container.Sheets,
		container.Report,
		container.Logger,
	)

	addr := envs.GetWithDefault("LISTEN_ADDR", ":8000")
	container.Logger.Info("starting design evaluation service", "addr", addr)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := httpServer.ListenAndServe(); err != nil {
		container.Logger.Error("server stopped", "error", err)
	}
}
