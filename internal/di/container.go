// Package di assembles the application: adapters behind ports, use
// cases on top, all driven by environment configuration.
package di

import (
	"fmt"

	"design-eval/internal/application/port/input"
	"design-eval/internal/application/port/output"
	"design-eval/internal/infrastructure/appscript"
	"design-eval/internal/infrastructure/browser/rod"
	"design-eval/internal/infrastructure/llm/ollamallm"
	"design-eval/internal/infrastructure/llm/openaiapi"
	"design-eval/internal/infrastructure/logger"
	"design-eval/internal/infrastructure/report/pdf"
	"design-eval/internal/usecase/evaluator"
)

type Config struct {
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	OllamaHost    string
	OllamaModel   string
	AppsScriptURL string
	SpreadsheetID string
	Headless      bool
	LogLevel      string
}

type Container struct {
	Logger    output.LoggerPort
	Capture   output.CapturePort
	Storage   output.StoragePort
	Sheets    output.SheetLogPort
	Report    output.ReportPort
	Evaluator input.DesignEvaluator
}

func NewContainer(cfg Config) (*Container, error) {
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init failed: %w", err)
	}

	var strategies []evaluator.Strategy

	if cfg.OpenAIAPIKey != "" {
		openaiCfg := openaiapi.DefaultConfig(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if cfg.OpenAIBaseURL != "" {
			openaiCfg.BaseURL = cfg.OpenAIBaseURL
		}
		strategies = append(strategies, evaluator.NewLLMStrategy(openaiapi.NewAdapter(openaiCfg), log))
	} else {
		log.Warn("OPENAI_API_KEY not set, remote model evaluation disabled")
	}

	if cfg.OllamaHost != "" {
		ollama, ollamaErr := ollamallm.NewAdapter(cfg.OllamaHost, cfg.OllamaModel)
		if ollamaErr != nil {
			log.Warn("ollama adapter init failed, local model evaluation disabled", "error", ollamaErr)
		} else {
			strategies = append(strategies, evaluator.NewLLMStrategy(ollama, log))
		}
	}

	strategies = append(strategies, evaluator.NewHeuristicStrategy(log))

	captureCfg := rod.DefaultConfig()
	captureCfg.Headless = cfg.Headless

	c := &Container{
		Logger:    log,
		Capture:   rod.NewCaptureAdapter(captureCfg, log),
		Report:    pdf.NewRenderer(),
		Evaluator: evaluator.NewOrchestrator(log, strategies...),
	}

	script, scriptErr := appscript.New(appscript.Config{
		ScriptURL:     cfg.AppsScriptURL,
		SpreadsheetID: cfg.SpreadsheetID,
	}, log)
	if scriptErr != nil {
		log.Warn("apps script client disabled", "error", scriptErr)
	} else {
		c.Storage = script
		c.Sheets = script
	}

	return c, nil
}

func (c *Container) Close() error {
	return c.Logger.Close()
}
