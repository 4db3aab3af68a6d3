package prompts

import (
	"strings"
	"testing"
)

func TestGenerateEvaluationPrompt_InsertsURL(t *testing.T) {
	out, err := GenerateEvaluationPrompt(EvaluationPromptTemplate, "https://example.com")
	if err != nil {
		t.Fatalf("GenerateEvaluationPrompt failed: %v", err)
	}

	if !strings.Contains(out, "https://example.com") {
		t.Error("prompt must contain the page URL")
	}
	if !strings.Contains(out, "Typography") || !strings.Contains(out, "Usability") {
		t.Error("prompt must name the scoring categories")
	}
	if !strings.Contains(out, "recommendations") {
		t.Error("prompt must demand recommendations")
	}
}

func TestGenerateEvaluationPrompt_BadTemplate(t *testing.T) {
	if _, err := GenerateEvaluationPrompt("{{.Broken", "https://example.com"); err == nil {
		t.Error("expected parse error for a malformed template")
	}
}

func TestEmbeddedPromptsNotEmpty(t *testing.T) {
	if strings.TrimSpace(SystemPrompt) == "" {
		t.Error("system prompt must not be empty")
	}
	if strings.TrimSpace(EvaluationPromptTemplate) == "" {
		t.Error("evaluation prompt template must not be empty")
	}
}
