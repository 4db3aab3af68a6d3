// Package prompts holds the model prompt texts as embedded templates so
// wording changes never require touching evaluation code.
package prompts

import (
	"bytes"
	"text/template"
)

type EvaluationPromptData struct {
	URL string
}

func GenerateEvaluationPrompt(baseTemplate string, pageURL string) (string, error) {
	tmpl, err := template.New("evaluation").Parse(baseTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, EvaluationPromptData{URL: pageURL}); err != nil {
		return "", err
	}

	return buf.String(), nil
}
