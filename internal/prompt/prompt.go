// Package prompt builds the request sent to the model. The instruction
// template is fixed and compiled into the binary.
package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"text/template"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// diffLimit caps the diff embedded in a prompt. Larger diffs are truncated
// so a huge staged change does not blow up request cost.
const diffLimit = 4000

//go:embed templates/default.yaml
var defaultTemplate []byte

// Message is a composed model request: a fixed instruction plus the user
// content embedding the diff and branch.
type Message struct {
	Instructions string
	Input        string
}

type promptTemplate struct {
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	Instructions string `yaml:"instructions"`
	Input        string `yaml:"input"`
}

type templateData struct {
	Diff   string
	Branch string
}

var loadOnce = sync.OnceValues(loadTemplate)

func loadTemplate() (*promptTemplate, error) {
	var tpl promptTemplate
	if err := yaml.Unmarshal(defaultTemplate, &tpl); err != nil {
		return nil, fmt.Errorf("invalid prompt template: %w", err)
	}
	if tpl.Instructions == "" || tpl.Input == "" {
		return nil, fmt.Errorf("prompt template %q is missing instructions or input", tpl.Name)
	}
	return &tpl, nil
}

// Build renders the message for the given diff and branch.
func Build(diff, branch string) (Message, error) {
	tpl, err := loadOnce()
	if err != nil {
		return Message{}, err
	}

	tmpl, err := template.New("input").Parse(tpl.Input)
	if err != nil {
		return Message{}, fmt.Errorf("failed to parse prompt template: %w", err)
	}

	data := templateData{
		Diff:   Truncate(diff, diffLimit),
		Branch: branch,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("failed to render prompt: %w", err)
	}

	return Message{
		Instructions: strings.TrimSpace(tpl.Instructions),
		Input:        strings.TrimSpace(buf.String()),
	}, nil
}

// Truncate shortens s to at most limit bytes without splitting a UTF-8
// sequence, appending a marker when content was dropped.
func Truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	truncated := s[:limit]
	for len(truncated) > 0 && !utf8.ValidString(truncated) {
		truncated = truncated[:len(truncated)-1]
	}

	return truncated + "\n...(diff is too long, truncated)"
}
