package session

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/zhubert/hopper/internal/logger"
)

// Namer derives a session name from a project's base name and its workspace name.
type Namer interface {
	Name(project, workspace string) string
}

// NamerFunc adapts a function to the Namer interface.
type NamerFunc func(project, workspace string) string

func (f NamerFunc) Name(project, workspace string) string {
	return f(project, workspace)
}

// UpperNamer upper-cases the project name.
type UpperNamer struct{}

func (UpperNamer) Name(project, _ string) string {
	return strings.ToUpper(project)
}

// NameData is the data passed to a session name template.
type NameData struct {
	Project   string
	Workspace string
}

var templateFuncs = template.FuncMap{
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
	"trim":  strings.TrimSpace,
	// replace takes the piped value last: {{ .Project | replace "." "-" }}
	"replace": func(old, new, s string) string {
		return strings.ReplaceAll(s, old, new)
	},
}

// TemplateNamer renders session names from a text/template.
type TemplateNamer struct {
	text string
	tmpl *template.Template
}

// ParseTemplateNamer parses text and renders it once against sample data so
// that templates referencing unknown fields fail here, not at attach time.
func ParseTemplateNamer(text string) (*TemplateNamer, error) {
	tmpl, err := template.New("session_name").Funcs(templateFuncs).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse session name template: %w", err)
	}
	n := &TemplateNamer{text: text, tmpl: tmpl}
	if _, err := n.render(NameData{Project: "project", Workspace: "workspace"}); err != nil {
		return nil, fmt.Errorf("render session name template: %w", err)
	}
	return n, nil
}

// Name renders the template. If rendering fails the project name is upper-cased instead.
func (n *TemplateNamer) Name(project, workspace string) string {
	name, err := n.render(NameData{Project: project, Workspace: workspace})
	if err != nil {
		logger.ComponentLogger("session").Warn("session name template failed, using default",
			"template", n.text, "error", err)
		return UpperNamer{}.Name(project, workspace)
	}
	return name
}

func (n *TemplateNamer) String() string {
	return n.text
}

func (n *TemplateNamer) render(data NameData) (string, error) {
	var buf bytes.Buffer
	if err := n.tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
