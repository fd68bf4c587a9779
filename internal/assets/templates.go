package assets

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

const historyTemplateName = "translation-history.md.go.tmpl"

//go:embed templates/translation-history.md.go.tmpl
var fallbackHistoryTemplate string

// HistoryTemplate is the data passed to the history markdown template.
type HistoryTemplate struct {
	GeneratedAt time.Time
	Entries     []HistoryEntry
}

type HistoryEntry struct {
	Timestamp          time.Time
	OriginalWord       string
	TargetLanguageCode string
	TargetLanguageName string
	TranslatedWord     string
}

// ParseHistoryTemplate parses the template at templatePath, or the embedded one
// when templatePath is empty, missing or invalid.
func ParseHistoryTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, historyTemplateName, fallbackHistoryTemplate)
}

func WriteHistoryTemplate(output io.Writer, templatePath string, data HistoryTemplate) error {
	tmpl, err := ParseHistoryTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("ParseHistoryTemplate() > %w", err)
	}
	if err := tmpl.Execute(output, data); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

var funcMap = template.FuncMap{
	"join":   strings.Join,
	"escape": escapeTableCell,
}

// escapeTableCell keeps a value inside one markdown table cell.
func escapeTableCell(value string) string {
	value = strings.ReplaceAll(value, "|", `\|`)
	return strings.Join(strings.Fields(value), " ")
}

func parseTemplateWithFallback(templatePath string, fallbackName string, fallbackTemplate string) (*template.Template, error) {
	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			tmpl, err := template.New(filepath.Base(templatePath)).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}
