// Package export writes the translation history to files.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/photolingo/internal/assets"
	"github.com/at-ishikawa/photolingo/internal/config"
	"github.com/at-ishikawa/photolingo/internal/history"
	"github.com/at-ishikawa/photolingo/internal/pdf"
)

const baseName = "translation_history"

type yamlDocument struct {
	ExportedAt   time.Time                   `yaml:"exported_at"`
	Translations []history.TranslationRecord `yaml:"translations"`
}

type Exporter struct {
	outputDirectory string
	templatePath    string
	now             func() time.Time
}

func NewExporter(cfg config.ExportConfig) *Exporter {
	return &Exporter{
		outputDirectory: cfg.OutputDirectory,
		templatePath:    cfg.MarkdownTemplate,
		now:             time.Now,
	}
}

// Export writes records in format under outputDirectory, or the configured
// directory when it is empty, and returns the written file path.
func (e *Exporter) Export(records []history.TranslationRecord, format Format, outputDirectory string) (string, error) {
	if outputDirectory == "" {
		outputDirectory = e.outputDirectory
	}
	if err := os.MkdirAll(outputDirectory, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", outputDirectory, err)
	}

	switch format {
	case FormatYAML:
		return e.writeYAML(records, filepath.Join(outputDirectory, baseName+".yml"))
	case FormatMarkdown:
		return e.writeMarkdown(records, filepath.Join(outputDirectory, baseName+".md"))
	case FormatPDF:
		markdownPath, err := e.writeMarkdown(records, filepath.Join(outputDirectory, baseName+".md"))
		if err != nil {
			return "", err
		}
		pdfPath, err := pdf.ConvertMarkdownToPDF(markdownPath)
		if err != nil {
			return "", fmt.Errorf("pdf.ConvertMarkdownToPDF(%s) > %w", markdownPath, err)
		}
		return pdfPath, nil
	default:
		return "", fmt.Errorf("unknown format: %s", format)
	}
}

func (e *Exporter) writeYAML(records []history.TranslationRecord, path string) (string, error) {
	output, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = output.Close()
	}()

	encoder := yaml.NewEncoder(output)
	encoder.SetIndent(2)
	if err := encoder.Encode(yamlDocument{
		ExportedAt:   e.now().UTC(),
		Translations: records,
	}); err != nil {
		return "", fmt.Errorf("encoder.Encode() > %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("encoder.Close() > %w", err)
	}
	return path, nil
}

func (e *Exporter) writeMarkdown(records []history.TranslationRecord, path string) (string, error) {
	output, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = output.Close()
	}()

	data := assets.HistoryTemplate{
		GeneratedAt: e.now(),
		Entries:     make([]assets.HistoryEntry, 0, len(records)),
	}
	for _, record := range records {
		data.Entries = append(data.Entries, assets.HistoryEntry{
			Timestamp:          record.Timestamp,
			OriginalWord:       record.OriginalWord,
			TargetLanguageCode: record.TargetLanguageCode,
			TargetLanguageName: record.TargetLanguageName,
			TranslatedWord:     record.TranslatedWord,
		})
	}
	if err := assets.WriteHistoryTemplate(output, e.templatePath, data); err != nil {
		return "", fmt.Errorf("assets.WriteHistoryTemplate(%s) > %w", path, err)
	}
	return path, nil
}
