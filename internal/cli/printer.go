package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/at-ishikawa/photolingo/internal/classifier"
	"github.com/at-ishikawa/photolingo/internal/history"
	"github.com/at-ishikawa/photolingo/internal/language"
	"github.com/at-ishikawa/photolingo/internal/translator"
)

// Printer formats results for a terminal.
type Printer struct {
	output io.Writer
	bold   *color.Color
	italic *color.Color
	red    *color.Color
}

func NewPrinter(output io.Writer) *Printer {
	return &Printer{
		output: output,
		bold:   color.New(color.Bold),
		italic: color.New(color.Italic),
		red:    color.New(color.FgRed),
	}
}

func (p *Printer) Predictions(predictions []classifier.Prediction) {
	if len(predictions) == 0 {
		fmt.Fprintln(p.output, "No predictions.")
		return
	}
	for i, prediction := range predictions {
		fmt.Fprintf(p.output, "%d. %s %.1f%%\n", i+1, p.bold.Sprint(prediction.Label), prediction.Confidence*100)
	}
}

func (p *Printer) Translation(text string, targetCode string, result translator.Result) {
	targetName, ok := language.Name(targetCode)
	if !ok {
		targetName = targetCode
	}
	if value, ok := result.Value(); ok {
		fmt.Fprintf(p.output, "%s -> %s (%s)\n", text, p.bold.Sprint(value), targetName)
		return
	}
	fmt.Fprintf(p.output, "%s: %s\n", p.red.Sprint("Translation unavailable"), result.Failure)
}

func (p *Printer) History(records []history.TranslationRecord) {
	if len(records) == 0 {
		fmt.Fprintln(p.output, "No translations yet.")
		return
	}
	for _, record := range records {
		fmt.Fprintf(p.output, "%s  %s -> %s %s\n",
			record.Timestamp.Local().Format("2006-01-02 15:04:05"),
			record.OriginalWord,
			p.bold.Sprint(record.TranslatedWord),
			p.italic.Sprintf("(%s)", record.TargetLanguageName),
		)
	}
}

func (p *Printer) Languages(languages []language.Language) {
	for _, l := range languages {
		fmt.Fprintf(p.output, "%-8s %s\n", l.Code, l.Name)
	}
}

func (p *Printer) Error(err error) {
	fmt.Fprintf(p.output, "%s %v\n", p.red.Sprint("Error:"), err)
}
