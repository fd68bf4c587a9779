package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/at-ishikawa/photolingo/internal/classifier"
	"github.com/at-ishikawa/photolingo/internal/history"
	"github.com/at-ishikawa/photolingo/internal/language"
	"github.com/at-ishikawa/photolingo/internal/pipeline"
)

var errEnd = errors.New("end")

const historyLimit = 10

const helpText = `Commands:
  open <image>          classify an image file
  translate <n> [lang]  translate prediction n (default 1)
  lang <code>           set the target language
  languages             list supported languages
  history               show recent translations
  clear                 forget the current image
  help                  show this help
  quit                  exit
`

type HistoryLister interface {
	ListAll(ctx context.Context) ([]history.TranslationRecord, error)
}

// InteractiveCLI is a line-based front end for a pipeline.Session.
type InteractiveCLI struct {
	session        *pipeline.Session
	history        HistoryLister
	targetLanguage string

	stdinReader *bufio.Reader
	printer     *Printer
}

func NewInteractiveCLI(session *pipeline.Session, lister HistoryLister, targetLanguage string) *InteractiveCLI {
	return newInteractiveCLI(session, lister, targetLanguage, os.Stdin, os.Stdout)
}

func newInteractiveCLI(session *pipeline.Session, lister HistoryLister, targetLanguage string, input io.Reader, output io.Writer) *InteractiveCLI {
	return &InteractiveCLI{
		session:        session,
		history:        lister,
		targetLanguage: targetLanguage,
		stdinReader:    bufio.NewReader(input),
		printer:        NewPrinter(output),
	}
}

// Run reads commands until quit, end of input, or an interrupt.
func (cli *InteractiveCLI) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	fmt.Fprint(cli.printer.output, helpText)

	errCh := cli.loop(ctx)
	select {
	case <-ctx.Done():
		fmt.Fprintln(cli.printer.output, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// loop runs Step until it fails or ctx is done. The channel holds at most the one
// error and is closed when the loop stops, so the loop never waits on a reader.
func (cli *InteractiveCLI) loop(ctx context.Context) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := cli.Step(ctx); err != nil {
				if !errors.Is(err, errEnd) {
					errCh <- err
				}
				return
			}
		}
	}()
	return errCh
}

// Step reads and executes one command. Command failures are printed, not returned.
func (cli *InteractiveCLI) Step(ctx context.Context) error {
	fmt.Fprintf(cli.printer.output, "[%s]> ", cli.targetLanguage)
	line, err := cli.stdinReader.ReadString('\n')
	if errors.Is(err, io.EOF) && strings.TrimSpace(line) == "" {
		return errEnd
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("stdinReader.ReadString() > %w", err)
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	command, args := strings.ToLower(fields[0]), fields[1:]

	switch command {
	case "quit", "exit", "q":
		return errEnd
	case "help", "?":
		fmt.Fprint(cli.printer.output, helpText)
	case "open", "o":
		cli.open(ctx, strings.Join(args, " "))
	case "translate", "t":
		cli.translate(ctx, args)
	case "lang":
		cli.setLanguage(args)
	case "languages":
		cli.printer.Languages(language.All())
	case "history", "h":
		cli.showHistory(ctx)
	case "clear":
		cli.session.Clear()
		fmt.Fprintln(cli.printer.output, "Cleared.")
	default:
		fmt.Fprintf(cli.printer.output, "Unknown command %q. Type help for the list of commands.\n", command)
	}
	return nil
}

func (cli *InteractiveCLI) open(ctx context.Context, path string) {
	if path == "" {
		fmt.Fprintln(cli.printer.output, "Usage: open <image>")
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		cli.printer.Error(fmt.Errorf("os.ReadFile(%s) > %w", path, err))
		return
	}

	fmt.Fprintln(cli.printer.output, "Analyzing image...")
	predictions, err := cli.session.Submit(ctx, data)
	switch {
	case errors.Is(err, pipeline.ErrStale):
		return
	case errors.Is(err, classifier.ErrInvalidImage):
		fmt.Fprintln(cli.printer.output, "Please select a valid image file")
		return
	case err != nil:
		cli.printer.Error(err)
		return
	}
	cli.printer.Predictions(predictions)
}

func (cli *InteractiveCLI) translate(ctx context.Context, args []string) {
	index := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			fmt.Fprintf(cli.printer.output, "Invalid prediction number: %s\n", args[0])
			return
		}
		index = n
	}
	target := cli.targetLanguage
	if len(args) > 1 {
		code, ok := language.Lookup(args[1])
		if !ok || !language.Supported(code) {
			fmt.Fprintf(cli.printer.output, "Unsupported language: %s\n", args[1])
			return
		}
		target = code
	}

	state := cli.session.Snapshot()
	if index > len(state.Predictions) {
		fmt.Fprintln(cli.printer.output, "Open an image first, or pick one of the listed predictions.")
		return
	}
	label := state.Predictions[index-1].Label

	result, err := cli.session.Translate(ctx, index-1, target)
	if errors.Is(err, pipeline.ErrStale) {
		return
	}
	cli.printer.Translation(label, target, result)
	if err != nil {
		cli.printer.Error(err)
	}
}

func (cli *InteractiveCLI) setLanguage(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(cli.printer.output, "Usage: lang <code>")
		return
	}
	code, _ := language.Lookup(args[0])
	name, ok := language.Name(code)
	if !ok {
		fmt.Fprintf(cli.printer.output, "Unsupported language: %s\n", args[0])
		return
	}
	cli.targetLanguage = code
	fmt.Fprintf(cli.printer.output, "Target language: %s\n", name)
}

func (cli *InteractiveCLI) showHistory(ctx context.Context) {
	records, err := cli.history.ListAll(ctx)
	if err != nil {
		cli.printer.Error(err)
		return
	}
	if len(records) > historyLimit {
		records = records[:historyLimit]
	}
	cli.printer.History(records)
}
