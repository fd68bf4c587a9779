package export

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

var _ pflag.Value = (*Format)(nil)

// Format is an output format for the translation history.
type Format string

const (
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
)

var formats = []Format{FormatYAML, FormatMarkdown, FormatPDF}

func ParseFormat(value string) (Format, error) {
	for _, format := range formats {
		if strings.EqualFold(value, string(format)) {
			return format, nil
		}
	}
	return "", fmt.Errorf("unknown format %q, expected one of %s", value, formatNames())
}

func formatNames() string {
	names := make([]string, 0, len(formats))
	for _, format := range formats {
		names = append(names, string(format))
	}
	return strings.Join(names, "|")
}

// String, Set and Type make *Format usable as a command-line flag.
func (f *Format) String() string {
	return string(*f)
}

func (f *Format) Set(value string) error {
	format, err := ParseFormat(value)
	if err != nil {
		return err
	}
	*f = format
	return nil
}

func (f *Format) Type() string {
	return formatNames()
}
