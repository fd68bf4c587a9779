package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/at-ishikawa/photolingo/internal/language"
)

var _ pflag.Value = (*languageFlag)(nil)

// languageFlag is a language code checked against the supported languages.
type languageFlag struct {
	code      string
	allowAuto bool
}

func newLanguageFlag(defaultCode string, allowAuto bool) *languageFlag {
	return &languageFlag{code: defaultCode, allowAuto: allowAuto}
}

func (f *languageFlag) String() string {
	return f.code
}

func (f *languageFlag) Set(value string) error {
	code, ok := language.Lookup(value)
	supported := ok && language.Supported(code)
	if ok && f.allowAuto {
		supported = language.SupportedSource(code)
	}
	if !supported {
		return fmt.Errorf("unsupported language code %q, see the languages command", value)
	}
	f.code = code
	return nil
}

func (f *languageFlag) Type() string {
	return "language"
}
