// Package history keeps every successful translation in a key-value store.
package history

import (
	"fmt"
	"strings"
	"time"
)

// KeyPrefix marks the keys that hold translation records.
const KeyPrefix = "translation_"

// ISO 8601 in UTC with milliseconds, e.g. 2025-01-02T03:04:05.678Z
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// TranslationRecord is one translated prediction.
// The timestamp lives in the storage key, not in the stored value.
type TranslationRecord struct {
	Timestamp          time.Time `json:"-" yaml:"timestamp"`
	OriginalWord       string    `json:"originalWord" yaml:"original_word"`
	TargetLanguageCode string    `json:"targetLanguageCode" yaml:"target_language_code"`
	TargetLanguageName string    `json:"targetLanguageName" yaml:"target_language_name"`
	TranslatedWord     string    `json:"translatedWord" yaml:"translated_word"`
}

// Key returns the storage key for a record taken at timestamp.
func Key(timestamp time.Time) string {
	return KeyPrefix + timestamp.UTC().Format(timestampLayout)
}

// ParseKey extracts the timestamp from a key produced by Key.
func ParseKey(key string) (time.Time, error) {
	value, ok := strings.CutPrefix(key, KeyPrefix)
	if !ok {
		return time.Time{}, fmt.Errorf("key %q does not start with %s", key, KeyPrefix)
	}
	timestamp, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("time.Parse(%s) > %w", value, err)
	}
	return timestamp, nil
}
