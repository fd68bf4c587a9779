package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// History records translations and lists them back.
type History struct {
	storage Storage
	now     func() time.Time
}

type Option func(*History)

// WithClock replaces the clock used for records without a timestamp.
func WithClock(now func() time.Time) Option {
	return func(h *History) {
		h.now = now
	}
}

func New(storage Storage, opts ...Option) *History {
	h := &History{
		storage: storage,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Record stores record under a key derived from its timestamp.
// Records sharing a millisecond overwrite each other.
func (h *History) Record(ctx context.Context, record TranslationRecord) error {
	if err := record.validate(); err != nil {
		return err
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = h.now()
	}

	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("json.Marshal() > %w", err)
	}
	key := Key(record.Timestamp)
	if err := h.storage.Set(ctx, key, value); err != nil {
		return fmt.Errorf("storage.Set(%s) > %w", key, err)
	}
	return nil
}

// ListAll returns every readable record, newest first.
// Entries that cannot be read or decoded are logged and skipped.
func (h *History) ListAll(ctx context.Context) ([]TranslationRecord, error) {
	keys, err := h.storage.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage.Keys() > %w", err)
	}

	records := make([]TranslationRecord, 0, len(keys))
	for _, key := range keys {
		if !strings.HasPrefix(key, KeyPrefix) {
			continue
		}
		record, err := h.read(ctx, key)
		if err != nil {
			slog.Default().Warn("skip history entry", "key", key, "error", err)
			continue
		}
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	return records, nil
}

func (h *History) read(ctx context.Context, key string) (TranslationRecord, error) {
	timestamp, err := ParseKey(key)
	if err != nil {
		return TranslationRecord{}, err
	}
	value, err := h.storage.Get(ctx, key)
	if err != nil {
		return TranslationRecord{}, fmt.Errorf("storage.Get() > %w", err)
	}

	var record TranslationRecord
	if err := json.Unmarshal(value, &record); err != nil {
		return TranslationRecord{}, fmt.Errorf("json.Unmarshal() > %w", err)
	}
	record.Timestamp = timestamp
	return record, nil
}

func (r TranslationRecord) validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{name: "originalWord", value: r.OriginalWord},
		{name: "targetLanguageCode", value: r.TargetLanguageCode},
		{name: "targetLanguageName", value: r.TargetLanguageName},
		{name: "translatedWord", value: r.TranslatedWord},
	}
	for _, field := range fields {
		if !utf8.ValidString(field.value) {
			return fmt.Errorf("%w: %s %q", ErrInvalidText, field.name, field.value)
		}
	}
	return nil
}
