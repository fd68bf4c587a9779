package history

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const fileExtension = ".json"

// Keys carry ISO 8601 timestamps, and Windows rejects ':' in file names.
var (
	fileNameEncoder = strings.NewReplacer(":", "%3A")
	fileNameDecoder = strings.NewReplacer("%3A", ":")
)

// FileStorage keeps each key in its own JSON file under a directory.
// File names escape ':' as %3A, and files named with a raw ':' are still read.
type FileStorage struct {
	rootDir string
}

func NewFileStorage(directory string) *FileStorage {
	return &FileStorage{
		rootDir: directory,
	}
}

func (s *FileStorage) filePath(key string) string {
	return filepath.Join(s.rootDir, fileNameEncoder.Replace(key)+fileExtension)
}

func (s *FileStorage) legacyFilePath(key string) string {
	return filepath.Join(s.rootDir, key+fileExtension)
}

func (s *FileStorage) Keys(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.rootDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadDir(%s) > %w", s.rootDir, err)
	}

	keys := make([]string, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, ok := strings.CutSuffix(entry.Name(), fileExtension)
		if !ok {
			continue
		}
		key := fileNameDecoder.Replace(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	return keys, nil
}

func (s *FileStorage) Get(ctx context.Context, key string) ([]byte, error) {
	contents, err := os.ReadFile(s.filePath(key))
	if errors.Is(err, fs.ErrNotExist) && strings.Contains(key, ":") {
		contents, err = os.ReadFile(s.legacyFilePath(key))
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile > %w", err)
	}
	return contents, nil
}

// Set writes value to a temporary file and renames it, so readers never see a partial value.
func (s *FileStorage) Set(ctx context.Context, key string, value []byte) error {
	if err := os.MkdirAll(s.rootDir, 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", s.rootDir, err)
	}

	file, err := os.CreateTemp(s.rootDir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("os.CreateTemp > %w", err)
	}
	tmpPath := file.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := file.Write(value); err != nil {
		_ = file.Close()
		return fmt.Errorf("file.Write > %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("file.Close > %w", err)
	}
	if err := os.Rename(tmpPath, s.filePath(key)); err != nil {
		return fmt.Errorf("os.Rename > %w", err)
	}
	return nil
}
