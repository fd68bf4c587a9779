// Package testutil provides shared test helpers for config files and fixtures.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/photolingo/internal/history"
)

// SetupTestConfig creates a config file and the directories it points to.
// translatorURL is usually an httptest server URL. Returns the path to the config file.
func SetupTestConfig(t *testing.T, tmpDir string, translatorURL string) string {
	t.Helper()

	dirs := []string{"models", "history", "outputs"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`classifier:
  model_directory: %s
  backends:
    - cpu
translator:
  base_url: %s
  timeout: 2s
history:
  driver: file
  directory: %s
export:
  output_directory: %s
`,
		filepath.Join(tmpDir, "models"),
		translatorURL,
		filepath.Join(tmpDir, "history"),
		filepath.Join(tmpDir, "outputs"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// WriteHistoryEntry stores a raw value under key with the file storage.
func WriteHistoryEntry(t *testing.T, historyDir, key, value string) {
	t.Helper()
	require.NoError(t, history.NewFileStorage(historyDir).Set(context.Background(), key, []byte(value)))
}

// WriteTestImage writes a small solid PNG and returns its path.
func WriteTestImage(t *testing.T, dir string) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 250, G: 200, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	path := filepath.Join(dir, "image.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}
