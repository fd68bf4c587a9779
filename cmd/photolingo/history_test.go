package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/photolingo/internal/testutil"
)

func setupHistory(t *testing.T) (string, string) {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir, "http://127.0.0.1:1")
	historyDir := filepath.Join(tmpDir, "history")

	testutil.WriteHistoryEntry(t, historyDir, "translation_2025-01-02T03:04:05.000Z",
		`{"originalWord":"banana","targetLanguageCode":"fr","targetLanguageName":"French","translatedWord":"banane"}`)
	testutil.WriteHistoryEntry(t, historyDir, "translation_2025-01-03T03:04:05.000Z",
		`{"originalWord":"tabby","targetLanguageCode":"es","targetLanguageName":"Spanish","translatedWord":"gato atigrado"}`)
	testutil.WriteHistoryEntry(t, historyDir, "translation_2025-01-04T03:04:05.000Z", `not json`)
	return tmpDir, cfgPath
}

func TestHistoryListCommand(t *testing.T) {
	_, cfgPath := setupHistory(t)

	output, err := executeCommand(t, "--config", cfgPath, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "tabby -> gato atigrado (Spanish)")
	assert.Contains(t, output, "banana -> banane (French)")
	assert.Less(t, strings.Index(output, "tabby"), strings.Index(output, "banana"), "newest first")

	output, err = executeCommand(t, "--config", cfgPath, "history", "list", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, output, "tabby")
	assert.NotContains(t, output, "banana")
}

func TestHistoryExportCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantFile string
		wantErr  string
	}{
		{
			name:     "yaml by default",
			args:     []string{"history", "export"},
			wantFile: "outputs/translation_history.yml",
		},
		{
			name:     "markdown",
			args:     []string{"history", "export", "--format", "markdown"},
			wantFile: "outputs/translation_history.md",
		},
		{
			name:    "unknown format",
			args:    []string{"history", "export", "--format", "docx"},
			wantErr: `unknown format "docx"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir, cfgPath := setupHistory(t)

			output, err := executeCommand(t, append([]string{"--config", cfgPath}, tt.args...)...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			wantPath := filepath.Join(tmpDir, tt.wantFile)
			assert.Equal(t, "2 translations written to: "+wantPath+"\n", output)
			contents, err := os.ReadFile(wantPath)
			require.NoError(t, err)
			assert.Contains(t, string(contents), "gato atigrado")
		})
	}
}

func TestHistoryExportCommand_OutputDirectory(t *testing.T) {
	_, cfgPath := setupHistory(t)
	outputDir := filepath.Join(t.TempDir(), "exports")

	_, err := executeCommand(t, "--config", cfgPath, "history", "export", "--output", outputDir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outputDir, "translation_history.yml"))
}
