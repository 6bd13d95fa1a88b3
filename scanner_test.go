package atomcss

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestScanFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.styles.yaml":                   "",
		"components/b.styles.yaml":        "",
		"components/b.styles.json":        "{}",
		"ignored/c.styles.yaml":           "",
		"vendor/d.styles.yaml":            "",
		"notes.yaml":                      "",
		".gitignore":                      "ignored/\n",
		"components/nested/e.css":         "",
		"components/nested/f.styles.yaml": "",
	})

	files, stats, err := ScanFiles(ScanOptions{
		Root:     dir,
		Includes: []string{"**/*.styles.yaml", "**/*.styles.json", "a.styles.yaml"},
		Excludes: []string{"vendor/**"},
	})
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "a.styles.yaml"),
		filepath.Join(dir, "components", "b.styles.json"),
		filepath.Join(dir, "components", "b.styles.yaml"),
		filepath.Join(dir, "components", "nested", "f.styles.yaml"),
	}
	assert.Equal(t, want, files)
	assert.Equal(t, ScanStats{FilesDiscovered: 6, FilesScanned: 4, FilesSkipped: 2}, stats)
}

func TestScanFilesInvalidPattern(t *testing.T) {
	_, _, err := ScanFiles(ScanOptions{Root: t.TempDir(), Includes: []string{"[a-"}})
	require.Error(t, err)
}

func TestShouldSkipFile(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		excludes []string
		expected bool
	}{
		{name: "no excludes", path: "a.styles.yaml", expected: false},
		{name: "excluded directory", path: "node_modules/x/a.styles.yaml", excludes: []string{"node_modules/**"}, expected: true},
		{name: "excluded suffix", path: "gen/a.gen.styles.yaml", excludes: []string{"**/*.gen.styles.yaml"}, expected: true},
		{name: "other directory", path: "src/a.styles.yaml", excludes: []string{"node_modules/**"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, shouldSkipFile(tt.path, tt.excludes, nil))
		})
	}
}
