package atomcss

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
)

// ScanStats tracks file discovery
type ScanStats struct {
	FilesDiscovered int // Files matched by the include patterns
	FilesScanned    int // Files kept after filtering
	FilesSkipped    int // Files excluded or gitignored
}

// ScanOptions configures ScanFiles
type ScanOptions struct {
	Root     string   // Directory patterns are relative to; "" means the working directory
	Includes []string // doublestar patterns, e.g. "**/*.styles.yaml"
	Excludes []string // doublestar patterns matched against the path relative to Root
	Logger   *zap.Logger
}

// loadGitIgnore reads <root>/.gitignore. A missing file is not an error.
func loadGitIgnore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// shouldSkipFile reports whether rel is excluded by a pattern or by .gitignore
func shouldSkipFile(rel string, excludes []string, gi *ignore.GitIgnore) bool {
	slashed := filepath.ToSlash(rel)
	for _, pattern := range excludes {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
	}
	return gi != nil && gi.MatchesPath(slashed)
}

// ScanFiles expands the include patterns into a sorted, de-duplicated list of
// style-definition files
func ScanFiles(opts ScanOptions) ([]string, ScanStats, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("scanner")

	root := opts.Root
	if root == "" {
		root = "."
	}
	gi := loadGitIgnore(root)
	fsys := os.DirFS(root)

	var stats ScanStats
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range opts.Includes {
		if !doublestar.ValidatePattern(pattern) {
			return nil, stats, fmt.Errorf("invalid include pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			stats.FilesDiscovered++

			if shouldSkipFile(match, opts.Excludes, gi) {
				stats.FilesSkipped++
				log.Debug("file skipped", zap.String("file", match))
				continue
			}
			files = append(files, filepath.Join(root, filepath.FromSlash(match)))
			stats.FilesScanned++
			log.Debug("file discovered", zap.String("file", match))
		}
	}

	sort.Strings(files)
	return files, stats, nil
}

// GetRelativePath returns path relative to the working directory when possible
func GetRelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}
	return rel
}
