package atomcss

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yacobolo/atomcss/internal/report"
)

// OutputFormat selects what WriteOutput prints
type OutputFormat int

// Output formats
const (
	OutputIssues  OutputFormat = iota // Issues and their summary
	OutputSummary                     // Statistics only
	OutputFull                        // Issues, summary and statistics
	OutputJSON                        // Metadata JSON
)

// DetermineOutputFormat maps the --output-format flag to a format. Unknown
// or empty values select the default.
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	if quiet {
		return OutputIssues
	}
	switch formatFlag {
	case "issues":
		return OutputIssues
	case "summary":
		return OutputSummary
	case "full":
		return OutputFull
	case "json":
		return OutputJSON
	}
	return DetermineDefaultOutputFormat()
}

// DetermineDefaultOutputFormat returns issues only, like golangci-lint
func DetermineDefaultOutputFormat() OutputFormat {
	return OutputIssues
}

// WriteOutput prints the result of a run in format
func WriteOutput(w io.Writer, result *Result, format OutputFormat, opts report.Options) error {
	switch format {
	case OutputIssues:
		reporter := report.NewReporter(w, opts)
		reporter.PrintIssues(result.Issues)
		if result.Failed() {
			reporter.PrintSummary(result.Issues)
		}

	case OutputSummary:
		verbose := report.NewVerboseReporter(w, report.ShouldUseColors(opts.UseColors))
		verbose.PrintStatistics(result.Stats)
		verbose.PrintLayers(result.Stats)
		verbose.PrintResult(result.Stats)

	case OutputFull:
		reporter := report.NewReporter(w, opts)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(result.Issues)

		verbose := report.NewVerboseReporter(w, reporter.UseColors())
		verbose.PrintStatistics(result.Stats)
		verbose.PrintLayers(result.Stats)
		verbose.PrintResult(result.Stats)

	case OutputJSON:
		return WriteJSON(w, result)
	}
	return nil
}

// WriteFiles writes the stylesheet and the metadata file named by cfg
func WriteFiles(result *Result, cfg Config) error {
	if cfg.Output != "" {
		css := result.Stylesheet(cfg.Compiler.UseLayers)
		if err := writeFile(cfg.Output, []byte(css)); err != nil {
			return fmt.Errorf("write stylesheet: %w", err)
		}
	}
	if cfg.Metadata != "" {
		f, err := createFile(cfg.Metadata)
		if err != nil {
			return fmt.Errorf("write metadata: %w", err)
		}
		if err := WriteJSON(f, result); err != nil {
			f.Close()
			return fmt.Errorf("write metadata: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("write metadata: %w", err)
		}
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func createFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.Create(path)
}
