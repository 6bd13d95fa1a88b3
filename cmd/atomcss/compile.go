package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/atomcss"
	"github.com/yacobolo/atomcss/internal/report"
)

var compileCmd = &cobra.Command{
	Use:     "compile",
	Aliases: []string{"build"},
	Short:   "Compile style-definition files into an atomic stylesheet",
	Long: `Scan style-definition files, compile every namespace into atomic classes
and write the stylesheet plus optional class-name metadata.
A file that fails to compile is reported and left out; the others still compile.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runCompile,
}

func init() {
	addCompileFlags(compileCmd)
}

// addCompileFlags registers the compile flags on cmd. The root command gets
// them too since it runs compile by default.
func addCompileFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("root", "", "Directory include patterns are relative to")
	f.StringSlice("include", nil, "Glob patterns for style-definition files")
	f.StringSlice("exclude", nil, "Glob patterns to skip")
	f.StringP("output", "o", "atoms.css", "Stylesheet output path")
	f.String("metadata", "", "Class-name metadata JSON output path")
	f.String("style-resolution", "application-order", "application-order|property-specificity|legacy-expand-shorthands")
	f.String("prefix", "x", "Class name prefix")
	f.Bool("dev", false, "Add readable namespace classes and runtime injection calls")
	f.Bool("debug", false, "Prefix classes with their property and record source locations")
	f.Bool("gen-conditional-classes", false, "Keep literal true/false merge conditions in lookup tables")
	f.Bool("skip-conditional", false, "Leave conditional merges for the runtime")
	f.Bool("legacy-value-flipping", false, "Mirror shadows and background positions for RTL")
	f.Bool("vendor-prefixes", false, "Add -webkit- prefixed declarations")
	f.Bool("layers", false, "Group rules into @layer blocks by priority")
	f.String("output-format", "", "Report format: issues|summary|full|json")
	f.Bool("print-lines", true, "Show source lines with issues")
}

func runCompile(_ *cobra.Command, _ []string) error {
	config, err := buildCompileConfig()
	if err != nil {
		return err
	}

	result, err := atomcss.Compile(config)
	if result == nil {
		return fmt.Errorf("compile failed: %w", err)
	}
	if err != nil {
		logger.Debug("compile finished with errors", zap.Error(err))
	}

	if err := atomcss.WriteFiles(result, config); err != nil {
		return err
	}
	logger.Info("stylesheet written",
		zap.String("output", config.Output),
		zap.Int("rules", len(result.Rules)),
		zap.Int("files", result.Stats.FilesScanned))

	quiet := getBoolWithFallback("quiet", "quiet", false)
	format := atomcss.DetermineOutputFormat(getStringWithFallback("output-format", "compile.output-format", ""), quiet)
	if !quiet {
		opts := report.Options{
			UseColors:        getBoolWithFallback("color", "color", false),
			PrintIssuedLines: getBoolWithFallback("print-lines", "compile.print-lines", true),
			PrintCode:        true,
		}
		if err := atomcss.WriteOutput(os.Stdout, result, format, opts); err != nil {
			return err
		}
	}

	if result.Failed() {
		return errBuildFailed
	}
	return nil
}
