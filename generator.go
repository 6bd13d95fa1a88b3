package atomcss

import (
	"fmt"
	"math"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/yacobolo/atomcss/internal/compiler"
	"github.com/yacobolo/atomcss/internal/merge"
	"github.com/yacobolo/atomcss/internal/report"
	"github.com/yacobolo/atomcss/internal/styletree"
)

// Config configures a compile run
type Config struct {
	Root     string   // Directory include patterns are relative to
	Includes []string // Style-definition files, e.g. "**/*.styles.yaml"
	Excludes []string

	Output   string // Stylesheet path; empty skips writing
	Metadata string // Class-name metadata JSON path; empty skips writing

	Compiler compiler.Options
	Logger   *zap.Logger
}

// DefaultConfig compiles **/*.styles.yaml and **/*.styles.json with the
// default compiler options
func DefaultConfig() Config {
	return Config{
		Includes: []string{"**/*.styles.yaml", "**/*.styles.json"},
		Compiler: compiler.DefaultOptions(),
	}
}

// Unit is one compiled style-definition file
type Unit struct {
	File   string
	Result *compiler.Result
	Merges []*merge.Output
}

// Result is the outcome of a compile run
type Result struct {
	Units  []*Unit
	Rules  []compiler.Rule // Distinct rules of all successful units
	Issues []Issue
	Scan   ScanStats
	Stats  report.Stats
}

// Failed reports whether any unit failed
func (r *Result) Failed() bool {
	return len(r.Issues) > 0
}

// Stylesheet renders the rules of the run
func (r *Result) Stylesheet(useLayers bool) string {
	return compiler.Stylesheet(r.Rules, useLayers)
}

// Compile scans, loads and compiles every file. A file that fails is
// reported as an issue and contributes nothing; the others still compile.
// The returned error aggregates every unit failure.
func Compile(cfg Config) (*Result, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("pipeline")
	if cfg.Compiler.Logger == nil {
		cfg.Compiler.Logger = log
	}

	// 1. Discover files
	files, scan, err := ScanFiles(ScanOptions{
		Root:     cfg.Root,
		Includes: cfg.Includes,
		Excludes: cfg.Excludes,
		Logger:   log,
	})
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	log.Debug("scan complete",
		zap.Int("discovered", scan.FilesDiscovered),
		zap.Int("skipped", scan.FilesSkipped))

	result := &Result{Scan: scan}
	registry := compiler.NewRegistry(log)

	// 2. Compile each unit in isolation
	var errs error
	for _, file := range files {
		unit, source, err := compileFile(file, cfg)
		if err == nil {
			err = register(registry, unit)
		}
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", file, err))
			result.Issues = append(result.Issues, report.FromError(err, file, source))
			result.Stats.FilesFailed++
			log.Debug("unit failed", zap.String("file", file), zap.Error(err))
			continue
		}
		result.Units = append(result.Units, unit)
	}

	// 3. Aggregate
	result.Rules = registry.Rules()
	result.Stats = buildStats(result, registry, len(files))

	log.Debug("compile complete",
		zap.Int("units", len(result.Units)),
		zap.Int("rules", len(result.Rules)),
		zap.Int("failed", result.Stats.FilesFailed))
	return result, errs
}

// compileFile loads, compiles and merges one file. The source is returned
// for issue rendering even when compiling fails.
func compileFile(file string, cfg Config) (*Unit, []byte, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, nil, fmt.Errorf("read failed: %w", err)
	}

	rel := GetRelativePath(file)
	doc, err := styletree.Parse(data, rel)
	if err != nil {
		return nil, data, err
	}

	opts := cfg.Compiler
	opts.FileName = rel
	res, err := compiler.Compile(doc, opts)
	if err != nil {
		return nil, data, err
	}

	unit := &Unit{File: rel, Result: res}
	mopts := merge.OptionsFrom(opts)
	for _, site := range doc.Merges {
		out, err := merge.Merge(site, res, mopts)
		if err != nil {
			return nil, data, err
		}
		unit.Merges = append(unit.Merges, out)
	}
	return unit, data, nil
}

// register adds the rules of unit to the shared registry, all or nothing
func register(reg *compiler.Registry, unit *Unit) error {
	for _, r := range unit.Result.Rules {
		if err := reg.Check(r); err != nil {
			return err
		}
	}
	for _, r := range unit.Result.Rules {
		if _, err := reg.Add(r); err != nil {
			return err
		}
	}
	return nil
}

func buildStats(res *Result, reg *compiler.Registry, scanned int) report.Stats {
	s := report.Stats{
		FilesScanned:  scanned,
		FilesFailed:   res.Stats.FilesFailed,
		Rules:         len(res.Rules),
		DuplicateHits: reg.Hits(),
		Layers:        make(map[int]int),
	}
	for _, u := range res.Units {
		s.Namespaces += u.Result.Namespaces.Len()
		s.VarGroups += len(u.Result.VarGroups)
		s.Themes += len(u.Result.Themes)
		s.Keyframes += u.Result.Animations.Len()
		s.Merges += len(u.Merges)
		s.DuplicateHits += u.Result.Hits
	}
	for _, r := range res.Rules {
		s.Layers[int(math.Floor(r.Priority/1000))+1]++
	}
	return s
}
