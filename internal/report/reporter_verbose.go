package report

import (
	"fmt"
	"io"
	"sort"
)

// Stats summarises one compile run
type Stats struct {
	FilesScanned  int
	FilesFailed   int
	Namespaces    int
	VarGroups     int
	Themes        int
	Keyframes     int
	Merges        int
	Rules         int
	DuplicateHits int         // Rules shared between namespaces
	Layers        map[int]int // Rule count per priority layer (1-based)
}

// VerboseReporter prints statistics about a compile run
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{w: w, useColors: useColors}
}

// PrintStatistics writes the counters of s
func (r *VerboseReporter) PrintStatistics(s Stats) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Compile Statistics", r.useColors))
	fmt.Fprintln(r.w, "------------------")

	fmt.Fprintf(r.w, "Files Scanned:   %d\n", s.FilesScanned)
	fmt.Fprintf(r.w, "Files Failed:    %d\n", s.FilesFailed)
	fmt.Fprintf(r.w, "Namespaces:      %d\n", s.Namespaces)
	fmt.Fprintf(r.w, "Variable Groups: %d\n", s.VarGroups)
	fmt.Fprintf(r.w, "Themes:          %d\n", s.Themes)
	fmt.Fprintf(r.w, "Keyframes:       %d\n", s.Keyframes)
	fmt.Fprintf(r.w, "Merge Sites:     %d\n", s.Merges)
	fmt.Fprintf(r.w, "CSS Rules:       %d\n", s.Rules)
	fmt.Fprintf(r.w, "Shared Rules:    %d\n", s.DuplicateHits)
}

// PrintLayers writes the share of rules in each priority layer as bars
func (r *VerboseReporter) PrintLayers(s Stats) {
	if s.Rules == 0 || len(s.Layers) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Priority Layers", r.useColors))
	fmt.Fprintln(r.w, "---------------")

	layers := make([]int, 0, len(s.Layers))
	for l := range s.Layers {
		layers = append(layers, l)
	}
	sort.Ints(layers)
	for _, l := range layers {
		fmt.Fprintf(r.w, "priority%-3d %5d ", l, s.Layers[l])
		printProgressBar(r.w, float64(s.Layers[l])/float64(s.Rules)*100)
	}
}

// PrintResult writes the final success or failure line
func (r *VerboseReporter) PrintResult(s Stats) {
	fmt.Fprintln(r.w, "")
	if s.FilesFailed > 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleRed, fmt.Sprintf("Build failed: %s", pluralizeCount(s.FilesFailed, "file", "files")), r.useColors))
		return
	}
	fmt.Fprintln(r.w, RenderStyle(StyleGreen, fmt.Sprintf("Compiled %s into %s", pluralizeCount(s.FilesScanned, "file", "files"), pluralizeCount(s.Rules, "rule", "rules")), r.useColors))
}

// printProgressBar prints a 20 cell bar followed by the percentage
func printProgressBar(w io.Writer, percentage float64) {
	barWidth := 20
	filled := int(percentage / 100 * float64(barWidth))

	fmt.Fprint(w, "[")
	for i := 0; i < barWidth; i++ {
		if i < filled {
			fmt.Fprint(w, "█")
		} else {
			fmt.Fprint(w, "░")
		}
	}
	fmt.Fprintf(w, "] %.1f%%\n", percentage)
}
