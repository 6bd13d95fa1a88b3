package report

import (
	"errors"
	"strings"

	"github.com/yacobolo/atomcss/internal/diag"
)

// Issue is one compile failure in golangci-lint format
type Issue struct {
	FromLinter  string   `json:"FromLinter"`  // Always "atomcss"
	Code        string   `json:"Code"`        // Message key, e.g. "INVALID_MEDIA_QUERY"
	Text        string   `json:"Text"`        // "invalid media query: @media (min-width 10px)"
	Severity    string   `json:"Severity"`    // "error" or "warning"
	SourceLines []string `json:"SourceLines"` // Lines of the style file around Pos
	Pos         IssuePos `json:"Pos"`
}

// IssuePos is the location of an issue
type IssuePos struct {
	Filename string `json:"Filename"`
	Line     int    `json:"Line"`
	Column   int    `json:"Column"` // 1-based
}

// Severity values
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Linter is the FromLinter value of every issue
const Linter = "atomcss"

// FromError converts a compile error into an issue. file is used when the
// error carries no location; source, when not nil, supplies the offending
// line.
func FromError(err error, file string, source []byte) Issue {
	issue := Issue{
		FromLinter: Linter,
		Text:       err.Error(),
		Severity:   SeverityError,
		Pos:        IssuePos{Filename: file},
	}

	var de *diag.Error
	if errors.As(err, &de) {
		issue.Code = string(de.Key)
		issue.Text = de.Message
		if de.Detail != "" {
			issue.Text += ": " + de.Detail
		}
		if de.Err != nil {
			issue.Text += " (" + de.Err.Error() + ")"
		}
		if de.Loc.File != "" {
			issue.Pos.Filename = de.Loc.File
		}
		issue.Pos.Line = de.Loc.Line
		issue.Pos.Column = de.Loc.Column
	}

	if source != nil && issue.Pos.Line > 0 {
		lines := strings.Split(string(source), "\n")
		if issue.Pos.Line <= len(lines) {
			issue.SourceLines = []string{strings.TrimRight(lines[issue.Pos.Line-1], "\r")}
		}
	}
	return issue
}
