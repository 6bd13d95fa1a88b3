package atomcss

import "github.com/yacobolo/atomcss/internal/report"

// Issue is one compile failure in golangci-lint format
type Issue = report.Issue

// IssuePos is the location of an issue
type IssuePos = report.IssuePos

// Issue severities
const (
	SeverityError   = report.SeverityError
	SeverityWarning = report.SeverityWarning
)
