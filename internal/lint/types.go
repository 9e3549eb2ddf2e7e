package lint

import (
	"sort"
	"time"
)

// Severity grades a lint finding. Errors block, warnings inform.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

var severityRank = map[Severity]int{
	SeverityWarning: 1,
	SeverityError:   2,
}

// AtLeast reports whether s is as severe as threshold. Unknown severities
// rank below warning.
func (s Severity) AtLeast(threshold Severity) bool {
	return severityRank[s] >= severityRank[threshold]
}

// Issue is a single finding against one file.
type Issue struct {
	Path     string   `json:"path"`
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Report aggregates the findings of one lint run.
type Report struct {
	Checked  int           `json:"checked"`
	Errors   int           `json:"errors"`
	Warnings int           `json:"warnings"`
	Issues   []Issue       `json:"issues"`
	Duration time.Duration `json:"duration_ns"`
}

// HasIssues reports whether any finding was recorded.
func (r *Report) HasIssues() bool {
	return r != nil && len(r.Issues) > 0
}

// FailsAt reports whether the run produced a finding at or above threshold.
func (r *Report) FailsAt(threshold Severity) bool {
	if r == nil {
		return false
	}
	for _, issue := range r.Issues {
		if issue.Severity.AtLeast(threshold) {
			return true
		}
	}
	return false
}

func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Path != issues[j].Path {
			return issues[i].Path < issues[j].Path
		}
		if issues[i].Rule != issues[j].Rule {
			return issues[i].Rule < issues[j].Rule
		}
		return issues[i].Message < issues[j].Message
	})
}

func tallyIssues(report *Report) {
	for _, issue := range report.Issues {
		switch issue.Severity {
		case SeverityError:
			report.Errors++
		case SeverityWarning:
			report.Warnings++
		}
	}
}
