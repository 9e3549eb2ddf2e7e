package lint

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RenderText formats a report as one line per issue plus a summary line.
// Ordering follows the report, which is stable across runs.
func RenderText(report *Report) string {
	if report == nil {
		return ""
	}

	var b strings.Builder
	for _, issue := range report.Issues {
		fmt.Fprintf(&b, "%s: [%s] %s: %s\n", issue.Path, issue.Severity, issue.Rule, issue.Message)
	}
	if len(report.Issues) > 0 {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%d files checked, %d errors, %d warnings\n", report.Checked, report.Errors, report.Warnings)
	return b.String()
}

// RenderJSON formats a report as indented JSON for machine consumers.
func RenderJSON(report *Report) ([]byte, error) {
	if report == nil {
		report = &Report{}
	}
	if report.Issues == nil {
		report.Issues = []Issue{}
	}
	return json.MarshalIndent(report, "", "  ")
}
