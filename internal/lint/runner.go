package lint

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

// Runner applies a rule set across a document tree.
type Runner struct {
	rules     []Rule
	workers   int
	threshold Severity
	logger    interfaces.Logger
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithRules replaces the default rule set.
func WithRules(rules ...Rule) RunnerOption {
	return func(r *Runner) {
		if len(rules) > 0 {
			r.rules = rules
		}
	}
}

// WithExtraRules appends rules to the configured set.
func WithExtraRules(rules ...Rule) RunnerOption {
	return func(r *Runner) {
		r.rules = append(r.rules, rules...)
	}
}

// WithWorkers bounds rule evaluation concurrency.
func WithWorkers(workers int) RunnerOption {
	return func(r *Runner) {
		if workers > 0 {
			r.workers = workers
		}
	}
}

// WithThreshold sets the severity at which a run counts as failed.
func WithThreshold(threshold Severity) RunnerOption {
	return func(r *Runner) {
		if _, ok := severityRank[threshold]; ok {
			r.threshold = threshold
		}
	}
}

// WithLogger attaches a logger for run summaries.
func WithLogger(logger interfaces.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner builds a runner with the default rules unless overridden.
func NewRunner(opts ...RunnerOption) *Runner {
	runner := &Runner{
		rules:     DefaultRules(),
		workers:   runtime.NumCPU(),
		threshold: SeverityError,
	}
	for _, opt := range opts {
		opt(runner)
	}
	if runner.workers < 1 {
		runner.workers = 1
	}
	return runner
}

// Threshold returns the configured failure severity.
func (r *Runner) Threshold() Severity {
	return r.threshold
}

// Run lints the documents and returns an ordered report. The error is
// non-nil only when the run itself is interrupted; findings never fail it.
func (r *Runner) Run(ctx context.Context, docs []*interfaces.Document) (*Report, error) {
	start := time.Now()
	corpus := NewCorpus(docs)

	results := make([][]Issue, len(corpus.Targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, target := range corpus.Targets {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			var issues []Issue
			for _, rule := range r.rules {
				issues = append(issues, rule.Check(gctx, target)...)
			}
			results[i] = issues
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Checked: len(corpus.Targets)}
	for _, issues := range results {
		report.Issues = append(report.Issues, issues...)
	}
	sortIssues(report.Issues)
	tallyIssues(report)
	report.Duration = time.Since(start)

	if r.logger != nil {
		r.logger.Info("lint run complete",
			"checked", report.Checked,
			"errors", report.Errors,
			"warnings", report.Warnings,
		)
	}

	return report, nil
}
