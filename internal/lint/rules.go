package lint

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Rule inspects a single target and reports zero or more issues. Severity is
// the nominal level; a rule may downgrade individual findings.
type Rule interface {
	Name() string
	Severity() Severity
	Check(ctx context.Context, target *Target) []Issue
}

// DefaultRules returns the built-in rule set in evaluation order. The
// schema rule is excluded; it only runs when a schema is configured.
func DefaultRules() []Rule {
	return []Rule{
		TitleRequired(),
		DateValid(),
		SlugUnique(),
		FilenameDate(),
		DateFuture(nil),
		TagsStyle(),
		BodyEmpty(),
	}
}

func newIssue(target *Target, rule string, severity Severity, message string) Issue {
	return Issue{
		Path:     target.Path(),
		Rule:     rule,
		Severity: severity,
		Message:  message,
	}
}

type titleRequiredRule struct{}

// TitleRequired flags posts whose front matter title is missing or blank.
func TitleRequired() Rule { return titleRequiredRule{} }

func (titleRequiredRule) Name() string       { return "title-required" }
func (titleRequiredRule) Severity() Severity { return SeverityError }

func (r titleRequiredRule) Check(_ context.Context, target *Target) []Issue {
	if strings.TrimSpace(target.Doc.FrontMatter.Title) != "" {
		return nil
	}
	return []Issue{newIssue(target, r.Name(), SeverityError, "front matter title is required")}
}

type dateValidRule struct{}

// DateValid flags posts whose date does not parse. A missing front matter
// date is an error unless the filename carries a date prefix, in which case
// the prefix stands in and the finding downgrades to a warning.
func DateValid() Rule { return dateValidRule{} }

func (dateValidRule) Name() string       { return "date-valid" }
func (dateValidRule) Severity() Severity { return SeverityError }

func (r dateValidRule) Check(_ context.Context, target *Target) []Issue {
	raw := rawDate(target)

	if raw != "" {
		if target.DateErr != nil {
			msg := fmt.Sprintf("front matter date %q does not parse; use 2006-01-02 or an RFC 3339 timestamp", raw)
			return []Issue{newIssue(target, r.Name(), SeverityError, msg)}
		}
		return nil
	}

	if target.Ref.HasDate {
		msg := fmt.Sprintf("front matter date is missing; falling back to filename date %s", target.Ref.Date.Format(time.DateOnly))
		return []Issue{newIssue(target, r.Name(), SeverityWarning, msg)}
	}

	return []Issue{newIssue(target, r.Name(), SeverityError, "post has no date in front matter or filename")}
}

type slugUniqueRule struct{}

// SlugUnique flags every file in a slug collision set, naming the others.
func SlugUnique() Rule { return slugUniqueRule{} }

func (slugUniqueRule) Name() string       { return "slug-unique" }
func (slugUniqueRule) Severity() Severity { return SeverityError }

func (r slugUniqueRule) Check(_ context.Context, target *Target) []Issue {
	siblings := target.Siblings()
	if len(siblings) == 0 {
		return nil
	}
	paths := make([]string, 0, len(siblings))
	for _, sibling := range siblings {
		paths = append(paths, sibling.Path())
	}
	sort.Strings(paths)
	msg := fmt.Sprintf("slug %q is also used by %s", target.Slug, strings.Join(paths, ", "))
	return []Issue{newIssue(target, r.Name(), SeverityError, msg)}
}

type filenameDateRule struct{}

// FilenameDate flags posts whose filename date prefix disagrees with the
// front matter date.
func FilenameDate() Rule { return filenameDateRule{} }

func (filenameDateRule) Name() string       { return "filename-date" }
func (filenameDateRule) Severity() Severity { return SeverityWarning }

func (r filenameDateRule) Check(_ context.Context, target *Target) []Issue {
	if !target.Ref.HasDate || rawDate(target) == "" || target.DateErr != nil || target.Date.IsZero() {
		return nil
	}
	fileDay := target.Ref.Date.Format(time.DateOnly)
	frontDay := target.Date.Format(time.DateOnly)
	if fileDay == frontDay {
		return nil
	}
	msg := fmt.Sprintf("filename date %s disagrees with front matter date %s", fileDay, frontDay)
	return []Issue{newIssue(target, r.Name(), SeverityWarning, msg)}
}

type dateFutureRule struct {
	now func() time.Time
}

// DateFuture flags published posts dated in the future. A nil clock uses
// time.Now.
func DateFuture(now func() time.Time) Rule {
	if now == nil {
		now = time.Now
	}
	return dateFutureRule{now: now}
}

func (dateFutureRule) Name() string       { return "date-future" }
func (dateFutureRule) Severity() Severity { return SeverityWarning }

func (r dateFutureRule) Check(_ context.Context, target *Target) []Issue {
	if target.Doc.FrontMatter.Draft || target.Date.IsZero() || !target.Date.After(r.now()) {
		return nil
	}
	msg := fmt.Sprintf("date %s is in the future for a published post", target.Date.Format(time.DateOnly))
	return []Issue{newIssue(target, r.Name(), SeverityWarning, msg)}
}

var tagPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type tagsStyleRule struct{}

// TagsStyle flags tags that are empty, carry whitespace, or stray from
// lowercase-kebab form.
func TagsStyle() Rule { return tagsStyleRule{} }

func (tagsStyleRule) Name() string       { return "tags-style" }
func (tagsStyleRule) Severity() Severity { return SeverityWarning }

func (r tagsStyleRule) Check(_ context.Context, target *Target) []Issue {
	var issues []Issue
	for _, tag := range target.Doc.FrontMatter.Tags {
		trimmed := strings.TrimSpace(tag)
		switch {
		case trimmed == "":
			issues = append(issues, newIssue(target, r.Name(), SeverityWarning, "tags contain an empty entry"))
		case trimmed != tag:
			msg := fmt.Sprintf("tag %q has surrounding whitespace", tag)
			issues = append(issues, newIssue(target, r.Name(), SeverityWarning, msg))
		case !tagPattern.MatchString(trimmed):
			msg := fmt.Sprintf("tag %q is not lowercase-kebab", tag)
			issues = append(issues, newIssue(target, r.Name(), SeverityWarning, msg))
		}
	}
	return issues
}

type bodyEmptyRule struct{}

// BodyEmpty flags posts whose body carries no prose. Code blocks alone do
// not count as prose.
func BodyEmpty() Rule { return bodyEmptyRule{} }

func (bodyEmptyRule) Name() string       { return "body-empty" }
func (bodyEmptyRule) Severity() Severity { return SeverityWarning }

func (r bodyEmptyRule) Check(_ context.Context, target *Target) []Issue {
	if target.Stats.WordCount > 0 {
		return nil
	}
	return []Issue{newIssue(target, r.Name(), SeverityWarning, "body has no prose content")}
}
