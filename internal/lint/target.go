package lint

import (
	"strings"
	"time"

	"github.com/goliatone/go-posts/internal/markdown"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

// Target is one document prepared for linting. Derived facts are computed
// once so rules stay cheap and agree on slug and date semantics.
type Target struct {
	Doc     *interfaces.Document
	Ref     markdown.PostRef
	Slug    string
	Date    time.Time
	DateErr error
	Stats   markdown.BodyStats

	corpus *Corpus
}

// Path returns the file path the target was loaded from.
func (t *Target) Path() string {
	if t == nil || t.Doc == nil {
		return ""
	}
	return t.Doc.FilePath
}

// Siblings returns every target that resolved to the same effective slug,
// excluding the receiver. Tree-wide rules use it for collision reporting.
func (t *Target) Siblings() []*Target {
	if t == nil || t.corpus == nil || t.Slug == "" {
		return nil
	}
	group := t.corpus.bySlug[t.Slug]
	if len(group) < 2 {
		return nil
	}
	siblings := make([]*Target, 0, len(group)-1)
	for _, other := range group {
		if other != t {
			siblings = append(siblings, other)
		}
	}
	return siblings
}

// Corpus is the full target set of a lint run plus the indexes shared by
// tree-wide rules.
type Corpus struct {
	Targets []*Target

	bySlug map[string][]*Target
}

// NewCorpus prepares documents for linting. Order follows the input.
func NewCorpus(docs []*interfaces.Document) *Corpus {
	corpus := &Corpus{
		Targets: make([]*Target, 0, len(docs)),
		bySlug:  make(map[string][]*Target),
	}

	for _, doc := range docs {
		if doc == nil {
			continue
		}
		date, dateErr := markdown.EffectiveDate(doc)
		target := &Target{
			Doc:     doc,
			Ref:     markdown.ParseFileName(doc.FilePath),
			Slug:    markdown.EffectiveSlug(doc),
			Date:    date,
			DateErr: dateErr,
			Stats:   markdown.Inspect(doc.Body),
			corpus:  corpus,
		}
		corpus.Targets = append(corpus.Targets, target)
		if target.Slug != "" {
			corpus.bySlug[target.Slug] = append(corpus.bySlug[target.Slug], target)
		}
	}

	return corpus
}

func rawDate(t *Target) string {
	if t == nil || t.Doc == nil {
		return ""
	}
	return strings.TrimSpace(t.Doc.FrontMatter.Date)
}
