package extractor

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/go-shiori/go-readability"
)

// Locator finds candidate texts in a document.
type Locator interface {
	Name() string
	// Candidates returns matches in document order. When all is false only
	// the first match is returned.
	Candidates(doc *Document, all bool) []string
}

type cssLocator struct {
	selector string
}

// CSS returns a locator for selector. The selector is compiled up front so
// that a malformed one is reported at construction and never during extraction.
func CSS(selector string) (Locator, error) {
	if _, err := cascadia.Compile(selector); err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	return cssLocator{selector: selector}, nil
}

func (l cssLocator) Name() string {
	return l.selector
}

func (l cssLocator) Candidates(doc *Document, all bool) []string {
	sel := doc.find(l.selector)
	if !all {
		sel = sel.First()
	}

	var out []string
	sel.Each(func(_ int, s *goquery.Selection) {
		if text := textOf(s); text != "" {
			out = append(out, text)
		}
	})
	return out
}

type readabilityLocator struct{}

// Readability returns a locator yielding the article excerpt computed by
// go-readability.
func Readability() Locator {
	return readabilityLocator{}
}

func (readabilityLocator) Name() string {
	return "readability"
}

func (readabilityLocator) Candidates(doc *Document, _ bool) []string {
	var pageURL *url.URL
	if u, err := url.Parse(doc.URL); err == nil && u.IsAbs() {
		pageURL = u
	}

	article, err := readability.FromReader(strings.NewReader(doc.HTML), pageURL)
	if err != nil {
		return nil
	}

	var out []string
	if excerpt := collapseSpace(article.Excerpt); excerpt != "" {
		out = append(out, excerpt)
	}
	return out
}

// Predicate accepts or rejects a candidate text.
type Predicate func(text string) bool

// Length accepts texts whose rune count is strictly between min and max.
// A max of zero means no upper bound.
func Length(min, max int) Predicate {
	return func(text string) bool {
		n := utf8.RuneCountInString(text)
		return n > min && (max == 0 || n < max)
	}
}

// Deny rejects texts containing any of terms, ignoring case.
func Deny(terms ...string) Predicate {
	lowered := lowerAll(terms)
	return func(text string) bool {
		lower := strings.ToLower(text)
		for _, term := range lowered {
			if strings.Contains(lower, term) {
				return false
			}
		}
		return true
	}
}

// Require accepts texts containing at least one of terms, ignoring case.
func Require(terms ...string) Predicate {
	lowered := lowerAll(terms)
	return func(text string) bool {
		lower := strings.ToLower(text)
		for _, term := range lowered {
			if strings.Contains(lower, term) {
				return true
			}
		}
		return false
	}
}

// All accepts texts accepted by every predicate.
func All(preds ...Predicate) Predicate {
	return func(text string) bool {
		for _, p := range preds {
			if !p(text) {
				return false
			}
		}
		return true
	}
}

func lowerAll(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Rule pairs a locator with the predicate its candidates must pass.
type Rule struct {
	Locator Locator
	Accept  Predicate
}

// Field is an ordered cascade of rules.
type Field struct {
	Name  string
	Rules []Rule
	// Limit caps the number of collected values. Zero means unbounded.
	Limit int
}

// First returns the first accepted candidate, trying only the first match
// of each locator.
func (f Field) First(doc *Document) (value, source string, ok bool) {
	for _, rule := range f.Rules {
		for _, text := range rule.Locator.Candidates(doc, false) {
			if rule.Accept(text) {
				return text, rule.Locator.Name(), true
			}
		}
	}
	return "", "", false
}

// Collect gathers every accepted candidate across the cascade, dropping
// exact duplicates and stopping at the limit.
func (f Field) Collect(doc *Document) (values, sources []string) {
	seen := make(map[string]struct{})
	values = []string{}

	for _, rule := range f.Rules {
		matched := false
		for _, text := range rule.Locator.Candidates(doc, true) {
			if f.Limit > 0 && len(values) >= f.Limit {
				break
			}
			if _, dup := seen[text]; dup || !rule.Accept(text) {
				continue
			}
			seen[text] = struct{}{}
			values = append(values, text)
			matched = true
		}
		if matched {
			sources = append(sources, rule.Locator.Name())
		}
		if f.Limit > 0 && len(values) >= f.Limit {
			break
		}
	}
	return values, sources
}

// ruleSet accumulates rules and remembers the first construction error.
type ruleSet struct {
	rules []Rule
	err   error
}

func (r *ruleSet) css(selector string, accept Predicate) {
	if r.err != nil {
		return
	}
	loc, err := CSS(selector)
	if err != nil {
		r.err = err
		return
	}
	r.rules = append(r.rules, Rule{Locator: loc, Accept: accept})
}

func (r *ruleSet) add(loc Locator, accept Predicate) {
	r.rules = append(r.rules, Rule{Locator: loc, Accept: accept})
}

// excluding appends :not(:contains(...)) clauses for every term.
func excluding(selector string, terms ...string) string {
	var b strings.Builder
	b.WriteString(selector)
	for _, t := range terms {
		fmt.Fprintf(&b, ":not(:contains(%s))", quote(t))
	}
	return b.String()
}

func containing(selector, term string) string {
	return fmt.Sprintf("%s:contains(%s)", selector, quote(term))
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
