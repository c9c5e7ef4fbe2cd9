// Package goquery provides the attribute-scoped harvest.Extractor, which
// reads names from marked anchor elements using CSS selectors.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/harvest"
)

// DefaultNameSelector selects the anchors carrying contact names.
const DefaultNameSelector = "a.member_name"

// PhonePattern matches 2 to 4 groups of 1 to 4 digits separated by an
// optional space or dash.
const PhonePattern = `\d{1,4}(?:[ -]?\d{1,4}){1,3}`

var (
	phoneRe = regexp.MustCompile(PhonePattern)
	emailRe = regexp.MustCompile(harvest.EmailPattern)
)

var _ harvest.Extractor = (*AttributeExtractor)(nil)

// AttributeExtractor reads names from the inner text of selected anchors
// and scans the whole page for phones and emails independently.
type AttributeExtractor struct {
	nameSelector string
	names        cascadia.Selector
}

// Option configures an AttributeExtractor.
type Option func(*AttributeExtractor)

// WithNameSelector sets the CSS selector for name elements.
// Defaults to DefaultNameSelector.
func WithNameSelector(selector string) Option {
	return func(e *AttributeExtractor) {
		e.nameSelector = selector
	}
}

// NewAttributeExtractor creates a new AttributeExtractor.
// Returns EINVALID if the name selector does not compile.
func NewAttributeExtractor(opts ...Option) (*AttributeExtractor, error) {
	e := &AttributeExtractor{
		nameSelector: DefaultNameSelector,
	}
	for _, opt := range opts {
		opt(e)
	}

	sel, err := cascadia.Compile(e.nameSelector)
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "invalid name selector %q: %v", e.nameSelector, err)
	}
	e.names = sel
	return e, nil
}

// Scan returns the raw per-field matches in document order.
// None of the fields are de-duplicated.
func (e *AttributeExtractor) Scan(html string) (harvest.Fields, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return harvest.Fields{}, harvest.Errorf(harvest.EINVALID, "failed to parse HTML: %v", err)
	}

	var names []string
	doc.FindMatcher(e.names).Each(func(_ int, sel *goquery.Selection) {
		names = append(names, sel.Text())
	})

	return harvest.Fields{
		Names:       names,
		Secondaries: phoneRe.FindAllString(html, -1),
		Emails:      emailRe.FindAllString(html, -1),
	}, nil
}

// Extract scans html and aligns the per-field matches into contacts.
func (e *AttributeExtractor) Extract(html string) ([]*harvest.Contact, error) {
	fields, err := e.Scan(html)
	if err != nil {
		return nil, err
	}
	return harvest.Align(fields), nil
}
