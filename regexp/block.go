package regexp

import (
	"regexp"
	"strings"

	"github.com/fwojciec/harvest"
)

// DefaultBlockPattern matches one profile card: a name anchor followed by
// a label span, a "職稱：" title, a "學歷：" education line and a mailto
// link. Only the name, secondary and email groups are kept.
const DefaultBlockPattern = `<a[^>]*>(?P<name>[^<]+)</a>\s*<span[^>]*>(?P<label>[^<]*)</span>` +
	`.*?職稱：(?P<secondary>[^<]*)<` +
	`.*?學歷：(?P<education>[^<]*)<` +
	`.*?mailto:(?P<email>[^>]*)>`

// Group names a block pattern must declare.
const (
	GroupName      = "name"
	GroupSecondary = "secondary"
	GroupEmail     = "email"
)

var _ harvest.Extractor = (*BlockExtractor)(nil)

// BlockExtractor captures whole contacts from a repeating markup block with
// a single composite expression.
type BlockExtractor struct {
	re        *regexp.Regexp
	name      int
	secondary int
	email     int
}

// NewBlockExtractor compiles pattern with '.' matching newlines. The pattern
// must declare the named groups name, secondary and email; other groups are
// ignored. Returns EINVALID if the pattern does not compile or lacks a group.
func NewBlockExtractor(pattern string) (*BlockExtractor, error) {
	re, err := regexp.Compile(`(?s)` + pattern)
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "invalid block pattern: %v", err)
	}

	e := &BlockExtractor{
		re:        re,
		name:      re.SubexpIndex(GroupName),
		secondary: re.SubexpIndex(GroupSecondary),
		email:     re.SubexpIndex(GroupEmail),
	}
	for group, idx := range map[string]int{GroupName: e.name, GroupSecondary: e.secondary, GroupEmail: e.email} {
		if idx < 0 {
			return nil, harvest.Errorf(harvest.EINVALID, "block pattern has no (?P<%s>...) group", group)
		}
	}
	return e, nil
}

// Extract returns one trimmed contact per block occurrence.
func (e *BlockExtractor) Extract(html string) ([]*harvest.Contact, error) {
	matches := e.re.FindAllStringSubmatch(html, -1)
	contacts := make([]*harvest.Contact, 0, len(matches))
	for _, m := range matches {
		contacts = append(contacts, &harvest.Contact{
			Name:      m[e.name],
			Secondary: m[e.secondary],
			Email:     CleanEmail(m[e.email]),
		})
	}
	return harvest.TrimContacts(contacts), nil
}

// CleanEmail strips markup left in a raw mailto capture: everything from
// the first '"' on, and every "//".
func CleanEmail(raw string) string {
	if i := strings.IndexByte(raw, '"'); i >= 0 {
		raw = raw[:i]
	}
	return strings.ReplaceAll(raw, "//", "")
}
