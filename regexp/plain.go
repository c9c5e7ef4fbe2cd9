// Package regexp provides the pattern-based harvest.Extractor
// implementations: a per-field plain-text scan and a composite block
// capture that yields whole records.
package regexp

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/harvest"
)

// Secondary field presets for PlainExtractor. Each captures the wanted
// value in its first group.
const (
	// PhoneExtensionPattern captures the extension digits of a
	// "電話：02-12345678 分機 123" line.
	PhoneExtensionPattern = `電話：\d{2,4}-\d{6,8} 分機 (\d{3,5})`

	// JobTitlePattern captures the free text after "職稱：" up to the next tag.
	JobTitlePattern = `職稱：\s*([^<\n]*[^<\s])`
)

var (
	emailRe = regexp.MustCompile(harvest.EmailPattern)

	// A run of at least three CJK unified ideographs. Adjacency to word
	// characters, '@' and '.' is checked by ScanNames since RE2 has no
	// lookaround.
	ideographRunRe = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]{3,}`)
)

var _ harvest.Extractor = (*PlainExtractor)(nil)

// PlainExtractor scans loose page text with one expression per field and
// aligns the results positionally.
type PlainExtractor struct {
	secondary *regexp.Regexp
}

// NewPlainExtractor returns a PlainExtractor whose secondary field is
// matched by pattern. The first capture group is used when the pattern has
// one, the whole match otherwise. Returns EINVALID if the pattern does not
// compile.
func NewPlainExtractor(pattern string) (*PlainExtractor, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "invalid secondary pattern: %v", err)
	}
	return &PlainExtractor{secondary: re}, nil
}

// Scan returns the raw per-field matches in document order.
// Names are de-duplicated by first occurrence; other fields are not.
func (e *PlainExtractor) Scan(html string) harvest.Fields {
	return harvest.Fields{
		Names:       harvest.DedupeFirst(ScanNames(html)),
		Secondaries: FindAllCaptures(e.secondary, html),
		Emails:      emailRe.FindAllString(html, -1),
	}
}

// Extract scans html and aligns the per-field matches into contacts.
func (e *PlainExtractor) Extract(html string) ([]*harvest.Contact, error) {
	return harvest.Align(e.Scan(html)), nil
}

// ScanNames returns every maximal run of three or more CJK ideographs that
// is neither preceded nor followed by a word character, '@' or '.'.
func ScanNames(html string) []string {
	var names []string
	for _, loc := range ideographRunRe.FindAllStringIndex(html, -1) {
		if !allowedBefore(html, loc[0]) || !allowedAfter(html, loc[1]) {
			continue
		}
		names = append(names, html[loc[0]:loc[1]])
	}
	return names
}

// FindAllCaptures returns the first capture group of every non-overlapping
// match, or the whole match when re has no groups.
func FindAllCaptures(re *regexp.Regexp, s string) []string {
	if re.NumSubexp() == 0 {
		return re.FindAllString(s, -1)
	}
	var values []string
	for _, m := range re.FindAllStringSubmatch(s, -1) {
		values = append(values, m[1])
	}
	return values
}

func allowedBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isNameNeighbour(r)
}

func allowedAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isNameNeighbour(r)
}

func isNameNeighbour(r rune) bool {
	return r == '@' || r == '.' || r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
