package harvest

import "strings"

// Fields holds independently extracted per-field matches in document order.
type Fields struct {
	Names       []string
	Secondaries []string
	Emails      []string
}

// Align zips per-field matches position-wise into contacts. Shorter
// sequences are padded with empty strings up to the longest one.
//
// Alignment is purely positional: it assumes every contact contributes
// exactly one match per field in the same order. A contact with two phone
// numbers, or one without an email, shifts every later record.
func Align(f Fields) []*Contact {
	n := max(len(f.Names), len(f.Secondaries), len(f.Emails))
	contacts := make([]*Contact, 0, n)
	for i := range n {
		contacts = append(contacts, &Contact{
			Name:      at(f.Names, i),
			Secondary: at(f.Secondaries, i),
			Email:     at(f.Emails, i),
		})
	}
	return contacts
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

// TrimContacts returns copies of contacts with leading and trailing
// whitespace removed from every field.
func TrimContacts(contacts []*Contact) []*Contact {
	trimmed := make([]*Contact, 0, len(contacts))
	for _, c := range contacts {
		trimmed = append(trimmed, &Contact{
			ID:        c.ID,
			Name:      strings.TrimSpace(c.Name),
			Secondary: strings.TrimSpace(c.Secondary),
			Email:     strings.TrimSpace(c.Email),
		})
	}
	return trimmed
}

// DedupeFirst removes repeated values, keeping each first occurrence in order.
func DedupeFirst(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		unique = append(unique, v)
	}
	return unique
}
