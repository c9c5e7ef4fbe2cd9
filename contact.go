package harvest

import "context"

// Contact represents one extracted contact record.
//
// Secondary holds the shape-dependent attribute: a phone number, an
// extension or a job title. Absent fields are empty strings.
type Contact struct {
	ID        int    `json:"id,omitempty"`
	Name      string `json:"name"`
	Secondary string `json:"secondary"`
	Email     string `json:"email"`
}

// UniquePolicy decides when a stored contact counts as a duplicate.
type UniquePolicy string

// UniquePolicy constants.
const (
	// PolicyTriple rejects a contact whose name, secondary and email all
	// match a stored row.
	PolicyTriple UniquePolicy = "triple"

	// PolicyEmail rejects a contact whose email matches a stored row,
	// regardless of the other fields.
	PolicyEmail UniquePolicy = "email"
)

// Validate returns EINVALID for an unknown policy.
func (p UniquePolicy) Validate() error {
	switch p {
	case PolicyTriple, PolicyEmail:
		return nil
	}
	return Errorf(EINVALID, "unknown uniqueness policy %q (want %q or %q)", string(p), PolicyTriple, PolicyEmail)
}

// ContactWriter writes contacts to storage.
type ContactWriter interface {
	// InsertIfAbsent stores the contact unless the store's uniqueness
	// policy already considers it present. A duplicate is not an error:
	// it is reported as absorbed == true and nothing is written.
	InsertIfAbsent(ctx context.Context, c *Contact) (absorbed bool, err error)
}

// ContactService represents a service for managing stored contacts.
type ContactService interface {
	ContactWriter

	// FindContacts retrieves stored contacts in insertion order.
	FindContacts(ctx context.Context, filter ContactFilter) ([]*Contact, error)
}

// ContactFilter represents a filter for FindContacts.
type ContactFilter struct {
	Email *string `json:"email"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SaveResult summarizes a SaveAll call.
type SaveResult struct {
	Inserted int
	Absorbed int
}

// SaveAll inserts contacts in order and stops at the first storage fault.
// Duplicates never stop the loop.
func SaveAll(ctx context.Context, w ContactWriter, contacts []*Contact) (SaveResult, error) {
	var result SaveResult
	for _, c := range contacts {
		absorbed, err := w.InsertIfAbsent(ctx, c)
		if err != nil {
			return result, err
		}
		if absorbed {
			result.Absorbed++
		} else {
			result.Inserted++
		}
	}
	return result, nil
}
