package sqlite

import (
	"context"
	"strings"

	"github.com/fwojciec/harvest"
)

// Compile-time interface verification.
var _ harvest.ContactService = (*ContactService)(nil)

// ContactService implements harvest.ContactService using SQLite.
// The uniqueness policy is taken from the DB.
type ContactService struct {
	db *DB
}

// NewContactService creates a new ContactService.
func NewContactService(db *DB) *ContactService {
	return &ContactService{db: db}
}

// InsertIfAbsent stores c unless it is a duplicate under the DB's policy.
//
// PolicyTriple has no structural constraint, so the exact triple is looked
// up first. Under PolicyEmail a conflict on the unique email index is a
// duplicate, not a failure. Any other storage error is returned as
// EINTERNAL.
func (s *ContactService) InsertIfAbsent(ctx context.Context, c *harvest.Contact) (bool, error) {
	if s.db.policy == harvest.PolicyTriple {
		var count int
		err := s.db.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM contacts
			WHERE name = ? AND secondary = ? AND email = ?
		`, c.Name, c.Secondary, c.Email).Scan(&count)
		if err != nil {
			return false, harvest.WrapError(harvest.EINTERNAL, err, "failed to look up contact")
		}
		if count > 0 {
			return true, nil
		}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contacts (name, secondary, email)
		VALUES (?, ?, ?)
	`, c.Name, c.Secondary, c.Email)
	if s.db.policy == harvest.PolicyEmail && isUniqueViolation(err) {
		return true, nil
	}
	if err != nil {
		return false, harvest.WrapError(harvest.EINTERNAL, err, "failed to insert contact")
	}

	return false, nil
}

// FindContacts retrieves stored contacts matching the filter in insertion order.
func (s *ContactService) FindContacts(ctx context.Context, filter harvest.ContactFilter) ([]*harvest.Contact, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, secondary, email FROM contacts WHERE 1=1")

	if filter.Email != nil {
		query.WriteString(" AND email = ?")
		args = append(args, *filter.Email)
	}

	query.WriteString(" ORDER BY id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, harvest.WrapError(harvest.EINTERNAL, err, "failed to query contacts")
	}
	defer rows.Close()

	var contacts []*harvest.Contact
	for rows.Next() {
		var c harvest.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Secondary, &c.Email); err != nil {
			return nil, harvest.WrapError(harvest.EINTERNAL, err, "failed to scan contact")
		}
		contacts = append(contacts, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, harvest.WrapError(harvest.EINTERNAL, err, "failed to read contacts")
	}

	return contacts, nil
}
