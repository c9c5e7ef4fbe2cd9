package mock

import (
	"context"

	"github.com/fwojciec/harvest"
)

var _ harvest.ContactService = (*ContactService)(nil)

// ContactService is a mock implementation of harvest.ContactService.
type ContactService struct {
	InsertIfAbsentFn func(ctx context.Context, c *harvest.Contact) (bool, error)
	FindContactsFn   func(ctx context.Context, filter harvest.ContactFilter) ([]*harvest.Contact, error)
}

func (s *ContactService) InsertIfAbsent(ctx context.Context, c *harvest.Contact) (bool, error) {
	return s.InsertIfAbsentFn(ctx, c)
}

func (s *ContactService) FindContacts(ctx context.Context, filter harvest.ContactFilter) ([]*harvest.Contact, error) {
	return s.FindContactsFn(ctx, filter)
}
