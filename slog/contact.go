package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/harvest"
)

// Ensure LoggingContactService implements harvest.ContactService.
var _ harvest.ContactService = (*LoggingContactService)(nil)

// LoggingContactService wraps a ContactService with logging.
type LoggingContactService struct {
	next   harvest.ContactService
	logger *slog.Logger
}

// NewLoggingContactService creates a new LoggingContactService.
func NewLoggingContactService(next harvest.ContactService, logger *slog.Logger) *LoggingContactService {
	return &LoggingContactService{next: next, logger: logger}
}

// InsertIfAbsent delegates to the wrapped service and logs whether the
// contact was absorbed as a duplicate.
func (s *LoggingContactService) InsertIfAbsent(ctx context.Context, c *harvest.Contact) (absorbed bool, err error) {
	defer func(begin time.Time) {
		s.logger.Info("insert contact",
			"email", c.Email,
			"absorbed", absorbed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.InsertIfAbsent(ctx, c)
}

// FindContacts delegates to the wrapped service and logs the result count.
func (s *LoggingContactService) FindContacts(ctx context.Context, filter harvest.ContactFilter) (contacts []*harvest.Contact, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find contacts",
			"count", len(contacts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindContacts(ctx, filter)
}
