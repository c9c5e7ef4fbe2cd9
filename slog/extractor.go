package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/harvest"
)

// Ensure LoggingExtractor implements harvest.Extractor.
var _ harvest.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   harvest.Extractor
	shape  harvest.SourceShape
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor. The shape is only
// used as a log attribute.
func NewLoggingExtractor(next harvest.Extractor, shape harvest.SourceShape, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, shape: shape, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the record count.
func (e *LoggingExtractor) Extract(html string) (contacts []*harvest.Contact, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"shape", string(e.shape),
			"bytes", len(html),
			"count", len(contacts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}
