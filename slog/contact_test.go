package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/mock"
	harvestslog "github.com/fwojciec/harvest/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingContactService_InsertIfAbsent(t *testing.T) {
	t.Parallel()

	t.Run("logs absorbed duplicate", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ContactService{
			InsertIfAbsentFn: func(_ context.Context, _ *harvest.Contact) (bool, error) {
				return true, nil
			},
		}

		svc := harvestslog.NewLoggingContactService(inner, logger)
		absorbed, err := svc.InsertIfAbsent(context.Background(), &harvest.Contact{Email: "ming@example.com"})

		require.NoError(t, err)
		assert.True(t, absorbed)
		output := buf.String()
		assert.Contains(t, output, "insert contact")
		assert.Contains(t, output, "email=ming@example.com")
		assert.Contains(t, output, "absorbed=true")
	})

	t.Run("logs storage error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ContactService{
			InsertIfAbsentFn: func(_ context.Context, _ *harvest.Contact) (bool, error) {
				return false, errors.New("disk full")
			},
		}

		svc := harvestslog.NewLoggingContactService(inner, logger)
		_, err := svc.InsertIfAbsent(context.Background(), &harvest.Contact{Email: "ming@example.com"})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "absorbed=false")
		assert.Contains(t, output, "err=\"disk full\"")
	})
}

func TestLoggingContactService_FindContacts(t *testing.T) {
	t.Parallel()

	t.Run("logs result count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		var gotFilter harvest.ContactFilter
		inner := &mock.ContactService{
			FindContactsFn: func(_ context.Context, filter harvest.ContactFilter) ([]*harvest.Contact, error) {
				gotFilter = filter
				return []*harvest.Contact{{ID: 1}, {ID: 2}, {ID: 3}}, nil
			},
		}

		svc := harvestslog.NewLoggingContactService(inner, logger)
		contacts, err := svc.FindContacts(context.Background(), harvest.ContactFilter{Limit: 10})

		require.NoError(t, err)
		assert.Len(t, contacts, 3)
		assert.Equal(t, 10, gotFilter.Limit)
		assert.Contains(t, buf.String(), "find contacts")
		assert.Contains(t, buf.String(), "count=3")
	})
}
