package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkInsertIfAbsent compares the pre-check read of the triple policy
// with the constraint-only path of the email policy on a file database.
func BenchmarkInsertIfAbsent(b *testing.B) {
	for _, policy := range []harvest.UniquePolicy{harvest.PolicyTriple, harvest.PolicyEmail} {
		b.Run(string(policy), func(b *testing.B) {
			db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"), sqlite.WithPolicy(policy))
			require.NoError(b, db.Open())
			defer db.Close()

			svc := sqlite.NewContactService(db)
			ctx := context.Background()

			for i := 0; b.Loop(); i++ {
				// Every other insert is a duplicate of the previous one.
				n := i / 2
				_, err := svc.InsertIfAbsent(ctx, &harvest.Contact{
					Name:      fmt.Sprintf("name-%d", n),
					Secondary: fmt.Sprintf("%03d", n%1000),
					Email:     fmt.Sprintf("user%d@example.com", n),
				})
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
