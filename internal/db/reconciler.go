package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// appendMissing adds to users.blogs any blog id whose owner column points
// at the user but which is absent from the array. The join applies one
// row per user per pass; repeated passes converge.
const appendMissing = `
    UPDATE users u SET blogs = u.blogs || b.id
      FROM blogs b
     WHERE b.owner = u.id
       AND NOT (b.id = ANY(u.blogs))
`

// pruneDangling drops from users.blogs any id whose blog row no longer
// exists, preserving the original order of the remaining ids.
const pruneDangling = `
    UPDATE users SET blogs = ARRAY(
        SELECT t.bid FROM unnest(users.blogs) WITH ORDINALITY AS t(bid, ord)
         WHERE EXISTS (SELECT 1 FROM blogs WHERE blogs.id = t.bid)
         ORDER BY t.ord)
     WHERE EXISTS (
        SELECT 1 FROM unnest(users.blogs) AS bid
         WHERE NOT EXISTS (SELECT 1 FROM blogs WHERE blogs.id = bid))
`

// StartOwnershipReconciler repairs drift between blogs.owner and
// users.blogs with the given interval. The create and delete paths write
// the blog row and the owner's blog list as two separate statements, so
// a crash between them can strand either side; this pass closes that
// window in both directions.
func StartOwnershipReconciler(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for _, q := range []string{appendMissing, pruneDangling} {
					res, err := db.ExecContext(ctx, q)
					if err != nil {
						log.Error("ownership reconciliation failed", zap.Error(err))
						continue
					}
					rows, err := res.RowsAffected()
					if err != nil {
						log.Error("failed to read reconciliation result", zap.Error(err))
						continue
					}
					if rows > 0 {
						log.Info("repaired blog ownership references", zap.Int64("users", rows))
					}
				}
			}
		}
	}()
}
