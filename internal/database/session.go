// internal/database/session.go
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Adam-Agbaria/numbers-game-server/internal/models"
)

// ArchiveSession persists a finished session and all of its round results
// in one transaction. Re-archiving the same session is an upsert, so a
// lifecycle retry never duplicates rows.
//
// Expected schema:
//
//	sessions(id text primary key, total_rounds int, status text, created_at timestamptz)
//	round_results(session_id text, round int, target double precision,
//	              winners text[], submissions jsonb,
//	              primary key(session_id, round))
func ArchiveSession(ctx context.Context, sess *models.Session) error {
	err := pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		upsert := `
			INSERT INTO sessions (id, total_rounds, status, created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET status = $3
		`
		if _, e := tx.Exec(ctx, upsert, sess.ID, sess.TotalRounds, string(sess.Status), sess.CreatedAt); e != nil {
			return e
		}

		for _, result := range sess.RoundResults {
			q := `
				INSERT INTO round_results (session_id, round, target, winners, submissions)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (session_id, round) DO NOTHING
			`
			if _, e := tx.Exec(ctx, q, sess.ID, result.Round, result.Target, result.Winners, result.Submissions); e != nil {
				return e
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("archive session %s: %w", sess.ID, err)
	}
	return nil
}
