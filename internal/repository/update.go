package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"valorant-mmr/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// UpdateRepository persists the competitive update log. The upstream
// window is bounded, so rows accumulated over time can reach further back
// than any single fetch.
type UpdateRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewUpdateRepository(db *sql.DB, logger zerolog.Logger) *UpdateRepository {
	return &UpdateRepository{db: db, logger: logger}
}

func (r *UpdateRepository) UpsertBatch(ctx context.Context, puuid string, updates []domain.MatchUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO match_updates (
			id, puuid, match_id, season_id,
			tier_before, tier_after, rr_before, rr_after, rr_earned,
			match_start_ms, afk_penalty, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (puuid, match_id) DO UPDATE SET
			season_id = excluded.season_id,
			tier_before = excluded.tier_before,
			tier_after = excluded.tier_after,
			rr_before = excluded.rr_before,
			rr_after = excluded.rr_after,
			rr_earned = excluded.rr_earned,
			match_start_ms = excluded.match_start_ms,
			afk_penalty = excluded.afk_penalty,
			updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, u := range updates {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
		_, err = stmt.ExecContext(ctx,
			id, puuid, u.MatchID, u.SeasonID,
			u.TierBefore, u.TierAfter, u.RRBefore, u.RRAfter, u.RREarned,
			u.MatchStartMS, u.AFKPenalty, now, now)
		if err != nil {
			return fmt.Errorf("failed to upsert match update: %w", err)
		}
	}

	return tx.Commit()
}

func (r *UpdateRepository) ListByPUUID(ctx context.Context, puuid string, limit int) ([]domain.MatchUpdate, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT match_id, season_id,
			tier_before, tier_after, rr_before, rr_after, rr_earned,
			match_start_ms, afk_penalty
		FROM match_updates
		WHERE puuid = ?
		ORDER BY match_start_ms DESC
		LIMIT ?`, puuid, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var updates []domain.MatchUpdate
	for rows.Next() {
		var u domain.MatchUpdate
		if err := rows.Scan(
			&u.MatchID, &u.SeasonID,
			&u.TierBefore, &u.TierAfter, &u.RRBefore, &u.RRAfter, &u.RREarned,
			&u.MatchStartMS, &u.AFKPenalty,
		); err != nil {
			return nil, err
		}
		updates = append(updates, u)
	}
	return updates, rows.Err()
}
