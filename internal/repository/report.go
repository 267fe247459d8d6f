package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"valorant-mmr/internal/domain"

	"github.com/rs/zerolog"
)

// ErrNotFound is returned when no cached row exists for the lookup key.
var ErrNotFound = errors.New("not found")

// ReportRepository caches serialized rank history reports per player so
// repeated lookups inside the TTL window skip the upstream round trips.
type ReportRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewReportRepository(db *sql.DB, logger zerolog.Logger) *ReportRepository {
	return &ReportRepository{db: db, logger: logger}
}

func (r *ReportRepository) Get(ctx context.Context, puuid string) (*domain.RankHistoryReport, time.Time, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT body, fetched_at FROM reports WHERE puuid = ?`, puuid)
	return scanReport(row)
}

func (r *ReportRepository) GetByName(ctx context.Context, name, tag string) (*domain.RankHistoryReport, time.Time, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT body, fetched_at FROM reports WHERE name = ? COLLATE NOCASE AND tag = ? COLLATE NOCASE`, name, tag)
	return scanReport(row)
}

func (r *ReportRepository) Upsert(ctx context.Context, report *domain.RankHistoryReport, fetchedAt time.Time) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO reports (puuid, name, tag, body, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (puuid) DO UPDATE SET
			name = excluded.name,
			tag = excluded.tag,
			body = excluded.body,
			fetched_at = excluded.fetched_at`,
		report.Account.PUUID, report.Account.Name, report.Account.Tag, string(body), fetchedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert report: %w", err)
	}
	return nil
}

func scanReport(row *sql.Row) (*domain.RankHistoryReport, time.Time, error) {
	var (
		body      string
		fetchedAt time.Time
	)
	if err := row.Scan(&body, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, time.Time{}, ErrNotFound
		}
		return nil, time.Time{}, err
	}

	var report domain.RankHistoryReport
	if err := json.Unmarshal([]byte(body), &report); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &report, fetchedAt, nil
}
