package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"valorant-mmr/internal/config"
	"valorant-mmr/internal/constants"
	"valorant-mmr/internal/domain"
	"valorant-mmr/internal/rank"
	"valorant-mmr/internal/repository"
	"valorant-mmr/internal/riot"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// RankService assembles rank history reports: resolve identity, fetch
// the rating record and the update log in parallel, aggregate, cache.
type RankService struct {
	riot       *riot.Client
	reports    *repository.ReportRepository
	updates    *repository.UpdateRepository
	aggregator *rank.Aggregator
	cfg        *config.Config
	logger     zerolog.Logger
}

func NewRankService(
	riotClient *riot.Client,
	reports *repository.ReportRepository,
	updates *repository.UpdateRepository,
	aggregator *rank.Aggregator,
	cfg *config.Config,
	logger zerolog.Logger,
) *RankService {
	return &RankService{
		riot:       riotClient,
		reports:    reports,
		updates:    updates,
		aggregator: aggregator,
		cfg:        cfg,
		logger:     logger,
	}
}

func (s *RankService) GetRankHistory(ctx context.Context, name, tag, region string, refresh bool) (*domain.RankHistoryReport, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	name, err := url.QueryUnescape(name)
	if err != nil {
		return nil, fmt.Errorf("failed to unescape name: %w", err)
	}
	tag, err = url.QueryUnescape(tag)
	if err != nil {
		return nil, fmt.Errorf("failed to unescape tag: %w", err)
	}

	s.logger.Info().Str("name", name).Str("tag", tag).Bool("refresh", refresh).Msg("getting rank history")

	if !refresh {
		cached, fetchedAt, err := s.reports.GetByName(ctx, name, tag)
		if err == nil && time.Since(fetchedAt) < s.cfg.ReportTTL {
			s.logger.Info().Str("puuid", cached.Account.PUUID).Msg("returning cached report")
			return cached, nil
		}
	}

	alias, err := s.riot.ResolvePUUID(ctx, name, tag)
	if err != nil {
		s.logger.Error().Err(err).Str("name", name).Str("tag", tag).Msg("failed to resolve player")
		return nil, err
	}
	account := domain.Account{PUUID: alias.PUUID, Name: alias.GameName, Tag: alias.TagLine}
	if account.Name == "" {
		account.Name = name
	}
	if account.Tag == "" {
		account.Tag = tag
	}

	shard := riot.Shard(s.resolveRegion(ctx, region))

	var (
		mmr     *riot.PlayerMMRResponse
		updates []riot.CompetitiveUpdate
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fetchCtx, cancel := context.WithTimeout(gctx, constants.ExternalAPITimeout)
		defer cancel()
		var err error
		mmr, err = s.riot.PlayerMMR(fetchCtx, shard, account.PUUID)
		return err
	})
	g.Go(func() error {
		fetchCtx, cancel := context.WithTimeout(gctx, constants.RequestTimeout)
		defer cancel()
		var err error
		updates, err = s.riot.CompetitiveUpdates(fetchCtx, shard, account.PUUID, constants.UpdateFetchLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("puuid", account.PUUID).Msg("failed to fetch rating data")
		return nil, fmt.Errorf("failed to fetch rating data: %w", err)
	}

	summary := riot.ToRatingSummary(account, mmr, updates)
	report, err := s.aggregator.Build(summary)
	if err != nil {
		return nil, err
	}

	if err := s.updates.UpsertBatch(ctx, account.PUUID, summary.Updates); err != nil {
		s.logger.Warn().Err(err).Str("puuid", account.PUUID).Msg("failed to store match updates")
	}
	if err := s.reports.Upsert(ctx, report, time.Now().UTC()); err != nil {
		s.logger.Warn().Err(err).Str("puuid", account.PUUID).Msg("failed to cache report")
	}

	s.logger.Info().
		Str("puuid", account.PUUID).
		Int("seasons", len(report.Seasonal)).
		Int("updates", len(summary.Updates)).
		Msg("rank history built")
	return report, nil
}

// GetMatchUpdates serves the locally accumulated update log for a
// player.
func (s *RankService) GetMatchUpdates(ctx context.Context, puuid string, limit int) ([]domain.MatchUpdate, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if limit <= 0 || limit > constants.UpdateFetchLimit {
		limit = constants.UpdateFetchLimit
	}
	return s.updates.ListByPUUID(ctx, puuid, limit)
}

// resolveRegion prefers the explicit request parameter, then the
// configured override, then the geo endpoint, then na.
func (s *RankService) resolveRegion(ctx context.Context, region string) string {
	if region != "" {
		return region
	}
	if s.cfg.Region != "" {
		return s.cfg.Region
	}
	geoCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()
	detected, err := s.riot.PlayerRegion(geoCtx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("region detection failed, defaulting to na")
		return "na"
	}
	return detected
}
