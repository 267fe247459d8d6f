package fx

import (
	"valorant-mmr/internal/config"
	"valorant-mmr/internal/database"
	"valorant-mmr/internal/logger"
	"valorant-mmr/internal/rank"
	"valorant-mmr/internal/repository"
	"valorant-mmr/internal/riot"
	"valorant-mmr/internal/server"
	"valorant-mmr/internal/service"

	"go.uber.org/fx"
)

func ProvideCatalog(cfg *config.Config) *rank.Catalog {
	return rank.NewCatalog(cfg.LegacyEpisodeCutover)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewReportRepository),
	fx.Provide(repository.NewUpdateRepository),
	// api client
	fx.Provide(riot.NewClient),
	// core
	fx.Provide(ProvideCatalog),
	fx.Provide(rank.NewAggregator),
	// svc
	fx.Provide(service.NewRankService),
	// server
	fx.Provide(server.NewServer),
)
