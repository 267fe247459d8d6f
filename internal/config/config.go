package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"valorant-mmr/internal/rank"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	RiotAccessToken string
	RiotIDToken     string
	Region          string
	DBPath          string
	ServerPort      string
	LogLevel        string

	// LegacyEpisodeCutover is the first episode on the modern ranking
	// scheme. There is no authoritative source for the cutover, so it is
	// configuration rather than a derived constant.
	LegacyEpisodeCutover int

	ReportTTL time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		RiotAccessToken:      getEnv("RIOT_ACCESS_TOKEN", ""),
		RiotIDToken:          getEnv("RIOT_ID_TOKEN", ""),
		Region:               getEnv("RIOT_REGION", ""),
		DBPath:               getEnv("DB_PATH", "rankhistory.db"),
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LegacyEpisodeCutover: getEnvInt("LEGACY_EPISODE_CUTOVER", rank.DefaultLegacyEpisodeCutover),
		ReportTTL:            5 * time.Minute,
	}

	if cfg.RiotAccessToken == "" {
		return nil, fmt.Errorf("RIOT_ACCESS_TOKEN is required")
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Int("legacy_episode_cutover", cfg.LegacyEpisodeCutover).
		Dur("report_ttl", cfg.ReportTTL).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

var Module = fx.Provide(Load)
