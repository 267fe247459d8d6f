package domain

import (
	"time"
)

// Account identifies the player a report belongs to. Name and tag are
// carried verbatim from the identity lookup, no validation here.
type Account struct {
	PUUID string `json:"puuid"`
	Name  string `json:"name"`
	Tag   string `json:"tag"`
}

// SeasonStanding is one season's aggregate from the rating service.
// WinsByTier is the only record of intra-season tier movement: it counts,
// per tier, how many wins happened while the player was placed there.
type SeasonStanding struct {
	Tier              int
	RankedRating      int
	Games             int
	Wins              int
	LeaderboardRank   int
	ProtectionShields int
	WinsByTier        map[int]int
}

// MatchUpdate is one entry of the competitive update log: the rating
// movement caused by a single rated match. The upstream log is paginated
// and truncated, so old seasons may have no entries at all.
type MatchUpdate struct {
	MatchID      string `json:"match_id"`
	SeasonID     string `json:"season_id"`
	TierBefore   int    `json:"tier_before"`
	TierAfter    int    `json:"tier_after"`
	RRBefore     int    `json:"rr_before"`
	RRAfter      int    `json:"rr_after"`
	RREarned     int    `json:"rr_earned"`
	MatchStartMS int64  `json:"match_start_ms"`
	AFKPenalty   int    `json:"afk_penalty"`
}

// RatingSummary is the fully assembled input for one aggregation pass:
// the season-keyed rating record plus the match update log, both fetched
// by the caller beforehand. Immutable once built.
type RatingSummary struct {
	Account              Account
	GamesNeededForRating int
	Seasons              map[string]SeasonStanding
	LatestUpdate         *MatchUpdate
	Updates              []MatchUpdate
}

type Tier struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Season struct {
	ID    string `json:"id"`
	Short string `json:"short"`
}

// LeaderboardPlacement is only present when a season reported a positive
// leaderboard rank. Estimated marks an UpdatedAt that was substituted
// with the report generation time because no match update covered the
// season.
type LeaderboardPlacement struct {
	Rank      int       `json:"rank"`
	UpdatedAt time.Time `json:"updated_at"`
	Estimated bool      `json:"estimated,omitempty"`
}

type CurrentRank struct {
	Tier                 Tier                  `json:"tier"`
	RR                   int                   `json:"rr"`
	LastChange           int                   `json:"last_change"`
	Elo                  int                   `json:"elo"`
	GamesNeededForRating int                   `json:"games_needed_for_rating"`
	ProtectionShields    int                   `json:"rank_protection_shields"`
	Leaderboard          *LeaderboardPlacement `json:"leaderboard_placement"`
}

type PeakRank struct {
	Season Season `json:"season"`
	Scheme string `json:"ranking_schema"`
	Tier   Tier   `json:"tier"`
	RR     int    `json:"rr"`
}

// SeasonSummary is one entry of the chronological breakdown. ActWins is
// a multiset reconstructed from per-tier win counts, not a timeline: the
// source data carries no per-win timestamps, so entries are ordered
// tier-descending by construction, not by actual match order.
type SeasonSummary struct {
	Season      Season                `json:"season"`
	Games       int                   `json:"games"`
	Wins        int                   `json:"wins"`
	EndTier     Tier                  `json:"end_tier"`
	EndRR       int                   `json:"end_rr"`
	Scheme      string                `json:"ranking_schema"`
	Leaderboard *LeaderboardPlacement `json:"leaderboard_placement"`
	ActWins     []Tier                `json:"act_wins"`
}

// RankHistoryReport is the normalized rank history for one player.
// Recomputed in full on every aggregation, never partially emitted.
type RankHistoryReport struct {
	Account  Account         `json:"account"`
	Current  CurrentRank     `json:"current"`
	Peak     PeakRank        `json:"peak"`
	Seasonal []SeasonSummary `json:"seasonal"`
}
