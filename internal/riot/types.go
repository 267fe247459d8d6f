package riot

import (
	"strconv"

	"valorant-mmr/internal/domain"
)

type versionResponse struct {
	Data struct {
		RiotClientVersion string `json:"riotClientVersion"`
	} `json:"data"`
}

type entitlementResponse struct {
	EntitlementsToken string `json:"entitlements_token"`
}

type geoResponse struct {
	Affinities struct {
		Live string `json:"live"`
	} `json:"affinities"`
}

type Alias struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"game_name"`
	TagLine  string `json:"tag_line"`
}

type aliasResponse []Alias

// PlayerMMRResponse mirrors the pd mmr/v1 payload. Only the competitive
// queue is consumed; everything else stays opaque.
type PlayerMMRResponse struct {
	Version                       int                   `json:"Version"`
	Subject                       string                `json:"Subject"`
	QueueSkills                   map[string]QueueSkill `json:"QueueSkills"`
	LatestCompetitiveUpdate       *CompetitiveUpdate    `json:"LatestCompetitiveUpdate"`
	DerankProtectedGamesRemaining int                   `json:"DerankProtectedGamesRemaining"`
}

type QueueSkill struct {
	TotalGamesNeededForRating         int                         `json:"TotalGamesNeededForRating"`
	CurrentSeasonGamesNeededForRating int                         `json:"CurrentSeasonGamesNeededForRating"`
	SeasonalInfoBySeasonID            map[string]SeasonalInfo     `json:"SeasonalInfoBySeasonID"`
}

type SeasonalInfo struct {
	SeasonID                   string         `json:"SeasonID"`
	NumberOfWins               int            `json:"NumberOfWins"`
	NumberOfGames              int            `json:"NumberOfGames"`
	CompetitiveTier            int            `json:"CompetitiveTier"`
	RankedRating               int            `json:"RankedRating"`
	WinsByTier                 map[string]int `json:"WinsByTier"`
	LeaderboardRank            int            `json:"LeaderboardRank"`
	RankProtectionFirstPlateau int            `json:"RankProtectionFirstPlateau"`
}

type CompetitiveUpdate struct {
	MatchID                  string `json:"MatchID"`
	SeasonID                 string `json:"SeasonID"`
	MatchStartTime           int64  `json:"MatchStartTime"`
	TierBeforeUpdate         int    `json:"TierBeforeUpdate"`
	TierAfterUpdate          int    `json:"TierAfterUpdate"`
	RankedRatingBeforeUpdate int    `json:"RankedRatingBeforeUpdate"`
	RankedRatingAfterUpdate  int    `json:"RankedRatingAfterUpdate"`
	RankedRatingEarned       int    `json:"RankedRatingEarned"`
	AFKPenalty               int    `json:"AFKPenalty"`
}

type competitiveUpdatesResponse struct {
	Version int                 `json:"Version"`
	Matches []CompetitiveUpdate `json:"Matches"`
}

// ToRatingSummary is the single defaulting point between the loosely
// shaped upstream JSON and the typed aggregation input: absent maps,
// string-keyed tier ids and negative counters are all normalized here so
// the aggregator never has to.
func ToRatingSummary(acct domain.Account, mmr *PlayerMMRResponse, updates []CompetitiveUpdate) domain.RatingSummary {
	summary := domain.RatingSummary{
		Account: acct,
		Seasons: map[string]domain.SeasonStanding{},
	}
	if mmr == nil {
		return summary
	}

	if queue, ok := mmr.QueueSkills["competitive"]; ok {
		summary.GamesNeededForRating = queue.CurrentSeasonGamesNeededForRating
		for sid, info := range queue.SeasonalInfoBySeasonID {
			summary.Seasons[sid] = toStanding(info)
		}
	}
	if lu := mmr.LatestCompetitiveUpdate; lu != nil && lu.SeasonID != "" {
		update := toMatchUpdate(*lu)
		summary.LatestUpdate = &update
	}
	summary.Updates = make([]domain.MatchUpdate, 0, len(updates))
	for _, u := range updates {
		summary.Updates = append(summary.Updates, toMatchUpdate(u))
	}
	return summary
}

func toStanding(info SeasonalInfo) domain.SeasonStanding {
	st := domain.SeasonStanding{
		Tier:              clampNonNegative(info.CompetitiveTier),
		RankedRating:      clampNonNegative(info.RankedRating),
		Games:             clampNonNegative(info.NumberOfGames),
		Wins:              clampNonNegative(info.NumberOfWins),
		LeaderboardRank:   clampNonNegative(info.LeaderboardRank),
		ProtectionShields: clampNonNegative(info.RankProtectionFirstPlateau),
	}
	if len(info.WinsByTier) > 0 {
		st.WinsByTier = make(map[int]int, len(info.WinsByTier))
		for tierStr, count := range info.WinsByTier {
			tier, err := strconv.Atoi(tierStr)
			if err != nil || count <= 0 {
				continue
			}
			st.WinsByTier[tier] = count
		}
	}
	return st
}

func toMatchUpdate(u CompetitiveUpdate) domain.MatchUpdate {
	return domain.MatchUpdate{
		MatchID:      u.MatchID,
		SeasonID:     u.SeasonID,
		TierBefore:   u.TierBeforeUpdate,
		TierAfter:    u.TierAfterUpdate,
		RRBefore:     u.RankedRatingBeforeUpdate,
		RRAfter:      u.RankedRatingAfterUpdate,
		RREarned:     u.RankedRatingEarned,
		MatchStartMS: u.MatchStartTime,
		AFKPenalty:   clampNonNegative(u.AFKPenalty),
	}
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
