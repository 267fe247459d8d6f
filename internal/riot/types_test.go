package riot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valorant-mmr/internal/domain"
)

func TestShard(t *testing.T) {
	assert.Equal(t, "na", Shard("latam"))
	assert.Equal(t, "na", Shard("br"))
	assert.Equal(t, "eu", Shard("eu"))
	assert.Equal(t, "ap", Shard("ap"))
	assert.Equal(t, "na", Shard("somewhere-new"))
	assert.Equal(t, "na", Shard(""))
}

func TestToRatingSummaryNilResponse(t *testing.T) {
	acct := domain.Account{PUUID: "p", Name: "n", Tag: "t"}

	summary := ToRatingSummary(acct, nil, nil)

	assert.Equal(t, acct, summary.Account)
	assert.Empty(t, summary.Seasons)
	assert.Nil(t, summary.LatestUpdate)
}

func TestToRatingSummaryNormalizesSeasons(t *testing.T) {
	mmr := &PlayerMMRResponse{
		QueueSkills: map[string]QueueSkill{
			"competitive": {
				CurrentSeasonGamesNeededForRating: 3,
				SeasonalInfoBySeasonID: map[string]SeasonalInfo{
					"season-a": {
						CompetitiveTier: 18,
						RankedRating:    42,
						NumberOfGames:   20,
						NumberOfWins:    11,
						LeaderboardRank: -5, // malformed, clamps
						WinsByTier: map[string]int{
							"18":       9,
							"17":       2,
							"not-a-id": 4, // dropped
							"16":       0, // zero wins dropped
							"15":       -1,
						},
					},
				},
			},
			"deathmatch": {
				SeasonalInfoBySeasonID: map[string]SeasonalInfo{
					"ignored": {CompetitiveTier: 1},
				},
			},
		},
	}

	summary := ToRatingSummary(domain.Account{}, mmr, nil)

	assert.Equal(t, 3, summary.GamesNeededForRating)
	require.Len(t, summary.Seasons, 1)
	st := summary.Seasons["season-a"]
	assert.Equal(t, 18, st.Tier)
	assert.Equal(t, 42, st.RankedRating)
	assert.Equal(t, 0, st.LeaderboardRank)
	assert.Equal(t, map[int]int{18: 9, 17: 2}, st.WinsByTier)
}

func TestToRatingSummaryMapsUpdates(t *testing.T) {
	mmr := &PlayerMMRResponse{
		LatestCompetitiveUpdate: &CompetitiveUpdate{
			MatchID:                  "m-1",
			SeasonID:                 "season-a",
			MatchStartTime:           1_700_000_000_000,
			TierBeforeUpdate:         20,
			TierAfterUpdate:          21,
			RankedRatingBeforeUpdate: 95,
			RankedRatingAfterUpdate:  10,
			RankedRatingEarned:       15,
		},
	}
	updates := []CompetitiveUpdate{
		{MatchID: "m-1", SeasonID: "season-a", RankedRatingEarned: 15},
		{MatchID: "m-0", SeasonID: "season-a", RankedRatingEarned: -8, AFKPenalty: -3},
	}

	summary := ToRatingSummary(domain.Account{}, mmr, updates)

	require.NotNil(t, summary.LatestUpdate)
	assert.Equal(t, "m-1", summary.LatestUpdate.MatchID)
	assert.Equal(t, 21, summary.LatestUpdate.TierAfter)
	assert.Equal(t, 10, summary.LatestUpdate.RRAfter)
	assert.Equal(t, int64(1_700_000_000_000), summary.LatestUpdate.MatchStartMS)

	require.Len(t, summary.Updates, 2)
	assert.Equal(t, -8, summary.Updates[1].RREarned)
	assert.Equal(t, 0, summary.Updates[1].AFKPenalty)
}

func TestToRatingSummaryIgnoresEmptyLatestUpdate(t *testing.T) {
	mmr := &PlayerMMRResponse{
		LatestCompetitiveUpdate: &CompetitiveUpdate{SeasonID: ""},
	}

	summary := ToRatingSummary(domain.Account{}, mmr, nil)
	assert.Nil(t, summary.LatestUpdate)
}
