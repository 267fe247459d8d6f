package rank

import (
	"errors"
	"sort"
	"time"

	"valorant-mmr/internal/domain"
)

// ErrNoRatingData is returned when the rating record carries no seasons
// at all. This is the only failure the aggregator surfaces; every other
// defect in the input degrades the affected values instead.
var ErrNoRatingData = errors.New("no competitive rating data")

// Aggregator turns a raw rating summary into a normalized rank history
// report. It is pure: no I/O, no shared state, one complete report per
// call.
type Aggregator struct {
	catalog *Catalog
	now     func() time.Time
}

func NewAggregator(catalog *Catalog) *Aggregator {
	return &Aggregator{catalog: catalog, now: time.Now}
}

func (a *Aggregator) Build(in domain.RatingSummary) (*domain.RankHistoryReport, error) {
	if len(in.Seasons) == 0 {
		return nil, ErrNoRatingData
	}
	generatedAt := a.now().UTC()

	return &domain.RankHistoryReport{
		Account:  in.Account,
		Current:  a.current(in, generatedAt),
		Peak:     a.peak(in.Seasons),
		Seasonal: a.seasonal(in, generatedAt),
	}, nil
}

// Elo flattens tier+RR onto a single ladder where each ranked tier spans
// exactly 100 points. Iron 1 (tier 3) starts at 0; the unranked band
// below it clamps to 0. Display metric only, never used for comparisons.
func Elo(tier, rr int) int {
	if tier < 3 {
		return 0
	}
	if rr < 0 {
		rr = 0
	}
	return (tier-3)*100 + rr%100
}

// peak finds the highest tier the player ever won at least one match at,
// across every season regardless of chronology. A season with an empty
// WinsByTier cannot contribute: placement without a win does not count.
// Ties on tier resolve to the season with the higher end-of-season RR;
// iterating in sorted key order keeps the result independent of map
// iteration order.
func (a *Aggregator) peak(seasons map[string]domain.SeasonStanding) domain.PeakRank {
	ids := sortedKeys(seasons)

	peakTier, peakRR := 0, 0
	peakSeason := ""
	for _, id := range ids {
		st := seasons[id]
		maxTier := 0
		for tier, wins := range st.WinsByTier {
			if wins > 0 && tier > maxTier {
				maxTier = tier
			}
		}
		if maxTier == 0 {
			continue
		}
		switch {
		case maxTier > peakTier:
			peakTier, peakRR, peakSeason = maxTier, st.RankedRating, id
		case maxTier == peakTier && st.RankedRating > peakRR:
			peakRR, peakSeason = st.RankedRating, id
		}
	}

	short := ShortCode(peakSeason)
	return domain.PeakRank{
		Season: domain.Season{ID: peakSeason, Short: short},
		Scheme: a.catalog.SchemeForShort(short),
		Tier:   domain.Tier{ID: peakTier, Name: a.catalog.TierName(peakTier, short)},
		RR:     peakRR,
	}
}

// current merges the two sources that can name the active season. The
// latest competitive update wins when present: it reflects the exact
// outcome of the last rated match, which the seasonal aggregate may not
// have caught up with yet. The aggregate still supplies the fields the
// update does not carry (games needed, protection shields, leaderboard).
func (a *Aggregator) current(in domain.RatingSummary, generatedAt time.Time) domain.CurrentRank {
	var (
		seasonID string
		standing domain.SeasonStanding
		tier, rr int
	)
	if lu := in.LatestUpdate; lu != nil && lu.SeasonID != "" {
		seasonID = lu.SeasonID
		standing = in.Seasons[seasonID]
		tier = lu.TierAfter
		rr = lu.RRAfter
	} else {
		seasonID = a.latestSeason(in.Seasons)
		standing = in.Seasons[seasonID]
		tier = standing.Tier
		rr = standing.RankedRating
	}

	short := ShortCode(seasonID)
	cur := domain.CurrentRank{
		Tier:                 domain.Tier{ID: tier, Name: a.catalog.TierName(tier, short)},
		RR:                   rr,
		Elo:                  Elo(tier, rr),
		GamesNeededForRating: in.GamesNeededForRating,
		ProtectionShields:    standing.ProtectionShields,
	}
	if in.LatestUpdate != nil {
		cur.LastChange = in.LatestUpdate.RREarned
	}
	if standing.LeaderboardRank > 0 {
		cur.Leaderboard = a.leaderboard(standing.LeaderboardRank, seasonID, in, generatedAt)
	}
	return cur
}

// latestSeason picks the chronologically newest season in the record.
// When no season parses chronologically the greatest identifier keeps
// the report usable rather than empty.
func (a *Aggregator) latestSeason(seasons map[string]domain.SeasonStanding) string {
	ids := sortedKeys(seasons)
	if ordered := SortChronological(ids); len(ordered) > 0 {
		return ordered[len(ordered)-1]
	}
	if len(ids) == 0 {
		return ""
	}
	return ids[len(ids)-1]
}

func (a *Aggregator) seasonal(in domain.RatingSummary, generatedAt time.Time) []domain.SeasonSummary {
	ordered := SortChronological(sortedKeys(in.Seasons))

	out := make([]domain.SeasonSummary, 0, len(ordered))
	for _, sid := range ordered {
		st := in.Seasons[sid]
		short := ShortCode(sid)
		summary := domain.SeasonSummary{
			Season:  domain.Season{ID: sid, Short: short},
			Games:   st.Games,
			Wins:    st.Wins,
			EndTier: domain.Tier{ID: st.Tier, Name: a.catalog.TierName(st.Tier, short)},
			EndRR:   st.RankedRating,
			Scheme:  a.catalog.SchemeForShort(short),
			ActWins: a.actWins(st.WinsByTier, short),
		}
		if st.LeaderboardRank > 0 {
			summary.Leaderboard = a.leaderboard(st.LeaderboardRank, sid, in, generatedAt)
		}
		out = append(out, summary)
	}
	return out
}

// actWins expands per-tier win counters into one entry per win, highest
// tier first. The result is a multiset: the source carries no per-win
// timestamps, so this is not match order.
func (a *Aggregator) actWins(winsByTier map[int]int, short string) []domain.Tier {
	if len(winsByTier) == 0 {
		return []domain.Tier{}
	}
	tiers := make([]int, 0, len(winsByTier))
	for tier := range winsByTier {
		tiers = append(tiers, tier)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(tiers)))

	var wins []domain.Tier
	for _, tier := range tiers {
		name := a.catalog.TierName(tier, short)
		for i := 0; i < winsByTier[tier]; i++ {
			wins = append(wins, domain.Tier{ID: tier, Name: name})
		}
	}
	return wins
}

// leaderboard resolves the "updated at" timestamp for a leaderboard
// placement by scanning the match updates for the season. The update log
// is truncated upstream, so old seasons often have no covering entry; in
// that case the report generation time stands in, flagged as estimated.
func (a *Aggregator) leaderboard(lbRank int, seasonID string, in domain.RatingSummary, generatedAt time.Time) *domain.LeaderboardPlacement {
	var latest int64
	for _, u := range in.Updates {
		if u.SeasonID == seasonID && u.MatchStartMS > latest {
			latest = u.MatchStartMS
		}
	}
	if lu := in.LatestUpdate; lu != nil && lu.SeasonID == seasonID && lu.MatchStartMS > latest {
		latest = lu.MatchStartMS
	}
	if latest == 0 {
		return &domain.LeaderboardPlacement{Rank: lbRank, UpdatedAt: generatedAt, Estimated: true}
	}
	return &domain.LeaderboardPlacement{Rank: lbRank, UpdatedAt: time.UnixMilli(latest).UTC()}
}

func sortedKeys(seasons map[string]domain.SeasonStanding) []string {
	ids := make([]string, 0, len(seasons))
	for id := range seasons {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
