package rank

// Ranking scheme names as exposed in reports. Episodes before the
// Ascendant rework compress the top tier band; everything newer uses
// the full 28-tier ladder.
const (
	SchemeLegacy = "base"
	SchemeModern = "ascendant"
)

// UnknownTierName is returned for tier ids outside the catalog. Tier
// lookups never fail, they degrade to this label.
const UnknownTierName = "Unknown"

// DefaultLegacyEpisodeCutover is the first episode using the modern
// scheme. The exact cutover is not derivable from upstream data, so it
// stays configurable (see config.Config.LegacyEpisodeCutover).
const DefaultLegacyEpisodeCutover = 5

var tierNames = map[int]string{
	0:  "Unrated",
	1:  "Unused",
	2:  "Unused",
	3:  "Iron 1",
	4:  "Iron 2",
	5:  "Iron 3",
	6:  "Bronze 1",
	7:  "Bronze 2",
	8:  "Bronze 3",
	9:  "Silver 1",
	10: "Silver 2",
	11: "Silver 3",
	12: "Gold 1",
	13: "Gold 2",
	14: "Gold 3",
	15: "Platinum 1",
	16: "Platinum 2",
	17: "Platinum 3",
	18: "Diamond 1",
	19: "Diamond 2",
	20: "Diamond 3",
	21: "Ascendant 1",
	22: "Ascendant 2",
	23: "Ascendant 3",
	24: "Immortal 1",
	25: "Immortal 2",
	26: "Immortal 3",
	27: "Radiant",
}

// Pre-Ascendant episodes had no Ascendant band: ids 21-24 were the top
// of the ladder.
var legacyTierNames = map[int]string{
	21: "Immortal 1",
	22: "Immortal 2",
	23: "Immortal 3",
	24: "Radiant",
}

// Catalog resolves tier ids and season identifiers against the static
// tables. It is immutable after construction and safe for concurrent
// use.
type Catalog struct {
	legacyEpisodeCutover int
}

func NewCatalog(legacyEpisodeCutover int) *Catalog {
	if legacyEpisodeCutover <= 0 {
		legacyEpisodeCutover = DefaultLegacyEpisodeCutover
	}
	return &Catalog{legacyEpisodeCutover: legacyEpisodeCutover}
}

// TierName maps a tier id to its label under the ranking scheme of the
// given season short code. Unknown ids return UnknownTierName.
func (c *Catalog) TierName(tierID int, short string) string {
	if ep, _, ok := ParseShortCode(short); ok && ep < c.legacyEpisodeCutover {
		if name, ok := legacyTierNames[tierID]; ok {
			return name
		}
	}
	name, ok := tierNames[tierID]
	if !ok {
		return UnknownTierName
	}
	return name
}

// Scheme reports which ranking scheme applied during the given season.
// Seasons without a chronological short code default to the modern
// scheme.
func (c *Catalog) Scheme(seasonID string) string {
	return c.SchemeForShort(ShortCode(seasonID))
}

func (c *Catalog) SchemeForShort(short string) string {
	if ep, _, ok := ParseShortCode(short); ok && ep < c.legacyEpisodeCutover {
		return SchemeLegacy
	}
	return SchemeModern
}
