package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Season identifiers reused across the rank tests, straight from the
// season catalog.
const (
	seasonE1A2  = "0530b9c4-4980-f2ee-df5d-09864cd00542"
	seasonE2A1  = "97b6e739-44cc-ffa7-49ad-398ba502ceb0"
	seasonE4A1  = "573f53ac-41a5-3a7d-d9ce-d6a6298e5704"
	seasonE5A1  = "67e373c7-48f7-b422-641b-079ace30b427"
	seasonE8A1  = "22d10d66-4d2a-a340-6c54-408c7bd53807"
	seasonE8A3  = "4539cac3-47ae-90e5-3d01-b3812ca3274e"
	seasonE10A7 = "ec876e6c-43e8-fa63-ffc1-2e8d4db25525"
)

func TestTierNameModernLabelsAreUnique(t *testing.T) {
	catalog := NewCatalog(0)

	seen := make(map[string]int)
	for id := 3; id <= 27; id++ {
		name := catalog.TierName(id, "e8a1")
		assert.NotEqual(t, UnknownTierName, name, "tier %d must resolve", id)
		if prev, dup := seen[name]; dup {
			t.Errorf("tiers %d and %d share label %q", prev, id, name)
		}
		seen[name] = id
	}
}

func TestTierNameLegacyTopBand(t *testing.T) {
	catalog := NewCatalog(0)

	tests := []struct {
		tier  int
		short string
		want  string
	}{
		{21, "e4a1", "Immortal 1"},
		{22, "e4a1", "Immortal 2"},
		{23, "e4a1", "Immortal 3"},
		{24, "e4a1", "Radiant"},
		{20, "e4a1", "Diamond 3"},
		{21, "e5a1", "Ascendant 1"},
		{24, "e5a1", "Immortal 1"},
		{27, "e5a1", "Radiant"},
		{21, "e1a2", "Immortal 1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, catalog.TierName(tt.tier, tt.short), "tier %d in %s", tt.tier, tt.short)
	}
}

func TestTierNameUnknownIDs(t *testing.T) {
	catalog := NewCatalog(0)

	assert.Equal(t, UnknownTierName, catalog.TierName(99, "e8a1"))
	assert.Equal(t, UnknownTierName, catalog.TierName(-1, "e8a1"))
	assert.Equal(t, UnknownTierName, catalog.TierName(28, "e4a1"))
	assert.Equal(t, "Unrated", catalog.TierName(0, "e8a1"))
}

func TestScheme(t *testing.T) {
	catalog := NewCatalog(0)

	assert.Equal(t, SchemeLegacy, catalog.Scheme(seasonE4A1))
	assert.Equal(t, SchemeModern, catalog.Scheme(seasonE5A1))
	assert.Equal(t, SchemeModern, catalog.Scheme(seasonE10A7))

	// Seasons that fail chronological parsing default to modern.
	assert.Equal(t, SchemeModern, catalog.Scheme("not-in-the-catalog"))
	assert.Equal(t, SchemeModern, catalog.Scheme(""))
}

func TestSchemeCutoverIsConfigurable(t *testing.T) {
	catalog := NewCatalog(9)

	assert.Equal(t, SchemeLegacy, catalog.Scheme(seasonE8A1))
	assert.Equal(t, SchemeModern, catalog.Scheme(seasonE10A7))
	assert.Equal(t, "Immortal 1", catalog.TierName(21, "e8a1"))
}
