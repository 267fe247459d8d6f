package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortCode(t *testing.T) {
	assert.Equal(t, "e1a2", ShortCode(seasonE1A2))
	assert.Equal(t, "e10a7", ShortCode(seasonE10A7))

	// Unknown identifiers degrade to a non-chronological prefix.
	assert.Equal(t, "dead", ShortCode("DEADBEEF-0000-0000-0000-000000000000"))
	assert.Equal(t, "ab", ShortCode("ab"))
	assert.Equal(t, "unknown", ShortCode(""))
}

func TestParseShortCode(t *testing.T) {
	tests := []struct {
		short   string
		episode int
		act     int
		ok      bool
	}{
		{"e8a3", 8, 3, true},
		{"e10a7", 10, 7, true},
		{"e1a2", 1, 2, true},
		{"unknown", 0, 0, false},
		{"22d1", 0, 0, false},
		{"e8", 0, 0, false},
		{"ea3", 0, 0, false},
		{"a3e8", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		ep, act, ok := ParseShortCode(tt.short)
		assert.Equal(t, tt.ok, ok, "parse %q", tt.short)
		if tt.ok {
			assert.Equal(t, tt.episode, ep, "episode of %q", tt.short)
			assert.Equal(t, tt.act, act, "act of %q", tt.short)
		}
	}
}

// Placeholder short codes must never collide with valid chronological
// codes, otherwise an unmapped season could sneak into the breakdown.
func TestPlaceholderShortCodesNeverParse(t *testing.T) {
	for id := range seasonShortCodes {
		placeholder := id[:4]
		_, _, ok := ParseShortCode(placeholder)
		assert.False(t, ok, "uuid prefix %q must not parse as episode/act", placeholder)
	}
}

func TestSortChronological(t *testing.T) {
	shuffled := []string{seasonE10A7, seasonE1A2, seasonE8A3, seasonE4A1, seasonE8A1}

	got := SortChronological(shuffled)

	require.Equal(t, []string{seasonE1A2, seasonE4A1, seasonE8A1, seasonE8A3, seasonE10A7}, got)
	// Input is not mutated.
	assert.Equal(t, seasonE10A7, shuffled[0])
}

func TestSortChronologicalExcludesUnmapped(t *testing.T) {
	ids := []string{"ffff-not-a-season", seasonE8A1, "", seasonE1A2}

	got := SortChronological(ids)

	assert.Equal(t, []string{seasonE1A2, seasonE8A1}, got)
}

func TestSortChronologicalEmpty(t *testing.T) {
	assert.Empty(t, SortChronological(nil))
	assert.Empty(t, SortChronological([]string{"bogus"}))
}
