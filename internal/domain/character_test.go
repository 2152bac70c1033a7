package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/gdp/rpg-companion/internal/domain"
)

func TestClampStat(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{150, 100},
		{101, 100},
		{100, 100},
		{50, 50},
		{0, 0},
		{-10, 0},
		{9999, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.ClampStat(tt.in), "clamp(%d)", tt.in)
	}
}

func TestCharacter_ItemsRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		items []string
	}{
		{"empty list", []string{}},
		{"nil reads as empty", nil},
		{"single item", []string{"longsword"}},
		{"order preserved", []string{"rope", "torch", "rope", "rations"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c domain.Character
			require.NoError(t, c.SetItems(tt.items))

			got := c.ItemList()
			if tt.items == nil {
				assert.Equal(t, []string{}, got)
				return
			}
			assert.Equal(t, tt.items, got)
		})
	}
}

func TestCharacter_DebuffsRoundTrip(t *testing.T) {
	var c domain.Character
	debuffs := []string{"poisoned", "blinded"}
	require.NoError(t, c.SetDebuffs(debuffs))
	assert.Equal(t, debuffs, c.DebuffList())
}

func TestCharacter_ListDecodingIsLenient(t *testing.T) {
	c := domain.Character{
		Items:   datatypes.JSON(`not json`),
		Debuffs: nil,
	}
	assert.Equal(t, []string{}, c.ItemList())
	assert.Equal(t, []string{}, c.DebuffList())
}
