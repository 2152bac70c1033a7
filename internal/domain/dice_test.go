package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gdp/rpg-companion/internal/domain"
)

func TestIsValidDiceType(t *testing.T) {
	tests := []struct {
		diceType int
		want     bool
	}{
		{4, true},
		{20, true},
		{100, true},
		{6, false},
		{0, false},
		{-20, false},
		{99, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.IsValidDiceType(tt.diceType), "dice type %d", tt.diceType)
	}
}

func TestSpecialEffect(t *testing.T) {
	tests := []struct {
		name     string
		diceType int
		result   int
		want     string
	}{
		{"d20 natural 20", 20, 20, domain.EffectCriticalSuccess},
		{"d20 natural 1", 20, 1, domain.EffectCriticalFailure},
		{"d20 midrange", 20, 10, ""},
		{"d20 nineteen", 20, 19, ""},
		{"d4 max is not a crit", 4, 4, ""},
		{"d4 one is not a fumble", 4, 1, ""},
		{"d100 max is not a crit", 100, 100, ""},
		{"d100 one is not a fumble", 100, 1, ""},
		{"d100 twenty is not a crit", 100, 20, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.SpecialEffect(tt.diceType, tt.result))
		})
	}
}
