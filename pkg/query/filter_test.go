package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doctorew/pocket-morties/pkg/models"
)

func ids(records []models.PocketMorty) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestApply_EmptyFilterReturnsInputUnchanged(t *testing.T) {
	records := fiveMorties()
	got := Apply(records, Filter{})

	assert.Equal(t, records, got)

	// Returned slice is independent of the input.
	got[0].Name = "changed"
	assert.Equal(t, "Morty", records[0].Name)
}

func TestApply_Predicates(t *testing.T) {
	atk := 25
	asset := "MortyB"

	tests := []struct {
		name   string
		filter Filter
		want   []int
	}{
		{"type membership", Filter{Types: []string{"Rock"}}, []int{1, 2}},
		{"rarity membership", Filter{Rarities: []string{"Common", "Epic"}}, []int{1, 3, 4}},
		{"where found intersects", Filter{WhereFound: []string{"Citadel"}}, []int{2, 4}},
		{"exact stat", Filter{BaseAtk: &atk}, []int{3}},
		{"asset id", Filter{AssetID: &asset}, []int{5}},
		{"conjunction", Filter{Types: []string{"Rock"}, Rarities: []string{"Rare"}}, []int{2}},
		{"no match", Filter{Types: []string{"Laser"}}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(fiveMorties(), tt.filter)))
		})
	}
}

func TestFilter_IsEmpty(t *testing.T) {
	assert.True(t, Filter{}.IsEmpty())
	assert.True(t, Filter{Types: []string{}}.IsEmpty())
	hp := 0
	assert.False(t, Filter{BaseHP: &hp}.IsEmpty())
}
