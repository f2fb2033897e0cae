// Package query filters, sorts and paginates Pocket Morty records.
// Every function is pure: inputs are never mutated and results depend only
// on the arguments.
package query

import (
	"slices"

	"github.com/doctorew/pocket-morties/pkg/models"
)

// Filter is a conjunction of optional predicates. A nil or empty field
// places no constraint on the result.
type Filter struct {
	Types      []string
	Rarities   []string
	Dimensions []string
	WhereFound []string // matches when any location is shared

	BaseHP    *int
	BaseAtk   *int
	BaseDef   *int
	BaseSpd   *int
	BaseXP    *int
	StatTotal *int
	AssetID   *string
}

// IsEmpty reports whether the filter has no predicates.
func (f Filter) IsEmpty() bool {
	return len(f.Types) == 0 && len(f.Rarities) == 0 && len(f.Dimensions) == 0 &&
		len(f.WhereFound) == 0 && f.BaseHP == nil && f.BaseAtk == nil && f.BaseDef == nil &&
		f.BaseSpd == nil && f.BaseXP == nil && f.StatTotal == nil && f.AssetID == nil
}

// Matches reports whether a record satisfies every set predicate.
func (f Filter) Matches(m *models.PocketMorty) bool {
	if len(f.Types) > 0 && !slices.Contains(f.Types, m.Type) {
		return false
	}
	if len(f.Rarities) > 0 && !slices.Contains(f.Rarities, m.Rarity) {
		return false
	}
	if len(f.Dimensions) > 0 && !slices.Contains(f.Dimensions, m.Dimensions) {
		return false
	}
	if len(f.WhereFound) > 0 && !slices.ContainsFunc(f.WhereFound, func(loc string) bool {
		return slices.Contains(m.WhereFound, loc)
	}) {
		return false
	}

	return intMatches(f.BaseHP, m.BaseHP) &&
		intMatches(f.BaseAtk, m.BaseAtk) &&
		intMatches(f.BaseDef, m.BaseDef) &&
		intMatches(f.BaseSpd, m.BaseSpd) &&
		intMatches(f.BaseXP, m.BaseXP) &&
		intMatches(f.StatTotal, m.StatTotal) &&
		(f.AssetID == nil || *f.AssetID == m.AssetID)
}

func intMatches(want *int, got int) bool {
	return want == nil || *want == got
}

// Apply returns the subsequence of records matching f, in input order.
func Apply(records []models.PocketMorty, f Filter) []models.PocketMorty {
	if f.IsEmpty() {
		return slices.Clone(records)
	}
	out := make([]models.PocketMorty, 0, len(records))
	for i := range records {
		if f.Matches(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}
