package models

import (
	"cmp"
	"strconv"
	"strings"

	"github.com/doctorew/pocket-morties/pkg/apperrors"
)

// SortKey is a record field that results can be ordered by.
type SortKey string

const (
	SortKeyBaseHP    SortKey = "basehp"
	SortKeyBaseAtk   SortKey = "baseatk"
	SortKeyBaseDef   SortKey = "basedef"
	SortKeyBaseSpd   SortKey = "basespd"
	SortKeyBaseXP    SortKey = "basexp"
	SortKeyStatTotal SortKey = "stattotal"
	SortKeyAssetID   SortKey = "assetid"
)

var sortKeys = []SortKey{
	SortKeyBaseHP,
	SortKeyBaseAtk,
	SortKeyBaseDef,
	SortKeyBaseSpd,
	SortKeyBaseXP,
	SortKeyStatTotal,
	SortKeyAssetID,
}

// SortKeys returns every valid sort key in declaration order.
func SortKeys() []SortKey {
	out := make([]SortKey, len(sortKeys))
	copy(out, sortKeys)
	return out
}

// ParseSortKey validates a user-supplied sort key. Matching is
// case-insensitive; unknown keys are rejected with ErrInvalidArgument.
func ParseSortKey(s string) (SortKey, error) {
	candidate := SortKey(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range sortKeys {
		if k == candidate {
			return k, nil
		}
	}
	return "", apperrors.InvalidArgument("unknown sort key %q", s)
}

// Compare orders a before b (negative), equal (zero) or after (positive)
// in ascending order of the key.
func (k SortKey) Compare(a, b *PocketMorty) int {
	if k == SortKeyAssetID {
		return strings.Compare(a.AssetID, b.AssetID)
	}
	return cmp.Compare(k.Stat(a), k.Stat(b))
}

// Stat returns the numeric value of the key for a record. It returns 0 for
// assetid; use Value for a printable form of any key.
func (k SortKey) Stat(m *PocketMorty) int {
	switch k {
	case SortKeyBaseHP:
		return m.BaseHP
	case SortKeyBaseAtk:
		return m.BaseAtk
	case SortKeyBaseDef:
		return m.BaseDef
	case SortKeyBaseSpd:
		return m.BaseSpd
	case SortKeyBaseXP:
		return m.BaseXP
	case SortKeyStatTotal:
		return m.StatTotal
	}
	return 0
}

// Value returns the key's value for a record as display text.
func (k SortKey) Value(m *PocketMorty) string {
	if k == SortKeyAssetID {
		return m.AssetID
	}
	return strconv.Itoa(k.Stat(m))
}

func (k SortKey) String() string {
	return string(k)
}
