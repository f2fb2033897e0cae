// Package models contains domain types for the Pocket Morties API.
package models

import "fmt"

const assetBaseURL = "https://pocketmortys.net/media/com_pocketmortys/assets/"

// PocketMorty is one creature record from the upstream dataset.
// Field names follow the upstream JSON document.
type PocketMorty struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	AssetID    string   `json:"assetid"`
	Evolution  []int    `json:"evolution"`
	Evolutions []int    `json:"evolutions"`
	Rarity     string   `json:"rarity"`
	BaseHP     int      `json:"basehp"`
	BaseAtk    int      `json:"baseatk"`
	BaseDef    int      `json:"basedef"`
	BaseSpd    int      `json:"basespd"`
	BaseXP     int      `json:"basexp"`
	StatTotal  int      `json:"stattotal"`
	Dimensions string   `json:"dimensions"`
	WhereFound []string `json:"where_found"`
}

// FrontImageURL returns the front sprite URL derived from the asset id.
func (m *PocketMorty) FrontImageURL() string {
	return assetBaseURL + m.AssetID + "Front.png"
}

// BackImageURL returns the back sprite URL derived from the asset id.
func (m *PocketMorty) BackImageURL() string {
	return assetBaseURL + m.AssetID + "Back.png"
}

// CursorFor returns the pagination cursor for a record id.
// Cursors depend only on the id, so they survive re-sorting.
func CursorFor(id int) string {
	return fmt.Sprintf("cursor-%d", id)
}
