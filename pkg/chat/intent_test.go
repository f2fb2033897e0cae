package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Intent
	}{
		{"top by stat", "top morties by baseatk", TopByStat{Stat: "baseatk", Count: TopCount}},
		{"top is case-insensitive", "Show me the TOP Morties By BaseDef please", TopByStat{Stat: "basedef", Count: TopCount}},
		{"top with unknown stat", "top morties by wingspan", TopByStat{Stat: "wingspan", Count: TopCount}},
		{"top without stat", "top morties by", TopByStat{Stat: "", Count: TopCount}},
		{"worst by stat", "worst morties by basedef", BottomByStat{Stat: "basedef", Count: BottomCount}},
		{"bottom by stat", "Bottom Morties by basespd", BottomByStat{Stat: "basespd", Count: BottomCount}},
		{"json", "analyze the JSON file", JSONAnalysis{}},
		{"graphql keeps remainder casing", "GraphQL query { sortKeys }", GraphQLPassthrough{Seed: "query { sortKeys }"}},
		{"graphql wins over json", "graphql json top morties by basehp", GraphQLPassthrough{Seed: "json top morties by basehp"}},
		{"json wins over top", "json top morties by basehp", JSONAnalysis{}},
		{"freeform", "who is the strongest Morty?", FreeformCompletion{Text: "who is the strongest Morty?"}},
		{"empty text", "", FreeformCompletion{Text: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestIntentKinds(t *testing.T) {
	assert.Equal(t, KindGraphQLPassthrough, GraphQLPassthrough{}.Kind())
	assert.Equal(t, KindJSONAnalysis, JSONAnalysis{}.Kind())
	assert.Equal(t, KindTopByStat, TopByStat{}.Kind())
	assert.Equal(t, KindBottomByStat, BottomByStat{}.Kind())
	assert.Equal(t, KindFreeformCompletion, FreeformCompletion{}.Kind())
}
