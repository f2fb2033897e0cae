// Package chat turns free-text chat messages into query engine calls or
// completion requests.
package chat

import (
	"regexp"
	"strings"
)

// Intent kinds, also used as metric labels.
const (
	KindGraphQLPassthrough = "graphql_passthrough"
	KindJSONAnalysis       = "json_analysis"
	KindTopByStat          = "top_by_stat"
	KindBottomByStat       = "bottom_by_stat"
	KindFreeformCompletion = "freeform_completion"
)

// Default result counts for the stat intents.
const (
	TopCount    = 5
	BottomCount = 3
)

// Intent is a classified chat message. The concrete types below are the
// only implementations.
type Intent interface {
	Kind() string
}

// GraphQLPassthrough runs a GraphQL query built from Seed.
type GraphQLPassthrough struct {
	Seed string
}

// JSONAnalysis reports the strongest attackers from the local dataset copy.
type JSONAnalysis struct{}

// TopByStat lists the Count highest records by Stat. Stat is unvalidated.
type TopByStat struct {
	Stat  string
	Count int
}

// BottomByStat lists the Count lowest records by Stat. Stat is unvalidated.
type BottomByStat struct {
	Stat  string
	Count int
}

// FreeformCompletion forwards Text to the completion service.
type FreeformCompletion struct {
	Text string
}

func (GraphQLPassthrough) Kind() string { return KindGraphQLPassthrough }
func (JSONAnalysis) Kind() string       { return KindJSONAnalysis }
func (TopByStat) Kind() string          { return KindTopByStat }
func (BottomByStat) Kind() string       { return KindBottomByStat }
func (FreeformCompletion) Kind() string { return KindFreeformCompletion }

var (
	graphqlKeyword = regexp.MustCompile(`(?i)graphql`)
	topPattern     = regexp.MustCompile(`top morties by (\w+)`)
	bottomPattern  = regexp.MustCompile(`(?:worst|bottom) morties by (\w+)`)
)

// rule matches against the lowercased text; original keeps the user's casing.
type rule func(lower, original string) (Intent, bool)

// rules are evaluated in order; the first match wins.
var rules = []rule{
	func(lower, original string) (Intent, bool) {
		if !strings.Contains(lower, "graphql") {
			return nil, false
		}
		return GraphQLPassthrough{Seed: stripFirst(graphqlKeyword, original)}, true
	},
	func(lower, _ string) (Intent, bool) {
		return JSONAnalysis{}, strings.Contains(lower, "json")
	},
	func(lower, _ string) (Intent, bool) {
		if !strings.Contains(lower, "top morties by") {
			return nil, false
		}
		return TopByStat{Stat: firstGroup(topPattern, lower), Count: TopCount}, true
	},
	func(lower, _ string) (Intent, bool) {
		if !strings.Contains(lower, "worst morties by") && !strings.Contains(lower, "bottom morties by") {
			return nil, false
		}
		return BottomByStat{Stat: firstGroup(bottomPattern, lower), Count: BottomCount}, true
	},
}

// Classify maps text to an intent. Matching is case-insensitive and never
// fails: text matching no rule is a FreeformCompletion.
func Classify(text string) Intent {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if intent, ok := r(lower, text); ok {
			return intent
		}
	}
	return FreeformCompletion{Text: text}
}

func stripFirst(re *regexp.Regexp, s string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(s[:loc[0]] + s[loc[1]:])
}

func firstGroup(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}
