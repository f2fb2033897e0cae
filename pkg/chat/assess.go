package chat

import (
	"fmt"
	"strings"

	"github.com/doctorew/pocket-morties/pkg/models"
)

var descendingWords = []string{"worst", "lowest", "least", "bottom"}

var fieldAliases = map[string]string{
	"attack": "baseatk",
}

// RewriteQuery fixes common mistakes in a generated query. When the request
// asks for the lowest records the first "first:" becomes "last:", and loose
// field names are mapped to their wire names.
func RewriteQuery(request, gqlQuery string) string {
	lower := strings.ToLower(request)
	for _, w := range descendingWords {
		if strings.Contains(lower, w) {
			gqlQuery = strings.Replace(gqlQuery, "first:", "last:", 1)
			break
		}
	}
	for from, to := range fieldAliases {
		gqlQuery = strings.ReplaceAll(gqlQuery, from, to)
	}
	return gqlQuery
}

// AssessResponse reduces a GraphQL response to what the chat client shows:
// the errors, the sortedMorties nodes, or a no-data marker.
func AssessResponse(resp *models.GraphQLResponse) map[string]any {
	if resp == nil {
		return map[string]any{"error": "No data returned"}
	}
	if resp.HasErrors() {
		return map[string]any{"error": "Error in GraphQL response", "details": resp.Errors}
	}

	edges, ok := resp.Data["sortedMorties"].([]any)
	if !ok {
		return map[string]any{"error": "No data returned"}
	}

	morties := make([]any, 0, len(edges))
	for _, e := range edges {
		edge, ok := e.(map[string]any)
		if !ok {
			continue
		}
		morties = append(morties, edge["node"])
	}
	return map[string]any{"morties": morties}
}

func summarize(assessment map[string]any) string {
	if errs, ok := assessment["details"].([]models.GraphQLError); ok {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Message
		}
		return "The GraphQL query failed: " + strings.Join(msgs, "; ")
	}

	morties, ok := assessment["morties"].([]any)
	if !ok || len(morties) == 0 {
		return "The GraphQL query returned no data."
	}

	var b strings.Builder
	b.WriteString("Here are the results of your GraphQL query:\n")
	for i, m := range morties {
		node, _ := m.(map[string]any)
		name, _ := node["name"].(string)
		if name == "" {
			name = fmt.Sprintf("result %d", i+1)
		}
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, name))
	}
	return b.String()
}
