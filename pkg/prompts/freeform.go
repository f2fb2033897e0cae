package prompts

import (
	"fmt"
	"strings"

	"github.com/doctorew/pocket-morties/pkg/models"
)

// BuildFreeformSystemPrompt creates the system prompt used for messages that
// match no chat intent. It describes the query shape with two worked
// examples so the model can answer in terms of the API.
func BuildFreeformSystemPrompt() string {
	var prompt strings.Builder

	prompt.WriteString("You are a helpful assistant that translates plain language into GraphQL queries for the Pocket Morties API.\n\n")

	prompt.WriteString("When asked for the top or best in defense:\n")
	prompt.WriteString(fencedQuery(models.SortKeyBaseDef, "first", 3))
	prompt.WriteString("When asked for the lowest or worst in attack:\n")
	prompt.WriteString(fencedQuery(models.SortKeyBaseAtk, "last", 3))

	prompt.WriteString(fmt.Sprintf("Valid sort fields are: %s.\n", quotedSortKeys()))
	prompt.WriteString("Translate user requests into corresponding GraphQL queries.\n")

	return prompt.String()
}

func fencedQuery(key models.SortKey, direction string, n int) string {
	var b strings.Builder
	b.WriteString("```\n")
	b.WriteString("query {\n")
	b.WriteString(fmt.Sprintf("  sortedMorties(sortBy: %q, %s: %d) {\n", key, direction, n))
	b.WriteString("    node {\n")
	for _, f := range QueryFields {
		b.WriteString("      " + f + "\n")
	}
	b.WriteString("    }\n")
	b.WriteString("    cursor\n")
	b.WriteString("  }\n")
	b.WriteString("}\n")
	b.WriteString("```\n\n")
	return b.String()
}
