// Package prompts builds the system prompts sent to the completion service.
package prompts

import (
	"fmt"
	"strings"

	"github.com/doctorew/pocket-morties/pkg/models"
)

// QueryFields are the record fields the model may request in a generated
// query's node selection.
var QueryFields = []string{"id", "name", "assetid", "basehp", "baseatk", "basedef", "basespd", "basexp"}

// BuildQueryGenerationPrompt creates the system prompt that asks the model to
// translate userRequest into a single sortedMorties query.
func BuildQueryGenerationPrompt(userRequest string) string {
	var prompt strings.Builder

	prompt.WriteString("# GraphQL Query Generation\n\n")
	prompt.WriteString("Turn the user request below into one GraphQL query against the Pocket Morties API.\n\n")

	prompt.WriteString("## Rules\n\n")
	prompt.WriteString("- Every query calls `sortedMorties` with a `sortBy` string and exactly one of `first` or `last`.\n")
	prompt.WriteString("- Use `first` when the user asks for the top or best records.\n")
	prompt.WriteString("- Use `last` when the user asks for the worst, lowest or bottom records.\n")
	prompt.WriteString("- The `first`/`last` value is the number the user asked for.\n")
	prompt.WriteString("- Select the record under `node` and always include `cursor`.\n")
	prompt.WriteString(fmt.Sprintf("- Fields: %s.\n", strings.Join(QueryFields, ", ")))
	prompt.WriteString(fmt.Sprintf("- Valid sortBy values: %s.\n\n", quotedSortKeys()))

	prompt.WriteString("## Examples\n\n")
	prompt.WriteString("Request: \"Show the top 3 Morties by base attack\"\n")
	prompt.WriteString(fmt.Sprintf("Query: %s\n\n", exampleQuery(models.SortKeyBaseAtk, "first", 3)))
	prompt.WriteString("Request: \"Show the worst 5 Morties by base defense\"\n")
	prompt.WriteString(fmt.Sprintf("Query: %s\n\n", exampleQuery(models.SortKeyBaseDef, "last", 5)))

	prompt.WriteString("## Request\n\n")
	prompt.WriteString(fmt.Sprintf("%q\n\n", userRequest))
	prompt.WriteString("Respond with the query only.\n")

	return prompt.String()
}

func exampleQuery(key models.SortKey, direction string, n int) string {
	return fmt.Sprintf("query { sortedMorties(sortBy: %q, %s: %d) { node { %s } cursor } }",
		key, direction, n, strings.Join(QueryFields, " "))
}

func quotedSortKeys() string {
	keys := models.SortKeys()
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = fmt.Sprintf("%q", k)
	}
	return strings.Join(quoted, ", ")
}
