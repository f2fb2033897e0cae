package llm

import (
	"fmt"
	"regexp"
	"strings"
)

// thinkTagPattern matches <think>...</think> tags that may appear at the start of LLM responses.
var thinkTagPattern = regexp.MustCompile(`(?s)^[\s]*<think>.*?</think>[\s]*`)

// codeFencePattern captures the body of the first fenced block.
var codeFencePattern = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*\n(.*?)```")

// queryKeywordPattern finds an operation keyword followed by a selection set.
var queryKeywordPattern = regexp.MustCompile(`\bquery(\s+\w+)?\s*(\([^)]*\))?\s*\{`)

// ExtractGraphQLQuery pulls a GraphQL document out of a model response that
// may contain <think> tags, markdown code fences, labels or surrounding prose.
// The result starts at the "query" keyword when present, otherwise at the
// first brace, and ends at the matching closing brace.
func ExtractGraphQLQuery(response string) (string, error) {
	cleaned := thinkTagPattern.ReplaceAllString(response, "")

	if m := codeFencePattern.FindStringSubmatch(cleaned); m != nil {
		cleaned = m[1]
	}

	// Models often answer with the query as an escaped string literal.
	cleaned = strings.ReplaceAll(cleaned, `\"`, `"`)

	start := -1
	if loc := queryKeywordPattern.FindStringIndex(cleaned); loc != nil {
		start = loc[0]
	} else {
		start = strings.IndexByte(cleaned, '{')
	}
	if start < 0 {
		return "", fmt.Errorf("no GraphQL query found in response")
	}

	rest := cleaned[start:]
	body, ok := extractBalanced(rest, '{', '}')
	if !ok {
		return "", fmt.Errorf("unbalanced braces in GraphQL query")
	}

	prefix := rest[:strings.IndexByte(rest, '{')]
	return strings.TrimSpace(prefix + body), nil
}

// extractBalanced finds the first balanced structure starting with openChar.
// It handles nested structures by counting bracket depth and skips
// brackets inside double-quoted strings.
func extractBalanced(s string, openChar, closeChar byte) (string, bool) {
	start := strings.IndexByte(s, openChar)
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}

		if c == '\\' && inString {
			escaped = true
			continue
		}

		if c == '"' {
			inString = !inString
			continue
		}

		if inString {
			continue
		}

		if c == openChar {
			depth++
		} else if c == closeChar {
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}
