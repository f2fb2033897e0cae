// Package logging builds the zap logger and scrubs values before they are logged.
package logging

import (
	"regexp"
	"strings"
)

const (
	// MaxQueryLogLength is the maximum length of a GraphQL query to log
	MaxQueryLogLength = 200
	// RedactedText is the replacement text for sensitive data
	RedactedText = "[REDACTED]"
)

var (
	// Bearer tokens in echoed request headers
	bearerPattern = regexp.MustCompile(`Bearer\s+[A-Za-z0-9\-_.=]+`)

	// api_key=..., apikey=..., key=... parameters
	apiKeyPattern = regexp.MustCompile(`(?i)(api[_-]?key|apikey|key)=[A-Za-z0-9\-_]{20,}`)

	// OpenAI and Anthropic secret keys (sk-..., sk-ant-...)
	secretKeyPattern = regexp.MustCompile(`sk-[A-Za-z0-9\-_]{16,}`)

	// x-api-key: header values
	headerKeyPattern = regexp.MustCompile(`(?i)(x-api-key:\s*)\S+`)

	whitespacePattern = regexp.MustCompile(`\s+`)
)

// SanitizeError renders err with credentials removed.
// Use this before logging any error returned by a completion provider.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return sanitize(err.Error())
}

func sanitize(s string) string {
	s = bearerPattern.ReplaceAllString(s, "Bearer "+RedactedText)
	s = apiKeyPattern.ReplaceAllString(s, "${1}="+RedactedText)
	s = secretKeyPattern.ReplaceAllString(s, RedactedText)
	s = headerKeyPattern.ReplaceAllString(s, "${1}"+RedactedText)
	return s
}

// SanitizeQuery collapses whitespace in a GraphQL query and truncates it
// for logging.
func SanitizeQuery(query string) string {
	if query == "" {
		return ""
	}
	collapsed := strings.TrimSpace(whitespacePattern.ReplaceAllString(query, " "))
	return sanitize(TruncateString(collapsed, MaxQueryLogLength))
}

// TruncateString truncates a string to maxLen runes and adds ellipsis if needed
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
