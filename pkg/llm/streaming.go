package llm

import (
	"iter"
	"strings"
)

// Collect drains seq and concatenates its fragments. Partial text is
// discarded when the sequence ends with an error.
func Collect(seq iter.Seq2[string, error]) (string, error) {
	var sb strings.Builder
	for fragment, err := range seq {
		if err != nil {
			return "", err
		}
		sb.WriteString(fragment)
	}
	return sb.String(), nil
}

// Fragments returns a sequence yielding each fragment and then err, if any.
func Fragments(fragments []string, err error) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, f := range fragments {
			if !yield(f, nil) {
				return
			}
		}
		if err != nil {
			yield("", err)
		}
	}
}
