package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildQueryGenerationPrompt(t *testing.T) {
	prompt := BuildQueryGenerationPrompt("worst 2 by speed")

	assert.Contains(t, prompt, `"worst 2 by speed"`)
	assert.Contains(t, prompt, "sortedMorties")
	assert.Contains(t, prompt, `sortBy: "basedef", last: 5`)
	assert.Contains(t, prompt, `sortBy: "baseatk", first: 3`)
	assert.Contains(t, prompt, `"stattotal"`)
	assert.Contains(t, prompt, "id, name, assetid, basehp, baseatk, basedef, basespd, basexp")
}

func TestBuildFreeformSystemPrompt(t *testing.T) {
	prompt := BuildFreeformSystemPrompt()

	assert.Contains(t, prompt, `sortedMorties(sortBy: "basedef", first: 3)`)
	assert.Contains(t, prompt, `sortedMorties(sortBy: "baseatk", last: 3)`)
	assert.Contains(t, prompt, `"basehp", "baseatk", "basedef", "basespd", "basexp", "stattotal", "assetid"`)
}
