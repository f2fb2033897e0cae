package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/doctorew/pocket-morties/pkg/models"
	"github.com/doctorew/pocket-morties/pkg/testhelpers"
)

func TestNewServer_RegistersTools(t *testing.T) {
	s := NewServer("1.0.0", testhelpers.NewStaticSource([]models.PocketMorty{{ID: 1, Name: "Morty"}}), zap.NewNop())
	require.NotNil(t, s.MCP())

	result := s.MCP().HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","method":"tools/list","id":1}`))
	raw, err := json.Marshal(result)
	require.NoError(t, err)

	var response struct {
		Result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(raw, &response))

	var names []string
	for _, tool := range response.Result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"health", "get_pocket_morty", "sorted_pocket_morties", "search_pocket_morties"}, names)
}

func TestServer_NewStreamableHTTPServer(t *testing.T) {
	s := NewServer("1.0.0", testhelpers.NewStaticSource(nil), zap.NewNop())
	assert.NotNil(t, s.NewStreamableHTTPServer())
}
