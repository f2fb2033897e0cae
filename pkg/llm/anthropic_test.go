package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/doctorew/pocket-morties/pkg/apperrors"
)

func writeEvent(w io.Writer, event string, data any) {
	payload, _ := json.Marshal(data)
	_, _ = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
}

func anthropicStreamServer(t *testing.T, fragments []string, got *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got != nil {
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, got)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		writeEvent(w, "message_start", map[string]any{
			"type": "message_start",
			"message": map[string]any{
				"id":            "msg_1",
				"type":          "message",
				"role":          "assistant",
				"content":       []any{},
				"model":         "claude-3-5-haiku-latest",
				"stop_reason":   nil,
				"stop_sequence": nil,
				"usage":         map[string]any{"input_tokens": 10, "output_tokens": 1},
			},
		})
		writeEvent(w, "content_block_start", map[string]any{
			"type":          "content_block_start",
			"index":         0,
			"content_block": map[string]any{"type": "text", "text": ""},
		})
		for _, f := range fragments {
			writeEvent(w, "content_block_delta", map[string]any{
				"type":  "content_block_delta",
				"index": 0,
				"delta": map[string]any{"type": "text_delta", "text": f},
			})
		}
		writeEvent(w, "content_block_stop", map[string]any{"type": "content_block_stop", "index": 0})
		writeEvent(w, "message_delta", map[string]any{
			"type":  "message_delta",
			"delta": map[string]any{"stop_reason": "end_turn", "stop_sequence": nil},
			"usage": map[string]any{"output_tokens": 5},
		})
		writeEvent(w, "message_stop", map[string]any{"type": "message_stop"})
	}))
}

func TestAnthropicCompleter_StreamsFragments(t *testing.T) {
	var request map[string]any
	server := anthropicStreamServer(t, []string{"Wubba ", "lubba ", "dub dub"}, &request)
	defer server.Close()

	c, err := NewAnthropicCompleter(&Config{
		Endpoint:  server.URL,
		Model:     "claude-3-5-haiku-latest",
		APIKey:    "test-key",
		MaxTokens: 150,
	}, nil, zap.NewNop())
	require.NoError(t, err)

	text, err := Collect(c.StreamCompletion(context.Background(), "be brief", "say the thing"))
	require.NoError(t, err)
	assert.Equal(t, "Wubba lubba dub dub", text)

	assert.Equal(t, "be brief", request["system"])
	assert.Equal(t, "claude-3-5-haiku-latest", request["model"])
	assert.Equal(t, float64(150), request["max_tokens"])
}

func TestAnthropicCompleter_EarlyBreak(t *testing.T) {
	server := anthropicStreamServer(t, []string{"one", "two", "three"}, nil)
	defer server.Close()

	c, err := NewAnthropicCompleter(&Config{Endpoint: server.URL, Model: "claude-3-5-haiku-latest", APIKey: "k"}, nil, zap.NewNop())
	require.NoError(t, err)

	var seen []string
	for fragment, err := range c.StreamCompletion(context.Background(), "", "hi") {
		require.NoError(t, err)
		seen = append(seen, fragment)
		break
	}
	assert.Equal(t, []string{"one"}, seen)
}

func TestAnthropicCompleter_AuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer server.Close()

	c, err := NewAnthropicCompleter(&Config{Endpoint: server.URL, Model: "claude-3-5-haiku-latest", APIKey: "bad"}, nil, zap.NewNop())
	require.NoError(t, err)

	_, err = Collect(c.StreamCompletion(context.Background(), "", "hi"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstreamFetch)
	assert.Equal(t, ErrorTypeAuth, GetErrorType(err))
}
