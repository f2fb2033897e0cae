package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/doctorew/pocket-morties/pkg/config"
)

const upstreamDataset = `[
	{"id": 1, "name": "Morty", "type": "Rock", "assetid": "MortyDefault", "rarity": "Common", "basehp": 50, "baseatk": 10, "basedef": 30},
	{"id": 2, "name": "Evil Morty", "type": "Rock", "assetid": "MortyEvil", "rarity": "Rare", "basehp": 50, "baseatk": 40, "basedef": 20},
	{"id": 3, "name": "Robot Morty", "type": "Scissors", "assetid": "MortyRobot", "rarity": "Rare", "basehp": 70, "baseatk": 30, "basedef": 35}
]`

func newUpstream(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(upstreamDataset))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func testConfig(datasetURL string) *config.Config {
	return &config.Config{
		BindAddr: "127.0.0.1",
		Port:     "4000",
		Env:      "test",
		Version:  "test",
		GraphQL:  config.GraphQLConfig{Path: "/rickmorty"},
		Chat:     config.ChatConfig{Path: "/api/chat"},
		Dataset:  config.DatasetConfig{URL: datasetURL, LocalPath: "testdata/missing.json"},
		LLM:      config.LLMConfig{Provider: "openai", MaxTokens: 150},
		CORS:     config.CORSConfig{AllowedOrigins: []string{"*"}},
		MCP:      config.MCPConfig{Enabled: true},
	}
}

func serve(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestApp_HealthDoesNotFetch(t *testing.T) {
	upstream, hits := newUpstream(t)
	h, err := New(testConfig(upstream.URL), zap.NewNop()).Handler()
	require.NoError(t, err)

	rec := serve(t, h, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, int32(0), hits.Load())
}

func TestApp_ChatFetchesPerRequest(t *testing.T) {
	upstream, hits := newUpstream(t)
	h, err := New(testConfig(upstream.URL), zap.NewNop()).Handler()
	require.NoError(t, err)

	for range 2 {
		rec := serve(t, h, http.MethodPost, "/api/chat", `{"query": "top morties by baseatk"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Evil Morty")
	}
	assert.Equal(t, int32(2), hits.Load())
}

func TestApp_ChatWithoutCompleter(t *testing.T) {
	upstream, _ := newUpstream(t)
	h, err := New(testConfig(upstream.URL), zap.NewNop()).Handler()
	require.NoError(t, err)

	rec := serve(t, h, http.MethodPost, "/api/chat", `{"query": "tell me a joke"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "not configured")
}

func TestApp_JSONAnalysisWithoutLocalFile(t *testing.T) {
	upstream, hits := newUpstream(t)
	h, err := New(testConfig(upstream.URL), zap.NewNop()).Handler()
	require.NoError(t, err)

	rec := serve(t, h, http.MethodPost, "/api/chat", `{"query": "analyze the json"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "The top 5 Morties with the highest base attack are")
	assert.Contains(t, rec.Body.String(), "Evil Morty")
	assert.Equal(t, int32(1), hits.Load())
}

func TestApp_GraphQLRoute(t *testing.T) {
	upstream, _ := newUpstream(t)
	h, err := New(testConfig(upstream.URL), zap.NewNop()).Handler()
	require.NoError(t, err)

	rec := serve(t, h, http.MethodPost, "/rickmorty",
		`{"query": "{ sortedMorties(sortBy: \"basehp\", first: 1) { node { name } } }"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Robot Morty")
}

func TestApp_MCPDisabled(t *testing.T) {
	upstream, _ := newUpstream(t)
	cfg := testConfig(upstream.URL)
	cfg.MCP.Enabled = false
	h, err := New(cfg, zap.NewNop()).Handler()
	require.NoError(t, err)

	rec := serve(t, h, http.MethodPost, "/mcp", `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApp_HandlerBuiltOnce(t *testing.T) {
	upstream, _ := newUpstream(t)
	app := New(testConfig(upstream.URL), zap.NewNop())

	const n = 16
	built := make([]http.Handler, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := app.Handler()
			assert.NoError(t, err)
			built[i] = h
		}()
	}
	wg.Wait()

	// Every caller shares one metrics registry, so traffic through one
	// handler shows up on another's /metrics.
	serve(t, built[0], http.MethodPost, "/api/chat", `{"query": "top morties by basehp"}`)
	rec := serve(t, built[n-1], http.MethodGet, "/metrics", "")
	assert.Contains(t, rec.Body.String(), `pocket_morties_chat_intents_total{intent="top_by_stat"} 1`)
}

func TestApp_BuildErrorIsSticky(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.LLM.Provider = "bogus"
	cfg.LLM.OpenAIAPIKey = "sk-test"
	cfg.LLM.BaseURL = "http://127.0.0.1:1"
	app := New(cfg, zap.NewNop())

	_, err1 := app.Handler()
	_, err2 := app.Handler()

	require.Error(t, err1)
	assert.Same(t, err1, err2)
	assert.Contains(t, err1.Error(), "bogus")
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreAnyFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreAnyFunction("net/http.(*persistConn).writeLoop"),
	)
}
