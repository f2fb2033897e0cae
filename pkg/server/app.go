// Package server assembles the Pocket Morties HTTP handler from configuration.
// The long-running binary and the Lambda entry point share it.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/doctorew/pocket-morties/pkg/chat"
	"github.com/doctorew/pocket-morties/pkg/config"
	"github.com/doctorew/pocket-morties/pkg/dataset"
	"github.com/doctorew/pocket-morties/pkg/graphql"
	"github.com/doctorew/pocket-morties/pkg/handlers"
	"github.com/doctorew/pocket-morties/pkg/llm"
	"github.com/doctorew/pocket-morties/pkg/mcp"
	"github.com/doctorew/pocket-morties/pkg/metrics"
	"github.com/doctorew/pocket-morties/pkg/middleware"
)

// App builds the routed handler on first use and hands the same instance to
// every caller afterwards.
type App struct {
	cfg    *config.Config
	logger *zap.Logger

	once    sync.Once
	handler http.Handler
	err     error
}

// New creates an App. Nothing is built until Handler is called.
func New(cfg *config.Config, logger *zap.Logger) *App {
	return &App{cfg: cfg, logger: logger}
}

// Handler returns the application handler, building it exactly once.
// A build failure is remembered and returned to every caller.
func (a *App) Handler() (http.Handler, error) {
	a.once.Do(func() {
		a.handler, a.err = a.build()
		if a.err != nil {
			a.logger.Error("Failed to build application", zap.Error(a.err))
		}
	})
	return a.handler, a.err
}

func (a *App) build() (http.Handler, error) {
	cfg := a.cfg
	m := metrics.New()

	source := dataset.NewHTTPSource(cfg.Dataset.URL, cfg.Dataset.FetchTimeout, m, a.logger)
	local := dataset.NewFallbackSource(dataset.NewFileSource(cfg.Dataset.LocalPath, m, a.logger), source, a.logger)

	completer, err := llm.NewCompleter(cfg.LLM.CompleterConfig(), m, a.logger)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		a.logger.Warn("No completion provider configured; LLM-backed chat answers are disabled",
			zap.String("provider", cfg.LLM.Provider))
		completer = nil
	case err != nil:
		return nil, fmt.Errorf("create completer: %w", err)
	}

	gqlService, err := graphql.NewService(graphql.NewResolver(source, a.logger), a.logger)
	if err != nil {
		return nil, fmt.Errorf("build GraphQL schema: %w", err)
	}

	var executor chat.QueryExecutor = gqlService
	if cfg.GraphQL.Endpoint != "" {
		executor = graphql.NewHTTPExecutor(cfg.GraphQL.Endpoint, cfg.Dataset.FetchTimeout, a.logger)
	}

	dispatcher := chat.NewDispatcher(source, local, completer, executor, m, a.logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, a.logger).RegisterRoutes(mux)
	handlers.NewChatHandler(dispatcher, a.logger).RegisterRoutes(mux, cfg.Chat.Path)
	mux.Handle(cfg.GraphQL.Path, graphql.NewHandler(gqlService, cfg.GraphQL.Path, cfg.GraphQL.Playground, a.logger))
	if cfg.MCP.Enabled {
		handlers.NewMCPHandler(mcp.NewServer(cfg.Version, source, a.logger), a.logger).RegisterRoutes(mux)
	}
	handlers.RegisterMetricsRoute(mux, m, a.logger)

	a.logger.Info("Application ready",
		zap.String("graphql_path", cfg.GraphQL.Path),
		zap.String("chat_path", cfg.Chat.Path),
		zap.Bool("mcp_enabled", cfg.MCP.Enabled),
		zap.Bool("completer", completer != nil),
		zap.Bool("remote_graphql", cfg.GraphQL.Endpoint != ""))

	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.RequestLogger(a.logger),
		middleware.Metrics(m),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	), nil
}
