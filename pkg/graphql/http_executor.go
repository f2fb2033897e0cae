package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/doctorew/pocket-morties/pkg/apperrors"
	"github.com/doctorew/pocket-morties/pkg/logging"
	"github.com/doctorew/pocket-morties/pkg/models"
)

// HTTPExecutor posts queries to a remote GraphQL endpoint.
type HTTPExecutor struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPExecutor creates an executor for endpoint. A zero timeout leaves
// requests unbounded.
func NewHTTPExecutor(endpoint string, timeout time.Duration, logger *zap.Logger) *HTTPExecutor {
	return &HTTPExecutor{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.Named("graphql.remote"),
	}
}

// Execute sends query and decodes the response envelope. GraphQL-level
// errors come back inside the response; transport failures and non-2xx
// statuses are upstream errors.
func (e *HTTPExecutor) Execute(ctx context.Context, query string) (*models.GraphQLResponse, error) {
	logger := logging.WithContext(ctx, e.logger)

	body, err := json.Marshal(Request{Query: query})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if id := logging.RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		logger.Error("GraphQL endpoint unreachable", zap.String("endpoint", e.endpoint), zap.Error(err))
		return nil, apperrors.UpstreamFetch(e.endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.UpstreamFetch(e.endpoint, fmt.Errorf("read response: %w", err))
	}

	var out models.GraphQLResponse
	decodeErr := json.Unmarshal(respBody, &out)

	// GraphQL servers may answer validation failures with 400 and a normal
	// errors envelope; keep those so the caller can report them.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusBadRequest && decodeErr == nil && out.HasErrors() {
			return &out, nil
		}
		logger.Error("GraphQL endpoint returned error status",
			zap.String("endpoint", e.endpoint),
			zap.Int("status", resp.StatusCode))
		return nil, apperrors.UpstreamFetch(e.endpoint, fmt.Errorf("status %d", resp.StatusCode))
	}
	if decodeErr != nil {
		return nil, apperrors.UpstreamFetch(e.endpoint, fmt.Errorf("decode response: %w", decodeErr))
	}
	return &out, nil
}
