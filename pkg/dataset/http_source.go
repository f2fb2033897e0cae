package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/doctorew/pocket-morties/pkg/apperrors"
	"github.com/doctorew/pocket-morties/pkg/metrics"
	"github.com/doctorew/pocket-morties/pkg/models"
)

// HTTPSource downloads the dataset document on every call. Fetches that
// overlap in time share a single request; a fetch that starts after the
// previous one finished always goes upstream again.
type HTTPSource struct {
	url        string
	httpClient *http.Client
	group      singleflight.Group
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewHTTPSource creates a source for the document at url. A zero timeout
// leaves requests unbounded.
func NewHTTPSource(url string, timeout time.Duration, m *metrics.Metrics, logger *zap.Logger) *HTTPSource {
	return &HTTPSource{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: m,
		logger:  logger.Named("dataset.http"),
	}
}

// URL returns the upstream document URL.
func (s *HTTPSource) URL() string {
	return s.url
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context) ([]models.PocketMorty, error) {
	// The shared download must not die with whichever caller started it.
	ch := s.group.DoChan(s.url, func() (any, error) {
		return s.download(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		records := res.Val.([]models.PocketMorty)
		if res.Shared {
			records = slices.Clone(records)
		}
		return records, nil
	case <-ctx.Done():
		return nil, apperrors.UpstreamFetch(s.url, ctx.Err())
	}
}

func (s *HTTPSource) download(ctx context.Context) ([]models.PocketMorty, error) {
	start := time.Now()
	records, err := s.get(ctx)
	s.metrics.ObserveFetch("http", err)
	if err != nil {
		s.logger.Error("Dataset fetch failed",
			zap.String("url", s.url),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, apperrors.UpstreamFetch(s.url, err)
	}

	s.logger.Debug("Dataset fetched",
		zap.String("url", s.url),
		zap.Int("records", len(records)),
		zap.Duration("elapsed", time.Since(start)))
	return records, nil
}

func (s *HTTPSource) get(ctx context.Context) ([]models.PocketMorty, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call dataset host: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("dataset host returned status %d", resp.StatusCode)
	}

	records, err := Decode(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	return records, nil
}

var _ Source = (*HTTPSource)(nil)
