// Package testhelpers provides fakes shared by the pocket-morties package tests.
package testhelpers

import (
	"context"
	"slices"
	"sync"

	"github.com/doctorew/pocket-morties/pkg/apperrors"
	"github.com/doctorew/pocket-morties/pkg/models"
)

// StaticSource is an in-memory dataset source. Each Fetch returns a copy, so
// callers can mutate results without affecting later fetches.
type StaticSource struct {
	mu      sync.Mutex
	records []models.PocketMorty
	err     error
	calls   int
}

// NewStaticSource returns a source that always yields records.
func NewStaticSource(records []models.PocketMorty) *StaticSource {
	return &StaticSource{records: records}
}

// NewFailingSource returns a source whose fetches fail with err wrapped as
// an upstream failure, the way the real sources report errors.
func NewFailingSource(err error) *StaticSource {
	return &StaticSource{err: err}
}

// Fetch yields the records or the configured failure.
func (s *StaticSource) Fetch(ctx context.Context) ([]models.PocketMorty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, apperrors.UpstreamFetch("static", s.err)
	}
	return slices.Clone(s.records), nil
}

// Calls returns how many times Fetch ran.
func (s *StaticSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
