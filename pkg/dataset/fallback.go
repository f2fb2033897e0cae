package dataset

import (
	"context"
	"errors"
	"io/fs"

	"go.uber.org/zap"

	"github.com/doctorew/pocket-morties/pkg/models"
)

// FallbackSource reads from primary and switches to secondary when the
// primary's file does not exist. Any other primary failure is returned as is.
type FallbackSource struct {
	primary   Source
	secondary Source
	logger    *zap.Logger
}

// NewFallbackSource creates a source that prefers primary.
func NewFallbackSource(primary, secondary Source, logger *zap.Logger) *FallbackSource {
	return &FallbackSource{
		primary:   primary,
		secondary: secondary,
		logger:    logger.Named("dataset.fallback"),
	}
}

// Fetch implements Source.
func (s *FallbackSource) Fetch(ctx context.Context) ([]models.PocketMorty, error) {
	records, err := s.primary.Fetch(ctx)
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		return records, err
	}
	s.logger.Warn("Local dataset missing, using upstream copy", zap.Error(err))
	return s.secondary.Fetch(ctx)
}

var _ Source = (*FallbackSource)(nil)
