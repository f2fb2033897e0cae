// Package dataset loads the Pocket Morty records the API serves.
//
// Sources return a full snapshot on every call. Nothing is cached between
// calls, so every query sees the upstream document as it is at request time.
package dataset

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/doctorew/pocket-morties/pkg/apperrors"
	"github.com/doctorew/pocket-morties/pkg/jsonutil"
	"github.com/doctorew/pocket-morties/pkg/metrics"
	"github.com/doctorew/pocket-morties/pkg/models"
)

// Source yields the current record set.
type Source interface {
	Fetch(ctx context.Context) ([]models.PocketMorty, error)
}

// Decode parses a dataset document: a bare array of records or an object
// holding them under "results".
func Decode(data []byte) ([]models.PocketMorty, error) {
	return jsonutil.DecodeList[models.PocketMorty](data)
}

// FileSource reads records from a local JSON file on every call.
type FileSource struct {
	path    string
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewFileSource creates a source backed by the file at path.
func NewFileSource(path string, m *metrics.Metrics, logger *zap.Logger) *FileSource {
	return &FileSource{
		path:    path,
		metrics: m,
		logger:  logger.Named("dataset.file"),
	}
}

// Fetch implements Source.
func (s *FileSource) Fetch(ctx context.Context) ([]models.PocketMorty, error) {
	records, err := s.read()
	s.metrics.ObserveFetch("file", err)
	if err != nil {
		s.logger.Error("Failed to read local dataset",
			zap.String("path", s.path),
			zap.Error(err))
		return nil, apperrors.UpstreamFetch(s.path, err)
	}
	return records, nil
}

func (s *FileSource) read() ([]models.PocketMorty, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Decode(data)
}

var _ Source = (*FileSource)(nil)
