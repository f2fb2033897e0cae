package testhelpers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctorew/pocket-morties/pkg/apperrors"
	"github.com/doctorew/pocket-morties/pkg/models"
)

func TestStaticSource_ReturnsCopies(t *testing.T) {
	source := NewStaticSource([]models.PocketMorty{{ID: 1, Name: "Morty"}})

	got, err := source.Fetch(context.Background())
	require.NoError(t, err)
	got[0].Name = "changed"

	again, err := source.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Morty", again[0].Name)
	assert.Equal(t, 2, source.Calls())
}

func TestFailingSource(t *testing.T) {
	cause := errors.New("offline")
	source := NewFailingSource(cause)

	_, err := source.Fetch(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrUpstreamFetch)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, source.Calls())
}
