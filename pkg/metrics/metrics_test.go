package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveFetch(t *testing.T) {
	m := New()

	m.ObserveFetch("http", nil)
	m.ObserveFetch("http", nil)
	m.ObserveFetch("http", errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DatasetFetches.WithLabelValues("http", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatasetFetches.WithLabelValues("http", "error")))
}

func TestMetrics_ObserveIntentAndCompletion(t *testing.T) {
	m := New()

	m.ObserveIntent("top_by_stat")
	m.ObserveCompletion("openai", errors.New("rate limited"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChatIntents.WithLabelValues("top_by_stat")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CompletionCalls.WithLabelValues("openai", "error")))
}

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveFetch("http", nil)
	m.ObserveIntent("json_analysis")
	m.ObserveCompletion("anthropic", nil)
}

func TestMetrics_RegistryGathers(t *testing.T) {
	m := New()
	m.ObserveIntent("freeform_completion")

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "pocket_morties_chat_intents_total")
}
