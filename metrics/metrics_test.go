package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
)

func TestGenerationRetries_Counts(t *testing.T) {
	before := counterValue(t)
	GenerationRetries.Inc()
	GenerationRetries.Inc()
	assert.Equal(t, before+2, counterValue(t))
}

func counterValue(t *testing.T) float64 {
	t.Helper()
	m := &dto.Metric{}
	assert.NoError(t, GenerationRetries.Write(m))
	return m.GetCounter().GetValue()
}

func TestGenerationsTotal_Labels(t *testing.T) {
	c, err := GenerationsTotal.GetMetricWithLabelValues("ok")
	assert.NoError(t, err)
	c.Inc()

	m := &dto.Metric{}
	assert.NoError(t, c.Write(m))
	assert.GreaterOrEqual(t, m.GetCounter().GetValue(), 1.0)
}
