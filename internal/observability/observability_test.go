package observability

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		logger, err := NewLogger("warn", format)
		require.NoError(t, err, format)
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	}

	_, err := NewLogger("loud", "json")
	assert.Error(t, err)
}

func TestRequestIDContext(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
	ctx := ContextWithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", RequestIDFromContext(ctx))
}

func TestNewMetrics_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.LayerCalls.WithLabelValues("op", "ok").Inc()
	assert.Equal(t, 1, testutil.CollectAndCount(m.LayerCalls))

	// unregistered collectors still work
	assert.NotPanics(t, func() { NewMetrics(nil).EventsPublished.WithLabelValues("t", "ok").Inc() })
}
