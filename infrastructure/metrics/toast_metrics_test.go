package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToastMetrics_Lifecycle(t *testing.T) {
	// Arrange
	m := New(WithRegistry(prometheus.NewRegistry()))

	// Act
	m.ToastSpawned("success", "top-right")
	m.ToastSpawned("success", "top-right")
	m.ToastPaused()
	m.ToastResumed()
	m.ToastDismissed("timeout")
	m.ToastRemoved(3300 * time.Millisecond)

	// Assert
	assert.Equal(t, 2.0, testutil.ToFloat64(m.spawnedTotal.WithLabelValues("success", "top-right")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pausedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.resumedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dismissedTotal.WithLabelValues("timeout")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.dismissedTotal.WithLabelValues("user")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.active))
	assert.Equal(t, 1, testutil.CollectAndCount(m.lifetime))
}

func TestToastMetrics_Clients(t *testing.T) {
	m := New()

	m.ClientConnected("sse")
	m.ClientConnected("ws")
	m.ClientConnected("ws")
	m.ClientDisconnected("ws")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.clients.WithLabelValues("sse")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.clients.WithLabelValues("ws")))
}

func TestToastMetrics_HandlerExposesNamespace(t *testing.T) {
	m := New(WithNamespace("demo"))
	m.ToastSpawned("info", "bottom-left")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `demo_toasts_spawned_total{position="bottom-left",variant="info"} 1`)
}
