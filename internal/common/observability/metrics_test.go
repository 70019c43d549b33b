package observability

import (
	"context"
	"strings"
	"testing"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"travel-discovery/internal/common/errors"
)

func fetchCount(t *testing.T, reader metric.Reader) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "discovery.loader.fetches" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func TestObservability_LoadedSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	reader := metric.NewManualReader()
	obs := New("discovery-test", WithReader(reader), WithSpanProcessor(recorder))
	t.Cleanup(obs.Shutdown)

	ctx, finish := obs.Start(context.Background(), "category", "https://example.test/category?name=art")
	require.NotNil(t, ctx)
	finish("loaded", nil)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "loader.fetch category", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String("url.full", "https://example.test/category?name=art"))
	assert.Contains(t, spans[0].Attributes(), attribute.String("loader.outcome", "loaded"))

	assert.Equal(t, int64(1), fetchCount(t, reader))
}

func TestObservability_FailedSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	reader := metric.NewManualReader()
	obs := New("discovery-test", WithReader(reader), WithSpanProcessor(recorder))
	t.Cleanup(obs.Shutdown)

	_, finish := obs.Start(context.Background(), "user", "https://example.test/user?id=9")
	finish("failed", errors.NewHTTPStatusError(404))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "HTTP_STATUS_ERROR", spans[0].Status().Description)
	assert.Contains(t, spans[0].Attributes(), attribute.Int("http.response.status_code", 404))
	assert.NotEmpty(t, spans[0].Events())

	assert.Equal(t, int64(1), fetchCount(t, reader))
}

func TestObservability_PrometheusExporter(t *testing.T) {
	reg := promclient.NewRegistry()
	obs := New("discovery-test", WithRegisterer(reg))
	t.Cleanup(obs.Shutdown)

	_, finish := obs.Start(context.Background(), "destination", "https://example.test/destination?name=paris")
	finish("loaded", nil)

	families, err := reg.Gather()
	require.NoError(t, err)

	found := false
	for _, f := range families {
		if strings.HasPrefix(f.GetName(), "discovery_loader_fetches") {
			found = true
		}
	}
	assert.True(t, found, "loader fetch counter not exported")
}
