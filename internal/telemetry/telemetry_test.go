package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := Setup(context.Background(), "  ", "v0.1.0")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
	assert.Equal(t, before, otel.GetTracerProvider())
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// A non-routable address keeps the exporter from reaching anything.
	shutdown, err := Setup(context.Background(), "http://192.0.2.1:4318", "v0.1.0")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
