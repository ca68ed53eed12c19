package enroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestConfirmationSpans(t *testing.T) {
	spans := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans)))

	f := newFixture(t)
	f.probe.support = Support{Supported: true, Kind: KindFingerprint}
	f.accept = true
	f.press(t, "12345678")
	f.press(t, "24682468")

	var names []string
	results := map[string]int{}
	for _, s := range spans.Ended() {
		names = append(names, s.Name())
		for _, kv := range s.Attributes() {
			if kv.Key == "enroll.result" {
				results[kv.Value.AsString()]++
			}
		}
	}
	require.NotEmpty(t, names)
	assert.Equal(t, []string{
		"enroll.confirm",
		"enroll.commit",
		"enroll.biometric_offer",
		"enroll.confirm",
	}, names)
	assert.Equal(t, 1, results["mismatch"])
	assert.Equal(t, 1, results["match"])
}
