package biometric

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/pinset/internal/config"
	"github.com/conn-castle/pinset/internal/enroll"
	"github.com/conn-castle/pinset/internal/testutil"
)

const fprintdWithDevice = `found 1 devices
Device at /net/reactivated/Fprint/Device/0
Using device /net/reactivated/Fprint/Device/0
User ada has no fingers enrolled for Goodix MOC Fingerprint Sensor.`

func TestStatic(t *testing.T) {
	support, err := Static{Kind: enroll.KindFacial}.CheckSupport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, enroll.Support{Supported: true, Kind: enroll.KindFacial}, support)

	support, err = Static{}.CheckSupport(context.Background())
	require.NoError(t, err)
	assert.False(t, support.Supported)
}

func TestNone(t *testing.T) {
	support, err := None{}.CheckSupport(context.Background())
	require.NoError(t, err)
	assert.False(t, support.Supported)
}

func TestNew(t *testing.T) {
	probe, err := New(config.BiometricConfig{Probe: config.ProbeStatic, Kind: "fingerprint"})
	require.NoError(t, err)
	assert.Equal(t, Static{Kind: enroll.KindFingerprint}, probe)

	probe, err = New(config.BiometricConfig{Probe: config.ProbeNone})
	require.NoError(t, err)
	assert.Equal(t, None{}, probe)

	probe, err = New(config.BiometricConfig{Probe: config.ProbeAuto})
	require.NoError(t, err)
	assert.IsType(t, &Platform{}, probe)

	_, err = New(config.BiometricConfig{Probe: "sometimes"})
	assert.Error(t, err)

	_, err = New(config.BiometricConfig{Probe: config.ProbeStatic, Kind: "iris"})
	assert.Error(t, err)
}

func TestPlatform_FingerprintDevice(t *testing.T) {
	bin := t.TempDir()
	testutil.WriteStubWithOutput(t, bin, "fprintd-list", fprintdWithDevice, 0)
	testutil.WriteStub(t, bin, "howdy")
	t.Setenv("PATH", bin)

	support, err := NewPlatform().CheckSupport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, enroll.Support{Supported: true, Kind: enroll.KindFingerprint}, support)
}

func TestPlatform_NoFingerprintDeviceFallsBackToHowdy(t *testing.T) {
	bin := t.TempDir()
	testutil.WriteStubWithOutput(t, bin, "fprintd-list", "found 0 devices", 0)
	testutil.WriteStub(t, bin, "howdy")
	t.Setenv("PATH", bin)

	support, err := NewPlatform().CheckSupport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, enroll.Support{Supported: true, Kind: enroll.KindFacial}, support)
}

func TestPlatform_NothingInstalled(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	support, err := NewPlatform().CheckSupport(context.Background())
	require.NoError(t, err)
	assert.False(t, support.Supported)
	assert.Equal(t, enroll.KindNone, support.Kind)
}

func TestPlatform_FprintdFailureIsReported(t *testing.T) {
	bin := t.TempDir()
	testutil.WriteStubWithExit(t, bin, "fprintd-list", 1)
	t.Setenv("PATH", bin)

	support, err := NewPlatform().CheckSupport(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fprintd-list")
	assert.False(t, support.Supported)
}

func TestPlatform_LookPathError(t *testing.T) {
	p := &Platform{
		lookPath:    func(string) (string, error) { return "", errors.New("permission denied") },
		currentUser: func() string { return "ada" },
	}
	_, err := p.CheckSupport(context.Background())
	assert.Error(t, err)
}

func TestFingerprintDevices(t *testing.T) {
	assert.Equal(t, 2, fingerprintDevices([]byte("found 2 devices\n")))
	assert.Equal(t, 1, fingerprintDevices([]byte("found 1 device\n")))
	assert.Equal(t, 0, fingerprintDevices([]byte("No devices available")))
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, enroll.KindNone, kind)

	kind, err = ParseKind("facial")
	require.NoError(t, err)
	assert.Equal(t, enroll.KindFacial, kind)
}
