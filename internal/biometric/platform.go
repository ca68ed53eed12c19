package biometric

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"regexp"
	"strconv"

	"github.com/conn-castle/pinset/internal/enroll"
	"github.com/conn-castle/pinset/internal/messages"
)

const (
	fprintdListCommand = "fprintd-list"
	howdyCommand       = "howdy"
)

var fprintdDevicesPattern = regexp.MustCompile(`found (\d+) devices?`)

// Platform detects biometric helpers installed on the host. A fingerprint
// reader is reported when fprintd lists at least one device; facial
// recognition when howdy is on PATH.
type Platform struct {
	lookPath    func(file string) (string, error)
	output      func(ctx context.Context, name string, args ...string) ([]byte, error)
	currentUser func() string
}

// NewPlatform returns a probe that inspects the real host.
func NewPlatform() *Platform {
	return &Platform{
		lookPath: exec.LookPath,
		output: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
		currentUser: currentUsername,
	}
}

// CheckSupport inspects fprintd first, then howdy.
func (p *Platform) CheckSupport(ctx context.Context) (enroll.Support, error) {
	if path, err := p.lookPath(fprintdListCommand); err == nil {
		out, err := p.output(ctx, path, p.currentUser())
		if err != nil {
			return enroll.Support{Kind: enroll.KindNone}, fmt.Errorf(messages.BiometricProbeFailedFmt, fprintdListCommand, err)
		}
		if fingerprintDevices(out) > 0 {
			return enroll.Support{Supported: true, Kind: enroll.KindFingerprint}, nil
		}
	} else if !errors.Is(err, exec.ErrNotFound) {
		return enroll.Support{Kind: enroll.KindNone}, err
	}

	if _, err := p.lookPath(howdyCommand); err == nil {
		return enroll.Support{Supported: true, Kind: enroll.KindFacial}, nil
	}
	return enroll.Support{Kind: enroll.KindNone}, nil
}

func fingerprintDevices(out []byte) int {
	match := fprintdDevicesPattern.FindSubmatch(out)
	if match == nil {
		return 0
	}
	n, err := strconv.Atoi(string(match[1]))
	if err != nil {
		return 0
	}
	return n
}

func currentUsername() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
