package enroll

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/conn-castle/pinset/internal/messages"
)

var tracer = otel.Tracer("github.com/conn-castle/pinset/internal/enroll")

// buffer is a fixed-capacity digit sequence.
type buffer struct {
	digits [PINLength]byte
	n      int
}

// push appends d and reports whether it was stored. A full buffer ignores d.
func (b *buffer) push(d byte) bool {
	if b.n >= PINLength {
		return false
	}
	b.digits[b.n] = d
	b.n++
	return true
}

func (b *buffer) pop() {
	if b.n == 0 {
		return
	}
	b.n--
	b.digits[b.n] = 0
}

func (b *buffer) full() bool {
	return b.n == PINLength
}

func (b *buffer) clear() {
	*b = buffer{}
}

// Options configures a Controller.
// Store is required. A nil Probe reports no support, a nil Offerer declines,
// and a nil Listener drops signals.
type Options struct {
	Store    CredentialStore
	Probe    BiometricProbe
	Offerer  Offerer
	Listener Listener
}

// Controller is the enrollment state machine. Presses are serialized: each
// one, including any commit it triggers, finishes before the next starts.
// Listener signals are delivered after the internal lock is released.
type Controller struct {
	store    CredentialStore
	probe    BiometricProbe
	offerer  Offerer
	listener Listener

	mu        sync.Mutex
	mode      Mode
	primary   buffer
	confirm   buffer
	biometric bool

	phase atomic.Int32
}

// New builds a Controller in the entering phase.
func New(opts Options) (*Controller, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf(messages.EnrollStoreRequired)
	}
	c := &Controller{
		store:    opts.Store,
		probe:    opts.Probe,
		offerer:  opts.Offerer,
		listener: opts.Listener,
	}
	if c.probe == nil {
		c.probe = noProbe{}
	}
	if c.offerer == nil {
		c.offerer = OffererFunc(func(context.Context, Kind) (bool, error) { return false, nil })
	}
	if c.listener == nil {
		c.listener = ListenerFuncs{}
	}
	return c, nil
}

// Phase returns the current lifecycle phase without waiting for an
// in-flight press.
func (c *Controller) Phase() Phase {
	return Phase(c.phase.Load())
}

func (c *Controller) setPhase(p Phase) {
	c.phase.Store(int32(p))
}

// Mode returns which buffer receives digits.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Snapshot returns buffer lengths, mode and phase.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Mode:       c.mode,
		Phase:      c.Phase(),
		PrimaryLen: c.primary.n,
		ConfirmLen: c.confirm.n,
	}
}

// Outcome maps the current phase to how the flow ended. It never blocks.
func (c *Controller) Outcome() Outcome {
	switch c.Phase() {
	case PhaseCompleted:
		return OutcomeCompleted
	case PhaseSkipped:
		return OutcomeSkipped
	default:
		return OutcomePending
	}
}

// BiometricEnabled reports whether the flow enabled the biometric factor.
func (c *Controller) BiometricEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.biometric
}

// PressDigit appends d to the active buffer. Presses on a full buffer are
// ignored. The fourth confirmation digit runs the comparison and commit
// before PressDigit returns.
func (c *Controller) PressDigit(ctx context.Context, d byte) error {
	if d < '0' || d > '9' {
		return fmt.Errorf("%w: %q", ErrInvalidDigit, d)
	}
	signals, err := c.pressDigit(ctx, d)
	emit(signals)
	return err
}

// PressDigits presses each byte of digits in order. Non-digits are skipped
// and presses after the flow finished are dropped.
func (c *Controller) PressDigits(ctx context.Context, digits string) {
	for i := 0; i < len(digits); i++ {
		if err := c.PressDigit(ctx, digits[i]); errors.Is(err, ErrFinished) {
			return
		}
	}
}

func (c *Controller) pressDigit(ctx context.Context, d byte) ([]func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Phase().Terminal() {
		return nil, ErrFinished
	}
	active := c.active()
	if !active.push(d) || !active.full() {
		return nil, nil
	}
	if c.mode == ModeEntering {
		c.mode = ModeConfirming
		c.setPhase(PhaseConfirming)
		return nil, nil
	}
	return c.confirmationProtocol(ctx), nil
}

// PressDelete removes the last digit of the active buffer. It never changes
// the mode and is ignored once the flow has finished.
func (c *Controller) PressDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Phase().Terminal() {
		return
	}
	c.active().pop()
}

// Skip abandons the flow without touching the store.
func (c *Controller) Skip() error {
	c.mu.Lock()
	if c.Phase().Terminal() {
		c.mu.Unlock()
		return ErrFinished
	}
	c.clearBuffers()
	c.setPhase(PhaseSkipped)
	c.mu.Unlock()

	c.listener.OnSkipped()
	return nil
}

func (c *Controller) active() *buffer {
	if c.mode == ModeConfirming {
		return &c.confirm
	}
	return &c.primary
}

func (c *Controller) clearBuffers() {
	c.primary.clear()
	c.confirm.clear()
	c.mode = ModeEntering
}

// reset returns to a clean entering state.
func (c *Controller) reset() {
	c.clearBuffers()
	c.setPhase(PhaseEntering)
}

// confirmationProtocol compares both buffers and commits on a match.
// Called with c.mu held.
func (c *Controller) confirmationProtocol(ctx context.Context) []func() {
	ctx, span := tracer.Start(ctx, "enroll.confirm")
	defer span.End()

	pin := PIN(c.primary.digits)
	if subtle.ConstantTimeCompare(c.primary.digits[:], c.confirm.digits[:]) != 1 {
		span.SetAttributes(attribute.String("enroll.result", "mismatch"))
		c.reset()
		return []func(){c.recoverable(ErrMismatch)}
	}
	span.SetAttributes(attribute.String("enroll.result", "match"))

	c.setPhase(PhaseCommitting)
	if err := c.commit(ctx, pin); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, messages.EnrollCommitFailed)
		c.reset()
		return []func(){c.recoverable(fmt.Errorf("%w: %w", ErrCommitFailed, err))}
	}
	c.clearBuffers()
	return c.offerBiometric(ctx)
}

// commit saves the PIN and enables it. SetEnabled only runs after a
// successful Save.
func (c *Controller) commit(ctx context.Context, pin PIN) error {
	ctx, span := tracer.Start(ctx, "enroll.commit")
	defer span.End()

	if err := c.store.Save(ctx, pin); err != nil {
		return err
	}
	return c.store.SetEnabled(ctx, true)
}

// offerBiometric runs after a successful commit and always completes the flow.
func (c *Controller) offerBiometric(ctx context.Context) []func() {
	ctx, span := tracer.Start(ctx, "enroll.biometric_offer")
	defer span.End()

	c.setPhase(PhaseOffering)
	support, err := c.probe.CheckSupport(ctx)
	if err != nil || !support.Supported {
		// A failed probe is indistinguishable from missing hardware.
		span.SetAttributes(attribute.Bool("biometric.supported", false))
		return c.complete(false, KindNone)
	}
	span.SetAttributes(
		attribute.Bool("biometric.supported", true),
		attribute.String("biometric.kind", string(support.Kind)),
	)

	accepted, err := c.offerer.OfferBiometric(ctx, support.Kind)
	if err != nil || !accepted {
		return c.complete(false, KindNone)
	}
	if err := c.store.SetBiometricEnabled(ctx, true); err != nil {
		span.RecordError(err)
		signals := []func(){c.recoverable(fmt.Errorf("%w: %w", ErrBiometricFailed, err))}
		return append(signals, c.complete(false, KindNone)...)
	}
	return c.complete(true, support.Kind)
}

// complete finishes the flow. kind is the enabled factor, KindNone when
// biometric is false.
func (c *Controller) complete(biometric bool, kind Kind) []func() {
	c.biometric = biometric
	c.setPhase(PhaseCompleted)
	return []func(){func() {
		if kr, ok := c.listener.(kindRecorder); ok {
			kr.recordKind(kind)
		}
		c.listener.OnCompleted(biometric)
	}}
}

func (c *Controller) recoverable(err error) func() {
	return func() { c.listener.OnRecoverableError(err) }
}

func emit(signals []func()) {
	for _, signal := range signals {
		signal()
	}
}

type noProbe struct{}

func (noProbe) CheckSupport(context.Context) (Support, error) {
	return Support{Kind: KindNone}, nil
}

// ListenerFuncs adapts optional callbacks into a Listener. Nil callbacks are skipped.
type ListenerFuncs struct {
	CompletedFunc func(biometric bool)
	SkippedFunc   func()
	ErrorFunc     func(err error)
}

// OnCompleted calls CompletedFunc when set.
func (l ListenerFuncs) OnCompleted(biometric bool) {
	if l.CompletedFunc != nil {
		l.CompletedFunc(biometric)
	}
}

// OnSkipped calls SkippedFunc when set.
func (l ListenerFuncs) OnSkipped() {
	if l.SkippedFunc != nil {
		l.SkippedFunc()
	}
}

// OnRecoverableError calls ErrorFunc when set.
func (l ListenerFuncs) OnRecoverableError(err error) {
	if l.ErrorFunc != nil {
		l.ErrorFunc(err)
	}
}
