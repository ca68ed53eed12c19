package enroll

import "sync"

// Outcome is how an enrollment flow ended.
type Outcome int

const (
	// OutcomePending means the flow has not finished.
	OutcomePending Outcome = iota
	OutcomeCompleted
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "pending"
	}
}

// Result summarizes a finished (or still running) flow.
type Result struct {
	Outcome   Outcome
	Biometric bool
	// Kind is the enabled biometric factor when Biometric is true.
	Kind Kind
	// Errors holds every recoverable error reported, oldest first.
	Errors []error
}

// Recorder is a Listener that keeps a Result and forwards every signal to Next.
type Recorder struct {
	Next Listener

	mu     sync.Mutex
	result Result
}

// Result returns a copy of the recorded result.
func (r *Recorder) Result() Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.result
	out.Errors = append([]error(nil), r.result.Errors...)
	return out
}

// kindRecorder is implemented by listeners that keep the enabled kind. The
// controller calls recordKind right before OnCompleted.
type kindRecorder interface {
	recordKind(kind Kind)
}

func (r *Recorder) recordKind(kind Kind) {
	r.mu.Lock()
	r.result.Kind = kind
	r.mu.Unlock()
}

// OnCompleted records completion.
func (r *Recorder) OnCompleted(biometric bool) {
	r.mu.Lock()
	r.result.Outcome = OutcomeCompleted
	r.result.Biometric = biometric
	r.mu.Unlock()
	if r.Next != nil {
		r.Next.OnCompleted(biometric)
	}
}

// OnSkipped records the skip.
func (r *Recorder) OnSkipped() {
	r.mu.Lock()
	r.result.Outcome = OutcomeSkipped
	r.mu.Unlock()
	if r.Next != nil {
		r.Next.OnSkipped()
	}
}

// OnRecoverableError appends err.
func (r *Recorder) OnRecoverableError(err error) {
	r.mu.Lock()
	r.result.Errors = append(r.result.Errors, err)
	r.mu.Unlock()
	if r.Next != nil {
		r.Next.OnRecoverableError(err)
	}
}
