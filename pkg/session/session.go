package session

import (
	"context"

	"github.com/prateek-arvo/sonar/pkg/audio"
	"github.com/prateek-arvo/sonar/pkg/fingerprint"
	"github.com/prateek-arvo/sonar/pkg/logging"
)

// State represents the verification session state machine
type State string

const (
	StateIdle          State = "idle"
	StateCapturing     State = "capturing"
	StateProcessing    State = "processing"
	StateCaptured      State = "captured"
	StateCaptureFailed State = "capture_failed"
	StateBaselineSaved State = "baseline_saved"
)

// Outcome is the result of a compare operation. NoBaseline is a normal
// outcome, not an error.
type Outcome string

const (
	OutcomeMatch      Outcome = "match"
	OutcomeNoMatch    Outcome = "no_match"
	OutcomeNoBaseline Outcome = "no_baseline"
)

// CompareResult pairs the outcome with the underlying similarity score.
// Result is nil for the NoBaseline outcome.
type CompareResult struct {
	Outcome Outcome                       `json:"outcome"`
	Result  *fingerprint.SimilarityResult `json:"result,omitempty"`
}

// Session drives one verification workflow: capture, process, then save
// the result as baseline or compare it against the stored one. Sessions
// are single-threaded; each holds its own store reference unless the
// caller deliberately shares one.
type Session struct {
	capturer  audio.Capturer
	generator *fingerprint.Generator
	store     *BaselineStore
	state     State
	last      *fingerprint.Fingerprint
	logger    logging.Logger
}

// NewSession creates a session with the given collaborators. A nil store
// gets a fresh private one.
func NewSession(config *fingerprint.Config, capturer audio.Capturer, store *BaselineStore) (*Session, error) {
	generator, err := fingerprint.NewGenerator(config)
	if err != nil {
		return nil, err
	}
	if store == nil {
		store = NewBaselineStore()
	}

	return &Session{
		capturer:  capturer,
		generator: generator,
		store:     store,
		state:     StateIdle,
		logger: logging.WithFields(logging.Fields{
			"component": "session",
		}),
	}, nil
}

// State returns the current session state
func (s *Session) State() State {
	return s.state
}

// Fingerprint returns the result of the last successful capture
func (s *Session) Fingerprint() *fingerprint.Fingerprint {
	return s.last
}

// Capture acquires one buffer from the capture collaborator and runs the
// pipeline on it. Collaborator failure surfaces as CAPTURE_FAILED and
// returns the session to idle; no fabricated zero-vector result is
// produced.
func (s *Session) Capture(ctx context.Context) (*fingerprint.Fingerprint, error) {
	s.state = StateCapturing

	buf, err := s.capturer.Capture(ctx)
	if err != nil {
		s.failCapture()
		return nil, fingerprint.NewPipelineError("capture", fingerprint.ErrCodeCaptureFailed,
			"capture collaborator failed", err)
	}
	if buf.Empty() {
		s.failCapture()
		return nil, fingerprint.NewPipelineError("capture", fingerprint.ErrCodeCaptureFailed,
			"capture collaborator delivered no samples", nil)
	}

	s.state = StateProcessing
	fp, err := s.generator.Generate(buf)
	if err != nil {
		s.failCapture()
		return nil, err
	}

	s.last = fp
	s.state = StateCaptured
	return fp, nil
}

// SaveBaseline stores the last captured feature vector as the new
// baseline, overwriting any previous one
func (s *Session) SaveBaseline() error {
	if s.last == nil {
		return fingerprint.NewPipelineError("session", fingerprint.ErrCodeInvalidInput,
			"no captured fingerprint to save", nil)
	}

	s.store.Save(s.last.Features)
	s.state = StateBaselineSaved
	s.logger.Debug("Baseline saved", logging.Fields{
		"fingerprint_id": s.last.ID,
		"feature_length": len(s.last.Features),
	})
	return nil
}

// Compare scores the last captured fingerprint against the stored
// baseline. Without a baseline the outcome is NoBaseline; mismatched
// feature lengths propagate as a CONFIG_MISMATCH error.
func (s *Session) Compare() (*CompareResult, error) {
	if s.last == nil {
		return nil, fingerprint.NewPipelineError("session", fingerprint.ErrCodeInvalidInput,
			"no captured fingerprint to compare", nil)
	}

	baseline, ok := s.store.Load()
	if !ok {
		return &CompareResult{Outcome: OutcomeNoBaseline}, nil
	}

	result, err := fingerprint.Compare(s.last.Features, baseline, s.generator.Config().MatchThreshold)
	if err != nil {
		return nil, err
	}

	outcome := OutcomeNoMatch
	if result.Match {
		outcome = OutcomeMatch
	}

	return &CompareResult{Outcome: outcome, Result: result}, nil
}

// ClearBaseline empties the store, e.g. on session teardown
func (s *Session) ClearBaseline() {
	s.store.Clear()
}

// failCapture records the failure. CaptureFailed behaves like Idle for
// the next capture attempt; control has returned to the caller.
func (s *Session) failCapture() {
	s.state = StateCaptureFailed
	s.last = nil
	s.logger.Warn("Capture failed, session ready for retry")
}
