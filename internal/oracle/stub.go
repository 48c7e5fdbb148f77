package oracle

import "context"

// StubAnswer is the fixed completion returned by the stub oracle.
const StubAnswer = "Purpose not determined by static analysis."

// Stub is a deterministic no-op oracle. It keeps the model-backed question
// path exercisable in tests and in runs where no model is configured.
type Stub struct {
	// Answer overrides StubAnswer when non-empty.
	Answer string
	// Err, when set, is returned from every Complete call. Useful for
	// testing degraded-oracle behavior.
	Err error

	// Calls counts Complete invocations.
	Calls int
}

// NewStub creates a stub oracle with the default fixed answer.
func NewStub() *Stub { return &Stub{} }

func (s *Stub) Complete(_ context.Context, _ string) (string, error) {
	s.Calls++
	if s.Err != nil {
		return "", s.Err
	}
	if s.Answer != "" {
		return s.Answer, nil
	}
	return StubAnswer, nil
}

func (s *Stub) Close() error { return nil }
