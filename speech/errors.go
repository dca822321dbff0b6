package speech

import "errors"

// Common errors for the speech backend.
var (
	// Configuration errors
	ErrNoVoicesConfigured = errors.New("no synthesis voices configured")
	ErrInvalidConfig      = errors.New("invalid configuration")

	// Resolution errors
	ErrNoLanguage      = errors.New("no language selected")
	ErrVoiceUnresolved = errors.New("no voice file found for current selection")

	// Engine errors
	ErrSpawnFailed = errors.New("synthesis engine failed to start")
	ErrEngineExit  = errors.New("synthesis engine exited with non-zero status")
	ErrTempFile    = errors.New("temporary output file creation failed")

	// Control errors
	ErrPauseUnsupported = errors.New("pause is not supported")
)

// IsFatal reports whether an error should abort backend construction rather
// than fail a single request. Only a completely empty voice registry is
// fatal; everything else is reported per request.
func IsFatal(err error) bool {
	return errors.Is(err, ErrNoVoicesConfigured)
}

// SpeakError carries the component and action a per-request failure
// occurred in, so a single "speak failed" signal still logs usefully.
type SpeakError struct {
	Err       error  // The underlying error
	Component string // Component that generated the error
	Action    string // Action being performed when the error occurred
}

// Error implements the error interface.
func (e *SpeakError) Error() string {
	if e.Err != nil {
		return e.Component + ": " + e.Action + ": " + e.Err.Error()
	}
	return e.Component + ": " + e.Action + ": unknown error"
}

// Unwrap returns the underlying error.
func (e *SpeakError) Unwrap() error {
	return e.Err
}

// NewSpeakError creates a new speak error with context.
func NewSpeakError(err error, component, action string) *SpeakError {
	return &SpeakError{
		Err:       err,
		Component: component,
		Action:    action,
	}
}
