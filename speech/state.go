package speech

// RequestState represents the stage a speak request is in.
type RequestState int

const (
	// StateIdle indicates no request is in flight.
	StateIdle RequestState = iota
	// StateParamsUpdated indicates the selection parameters were applied.
	StateParamsUpdated
	// StateVoiceChecked indicates voice resolution has run for the request.
	StateVoiceChecked
	// StateSynthesizing indicates the engine subprocess is running.
	StateSynthesizing
	// StateExtracting indicates the output file is being read.
	StateExtracting
	// StatePlayback indicates the track is being handed to the sink.
	StatePlayback
	// StateDone indicates the request completed and audio was delivered.
	StateDone
	// StateFailed indicates the request failed at some stage.
	StateFailed
)

// String returns the string representation of the state.
func (s RequestState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateParamsUpdated:
		return "params_updated"
	case StateVoiceChecked:
		return "voice_checked"
	case StateSynthesizing:
		return "synthesizing"
	case StateExtracting:
		return "extracting"
	case StatePlayback:
		return "playback"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RequestStateMachine tracks the stages of a single speak request. Any state
// from StateParamsUpdated onward may fail; terminal states return to idle.
type RequestStateMachine struct {
	current     RequestState
	transitions map[RequestState][]RequestState
}

// NewRequestStateMachine creates a state machine with the valid transitions.
func NewRequestStateMachine() *RequestStateMachine {
	return &RequestStateMachine{
		current: StateIdle,
		transitions: map[RequestState][]RequestState{
			StateIdle:          {StateParamsUpdated},
			StateParamsUpdated: {StateVoiceChecked, StateFailed},
			StateVoiceChecked:  {StateSynthesizing, StateFailed},
			StateSynthesizing:  {StateExtracting, StateFailed},
			StateExtracting:    {StatePlayback, StateFailed},
			StatePlayback:      {StateDone, StateFailed},
			StateDone:          {StateIdle},
			StateFailed:        {StateIdle},
		},
	}
}

// Transition attempts to transition to the specified state.
func (sm *RequestStateMachine) Transition(to RequestState) bool {
	valid := false
	for _, state := range sm.transitions[sm.current] {
		if state == to {
			valid = true
			break
		}
	}
	if !valid {
		return false
	}
	sm.current = to
	return true
}

// Current returns the current state.
func (sm *RequestStateMachine) Current() RequestState {
	return sm.current
}

// Terminal reports whether the request has reached a terminal state.
func (sm *RequestStateMachine) Terminal() bool {
	return sm.current == StateDone || sm.current == StateFailed
}
