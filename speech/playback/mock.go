package playback

import (
	"sync"

	"github.com/yomiage/yomiage/speech"
)

// MockSink implements speech.Sink for testing. It records every delivered
// track instead of producing sound.
type MockSink struct {
	mu sync.Mutex

	delivered []*speech.AudioTrack
	orders    []speech.ByteOrder

	failErr error
}

// NewMockSink creates a mock sink.
func NewMockSink() *MockSink {
	return &MockSink{}
}

// Deliver records the track, or fails if a failure was configured.
func (s *MockSink) Deliver(track *speech.AudioTrack, order speech.ByteOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	s.delivered = append(s.delivered, track)
	s.orders = append(s.orders, order)
	return nil
}

// Delivered returns the tracks handed over so far.
func (s *MockSink) Delivered() []*speech.AudioTrack {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*speech.AudioTrack, len(s.delivered))
	copy(out, s.delivered)
	return out
}

// Orders returns the byte-order tags handed over so far.
func (s *MockSink) Orders() []speech.ByteOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]speech.ByteOrder, len(s.orders))
	copy(out, s.orders)
	return out
}

// SetFailure makes subsequent deliveries fail with err.
func (s *MockSink) SetFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

// Reset clears recorded deliveries and any configured failure.
func (s *MockSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delivered = nil
	s.orders = nil
	s.failErr = nil
}
