//go:build !nocgo
// +build !nocgo

// Package playback provides sinks that turn extracted tracks into audible
// output.
package playback

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/yomiage/yomiage/speech"
)

// OtoSink plays delivered tracks on the default audio device via oto.
// Deliver blocks until the track has drained, keeping the backend's
// one-request-at-a-time model intact.
type OtoSink struct {
	mu sync.Mutex

	// oto allows one context per process; it is created lazily from the
	// first delivered track and later tracks must match its format.
	context    *oto.Context
	sampleRate int
	channels   int
}

// NewOtoSink creates an uninitialized sink. The audio context is created on
// first delivery.
func NewOtoSink() *OtoSink {
	return &OtoSink{}
}

// Deliver plays the track. Only 16-bit little-endian PCM is supported,
// which is the only format the backend ever hands over.
func (s *OtoSink) Deliver(track *speech.AudioTrack, order speech.ByteOrder) error {
	if order != speech.LittleEndian {
		return fmt.Errorf("playback: unsupported byte order %s", order)
	}
	if track.Bits != 16 {
		return fmt.Errorf("playback: unsupported bit depth %d", track.Bits)
	}
	if len(track.Samples) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureContext(int(track.SampleRate), int(track.Channels)); err != nil {
		return err
	}

	player := s.context.NewPlayer(bytes.NewReader(track.Samples))
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	if err := player.Close(); err != nil {
		return fmt.Errorf("playback: close player: %w", err)
	}
	return nil
}

func (s *OtoSink) ensureContext(sampleRate, channels int) error {
	if s.context != nil {
		if sampleRate != s.sampleRate || channels != s.channels {
			return fmt.Errorf("playback: track format %dHz/%dch does not match audio context %dHz/%dch",
				sampleRate, channels, s.sampleRate, s.channels)
		}
		return nil
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return fmt.Errorf("playback: create audio context: %w", err)
	}
	<-ready

	s.context = ctx
	s.sampleRate = sampleRate
	s.channels = channels
	return nil
}
