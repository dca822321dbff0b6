//go:build nocgo
// +build nocgo

// Package playback provides sinks that turn extracted tracks into audible
// output.
package playback

import (
	"errors"

	"github.com/yomiage/yomiage/speech"
)

// OtoSink stub for builds without CGO audio support.
type OtoSink struct{}

// NewOtoSink creates a stub sink.
func NewOtoSink() *OtoSink {
	return &OtoSink{}
}

// Deliver always fails in nocgo builds.
func (s *OtoSink) Deliver(*speech.AudioTrack, speech.ByteOrder) error {
	return errors.New("playback: audio not available in nocgo build")
}
