//go:build !nocgo
// +build !nocgo

package playback

import (
	"testing"

	"github.com/yomiage/yomiage/speech"
)

// TestOtoSinkRejectsUnsupportedFormats tests the format guards that run
// before any audio device is touched.
func TestOtoSinkRejectsUnsupportedFormats(t *testing.T) {
	tests := []struct {
		name  string
		track *speech.AudioTrack
		order speech.ByteOrder
	}{
		{
			name:  "big-endian order",
			track: track16([]byte{0x01, 0x00}),
			order: speech.BigEndian,
		},
		{
			name: "8-bit depth",
			track: &speech.AudioTrack{
				Bits:       8,
				Channels:   1,
				SampleRate: 16000,
				NumSamples: 2,
				Samples:    []byte{0x10, 0x20},
			},
			order: speech.LittleEndian,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := NewOtoSink().Deliver(tt.track, tt.order); err == nil {
				t.Error("Deliver() should reject unsupported format")
			}
		})
	}
}

// TestOtoSinkEmptyTrack tests that a zero-sample track succeeds without
// creating an audio context.
func TestOtoSinkEmptyTrack(t *testing.T) {
	sink := NewOtoSink()
	if err := sink.Deliver(track16(nil), speech.LittleEndian); err != nil {
		t.Fatalf("Deliver() of empty track failed: %v", err)
	}
	if sink.context != nil {
		t.Error("empty delivery should not initialize the audio context")
	}
}
