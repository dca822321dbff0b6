// Package speech adapts text utterances into playable PCM audio. It resolves
// a voice model file for the current selection, drives an external synthesis
// engine as a subprocess, extracts the PCM samples from the engine's output
// file, and hands the result to a playback sink.
package speech

import (
	"context"
	"fmt"
	"strings"
)

// Engine runs the external synthesis engine against a resolved voice model.
type Engine interface {
	// Synthesize renders text with the given voice model into a freshly
	// created temporary output file and returns its path. The caller owns
	// removal of the file. A non-empty path may be returned together with
	// an error when synthesis failed after the file was already created;
	// the caller must remove it in that case too.
	Synthesize(ctx context.Context, text, voicePath string) (string, error)
}

// Extractor reads an engine output file into an in-memory audio track.
type Extractor interface {
	Extract(path string) (*AudioTrack, error)
}

// Sink receives an extracted track for playback.
type Sink interface {
	Deliver(track *AudioTrack, order ByteOrder) error
}

// Registry enumerates the statically registered synthesis voices.
type Registry interface {
	// List returns all registered voices.
	List() []Voice

	// Lookup returns the voice identifier for a language and voice type.
	Lookup(language string, voiceType VoiceType) (string, bool)

	// Exists reports whether a voice with the given identifier is registered.
	Exists(name string) bool
}

// AudioTrack is an in-memory PCM audio record ready for playback hand-off.
// Invariant: len(Samples) == NumSamples * Channels * Bits/8.
type AudioTrack struct {
	Bits       uint16 // Bits per sample
	Channels   uint16 // Number of audio channels
	SampleRate uint32 // Sample rate in Hz
	NumSamples uint32 // Samples per channel
	Samples    []byte // Raw PCM sample data
}

// FrameSize returns the number of bytes per sample frame across all channels.
func (t *AudioTrack) FrameSize() int {
	return int(t.Channels) * int(t.Bits) / 8
}

// ByteOrder tags the byte order of a track's samples.
type ByteOrder int

const (
	// LittleEndian is the byte order of all supported engine output.
	LittleEndian ByteOrder = iota
	// BigEndian exists for sink implementations that negotiate formats;
	// this backend never delivers it.
	BigEndian
)

// String returns the string representation of the byte order.
func (b ByteOrder) String() string {
	switch b {
	case LittleEndian:
		return "little-endian"
	case BigEndian:
		return "big-endian"
	default:
		return "unknown"
	}
}

// Voice describes one registered synthesis voice.
type Voice struct {
	Name     string    // Engine-specific voice identifier
	Language string    // Language code (e.g., "ja")
	Type     VoiceType // Voice type slot
}

// VoiceType identifies one of the fixed voice slots a client can select
// without naming a specific voice.
type VoiceType int

const (
	// VoiceMale1 is the default male voice slot.
	VoiceMale1 VoiceType = iota
	VoiceMale2
	VoiceMale3
	// VoiceFemale1 is the default female voice slot.
	VoiceFemale1
	VoiceFemale2
	VoiceFemale3
	VoiceChildMale
	VoiceChildFemale
)

// String returns the string representation of the voice type.
func (v VoiceType) String() string {
	switch v {
	case VoiceMale1:
		return "male1"
	case VoiceMale2:
		return "male2"
	case VoiceMale3:
		return "male3"
	case VoiceFemale1:
		return "female1"
	case VoiceFemale2:
		return "female2"
	case VoiceFemale3:
		return "female3"
	case VoiceChildMale:
		return "child_male"
	case VoiceChildFemale:
		return "child_female"
	default:
		return "unknown"
	}
}

// ParseVoiceType parses a voice type name as used in configuration files.
func ParseVoiceType(s string) (VoiceType, error) {
	types := []VoiceType{
		VoiceMale1, VoiceMale2, VoiceMale3,
		VoiceFemale1, VoiceFemale2, VoiceFemale3,
		VoiceChildMale, VoiceChildFemale,
	}
	for _, t := range types {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown voice type %q", s)
}
