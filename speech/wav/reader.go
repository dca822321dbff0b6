// Package wav reads the fixed-layout WAV files produced by the synthesis
// engine.
//
// This is deliberately not a general RIFF parser: one known engine writes a
// canonical 44-byte header, so the field positions below are constants
// rather than offsets discovered by chunk walking. Feeding it WAV files from
// any other producer is unsupported.
package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/yomiage/yomiage/speech"
)

// Byte offsets of the header fields in the engine's output.
const (
	offsetChannels   = 22
	offsetSampleRate = 24
	offsetBits       = 34
	offsetDataLength = 40
	offsetSamples    = 44
)

var (
	// ErrTruncated indicates the file ended before a header field or the
	// sample block could be read in full.
	ErrTruncated = errors.New("wav: file truncated")
	// ErrBadHeader indicates header values no engine output would carry.
	ErrBadHeader = errors.New("wav: malformed header")
)

// Reader extracts PCM audio from engine output files.
type Reader struct{}

// NewReader creates a fixed-layout WAV reader.
func NewReader() *Reader {
	return &Reader{}
}

// Extract reads the header fields and the PCM sample block from the file at
// path. On success the returned track satisfies
// len(Samples) == NumSamples * Channels * Bits/8 exactly; any short read
// fails the whole call and no partial track is returned.
func (r *Reader) Extract(path string) (*speech.AudioTrack, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wav: open %s: %w", path, err)
	}
	defer f.Close()

	// Each field is a discrete positioned read, in the same order the
	// engine protocol fixes: bits, channels, sample rate, data length.
	bits, err := readUint16(f, offsetBits, "bits per sample")
	if err != nil {
		return nil, err
	}
	channels, err := readUint16(f, offsetChannels, "channel count")
	if err != nil {
		return nil, err
	}
	sampleRate, err := readUint32(f, offsetSampleRate, "sample rate")
	if err != nil {
		return nil, err
	}
	dataLength, err := readUint32(f, offsetDataLength, "data length")
	if err != nil {
		return nil, err
	}

	if channels == 0 || bits == 0 || bits%8 != 0 {
		return nil, fmt.Errorf("%w: bits=%d channels=%d", ErrBadHeader, bits, channels)
	}

	numSamples := dataLength / uint32(channels) / uint32(bits/8)
	samples := make([]byte, int(numSamples)*int(channels)*int(bits/8))
	if _, err := f.ReadAt(samples, offsetSamples); err != nil {
		return nil, fmt.Errorf("%w: sample data: %v", ErrTruncated, err)
	}

	return &speech.AudioTrack{
		Bits:       bits,
		Channels:   channels,
		SampleRate: sampleRate,
		NumSamples: numSamples,
		Samples:    samples,
	}, nil
}

func readUint16(f *os.File, offset int64, field string) (uint16, error) {
	var buf [2]byte
	if _, err := f.ReadAt(buf[:], offset); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrTruncated, field, err)
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

func readUint32(f *os.File, offset int64, field string) (uint32, error) {
	var buf [4]byte
	if _, err := f.ReadAt(buf[:], offset); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrTruncated, field, err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}
