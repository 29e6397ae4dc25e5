// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// MaxChannels is the largest channel count the 16-bit WAV fmt field can
// carry.
const MaxChannels = math.MaxUint16

// maxBitsPerSample bounds FrameSize so the product cannot overflow.
const maxBitsPerSample = 64

// Source is a pull-based stream of interleaved float32 samples.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). The last block
	// of data comes back with a nil error; the stream is finished when a
	// later call returns n == 0 with err == io.EOF.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// FrameSize returns the number of bytes one interleaved frame occupies, or
// 0 when channels or bitsPerSample is out of range.
func FrameSize(channels, bitsPerSample int) int {
	if channels < 1 || channels > MaxChannels || bitsPerSample < 1 || bitsPerSample > maxBitsPerSample {
		return 0
	}

	return channels * bitsPerSample / 8
}

// CheckFrames reports ErrMalformedAudio when size bytes do not split into
// whole frames of frameSize bytes.
func CheckFrames(size, frameSize int) error {
	if frameSize <= 0 {
		return ErrUnsupportedFormat
	}

	if size%frameSize != 0 {
		return ErrMalformedAudio
	}

	return nil
}
