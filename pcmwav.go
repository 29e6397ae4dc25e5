// SPDX-License-Identifier: EPL-2.0

package pcmwav

import (
	"fmt"

	"github.com/ik5/pcmwav/audio"
	"github.com/ik5/pcmwav/b64"
	"github.com/ik5/pcmwav/formats/wav"
	"github.com/ik5/pcmwav/pcm"
)

var (
	ErrDecode            = audio.ErrDecode
	ErrMalformedAudio    = audio.ErrMalformedAudio
	ErrUnsupportedFormat = audio.ErrUnsupportedFormat
)

// Format describes raw PCM that carries no header of its own.
type Format struct {
	SampleRate    int `json:"sample_rate" yaml:"sample_rate"`
	Channels      int `json:"channels" yaml:"channels"`
	BitsPerSample int `json:"bits_per_sample" yaml:"bits_per_sample"`
}

// DefaultFormat is the layout speech services usually return: 24 kHz mono
// signed 16-bit.
var DefaultFormat = Format{
	SampleRate:    24000,
	Channels:      1,
	BitsPerSample: 16,
}

// Validate reports ErrUnsupportedFormat for a layout the WAV encoder cannot
// describe.
func (f Format) Validate() error {
	if f.Channels < 1 || f.Channels > audio.MaxChannels {
		return fmt.Errorf("%w: channel count %d", ErrUnsupportedFormat, f.Channels)
	}
	if f.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrUnsupportedFormat, f.SampleRate)
	}
	if !wav.SupportedBitDepth(f.BitsPerSample) {
		return fmt.Errorf("%w: %d bits per sample", ErrUnsupportedFormat, f.BitsPerSample)
	}

	return nil
}

// FrameSize is the byte length of one interleaved frame.
func (f Format) FrameSize() int {
	return audio.FrameSize(f.Channels, f.BitsPerSample)
}

// Decode turns base64 transport text into raw PCM bytes.
func Decode(text string) ([]byte, error) {
	return b64.Decode(text)
}

// ToSamples normalizes raw 16-bit PCM for playback.
func ToSamples(raw []byte, f Format) (*pcm.SampleBuffer, error) {
	if f.BitsPerSample != pcm.BitDepth {
		return nil, fmt.Errorf("%w: playback needs %d-bit samples, got %d",
			ErrUnsupportedFormat, pcm.BitDepth, f.BitsPerSample)
	}

	return pcm.ToSamples(raw, f.SampleRate, f.Channels)
}

// EncodeWAV wraps raw in a 44-byte WAV header.
func EncodeWAV(raw []byte, f Format) ([]byte, error) {
	return wav.Encode(raw, f.SampleRate, f.Channels, f.BitsPerSample)
}

// Result carries both artifacts derived from one payload.
type Result struct {
	Samples *pcm.SampleBuffer
	WAV     []byte
}

// Convert decodes text once and derives the playback samples and the WAV
// file from the same bytes. Either both artifacts are produced or neither.
func Convert(text string, f Format) (*Result, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	raw, err := Decode(text)
	if err != nil {
		return nil, err
	}

	samples, err := ToSamples(raw, f)
	if err != nil {
		return nil, err
	}

	data, err := EncodeWAV(raw, f)
	if err != nil {
		return nil, err
	}

	return &Result{
		Samples: samples,
		WAV:     data,
	}, nil
}
