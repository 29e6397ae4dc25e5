// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"encoding/binary"
	"fmt"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/pcmwav/audio"
	"github.com/ik5/pcmwav/utils"
)

// BitDepth is the only sample width the playback path understands.
const BitDepth = 16

// SampleBuffer holds decoded samples grouped per channel.
type SampleBuffer struct {
	SampleRate int
	// Data[c][i] is frame i of channel c.
	Data [][]float32
}

// ToSamples splits raw into channels and normalizes every sample.
// raw is not retained.
func ToSamples(raw []byte, sampleRate, channels int) (*SampleBuffer, error) {
	if channels < 1 || channels > audio.MaxChannels {
		return nil, fmt.Errorf("%w: channel count %d", audio.ErrUnsupportedFormat, channels)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", audio.ErrUnsupportedFormat, sampleRate)
	}

	frameSize := audio.FrameSize(channels, BitDepth)
	if err := audio.CheckFrames(len(raw), frameSize); err != nil {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d", err, len(raw), frameSize)
	}

	frames := len(raw) / frameSize
	backing := make([]float32, frames*channels)
	data := make([][]float32, channels)
	for c := range data {
		data[c] = backing[c*frames : (c+1)*frames : (c+1)*frames]
	}

	for i := range len(raw) / 2 {
		v := int16(binary.LittleEndian.Uint16(raw[2*i : 2*i+2]))
		data[i%channels][i/channels] = utils.Int16ToFloat32(v)
	}

	return &SampleBuffer{
		SampleRate: sampleRate,
		Data:       data,
	}, nil
}

func (b *SampleBuffer) NumChannels() int { return len(b.Data) }

func (b *SampleBuffer) NumFrames() int {
	if len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

// Duration is the playback length at SampleRate.
func (b *SampleBuffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.NumFrames()) * time.Second / time.Duration(b.SampleRate)
}

// Interleaved flattens the buffer back into frame order, the layout most
// audio outputs expect.
func (b *SampleBuffer) Interleaved() []float32 {
	channels := b.NumChannels()
	frames := b.NumFrames()
	out := make([]float32, frames*channels)

	if channels == 1 {
		copy(out, b.Data[0])
		return out
	}

	for f := range frames {
		base := f * channels
		for c := range channels {
			out[base+c] = b.Data[c][f]
		}
	}

	return out
}

// Float32Buffer converts to a go-audio buffer for use with go-audio
// processors and encoders.
func (b *SampleBuffer) Float32Buffer() *goaudio.Float32Buffer {
	return &goaudio.Float32Buffer{
		Format: &goaudio.Format{
			NumChannels: b.NumChannels(),
			SampleRate:  b.SampleRate,
		},
		Data:           b.Interleaved(),
		SourceBitDepth: BitDepth,
	}
}
