// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"io"

	"github.com/ik5/pcmwav/audio"
)

const defaultBufSize = 4096

// bufferSource streams a SampleBuffer as interleaved frames.
type bufferSource struct {
	buf   *SampleBuffer
	frame int // next frame to emit
}

// Source returns an audio.Source reading the buffer from the start.
// Each call returns an independent reader.
func (b *SampleBuffer) Source() audio.Source {
	return &bufferSource{buf: b}
}

func (s *bufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *bufferSource) Channels() int   { return s.buf.NumChannels() }
func (s *bufferSource) BufSize() int    { return defaultBufSize }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	channels := s.buf.NumChannels()
	if channels == 0 {
		return 0, io.EOF
	}
	if len(dst)%channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	total := s.buf.NumFrames()
	if s.frame >= total {
		return 0, io.EOF
	}

	frames := min(len(dst)/channels, total-s.frame)

	for f := range frames {
		base := f * channels
		for c := range channels {
			dst[base+c] = s.buf.Data[c][s.frame+f]
		}
	}

	s.frame += frames

	return frames * channels, nil
}
