// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/ik5/pcmwav/audio"
)

// DefaultFramesPerBuffer is the device buffer length in frames.
const DefaultFramesPerBuffer = 1024

var ErrAlreadyPlaying = errors.New("playback already in progress")

// Sink is an output device.
type Sink interface {
	// MaxChannels is the widest layout the device accepts; 0 means unknown.
	MaxChannels() int
	Open(channels int, sampleRate float64, framesPerBuffer int) (Stream, error)
}

// Stream accepts interleaved buffers of exactly framesPerBuffer frames.
type Stream interface {
	Write(buf []float32) error
	Close() error
}

type Player struct {
	sink            Sink
	logger          *zap.Logger
	framesPerBuffer int

	mu      sync.Mutex
	playing bool
}

func New(sink Sink, logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Player{
		sink:            sink,
		logger:          logger,
		framesPerBuffer: DefaultFramesPerBuffer,
	}
}

// WithFramesPerBuffer overrides the device buffer length.
func (p *Player) WithFramesPerBuffer(frames int) *Player {
	if frames > 0 {
		p.framesPerBuffer = frames
	}
	return p
}

func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Play writes src to the sink until it is drained or ctx is done. The last
// buffer is padded with silence. src is closed before Play returns.
func (p *Player) Play(ctx context.Context, src audio.Source) (err error) {
	p.mu.Lock()
	if p.playing {
		p.mu.Unlock()
		return ErrAlreadyPlaying
	}
	p.playing = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.playing = false
		p.mu.Unlock()
	}()

	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing source: %w", cerr)
		}
	}()

	channels := src.Channels()
	if channels < 1 || src.SampleRate() <= 0 {
		return fmt.Errorf("%w: %d channels at %d Hz",
			audio.ErrUnsupportedFormat, channels, src.SampleRate())
	}
	if limit := p.sink.MaxChannels(); limit > 0 && channels > limit {
		return fmt.Errorf("%w: device plays at most %d channels, source has %d",
			audio.ErrUnsupportedFormat, limit, channels)
	}

	stream, err := p.sink.Open(channels, float64(src.SampleRate()), p.framesPerBuffer)
	if err != nil {
		return fmt.Errorf("opening output stream: %w", err)
	}
	defer func() {
		if cerr := stream.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output stream: %w", cerr)
		}
	}()

	p.logger.Debug("playback started",
		zap.Int("sample_rate", src.SampleRate()),
		zap.Int("channels", channels))

	buf := make([]float32, p.framesPerBuffer*channels)
	written := 0

	for {
		if err := ctx.Err(); err != nil {
			p.logger.Debug("playback cancelled", zap.Int("frames", written))
			return err
		}

		n, rerr := src.ReadSamples(buf)
		if n > 0 {
			clear(buf[n:])
			if err := stream.Write(buf); err != nil {
				return fmt.Errorf("writing to output stream: %w", err)
			}
			written += n / channels
		}

		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return fmt.Errorf("reading samples: %w", rerr)
		}
	}

	p.logger.Debug("playback finished", zap.Int("frames", written))

	return nil
}
