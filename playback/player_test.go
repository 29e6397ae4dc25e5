// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ik5/pcmwav/audio"
	"github.com/ik5/pcmwav/internal/audiotest"
	"github.com/ik5/pcmwav/pcm"
)

type fakeSink struct {
	maxChannels int
	openErr     error
	writeErr    error

	mu         sync.Mutex
	channels   int
	sampleRate float64
	frames     int
	writes     [][]float32
	closed     bool
	onWrite    func()
}

func (s *fakeSink) MaxChannels() int { return s.maxChannels }

func (s *fakeSink) Open(channels int, sampleRate float64, framesPerBuffer int) (Stream, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}

	s.channels = channels
	s.sampleRate = sampleRate
	s.frames = framesPerBuffer
	return s, nil
}

func (s *fakeSink) Write(buf []float32) error {
	if s.writeErr != nil {
		return s.writeErr
	}

	s.mu.Lock()
	s.writes = append(s.writes, append([]float32(nil), buf...))
	s.mu.Unlock()

	if s.onWrite != nil {
		s.onWrite()
	}
	return nil
}

func (s *fakeSink) Close() error {
	s.closed = true
	return nil
}

func (s *fakeSink) samples() []float32 {
	var out []float32
	for _, w := range s.writes {
		out = append(out, w...)
	}
	return out
}

func TestPlayWritesAllSamples(t *testing.T) {
	t.Parallel()

	buf, err := pcm.ToSamples(audiotest.PCM16(16384, -16384, 8192, -8192, 1), 24000, 1)
	require.NoError(t, err)

	sink := &fakeSink{maxChannels: 2}
	p := New(sink, zaptest.NewLogger(t)).WithFramesPerBuffer(2)

	require.NoError(t, p.Play(context.Background(), buf.Source()))

	require.Equal(t, 1, sink.channels)
	require.Equal(t, 24000.0, sink.sampleRate)
	require.Equal(t, 2, sink.frames)
	require.Len(t, sink.writes, 3)
	require.Equal(t, []float32{0.5, -0.5, 0.25, -0.25, 1.0 / 32768, 0}, sink.samples())
	require.True(t, sink.closed)
	require.False(t, p.IsPlaying())
}

func TestPlayRejectsNarrowDevice(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 2, 4, 0.5)
	sink := &fakeSink{maxChannels: 1}

	err := New(sink, nil).Play(context.Background(), src)
	require.ErrorIs(t, err, audio.ErrUnsupportedFormat)
	require.Empty(t, sink.writes)
	require.True(t, src.Closed())
}

func TestPlayKeepsChannelsWhenDeviceIsWide(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 2, 8, 0.1)
	sink := &fakeSink{}

	require.NoError(t, New(sink, nil).WithFramesPerBuffer(8).Play(context.Background(), src))
	require.Equal(t, 2, sink.channels)
	require.Len(t, sink.samples(), 16)
}

func TestPlayCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	sink := &fakeSink{}
	sink.onWrite = cancel

	src := audiotest.NewConstantSource(8000, 1, 1<<20, 0.1)

	err := New(sink, zaptest.NewLogger(t)).WithFramesPerBuffer(64).Play(ctx, src)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, sink.writes, 1)
	require.True(t, sink.closed)
	require.True(t, src.Closed())
}

func TestPlaySourceError(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 1, 1<<20, 0.1).FailAfter(10)

	err := New(&fakeSink{}, nil).WithFramesPerBuffer(10).Play(context.Background(), src)
	require.ErrorIs(t, err, audiotest.ErrMockRead)
}

func TestPlaySinkErrors(t *testing.T) {
	t.Parallel()

	errDevice := errors.New("device gone")

	err := New(&fakeSink{openErr: errDevice}, nil).Play(context.Background(), audiotest.NewConstantSource(8000, 1, 10, 0))
	require.ErrorIs(t, err, errDevice)

	err = New(&fakeSink{writeErr: errDevice}, nil).Play(context.Background(), audiotest.NewConstantSource(8000, 1, 10, 0))
	require.ErrorIs(t, err, errDevice)
}

func TestPlayInvalidSource(t *testing.T) {
	t.Parallel()

	err := New(&fakeSink{}, nil).Play(context.Background(), audiotest.NewConstantSource(0, 1, 10, 0))
	require.ErrorIs(t, err, audio.ErrUnsupportedFormat)
}

func TestPlayRejectsConcurrentUse(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})

	var once sync.Once
	sink := &fakeSink{}
	sink.onWrite = func() {
		once.Do(func() { close(started) })
		<-release
	}

	p := New(sink, nil).WithFramesPerBuffer(4)

	done := make(chan error, 1)
	go func() {
		done <- p.Play(context.Background(), audiotest.NewConstantSource(8000, 1, 8, 0))
	}()

	<-started
	require.True(t, p.IsPlaying())
	require.ErrorIs(t, p.Play(context.Background(), audiotest.NewConstantSource(8000, 1, 8, 0)), ErrAlreadyPlaying)

	close(release)
	require.NoError(t, <-done)
}
