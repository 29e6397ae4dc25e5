// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// PortAudio plays through the system default output device.
type PortAudio struct {
	device *portaudio.DeviceInfo
}

// OpenPortAudio initializes the PortAudio library. Close must be called to
// release it.
func OpenPortAudio() (*PortAudio, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}

	device, err := portaudio.DefaultOutputDevice()
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("no default output device: %w", err)
	}

	return &PortAudio{device: device}, nil
}

func (p *PortAudio) Name() string { return p.device.Name }

func (p *PortAudio) MaxChannels() int { return p.device.MaxOutputChannels }

func (p *PortAudio) Open(channels int, sampleRate float64, framesPerBuffer int) (Stream, error) {
	s := &paStream{buf: make([]float32, framesPerBuffer*channels)}

	stream, err := portaudio.OpenDefaultStream(0, channels, sampleRate, framesPerBuffer, &s.buf)
	if err != nil {
		return nil, fmt.Errorf("failed to open output stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		_ = stream.Close()
		return nil, fmt.Errorf("failed to start output stream: %w", err)
	}

	s.stream = stream
	return s, nil
}

func (p *PortAudio) Close() error {
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

type paStream struct {
	stream *portaudio.Stream
	buf    []float32
}

func (s *paStream) Write(buf []float32) error {
	copy(s.buf, buf)
	if err := s.stream.Write(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (s *paStream) Close() error {
	stopErr := s.stream.Stop()
	closeErr := s.stream.Close()
	if stopErr != nil {
		return fmt.Errorf("%w", stopErr)
	}
	if closeErr != nil {
		return fmt.Errorf("%w", closeErr)
	}
	return nil
}
