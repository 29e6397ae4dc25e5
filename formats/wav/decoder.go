// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/pcmwav/audio"
	"github.com/ik5/pcmwav/pcm"
)

// Decoder reads canonical 16-bit PCM WAV files, such as those produced by
// Encode, back into samples.
type Decoder struct{}

// Decode parses the 44-byte header, then loads the data chunk and hands it
// to pcm.ToSamples.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	buf, err := DecodeSamples(r)
	if err != nil {
		return nil, err
	}

	return buf.Source(), nil
}

// DecodeSamples is Decode without the streaming wrapper.
func DecodeSamples(r io.Reader) (*pcm.SampleBuffer, error) {
	var header [HeaderSize]byte

	if _, err := io.ReadFull(r, header[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: short header", ErrNotWavFile)
		}
		return nil, fmt.Errorf("%w", err)
	}

	if !bytes.Equal(header[0:4], []byte("RIFF")) || !bytes.Equal(header[8:12], []byte("WAVE")) {
		return nil, ErrNotWavFile
	}

	// Parse fmt chunk at 12.., assuming canonical layout
	if !bytes.Equal(header[12:16], []byte("fmt ")) ||
		binary.LittleEndian.Uint32(header[16:20]) != fmtChunkSize {
		return nil, ErrUnsupportedWavLayout
	}

	audioFormat := binary.LittleEndian.Uint16(header[20:22])
	channels := int(binary.LittleEndian.Uint16(header[22:24]))
	sampleRate := int(binary.LittleEndian.Uint32(header[24:28]))
	bitsPerSample := int(binary.LittleEndian.Uint16(header[34:36]))

	if audioFormat != formatPCM || bitsPerSample != pcm.BitDepth {
		return nil, fmt.Errorf("%w: format tag %d with %d bits per sample",
			audio.ErrUnsupportedFormat, audioFormat, bitsPerSample)
	}

	if !bytes.Equal(header[36:40], []byte("data")) {
		return nil, ErrUnsupportedWavLayout
	}

	dataSize := int64(binary.LittleEndian.Uint32(header[40:44]))

	data, err := io.ReadAll(io.LimitReader(r, dataSize))
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if int64(len(data)) != dataSize {
		return nil, fmt.Errorf("%w: data chunk declares %d bytes, got %d",
			audio.ErrMalformedAudio, dataSize, len(data))
	}

	return pcm.ToSamples(data, sampleRate, channels)
}
