// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ik5/pcmwav/audio"
)

const (
	// HeaderSize is the length of the canonical RIFF/WAVE PCM header.
	HeaderSize = 44

	MIMEType  = "audio/wav"
	Extension = ".wav"

	formatPCM    = 1
	fmtChunkSize = 16
	// RIFF size counts everything after the first 8 bytes.
	riffOverhead = HeaderSize - 8
)

// SupportedBitDepth reports whether the encoder can label PCM of this width.
func SupportedBitDepth(bitsPerSample int) bool {
	return bitsPerSample == 8 || bitsPerSample == 16
}

// Header builds the 44-byte header for dataLen bytes of interleaved PCM.
func Header(dataLen, sampleRate, channels, bitsPerSample int) ([HeaderSize]byte, error) {
	var header [HeaderSize]byte

	if !SupportedBitDepth(bitsPerSample) {
		return header, fmt.Errorf("%w: %d bits per sample", audio.ErrUnsupportedFormat, bitsPerSample)
	}
	if channels < 1 || channels > audio.MaxChannels {
		return header, fmt.Errorf("%w: channel count %d", audio.ErrUnsupportedFormat, channels)
	}
	if sampleRate <= 0 || uint64(sampleRate) > math.MaxUint32 {
		return header, fmt.Errorf("%w: sample rate %d", audio.ErrUnsupportedFormat, sampleRate)
	}

	blockAlign := audio.FrameSize(channels, bitsPerSample)
	byteRate := uint64(sampleRate) * uint64(blockAlign)
	if blockAlign > math.MaxUint16 || byteRate > math.MaxUint32 {
		return header, fmt.Errorf("%w: %d channels at %d Hz overflows the fmt chunk",
			audio.ErrUnsupportedFormat, channels, sampleRate)
	}

	if dataLen < 0 || uint64(dataLen) > math.MaxUint32-riffOverhead {
		return header, fmt.Errorf("%w: %d data bytes exceed the RIFF size limit",
			audio.ErrUnsupportedFormat, dataLen)
	}
	if err := audio.CheckFrames(dataLen, blockAlign); err != nil {
		return header, fmt.Errorf("%w: %d bytes is not a multiple of block align %d", err, dataLen, blockAlign)
	}

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(riffOverhead+dataLen))
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], fmtChunkSize)
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], uint16(bitsPerSample))

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataLen))

	return header, nil
}

// Encode wraps raw PCM in a WAV container. The data bytes are copied as is,
// so raw must already be little-endian (unsigned for 8-bit).
func Encode(raw []byte, sampleRate, channels, bitsPerSample int) ([]byte, error) {
	header, err := Header(len(raw), sampleRate, channels, bitsPerSample)
	if err != nil {
		return nil, err
	}

	out := make([]byte, HeaderSize+len(raw))
	copy(out, header[:])
	copy(out[HeaderSize:], raw)

	return out, nil
}

// WriteTo streams the same bytes Encode returns into w without building the
// whole file in memory. Nothing is written when the format is rejected.
func WriteTo(w io.Writer, raw []byte, sampleRate, channels, bitsPerSample int) (int64, error) {
	header, err := Header(len(raw), sampleRate, channels, bitsPerSample)
	if err != nil {
		return 0, err
	}

	n, err := w.Write(header[:])
	written := int64(n)
	if err != nil {
		return written, fmt.Errorf("%w", err)
	}

	n, err = w.Write(raw)
	written += int64(n)
	if err != nil {
		return written, fmt.Errorf("%w", err)
	}

	return written, nil
}
