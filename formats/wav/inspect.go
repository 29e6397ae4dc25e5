// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"time"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// Info describes a WAV file as an independent reader sees it.
type Info struct {
	Format        *goaudio.Format
	AudioFormat   int
	BitsPerSample int
	DataSize      int64
	Frames        int64
	Duration      time.Duration
}

// Inspect parses data with the go-audio WAV decoder. It is used to confirm
// that encoded files are readable by third-party tooling.
func Inspect(data []byte) (Info, error) {
	dec := gowav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return Info{}, fmt.Errorf("%w: %w", ErrNotWavFile, err)
		}
		return Info{}, ErrNotWavFile
	}

	if err := dec.FwdToPCM(); err != nil {
		return Info{}, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	info := Info{
		Format:        dec.Format(),
		AudioFormat:   int(dec.WavAudioFormat),
		BitsPerSample: int(dec.BitDepth),
		DataSize:      dec.PCMLen(),
	}

	// go-audio counts the RIFF pad byte of odd-sized chunks; Encode never
	// writes one.
	if avail := int64(len(data)) - HeaderSize; avail >= 0 && info.DataSize > avail {
		info.DataSize = avail
	}

	frameSize := int64(dec.NumChans) * int64(dec.BitDepth) / 8
	if frameSize > 0 {
		info.Frames = info.DataSize / frameSize
	}
	if dec.SampleRate > 0 {
		info.Duration = time.Duration(info.Frames) * time.Second / time.Duration(dec.SampleRate)
	}

	return info, nil
}
