// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"math"

	"github.com/ik5/pcmwav/utils"
)

// PCM16 packs samples as little-endian signed 16-bit bytes, in the order
// given (already interleaved).
func PCM16(samples ...int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}

// SinePCM16 renders frames of a sine tone at half scale on every channel.
// Channel c is phase shifted by c quarter turns so channels differ.
func SinePCM16(sampleRate, channels, frames int, frequency float64) []byte {
	samples := make([]int16, frames*channels)

	for f := range frames {
		t := float64(f) / float64(sampleRate)
		for c := range channels {
			v := 0.5 * math.Sin(2*math.Pi*frequency*t+float64(c)*math.Pi/2)
			samples[f*channels+c] = utils.Float32ToInt16(float32(v))
		}
	}

	return PCM16(samples...)
}

// RampPCM16 returns n interleaved samples counting up from start.
func RampPCM16(start int16, n int) []byte {
	samples := make([]int16, n)
	for i := range samples {
		samples[i] = start + int16(i)
	}
	return PCM16(samples...)
}
