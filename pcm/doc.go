// SPDX-License-Identifier: EPL-2.0

// Package pcm interprets raw signed 16-bit little-endian PCM as normalized
// float32 samples for playback.
//
// # Normalization
//
// Each int16 value v becomes float32(v) / 32768, so samples fall in
// [-1.0, 1.0): 0x8000 maps to exactly -1.0 while 0x7FFF maps to 0.999969.
// The divisor is fixed at 32768 so output matches other players bit for bit.
//
// # Channels
//
// Interleaved samples are split round-robin: sample i lands in channel
// i % channels. The resulting SampleBuffer keeps one slice per channel and can
// be flattened again with Interleaved or streamed through an audio.Source:
//
//	buf, err := pcm.ToSamples(raw, 24000, 1)
//	if err != nil {
//	    return err
//	}
//	src := buf.Source()
package pcm
