// SPDX-License-Identifier: EPL-2.0

// Package wav wraps raw PCM bytes in a canonical 44-byte RIFF/WAVE header
// and reads such files back.
//
// # Encoding
//
// Encode copies the PCM bytes verbatim after the header:
//
//	data, err := wav.Encode(raw, 24000, 1, 16)
//
// WriteTo streams the same bytes to an io.Writer. Both accept 8 and 16
// bits per sample; any other depth returns audio.ErrUnsupportedFormat.
// Data that does not split into whole frames returns
// audio.ErrMalformedAudio and nothing is written.
//
// # Decoding
//
// Decoder and DecodeSamples read canonical 16-bit PCM files, such as the
// ones produced by Encode. Files with extra chunks before "data" return
// ErrUnsupportedWavLayout.
//
// Inspect parses a file with github.com/go-audio/wav, which tolerates
// arbitrary chunk layouts and is useful for checking interoperability.
package wav
