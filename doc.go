// SPDX-License-Identifier: EPL-2.0

// Package pcmwav converts base64-encoded raw PCM audio, as returned by
// speech synthesis services, into playable samples and a downloadable WAV
// file.
//
// Raw PCM has no header, so the caller supplies the layout out of band with
// a Format. DefaultFormat is 24 kHz, mono, 16-bit.
//
// # Quick Start
//
//	res, err := pcmwav.Convert(payload, pcmwav.DefaultFormat)
//	if err != nil {
//	    return err
//	}
//
//	// res.Samples holds per-channel float32 samples in [-1, 1)
//	// res.WAV is a complete RIFF/WAVE file
//
// # Pipeline
//
// Convert is a thin wrapper over three independent stages:
//
//	raw, err := pcmwav.Decode(payload)            // base64 -> bytes
//	buf, err := pcmwav.ToSamples(raw, format)      // bytes -> samples
//	file, err := pcmwav.EncodeWAV(raw, format)     // bytes -> WAV
//
// The WAV stage copies the raw bytes untouched, so an 8-bit payload can be
// encoded even though the sample stage only understands 16-bit audio.
//
// # Errors
//
// Every failure wraps one of ErrDecode, ErrMalformedAudio or
// ErrUnsupportedFormat; use errors.Is to tell them apart.
package pcmwav
