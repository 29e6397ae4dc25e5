// SPDX-License-Identifier: EPL-2.0

// Package audio holds the primitives shared by the codec packages: the
// Source streaming interface, frame arithmetic and the error taxonomy.
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadSamples fills dst with interleaved samples in [-1, 1] and returns the
// number of values written. A Source reports io.EOF once drained.
//
// # Errors
//
// ErrDecode, ErrMalformedAudio and ErrUnsupportedFormat are returned, wrapped,
// by every stage of the pipeline. Test them with errors.Is:
//
//	if errors.Is(err, audio.ErrMalformedAudio) {
//	    // odd byte count, half frame, truncated data chunk
//	}
package audio
