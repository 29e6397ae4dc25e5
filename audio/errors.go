// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrDecode is returned when the transport text is not valid base64.
	ErrDecode = errors.New("invalid base64 audio payload")

	// ErrMalformedAudio is returned when raw PCM bytes do not split into
	// whole frames for the requested layout.
	ErrMalformedAudio = errors.New("malformed PCM audio")

	// ErrUnsupportedFormat is returned for a bit depth, channel count or
	// sample rate the codec cannot represent.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)
