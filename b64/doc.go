// SPDX-License-Identifier: EPL-2.0

// Package b64 turns the base64 text returned by a speech-synthesis service
// into raw PCM bytes.
//
// Only the standard RFC 4648 alphabet with padding is accepted. ASCII
// whitespace is skipped so payloads wrapped by JSON encoders or terminals
// decode unchanged:
//
//	raw, err := b64.Decode(payload)
//	if errors.Is(err, audio.ErrDecode) {
//	    // reject the upstream response
//	}
package b64
