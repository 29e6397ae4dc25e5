// SPDX-License-Identifier: EPL-2.0

package b64

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/ik5/pcmwav/audio"
)

// Decode converts the whole of text into bytes in one call.
// The returned error wraps audio.ErrDecode.
func Decode(text string) ([]byte, error) {
	clean := stripSpace(text)
	if clean == "" {
		return []byte{}, nil
	}

	raw, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		var corrupt base64.CorruptInputError
		if errors.As(err, &corrupt) {
			return nil, fmt.Errorf("%w: illegal data at offset %d", audio.ErrDecode, int64(corrupt))
		}

		return nil, fmt.Errorf("%w: %w", audio.ErrDecode, err)
	}

	return raw, nil
}

// Encode is the inverse of Decode.
func Encode(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw)
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}

	return false
}

// stripSpace drops ASCII whitespace, returning text itself when there is none.
func stripSpace(text string) string {
	if strings.IndexFunc(text, func(r rune) bool { return r < 0x80 && isSpace(byte(r)) }) < 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	for i := range len(text) {
		if !isSpace(text[i]) {
			b.WriteByte(text[i])
		}
	}

	return b.String()
}
