// SPDX-License-Identifier: EPL-2.0

package utils

// Int16Scale is the divisor that maps signed 16-bit PCM into [-1, 1).
// 32768 keeps 0x8000 at exactly -1.0 and leaves 0x7FFF one step below 1.0.
const Int16Scale float32 = 32768.0

// Int16ToFloat32 normalizes a signed 16-bit sample.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / Int16Scale
}

// Float32ToInt16 is the inverse of Int16ToFloat32. Input is clamped to
// [-1, 1] and the positive end saturates at 32767.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	v := x * Int16Scale
	if v > 32767 {
		return 32767
	}

	return int16(v)
}
