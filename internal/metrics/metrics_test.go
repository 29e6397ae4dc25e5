// SPDX-License-Identifier: EPL-2.0

package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/ik5/pcmwav/audio"
)

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: offset 3", audio.ErrDecode), "decode"},
		{fmt.Errorf("%w: 3 bytes", audio.ErrMalformedAudio), "malformed"},
		{fmt.Errorf("%w: 24 bits", audio.ErrUnsupportedFormat), "unsupported_format"},
		{errors.New("boom"), "other"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, ErrorKind(tt.err))
	}
}

func TestRecorders(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RecordHTTPRequest("/v1/wav", "200", 0.01)
	m.RecordHTTPRequest("/v1/wav", "200", 0.02)
	m.RecordHTTPRequest("/v1/wav", "400", 0.01)
	m.RecordConversion(48000, 1)
	m.RecordCodecError(audio.ErrMalformedAudio)

	require.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/v1/wav", "200")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/v1/wav", "400")))
	require.Equal(t, 48000.0, testutil.ToFloat64(m.DecodedBytes))
	require.Equal(t, 1.0, testutil.ToFloat64(m.CodecErrors.WithLabelValues("malformed")))

	count, err := testutil.GatherAndCount(reg, "pcmwav_audio_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestSeparateRegistries(t *testing.T) {
	require.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
