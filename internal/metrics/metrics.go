// SPDX-License-Identifier: EPL-2.0

// Package metrics holds the Prometheus collectors for the conversion server.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ik5/pcmwav/audio"
)

// Metrics contains all Prometheus metrics for the conversion server
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DecodedBytes  prometheus.Counter
	AudioDuration prometheus.Histogram
	CodecErrors   *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pcmwav_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"route", "status_code"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pcmwav_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		DecodedBytes: factory.NewCounter(prometheus.CounterOpts{
			Name: "pcmwav_decoded_bytes_total",
			Help: "Total raw PCM bytes decoded from base64 payloads",
		}),
		AudioDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pcmwav_audio_duration_seconds",
			Help:    "Playback length of converted payloads",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10), // 250ms to ~2 minutes
		}),
		CodecErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pcmwav_codec_errors_total",
			Help: "Total number of rejected payloads by error kind",
		}, []string{"kind"}),
	}
}

func (m *Metrics) RecordHTTPRequest(route, statusCode string, durationSeconds float64) {
	m.HTTPRequests.WithLabelValues(route, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(route).Observe(durationSeconds)
}

// RecordConversion records a successful conversion.
func (m *Metrics) RecordConversion(rawBytes int, durationSeconds float64) {
	m.DecodedBytes.Add(float64(rawBytes))
	m.AudioDuration.Observe(durationSeconds)
}

// RecordCodecError counts err under its error kind.
func (m *Metrics) RecordCodecError(err error) {
	m.CodecErrors.WithLabelValues(ErrorKind(err)).Inc()
}

// ErrorKind maps a pipeline error to a short label.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, audio.ErrDecode):
		return "decode"
	case errors.Is(err, audio.ErrMalformedAudio):
		return "malformed"
	case errors.Is(err, audio.ErrUnsupportedFormat):
		return "unsupported_format"
	default:
		return "other"
	}
}
