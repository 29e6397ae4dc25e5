// SPDX-License-Identifier: EPL-2.0

// Package server exposes the conversion pipeline over HTTP.
//
// Routes:
//
//	POST /v1/wav      base64 PCM in, WAV attachment out
//	POST /v1/samples  base64 PCM in, normalized samples as JSON out
//	GET  /healthz     liveness
//	GET  /metrics     Prometheus
//
// Request body for both POST routes:
//
//	{"audio": "<base64>", "sample_rate": 24000, "channels": 1,
//	 "bits_per_sample": 16, "filename": "speech"}
//
// Format fields that are omitted or zero fall back to the configured
// defaults. Malformed input is answered with 400, an unsupported layout
// with 422 and an oversized body with 413.
package server
