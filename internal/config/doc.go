// SPDX-License-Identifier: EPL-2.0

// Package config loads the YAML configuration shared by the pcmwav command
// and its HTTP server.
//
// Every field has a default, so an empty or missing section is valid:
//
//	audio:
//	  sample_rate: 24000
//	  channels: 1
//	  bits_per_sample: 16
//	http:
//	  address: ":8080"
//	  max_body_bytes: 16777216
//	  read_timeout: 15s
//	  write_timeout: 30s
//	logging:
//	  level: info
//	  format: console
//	  file: ""
//	  max_size_mb: 100
//	  max_backups: 3
//	  compress: true
package config
