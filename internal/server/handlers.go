// SPDX-License-Identifier: EPL-2.0

package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ik5/pcmwav"
	"github.com/ik5/pcmwav/formats/wav"
	"github.com/ik5/pcmwav/internal/metrics"
)

const defaultFilename = "audio"

var errTrailingData = errors.New("unexpected data after JSON body")

type convertRequest struct {
	Audio         string `json:"audio"`
	SampleRate    int    `json:"sample_rate"`
	Channels      int    `json:"channels"`
	BitsPerSample int    `json:"bits_per_sample"`
	Filename      string `json:"filename"`
}

type samplesResponse struct {
	SampleRate   int         `json:"sample_rate"`
	Channels     int         `json:"channels"`
	Frames       int         `json:"frames"`
	DurationMS   int64       `json:"duration_ms"`
	ChannelsData [][]float32 `json:"channels_data"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func (req *convertRequest) format(defaults pcmwav.Format) pcmwav.Format {
	f := defaults
	if req.SampleRate != 0 {
		f.SampleRate = req.SampleRate
	}
	if req.Channels != 0 {
		f.Channels = req.Channels
	}
	if req.BitsPerSample != 0 {
		f.BitsPerSample = req.BitsPerSample
	}
	return f
}

// attachmentName strips any directory part and forces the .wav extension.
func attachmentName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	if name == "." || name == "/" || name == "" {
		name = defaultFilename
	}

	if !strings.EqualFold(path.Ext(name), wav.Extension) {
		name += wav.Extension
	}

	return name
}

func (s *Server) handleWAV(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	f := req.format(s.defaults)

	var raw, data []byte
	err := f.Validate()
	if err == nil {
		raw, err = pcmwav.Decode(req.Audio)
	}
	if err == nil {
		data, err = pcmwav.EncodeWAV(raw, f)
	}
	if err != nil {
		s.codecError(w, err)
		return
	}

	s.metrics.RecordConversion(len(raw), seconds(len(raw), f))

	w.Header().Set("Content-Type", wav.MIMEType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": attachmentName(req.Filename),
	}))
	w.Header().Set("Cache-Control", "no-store")

	if _, err := w.Write(data); err != nil {
		s.logger.Error("failed to write wav", zap.Error(err))
	}
}

func (s *Server) handleSamples(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	f := req.format(s.defaults)

	res, err := pcmwav.Convert(req.Audio, f)
	if err != nil {
		s.codecError(w, err)
		return
	}

	buf := res.Samples
	s.metrics.RecordConversion(len(res.WAV)-wav.HeaderSize, buf.Duration().Seconds())

	writeJSON(w, http.StatusOK, samplesResponse{
		SampleRate:   buf.SampleRate,
		Channels:     buf.NumChannels(),
		Frames:       buf.NumFrames(),
		DurationMS:   buf.Duration().Milliseconds(),
		ChannelsData: buf.Data,
	}, s.logger)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"}, s.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.logger)
}

// decodeRequest writes the error response itself and reports false when the
// request cannot be used.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (*convertRequest, bool) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"}, s.logger)
		return nil, false
	}

	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	dec := json.NewDecoder(body)

	var req convertRequest
	err := dec.Decode(&req)
	if err == nil {
		// the body must hold exactly one JSON value
		if _, err = dec.Token(); errors.Is(err, io.EOF) {
			err = nil
		} else if err == nil {
			err = errTrailingData
		}
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.logger.Warn("request body too large", zap.Int64("limit", tooLarge.Limit))
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"}, s.logger)
			return nil, false
		}

		s.logger.Debug("invalid request body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"}, s.logger)
		return nil, false
	}

	return &req, true
}

func (s *Server) codecError(w http.ResponseWriter, err error) {
	s.metrics.RecordCodecError(err)

	var status int
	switch {
	case errors.Is(err, pcmwav.ErrUnsupportedFormat):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, pcmwav.ErrDecode), errors.Is(err, pcmwav.ErrMalformedAudio):
		status = http.StatusBadRequest
	default:
		s.logger.Error("conversion failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"}, s.logger)
		return
	}

	s.logger.Debug("rejected payload", zap.Int("status", status), zap.Error(err))

	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: metrics.ErrorKind(err)}, s.logger)
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to write response", zap.Error(err))
	}
}

func seconds(rawBytes int, f pcmwav.Format) float64 {
	frameSize := f.FrameSize()
	if frameSize <= 0 || f.SampleRate <= 0 {
		return 0
	}
	return float64(rawBytes/frameSize) / float64(f.SampleRate)
}
