// SPDX-License-Identifier: EPL-2.0

package cmd

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ik5/pcmwav"
	"github.com/ik5/pcmwav/audio"
	"github.com/ik5/pcmwav/b64"
	"github.com/ik5/pcmwav/formats/wav"
	"github.com/ik5/pcmwav/internal/audiotest"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	root := NewRootCmd()
	root.SetArgs(append(args, "--log-level", "error"))
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestWAVCommand(t *testing.T) {
	raw := audiotest.SinePCM16(24000, 1, 480, 440)
	in := writeFile(t, "reply.b64", []byte(b64.Encode(raw)+"\n"))
	out := filepath.Join(t.TempDir(), "reply.wav")

	_, err := run(t, "", "wav", "-i", in, "-o", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Len(t, data, len(raw)+wav.HeaderSize)
	require.Equal(t, raw, data[wav.HeaderSize:])
	require.Equal(t, uint32(24000), binary.LittleEndian.Uint32(data[24:28]))
}

func TestWAVCommandStdio(t *testing.T) {
	raw := audiotest.PCM16(1, 2, 3, 4)

	stdout, err := run(t, b64.Encode(raw), "wav", "-o", "-", "--sample-rate", "16000", "--channels", "2")
	require.NoError(t, err)

	data := []byte(stdout)
	require.Len(t, data, len(raw)+wav.HeaderSize)
	require.Equal(t, uint16(2), binary.LittleEndian.Uint16(data[22:24]))
	require.Equal(t, uint32(16000), binary.LittleEndian.Uint32(data[24:28]))
}

func TestWAVCommandErrors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.wav")

	_, err := run(t, "not base64!", "wav", "-o", out)
	require.ErrorIs(t, err, pcmwav.ErrDecode)

	_, err = run(t, b64.Encode([]byte{1, 2, 3}), "wav", "-o", out)
	require.ErrorIs(t, err, pcmwav.ErrMalformedAudio)

	_, err = run(t, b64.Encode(make([]byte, 6)), "wav", "-o", out, "--bits", "24")
	require.ErrorIs(t, err, audio.ErrUnsupportedFormat)

	_, statErr := os.Stat(out)
	require.ErrorIs(t, statErr, os.ErrNotExist)

	_, err = run(t, "", "wav")
	require.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	cfg := writeFile(t, "config.yaml", []byte("audio:\n  sample_rate: 8000\n  channels: 2\n"))

	stdout, err := run(t, b64.Encode(make([]byte, 8)), "wav", "-o", "-", "--config", cfg)
	require.NoError(t, err)
	require.Equal(t, uint32(8000), binary.LittleEndian.Uint32([]byte(stdout)[24:28]))
	require.Equal(t, uint16(2), binary.LittleEndian.Uint16([]byte(stdout)[22:24]))

	stdout, err = run(t, b64.Encode(make([]byte, 8)), "wav", "-o", "-", "--config", cfg, "--sample-rate", "11025")
	require.NoError(t, err)
	require.Equal(t, uint32(11025), binary.LittleEndian.Uint32([]byte(stdout)[24:28]))
}

func TestInfoCommand(t *testing.T) {
	data, err := wav.Encode(make([]byte, 48000), 24000, 1, 16)
	require.NoError(t, err)

	stdout, err := run(t, "", "info", writeFile(t, "a.wav", data))
	require.NoError(t, err)

	require.Contains(t, stdout, "Sample rate: 24000 Hz")
	require.Contains(t, stdout, "Channels:    1")
	require.Contains(t, stdout, "Frames:      24000")
	require.Contains(t, stdout, "Duration:    1s")

	_, err = run(t, "", "info", writeFile(t, "b.wav", []byte("nope")))
	require.ErrorIs(t, err, wav.ErrNotWavFile)
}

func TestOpenSource(t *testing.T) {
	raw := audiotest.PCM16(16384, -16384)

	src, err := openSource([]byte(b64.Encode(raw)), pcmwav.DefaultFormat)
	require.NoError(t, err)
	require.Equal(t, 24000, src.SampleRate())

	data, err := wav.Encode(raw, 8000, 1, 16)
	require.NoError(t, err)

	src, err = openSource(data, pcmwav.DefaultFormat)
	require.NoError(t, err)
	require.Equal(t, 8000, src.SampleRate())

	buf := make([]float32, 2)
	n, _ := src.ReadSamples(buf)
	require.Equal(t, []float32{0.5, -0.5}, buf[:n])
}

func TestVersionCommand(t *testing.T) {
	stdout, err := run(t, "", "version")
	require.NoError(t, err)
	require.Contains(t, stdout, "pcmwav v"+Version)
}
