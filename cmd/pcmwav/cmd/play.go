// SPDX-License-Identifier: EPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ik5/pcmwav"
	"github.com/ik5/pcmwav/audio"
	"github.com/ik5/pcmwav/formats/wav"
	"github.com/ik5/pcmwav/playback"
)

func newPlayCmd(a *app) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play base64 PCM or a WAV file through the default output device",
		Long: `Play base64 PCM or a WAV file through the default output device.

Requires PortAudio. Input starting with a RIFF header is read as WAV,
anything else as base64 PCM in the configured layout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, input)
			if err != nil {
				return err
			}

			src, err := openSource(data, a.format())
			if err != nil {
				return err
			}

			sink, err := playback.OpenPortAudio()
			if err != nil {
				_ = src.Close()
				return err
			}
			defer sink.Close()

			a.logger.Info("playing",
				zap.String("device", sink.Name()),
				zap.Int("sample_rate", src.SampleRate()),
				zap.Int("channels", src.Channels()))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = playback.New(sink, a.logger).Play(ctx, src)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "base64 or WAV input file, - for stdin")

	return cmd
}

// openSource sniffs data for a RIFF header.
func openSource(data []byte, f pcmwav.Format) (audio.Source, error) {
	if bytes.HasPrefix(data, []byte("RIFF")) {
		return wav.Decoder{}.Decode(bytes.NewReader(data))
	}

	res, err := pcmwav.Convert(string(data), f)
	if err != nil {
		return nil, err
	}

	return res.Samples.Source(), nil
}
