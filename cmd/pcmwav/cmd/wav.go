// SPDX-License-Identifier: EPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ik5/pcmwav"
	"github.com/ik5/pcmwav/formats/wav"
)

func newWAVCmd(a *app) *cobra.Command {
	var (
		input  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "wav",
		Short: "Decode base64 PCM and write a WAV file",
		Example: `  pcmwav wav -i reply.b64 -o reply.wav
  cat reply.b64 | pcmwav wav -i - -o - --sample-rate 16000 > reply.wav
  pcmwav wav -i stereo.b64 -o stereo.wav --channels 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, input)
			if err != nil {
				return err
			}

			f := a.format()
			raw, err := pcmwav.Decode(string(text))
			if err != nil {
				return err
			}

			if output == "-" {
				_, err := wav.WriteTo(cmd.OutOrStdout(), raw, f.SampleRate, f.Channels, f.BitsPerSample)
				return err
			}

			data, err := pcmwav.EncodeWAV(raw, f)
			if err != nil {
				return err
			}

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}

			a.logger.Info("wrote wav",
				zap.String("path", output),
				zap.Int("bytes", len(data)),
				zap.Int("sample_rate", f.SampleRate),
				zap.Int("channels", f.Channels),
				zap.Int("bits_per_sample", f.BitsPerSample))

			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "base64 input file, - for stdin")
	cmd.Flags().StringVarP(&output, "output", "o", "", "WAV output file, - for stdout")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
