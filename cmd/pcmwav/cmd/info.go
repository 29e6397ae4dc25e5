// SPDX-License-Identifier: EPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/pcmwav/formats/wav"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.wav>",
		Short: "Describe a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			info, err := wav.Inspect(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Format:      %d (PCM=1)\n", info.AudioFormat)
			fmt.Fprintf(out, "Sample rate: %d Hz\n", info.Format.SampleRate)
			fmt.Fprintf(out, "Channels:    %d\n", info.Format.NumChannels)
			fmt.Fprintf(out, "Bits:        %d\n", info.BitsPerSample)
			fmt.Fprintf(out, "Data size:   %d bytes\n", info.DataSize)
			fmt.Fprintf(out, "Frames:      %d\n", info.Frames)
			fmt.Fprintf(out, "Duration:    %v\n", info.Duration)

			return nil
		},
	}
}
