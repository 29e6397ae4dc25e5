// SPDX-License-Identifier: EPL-2.0

// Package cmd implements the pcmwav command line.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ik5/pcmwav"
	"github.com/ik5/pcmwav/internal/config"
	"github.com/ik5/pcmwav/internal/logging"
)

// app is the state shared by every subcommand once the persistent flags
// have been applied.
type app struct {
	cfgFile       string
	sampleRate    int
	channels      int
	bitsPerSample int
	logLevel      string

	config *config.Config
	logger *zap.Logger
}

func (a *app) format() pcmwav.Format {
	return a.config.Audio.Format()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "pcmwav",
		Short: "Convert base64 PCM speech audio to WAV",
		Long: `pcmwav turns base64-encoded raw PCM audio, as returned by speech
synthesis services, into WAV files, plays it through the default output
device or serves the conversion over HTTP.

Raw PCM carries no header, so the layout comes from the config file or the
--sample-rate, --channels and --bits flags (default 24000 Hz, mono, 16-bit).`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "YAML config file")
	flags.IntVar(&a.sampleRate, "sample-rate", pcmwav.DefaultFormat.SampleRate, "sample rate of the raw PCM in Hz")
	flags.IntVar(&a.channels, "channels", pcmwav.DefaultFormat.Channels, "interleaved channel count")
	flags.IntVar(&a.bitsPerSample, "bits", pcmwav.DefaultFormat.BitsPerSample, "bits per sample (8 or 16)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newWAVCmd(a),
		newPlayCmd(a),
		newInfoCmd(),
		newServeCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

func Execute() error {
	return NewRootCmd().Execute()
}

// setup loads the config file and lets explicitly set flags override it.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("sample-rate") {
		cfg.Audio.SampleRate = a.sampleRate
	}
	if flags.Changed("channels") {
		cfg.Audio.Channels = a.channels
	}
	if flags.Changed("bits") {
		cfg.Audio.BitsPerSample = a.bitsPerSample
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}

	a.config = cfg
	a.logger = logger

	return nil
}

// readInput reads a file, or stdin when name is "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}
