package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/beatsmith/beatsmith/internal/app"
	"github.com/beatsmith/beatsmith/internal/cliconfig"
	"github.com/beatsmith/beatsmith/internal/watch"
)

const helpDescription = `
Turn beat-tracking analyses into tempo-mapped MIDI, and fill tempo-mapped
MIDI with drum loops.

Highlights:
  - Merges two beat analyses of the same recording into one timeline.
  - Renders tempo changes, segment markers and a 4/4 meter as MIDI tracks.
  - Stitches categorized drum loops onto the intro, body and outro of a
    tempo-mapped target file.
`

var exampleUsage = strings.TrimSpace(`
  beatsmith convert --beat-doc allin1.json --beat-doc2 gorta.json -o song.mid
  beatsmith drums --target song.mid --loops ./loops -o song_drums.mid
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	// Load config file first (default $HOME/.beatsmith/config.toml),
	// then env vars, then flag overrides via the changed map.
	applyConfig := func(cmd *cobra.Command) error {
		cfgFile := cfgPath
		if cfgFile == "" {
			cfgFile = cliconfig.DefaultConfigPath()
		}

		changed := map[string]bool{}
		cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

		if cfgFile != "" && cliconfig.FileExists(cfgFile) {
			fc, err := cliconfig.LoadFileConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cliconfig.ApplyFileConfig(&cfg, fc, changed)
		}

		return cliconfig.ApplyEnvConfig(&cfg, changed)
	}

	root := &cobra.Command{
		Use:          "beatsmith",
		Short:        "Beat analyses to tempo-mapped MIDI, drum loops onto tempo maps",
		Long:         strings.TrimSpace(helpDescription),
		Example:      exampleUsage,
		Version:      fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.beatsmith/config.toml)")

	convert := &cobra.Command{
		Use:   "convert",
		Short: "Merge beat documents and write a tempo-mapped MIDI file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cmd); err != nil {
				return err
			}
			if err := cfg.ValidateConvert(); err != nil {
				return err
			}

			if _, err := app.RunConvert(cfg); err != nil {
				return err
			}
			if !cfg.Watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log.Info().Msg("watching input documents, press Ctrl-C to stop")
			paths := []string{cfg.BeatDoc, cfg.BeatDoc2, cfg.SegmentDoc}
			return watch.New(paths, func() error {
				_, err := app.RunConvert(cfg)
				return err
			}).Watch(ctx)
		},
	}
	convert.Flags().StringVarP(&cfg.BeatDoc, "beat-doc", "b", "", "primary beat analysis JSON (required)")
	convert.Flags().StringVar(&cfg.BeatDoc2, "beat-doc2", "", "secondary beat analysis JSON filling the primary's gaps")
	convert.Flags().StringVarP(&cfg.SegmentDoc, "segment-doc", "s", "", "segment JSON overriding the primary document's segments")
	convert.Flags().StringVarP(&cfg.Output, "output", "o", "", "output MIDI file path (required)")
	convert.Flags().StringVar(&cfg.PrefixOut, "prefix-out", "", "write the resulting prefix beat as JSON to this path")
	convert.Flags().IntVar(&cfg.Ticks, "ticks", cfg.Ticks, "MIDI resolution in ticks per beat")
	convert.Flags().Float64Var(&cfg.Tolerance, "tolerance", cfg.Tolerance, "merge tolerance in seconds")
	convert.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "re-run when an input document changes")

	drumsCmd := &cobra.Command{
		Use:   "drums",
		Short: "Assemble drum loops onto a tempo-mapped MIDI file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cmd); err != nil {
				return err
			}
			if err := cfg.ValidateDrums(); err != nil {
				return err
			}
			return app.RunDrums(cfg)
		},
	}
	drumsCmd.Flags().StringVarP(&cfg.Target, "target", "t", "", "tempo-mapped MIDI file to extend (required)")
	drumsCmd.Flags().StringVarP(&cfg.Loops, "loops", "p", cfg.Loops, "drum loop library root directory")
	drumsCmd.Flags().StringVarP(&cfg.Output, "output", "o", "", "output MIDI file path (required)")
	drumsCmd.Flags().IntVar(&cfg.PrefixBeat, "prefix-beat", cfg.PrefixBeat, "beats before the first downbeat, as reported by convert")
	drumsCmd.Flags().IntVar(&cfg.BeatsPerBar, "beats-per-bar", cfg.BeatsPerBar, "beats per bar of the target")
	drumsCmd.Flags().IntVar(&cfg.Ticks, "ticks", cfg.Ticks, "fallback MIDI resolution for targets without metric timing")
	drumsCmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for loop selection (0 seeds from the clock)")

	root.AddCommand(convert, drumsCmd)

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("beatsmith")
		os.Exit(1)
	}
}
