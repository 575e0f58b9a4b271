package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/frostframe/internal/config"
	"github.com/san-kum/frostframe/internal/snow"
	"github.com/san-kum/frostframe/internal/storage"
)

var (
	configFile string
	dataDir    string
	logLevel   string
	preset     string
	seed       int64
	count      int
	speed      float64
	wind       float64
	size       float64
	opacity    float64
)

var log = logrus.New()

// main opens the desktop overlay when no subcommand is given and exits with
// status 1 if a command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "frostframe",
		Short:             "falling snow over anything",
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		RunE:              runOverlay,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&dataDir, "data", ".frostframe", "data directory")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&preset, "preset", config.DefaultPreset, "preset or saved profile name")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pf.IntVar(&count, "count", 0, "particle count")
	pf.Float64Var(&speed, "speed", 0, "base fall speed")
	pf.Float64Var(&wind, "wind", 0, "wind sensitivity")
	pf.Float64Var(&size, "size", 0, "size multiplier")
	pf.Float64Var(&opacity, "opacity", 0, "maximum opacity (0-1)")

	rootCmd.AddCommand(
		overlayCmd(),
		termCmd(),
		bookmarkletCmd(),
		presetsCmd(),
		profileCmd(),
		recordCmd(),
		contentCmd(),
		configCmd(),
	)
	return rootCmd
}

func setupLogging(cmd *cobra.Command, args []string) error {
	lvl, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(lvl)
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

// settings is the fully resolved configuration a command runs with.
type settings struct {
	file   *config.Config
	preset string
	snow   snow.Config
	seed   int64
	store  *storage.Store
}

// loadSettings layers the config file, the preset flag and per-field flags.
// Flags only win when given explicitly.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	file := config.DefaultConfig()
	if configFile != "" {
		var err error
		if file, err = config.Load(configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	s := &settings{
		file:   file,
		preset: strings.ToUpper(file.Preset),
		snow:   file.Snow,
		seed:   file.Seed,
		store:  storage.New(dataDir),
	}

	flags := cmd.Flags()
	if flags.Changed("preset") {
		cfg, err := config.Resolve(preset, s.store)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(config.ListPresets(), ", "))
		}
		s.snow = cfg
		s.preset = strings.ToUpper(preset)
	}

	custom := false
	if flags.Changed("count") {
		s.snow.ParticleCount, custom = count, true
	}
	if flags.Changed("speed") {
		s.snow.BaseSpeed, custom = speed, true
	}
	if flags.Changed("wind") {
		s.snow.WindSensitivity, custom = wind, true
	}
	if flags.Changed("size") {
		s.snow.SizeMultiplier, custom = size, true
	}
	if flags.Changed("opacity") {
		s.snow.Opacity, custom = opacity, true
	}
	if custom {
		s.preset = "CUSTOM"
	}
	if s.preset == "" {
		s.preset = "CUSTOM"
	}
	if flags.Changed("seed") {
		s.seed = seed
	}

	s.snow = s.snow.Sanitize()
	log.WithFields(logrus.Fields{
		"preset": s.preset,
		"count":  s.snow.ParticleCount,
		"speed":  s.snow.BaseSpeed,
		"seed":   s.seed,
	}).Debug("settings resolved")
	return s, nil
}

// engineOptions returns the engine options shared by every front-end.
func (s *settings) engineOptions() []snow.Option {
	opts := []snow.Option{snow.WithWindGain(s.file.WindGain)}
	if s.seed != 0 {
		opts = append(opts, snow.WithRand(rand.New(rand.NewPCG(uint64(s.seed), uint64(s.seed)))))
	}
	return opts
}
