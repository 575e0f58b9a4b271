package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/frostframe/internal/bookmarklet"
	"github.com/san-kum/frostframe/internal/config"
	"github.com/san-kum/frostframe/internal/content"
	"github.com/san-kum/frostframe/internal/export"
	"github.com/san-kum/frostframe/internal/gui"
	"github.com/san-kum/frostframe/internal/gui/scene"
	"github.com/san-kum/frostframe/internal/host"
	"github.com/san-kum/frostframe/internal/metrics"
	"github.com/san-kum/frostframe/internal/raster"
	"github.com/san-kum/frostframe/internal/snow"
	"github.com/san-kum/frostframe/internal/viz"
)

func overlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overlay",
		Short: "snow over the desktop in a transparent window",
		RunE:  runOverlay,
	}
}

func runOverlay(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	return gui.Run(gui.Options{
		Preset:  s.preset,
		Config:  s.snow,
		Overlay: s.file.Overlay,
		FPS:     s.file.FPS,
		Engine:  s.engineOptions(),
		Log:     log,
	})
}

func termCmd() *cobra.Command {
	var offline bool
	var theme string
	cmd := &cobra.Command{
		Use:   "term",
		Short: "snow over generated text in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			article := content.Fallback()
			if !offline {
				article = generate(cmd.Context(), s)
			}
			// stderr belongs to the alternate screen for the session
			f, err := openSessionLog()
			if err != nil {
				return err
			}
			defer f.Close()
			log.SetOutput(f)
			return viz.Run(viz.Options{
				Preset:  s.preset,
				Config:  s.snow,
				FPS:     s.file.FPS,
				Content: article,
				Theme:   theme,
				Engine:  s.engineOptions(),
				Log:     log,
			})
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "skip text generation and use the built-in article")
	cmd.Flags().StringVar(&theme, "theme", viz.ThemeFrost.Name, "theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	return cmd
}

func openSessionLog() (*os.File, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dataDir, "term.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func generate(ctx context.Context, s *settings) content.Content {
	if ctx == nil {
		ctx = context.Background()
	}
	c := content.NewClient(s.file.APIKey(), s.file.Content.Model, s.file.Content.Timeout, log)
	ctx, cancel := context.WithTimeout(ctx, s.file.Content.Timeout)
	defer cancel()
	return c.Generate(ctx)
}

func bookmarkletCmd() *cobra.Command {
	var out string
	var page, readable bool
	cmd := &cobra.Command{
		Use:   "bookmarklet",
		Short: "print the injectable snow bookmarklet",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			opts := bookmarklet.Options{Config: s.snow, WindGain: s.file.WindGain}

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			switch {
			case page:
				err = bookmarklet.WriteInstallPage(w, opts)
			case readable:
				var js string
				if js, err = bookmarklet.Script(opts); err == nil {
					_, err = fmt.Fprint(w, js)
				}
			default:
				var u string
				if u, err = bookmarklet.URL(opts); err == nil {
					_, err = fmt.Fprintln(w, u)
				}
			}
			if err == nil && out != "" {
				log.WithField("path", out).Info("bookmarklet written")
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&page, "page", false, "write the HTML install page")
	cmd.Flags().BoolVar(&readable, "script", false, "write the readable script instead of the URL")
	return cmd
}

func presetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in presets and saved profiles",
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list built-in presets and saved profiles",
		RunE:  listPresets,
	}

	saveCmd := &cobra.Command{
		Use:   "save [name]",
		Short: "save the resolved configuration as a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if config.CanonicalName(args[0]) != "" {
				return fmt.Errorf("%q is a built-in preset", args[0])
			}
			if err := s.store.Save(args[0], s.snow); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved profile: %s\n", strings.ToLower(args[0]))
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [name]",
		Short: "delete a saved profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			return s.store.Delete(args[0])
		},
	}

	cmd.AddCommand(listCmd, saveCmd, deleteCmd)
	return cmd
}

func listPresets(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tCOUNT\tSPEED\tWIND\tSIZE\tOPACITY")
	row := func(name, kind string, c snow.Config) {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.1f\t%.1f\t%.1f\t%.2f\n",
			name, kind, c.ParticleCount, c.BaseSpeed, c.WindSensitivity, c.SizeMultiplier, c.Opacity)
	}
	for _, name := range config.ListPresets() {
		cfg, _ := config.GetPreset(name)
		row(name, "preset", cfg)
	}

	profiles, err := s.store.List()
	if err != nil {
		return err
	}
	for _, p := range profiles {
		row(p.Name, "profile", p.Snow)
	}
	return w.Flush()
}

// headless runs an engine on an in-memory surface for a fixed number of frames.
type headless struct {
	surface snow.Surface
	loop    *host.Loop
	engine  *snow.Engine
}

func newHeadless(s *settings, cfg snow.Config, surface snow.Surface, observers ...snow.Observer) (*headless, error) {
	h := &headless{
		surface: surface,
		loop:    host.NewLoop(surface.Size()),
	}
	opts := append(s.engineOptions(), snow.WithLogger(log))
	for _, o := range observers {
		opts = append(opts, snow.WithObserver(o))
	}
	engine, err := snow.New(h.surface, h.loop, h.loop, cfg, opts...)
	if err != nil {
		return nil, err
	}
	h.engine = engine
	return h, nil
}

// run starts the engine and ticks frames, sweeping the pointer across the
// surface so wind varies over the run.
func (h *headless) run(frames int) {
	w, _ := h.loop.Size()
	h.engine.Start()
	for i := 1; i < frames; i++ {
		h.loop.PointerMove(float64(w)*float64(i%120)/120, 0)
		h.loop.Tick()
	}
	h.engine.Stop()
}

func profileCmd() *cobra.Command {
	var frames, width, height int
	cmd := &cobra.Command{
		Use:   "profile [preset...]",
		Short: "run presets headless and report frame timings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args = config.ListPresets()
			}

			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tFRAMES\tPARTICLES\tMEAN MS\tMAX MS\tMAX WIND")

			var plots []string
			for _, name := range args {
				cfg, err := config.Resolve(name, s.store)
				if err != nil {
					return err
				}
				timer := metrics.NewFrameTimer(frames)
				pop := metrics.NewPopulation()
				set := metrics.Set{timer, pop, metrics.NewGust()}

				h, err := newHeadless(s, cfg, raster.NewSurface(width, height), set)
				if err != nil {
					return err
				}
				h.run(frames)
				h.engine.Destroy()

				sum := set.Summary()
				fmt.Fprintf(w, "%s\t%d\t%.0f\t%.3f\t%.3f\t%.2f\n",
					strings.ToUpper(name), timer.Frames(), sum[pop.Name()], sum[timer.Name()], timer.Max(), sum["max_wind"])

				if samples := timer.Samples(); len(samples) > 1 {
					plots = append(plots, asciigraph.Plot(samples,
						asciigraph.Height(8),
						asciigraph.Width(80),
						asciigraph.Caption(strings.ToUpper(name)+" frame time (ms)"),
					))
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}
			for _, p := range plots {
				fmt.Fprintln(out)
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&frames, "frames", 300, "frames per preset")
	cmd.Flags().IntVar(&width, "width", 1280, "surface width")
	cmd.Flags().IntVar(&height, "height", 720, "surface height")
	return cmd
}

func recordCmd() *cobra.Command {
	var frames, every, width, height, delay int
	cmd := &cobra.Command{
		Use:   "record [out.png|out.gif|out.svg]",
		Short: "render snow headless to a PNG or SVG snapshot or a GIF animation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			out := args[0]
			ext := strings.ToLower(filepath.Ext(out))
			if ext != ".png" && ext != ".gif" && ext != ".svg" {
				return fmt.Errorf("unsupported output %q: want .png, .gif or .svg", ext)
			}

			bitmap := raster.NewSurface(width, height)
			list := scene.NewDisplayList(width, height)
			var surface snow.Surface = bitmap
			var rec *raster.Recorder
			var observers []snow.Observer
			switch ext {
			case ".gif":
				rec = raster.NewRecorder(bitmap, every)
				observers = append(observers, rec)
			case ".svg":
				surface = list
			}
			h, err := newHeadless(s, s.snow, surface, observers...)
			if err != nil {
				return err
			}
			defer h.engine.Destroy()

			start := time.Now()
			h.engine.Start()
			for i := 1; i < frames; i++ {
				h.loop.Tick()
			}
			// the last frame stays on the surface for the snapshot
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			switch ext {
			case ".gif":
				err = rec.WriteGIF(f, delay)
			case ".svg":
				err = export.SceneToSVG(f, width, height, list.Circles())
			default:
				err = bitmap.WritePNG(f)
			}
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"path":    out,
				"frames":  h.engine.Frames(),
				"elapsed": time.Since(start).Round(time.Millisecond),
			}).Info("recording written")
			return nil
		},
	}
	cmd.Flags().IntVar(&frames, "frames", 120, "frames to render")
	cmd.Flags().IntVar(&every, "every", 2, "capture one GIF frame out of every N")
	cmd.Flags().IntVar(&width, "width", 480, "image width")
	cmd.Flags().IntVar(&height, "height", 270, "image height")
	cmd.Flags().IntVar(&delay, "delay", 6, "GIF frame delay in hundredths of a second")
	return cmd
}

func contentCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "content",
		Short: "generate the article shown under the snow",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			article := generate(cmd.Context(), s)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(article)
			}

			headline := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#60a5fa"))
			body := lipgloss.NewStyle().Width(72)
			tags := lipgloss.NewStyle().Foreground(lipgloss.Color("#64748b"))
			fmt.Fprintln(out, headline.Render(article.Headline))
			fmt.Fprintln(out)
			fmt.Fprintln(out, body.Render(article.Body))
			fmt.Fprintln(out)
			fmt.Fprintln(out, tags.Render(strings.Join(article.Tags, " ")))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err == nil {
				return fmt.Errorf("%s already exists", args[0])
			}
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
	cmd.AddCommand(initCmd)
	return cmd
}
