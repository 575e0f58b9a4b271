package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/frostframe/internal/content"
	"github.com/san-kum/frostframe/internal/control"
	"github.com/san-kum/frostframe/internal/host"
	"github.com/san-kum/frostframe/internal/metrics"
	"github.com/san-kum/frostframe/internal/snow"
)

const (
	defaultCols = 80
	defaultRows = 24
	statusLines = 2
	sparkWidth  = 24
)

type TickMsg time.Time

// Options configures a terminal snow session.
type Options struct {
	Preset  string
	Config  snow.Config
	FPS     int
	Content content.Content
	Theme   string
	Engine  []snow.Option
	Log     logrus.FieldLogger
}

// Model is the bubbletea model for the terminal front-end. The engine, loop
// and canvas are shared pointers, so copies of Model drive the same scene.
type Model struct {
	engine  *snow.Engine
	loop    *host.Loop
	canvas  *Canvas
	panel   *control.Panel
	timer   *metrics.FrameTimer
	article content.Content
	theme   Theme
	fps     int
	cols    int
	rows    int
	bg      []string
	log     logrus.FieldLogger
	done    bool
}

// NewModel builds the engine over a Braille canvas and starts it.
func NewModel(o Options) (Model, error) {
	if o.FPS <= 0 {
		o.FPS = 30
	}
	if o.Log == nil {
		o.Log = logrus.StandardLogger()
	}
	if o.Preset == "" {
		o.Preset = "CUSTOM"
	}

	m := Model{
		canvas:  NewCanvas(defaultCols, defaultRows-statusLines),
		timer:   metrics.NewFrameTimer(sparkWidth),
		panel:   control.NewPanel(o.Preset, o.Config),
		article: o.Content,
		theme:   GetTheme(o.Theme),
		fps:     o.FPS,
		cols:    defaultCols,
		rows:    defaultRows,
		log:     o.Log,
	}
	m.loop = host.NewLoop(m.canvas.Size())

	opts := append([]snow.Option{snow.WithLogger(o.Log), snow.WithObserver(m.timer)}, o.Engine...)
	engine, err := snow.New(m.canvas, m.loop, m.loop, m.panel.Config, opts...)
	if err != nil {
		return Model{}, fmt.Errorf("terminal engine: %w", err)
	}
	m.engine = engine
	m.bg = m.background()
	m.engine.Start()
	return m, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if m.done {
			return m, nil
		}
		m.loop.Tick()
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.loop.Resize(m.cols*2, max(m.rows-statusLines, 0)*4)
		m.bg = m.background()
		return m, nil
	case tea.MouseMsg:
		m.loop.PointerMove(float64(msg.X*2), float64(msg.Y*4))
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := control.ActionForKey(msg.String())
	switch a {
	case control.Quit:
		m.engine.Destroy()
		m.done = true
		return m, tea.Quit
	case control.CycleTheme:
		m.theme = NextTheme(m.theme)
		return m, nil
	}
	if m.panel.Apply(a, m.engine) {
		m.log.WithField("preset", m.panel.Preset).Debug("controls changed")
	}
	return m, nil
}

// background lays the article out in the canvas area.
func (m Model) background() []string {
	width := min(max(m.cols-4, 10), 72)
	body := lipgloss.NewStyle().Width(width).Render(m.article.Body)

	lines := []string{"", "  " + strings.ToUpper(m.article.Headline), ""}
	for _, l := range strings.Split(body, "\n") {
		lines = append(lines, "  "+l)
	}
	if len(m.article.Tags) > 0 {
		lines = append(lines, "", "  "+strings.Join(m.article.Tags, " "))
	}
	return lines
}

func (m Model) View() string {
	if m.done {
		return ""
	}
	snowStyle := lipgloss.NewStyle().Foreground(m.theme.Snow)
	textStyle := lipgloss.NewStyle().Foreground(m.theme.Text)
	return m.canvas.Render(m.bg, snowStyle, textStyle) + "\n" + m.status()
}

func (m Model) status() string {
	cfg := m.panel.Config
	state := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Paused).Render("PAUSED")
	if m.engine.Running() {
		state = lipgloss.NewStyle().Bold(true).Foreground(m.theme.Running).Render("SNOWING")
	}
	value := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true)

	line := fmt.Sprintf("%s %s %s  %s %s  %s %s  %s %s  %s %s",
		GradientText("frostframe", m.theme.Primary, m.theme.Accent),
		state,
		value.Render(m.panel.Preset),
		MetricLabel.Render("flakes"), value.Render(fmt.Sprint(m.engine.Len())),
		MetricLabel.Render("speed"), value.Render(fmt.Sprintf("%.1f", cfg.BaseSpeed)),
		MetricLabel.Render("wind"), value.Render(fmt.Sprintf("%+.2f", m.engine.Wind())),
		MetricLabel.Render("frame"), SparklineChart(m.timer.Samples(), sparkWidth),
	)
	hints := KeyHint.Render("space start/stop · 1-4 presets · ↑↓ flakes · ←→ speed · w/W wind · s/S size · o/O opacity · t theme · q quit")
	return line + "\n" + hints
}

// Engine exposes the running engine, mostly for tests.
func (m Model) Engine() *snow.Engine { return m.engine }

func (m Model) Panel() *control.Panel { return m.panel }

func (m Model) Loop() *host.Loop { return m.loop }

func (m Model) Theme() Theme { return m.theme }

// Run starts a full-screen bubbletea program with mouse motion reporting.
func Run(o Options) error {
	m, err := NewModel(o)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	final, err := p.Run()
	if fm, ok := final.(Model); ok && !fm.engine.Destroyed() {
		fm.engine.Destroy()
	}
	return err
}
