package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/frostframe/internal/config"
	"github.com/san-kum/frostframe/internal/control"
	"github.com/san-kum/frostframe/internal/gui/scene"
	"github.com/san-kum/frostframe/internal/host"
	"github.com/san-kum/frostframe/internal/snow"
)

// Theme Colors
var (
	ColBg      = rl.NewColor(10, 14, 28, 255) // Night sky, opaque mode only
	ColText    = rl.NewColor(180, 190, 210, 255)
	ColTextDim = rl.NewColor(90, 100, 120, 255)
)

type Options struct {
	Preset  string
	Config  snow.Config
	Overlay config.OverlayConfig
	FPS     int
	Engine  []snow.Option
	Log     logrus.FieldLogger
}

type Overlay struct {
	opts     Options
	list     *scene.DisplayList
	loop     *host.Loop
	engine   *snow.Engine
	panel    *control.Panel
	fade     *scene.Fade
	showHelp bool
	log      logrus.FieldLogger
}

func windowFlags(o config.OverlayConfig) uint32 {
	flags := uint32(rl.FlagVsyncHint | rl.FlagWindowResizable)
	if o.Transparent {
		flags |= rl.FlagWindowTransparent | rl.FlagWindowUndecorated
	}
	if o.Topmost {
		flags |= rl.FlagWindowTopmost
	}
	if o.Passthrough {
		flags |= rl.FlagWindowMousePassthrough
	}
	return flags
}

// Run opens the overlay window and blocks until it is closed.
func Run(o Options) error {
	if o.Log == nil {
		o.Log = logrus.StandardLogger()
	}
	if o.FPS <= 0 {
		o.FPS = 60
	}

	rl.SetConfigFlags(windowFlags(o.Overlay))
	rl.InitWindow(int32(o.Overlay.Width), int32(o.Overlay.Height), "frostframe")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(o.FPS))
	rl.SetExitKey(0)

	ov, err := newOverlay(o)
	if err != nil {
		return err
	}
	defer ov.engine.Destroy()

	ov.engine.Start()
	ov.fade.Restart()
	ov.RunLoop()
	return nil
}

func newOverlay(o Options) (*Overlay, error) {
	w, h := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
	ov := &Overlay{
		opts:     o,
		list:     scene.NewDisplayList(w, h),
		loop:     host.NewLoop(w, h),
		panel:    control.NewPanel(o.Preset, o.Config),
		fade:     scene.NewFade(o.Overlay.FadeSeconds),
		showHelp: true,
		log:      o.Log,
	}

	opts := append([]snow.Option{snow.WithLogger(o.Log)}, o.Engine...)
	engine, err := snow.New(ov.list, ov.loop, ov.loop, ov.panel.Config, opts...)
	if err != nil {
		return nil, fmt.Errorf("overlay engine: %w", err)
	}
	ov.engine = engine
	return ov, nil
}

func (a *Overlay) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Update feeds window signals into the host loop and runs at most one engine
// frame. It returns false when the user quits.
func (a *Overlay) Update() bool {
	a.loop.Resize(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))
	mp := rl.GetMousePosition()
	a.loop.PointerMove(float64(mp.X), float64(mp.Y))

	if key := pressedKey(); key != "" {
		switch act := control.ActionForKey(key); act {
		case control.Quit:
			return false
		case control.Fullscreen:
			rl.ToggleFullscreen()
		case control.CycleTheme:
			a.showHelp = !a.showHelp
		default:
			wasRunning := a.engine.Running()
			if a.panel.Apply(act, a.engine) {
				a.log.WithField("preset", a.panel.Preset).Debug("controls changed")
				if !wasRunning && a.engine.Running() {
					a.fade.Restart()
				}
			}
		}
	}

	if !rl.IsWindowMinimized() {
		a.loop.Tick()
	}
	return true
}

func (a *Overlay) Draw() {
	alpha := a.fade.Update(rl.GetFrameTime())

	rl.BeginDrawing()
	if a.opts.Overlay.Transparent {
		rl.ClearBackground(rl.Blank)
	} else {
		rl.ClearBackground(ColBg)
	}

	for _, c := range a.list.Circles() {
		col := scene.Dim(c.Color, alpha)
		rl.DrawCircleV(rl.NewVector2(float32(c.X), float32(c.Y)), float32(c.R), rl.NewColor(col.R, col.G, col.B, col.A))
	}

	if a.showHelp {
		cfg := a.panel.Config
		status := fmt.Sprintf("%s  flakes %d  speed %.1f  wind %+.2f", a.panel.Preset, a.engine.Len(), cfg.BaseSpeed, a.engine.Wind())
		rl.DrawText(status, 16, 16, 18, ColText)
		rl.DrawText("SPACE start/stop  1-4 presets  arrows count/speed  W/S/O tune  T hide  F11 fullscreen  Q quit", 16, 40, 14, ColTextDim)
	}
	rl.EndDrawing()
}

var keyNames = []struct {
	key         int32
	name, shift string
}{
	{rl.KeySpace, " ", " "},
	{rl.KeyOne, "1", "1"},
	{rl.KeyTwo, "2", "2"},
	{rl.KeyThree, "3", "3"},
	{rl.KeyFour, "4", "4"},
	{rl.KeyUp, "up", "up"},
	{rl.KeyDown, "down", "down"},
	{rl.KeyLeft, "left", "left"},
	{rl.KeyRight, "right", "right"},
	{rl.KeyW, "w", "W"},
	{rl.KeyS, "s", "S"},
	{rl.KeyO, "o", "O"},
	{rl.KeyT, "t", "t"},
	{rl.KeyF11, "f11", "f11"},
	{rl.KeyQ, "q", "q"},
	{rl.KeyEscape, "esc", "esc"},
}

// pressedKey names the first bound key pressed this frame the way the
// terminal front-end spells it.
func pressedKey() string {
	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	for _, k := range keyNames {
		if rl.IsKeyPressed(k.key) {
			if shift {
				return k.shift
			}
			return k.name
		}
	}
	return ""
}
