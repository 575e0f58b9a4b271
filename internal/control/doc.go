// Package control maps user input to engine configuration changes.
//
// Front-ends translate their key events into an [Action] with [ActionForKey]
// and hand it to a [Panel], which owns the current preset label and config:
//
//   - Start/stop toggle
//   - Preset selection (1-4)
//   - Count, speed, wind, size and opacity adjustments
//
// Every adjustment builds a whole new config from the current one and relabels
// the panel CUSTOM, so the engine always receives a complete value.
//
// # Usage
//
//	panel := control.NewPanel("CALM", cfg)
//	if a := control.ActionForKey(key); panel.Apply(a, engine) {
//		// redraw status
//	}
//
// Actions the panel does not own (quit, fullscreen, theme) return false so the
// front-end can handle them.
package control
