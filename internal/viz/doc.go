// Package viz runs the snow engine in a terminal.
//
// The package implements a full-screen TUI using the Bubble Tea framework:
//
//   - [Canvas]: Braille-based pixel canvas implementing the engine's surface
//   - [Model]: program that feeds terminal size, mouse motion and ticks into
//     a host loop
//   - Theme selection with 3 built-in color schemes
//
// Generated article text is drawn beneath the snow and shows through empty
// cells.
//
// # Key Bindings
//
//	Space - Start/Stop snowfall
//	1-4   - CALM, HEAVY, BLIZZARD, CUSTOM
//	↑/↓   - Particle count ±50
//	←/→   - Base speed ±0.5
//	w/W   - Wind sensitivity
//	s/S   - Size multiplier
//	o/O   - Opacity
//	T     - Cycle color themes
//	Q     - Quit
package viz
