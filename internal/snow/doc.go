// Package snow implements the falling-snow particle engine.
//
// The package is built around two types:
//
//   - [Particle]: one snowflake with traits frozen at spawn and a mutable position
//   - [Engine]: the particle collection, its drawing surface and the render loop
//
// An Engine never owns a window, a timer or an event source. The host hands it
// a [Surface] to draw on, a [Viewport] that delivers resize and pointer-move
// signals, and a [Scheduler] that runs one callback per display frame.
//
// # Example
//
//	loop := host.NewLoop(1280, 720)
//	eng, err := snow.New(surface, loop, loop, preset)
//	if err != nil {
//		return err
//	}
//	eng.Start()
//	defer eng.Destroy()
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. All calls, including the frame and
// signal callbacks, must come from the host's single loop goroutine.
package snow
