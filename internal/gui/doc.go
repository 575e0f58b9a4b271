// Package gui runs the snow engine in a desktop window on raylib.
//
// By default the window is transparent, undecorated and topmost so snow falls
// over whatever is on screen. The engine draws into a [scene.DisplayList]
// during the loop's update phase; [Overlay.Draw] replays it between
// BeginDrawing and EndDrawing with a fade-in after every start.
//
// Mouse passthrough hides the pointer from the window, so wind stays at its
// last value while it is enabled.
package gui
