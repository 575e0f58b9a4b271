package snow

import "errors"

// Domain errors for engine construction.
var (
	// ErrNoContext indicates the surface cannot provide a 2D drawing context.
	ErrNoContext = errors.New("snow: surface has no 2D drawing context")

	// ErrNilSurface indicates the engine was constructed without a surface.
	ErrNilSurface = errors.New("snow: nil surface")

	// ErrNilHost indicates a missing viewport or scheduler.
	ErrNilHost = errors.New("snow: nil viewport or scheduler")
)
