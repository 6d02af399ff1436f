package pipeline

import "errors"

// Sentinel domain errors used to classify high-level pipeline failures.
// They should always be wrapped with contextual information at the call site.
var (
	ErrClean    = errors.New("distbuild: clean error")
	ErrBundle   = errors.New("distbuild: bundle error")
	ErrCopy     = errors.New("distbuild: copy error")
	ErrStamp    = errors.New("distbuild: stamp error")
	ErrManifest = errors.New("distbuild: manifest error")
)
