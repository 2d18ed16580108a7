package inmemory

import "errors"

// ErrInvalidCapacity is returned when a backend is configured with a negative capacity.
var ErrInvalidCapacity = errors.New("inmemory: capacity must not be negative")
