package spatial

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is matched by every *ConfigurationError.
	ErrConfiguration = errors.New("invalid projection configuration")
	// ErrProjection is matched by every *ProjectionError.
	ErrProjection = errors.New("coordinate transform failed")
)

// ConfigurationError reports a longitude that does not map onto a valid UTM zone.
type ConfigurationError struct {
	Longitude float64
	Zone      int
	Reason    string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid projection for longitude %v (zone %d): %s", e.Longitude, e.Zone, e.Reason)
}

// Unwrap lets errors.Is match ErrConfiguration.
func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// ProjectionError reports a coordinate that could not be transformed.
type ProjectionError struct {
	Op  string // "forward", "inverse" or "input"
	X   float64
	Y   float64
	Err error
}

func (e *ProjectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s transform of (%v, %v) failed: %v", e.Op, e.X, e.Y, e.Err)
	}
	return fmt.Sprintf("%s transform of (%v, %v) failed", e.Op, e.X, e.Y)
}

// Is matches ErrProjection.
func (e *ProjectionError) Is(target error) bool { return target == ErrProjection }

func (e *ProjectionError) Unwrap() error { return e.Err }
