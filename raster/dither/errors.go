package dither

import (
	"errors"
	"fmt"
)

var (
	// ErrZeroArea is returned when the raster to dither has no pixels.
	ErrZeroArea = errors.New("dither: raster has zero area")
	// ErrEngineUsed is returned when Run is called on an engine that has
	// already started a run.
	ErrEngineUsed = errors.New("dither: engine has already run")
)

// ConfigError reports a configuration rejected before scanning began.
type ConfigError struct {
	Param string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("dither: invalid %s: %v", e.Param, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErr(param string, err error) error {
	return &ConfigError{Param: param, Err: err}
}
