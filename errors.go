package floorcal

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Sentinel errors wrapped by [ConfigError]. Test for them with errors.Is.
var (
	ErrNonFinite        = errors.New("value is NaN or infinite")
	ErrDegenerateRect   = errors.New("reference rect has a zero-width axis")
	ErrDegenerateBounds = errors.New("bounds interval has zero span")
	ErrZeroMapSize      = errors.New("map size has a zero dimension")
	ErrZeroScale        = errors.New("affine scale is zero")
	ErrUnknownVariant   = errors.New("unknown transform variant")
	ErrBadTextureScale  = errors.New("texture scale must be positive")
)

// ConfigError reports every problem found while validating a calibration.
type ConfigError struct {
	Name string
	Err  error
}

func (e *ConfigError) Error() string {
	problems := e.Problems()
	msgs := make([]string, len(problems))
	for i, p := range problems {
		msgs[i] = p.Error()
	}
	name := e.Name
	if name == "" {
		name = "unnamed"
	}
	return fmt.Sprintf("invalid calibration %q: %s", name, strings.Join(msgs, "; "))
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Problems returns the individual validation failures.
func (e *ConfigError) Problems() []error { return multierr.Errors(e.Err) }

// fieldError ties a sentinel to the config field that triggered it.
func fieldError(field string, sentinel error) error {
	return fmt.Errorf("%s: %w", field, sentinel)
}
