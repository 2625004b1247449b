package chart

import (
	"errors"
	"fmt"
)

// ErrInvalidRange is matched by every InvalidRangeError.
var ErrInvalidRange = errors.New("invalid percent range")

// InvalidRangeError reports a percent range that is out of [0,1] or has its
// ends swapped.
type InvalidRangeError struct {
	Range Range
}

func (e *InvalidRangeError) Error() string {
	switch {
	case e.Range.Start > e.Range.EndInclusive:
		return fmt.Sprintf("invalid percent range %v: start is after end", e.Range)
	case e.Range.Start < 0:
		return fmt.Sprintf("invalid percent range %v: start is below 0", e.Range)
	default:
		return fmt.Sprintf("invalid percent range %v: end is above 1", e.Range)
	}
}

func (e *InvalidRangeError) Is(target error) bool {
	return target == ErrInvalidRange
}

// ConfigError reports a configuration field holding an unusable value.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Reason)
}
