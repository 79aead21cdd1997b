package round

import (
	"errors"
	"strings"
)

// ErrInvalidRoundConfig is returned, wrapped in a *ValidationError, for configs that break the round rules.
var ErrInvalidRoundConfig = errors.New("invalid round config")

// ValidationError lists every rule a config broke.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return ErrInvalidRoundConfig.Error() + ": " + strings.Join(e.Violations, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRoundConfig
}
