package butterfly

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by errors.Is for every *ConfigurationError.
var ErrConfiguration = errors.New("invalid butterfly configuration")

// ConfigurationError is returned when trees, kernel, policy, or charges
// cannot be combined into a butterfly.
type ConfigurationError struct {
	Msg string
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("butterfly: %s: %v", e.Msg, e.Err)
	}
	return "butterfly: " + e.Msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func configErrorf(format string, args ...interface{}) error {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

// BindingStateError is the panic value raised when a Binding slot is read
// before it has been sized, read after it has been dropped, or resized
// twice.
type BindingStateError struct {
	Box, Level int
	Op         string
}

func (e *BindingStateError) Error() string {
	return fmt.Sprintf(
		"butterfly: cannot %s binding slot of box %d on level %d",
		e.Op, e.Box, e.Level,
	)
}
