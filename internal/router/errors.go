package router

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotInitialized is returned when a nil Router is used.
var ErrNotInitialized = errors.New("router used before initialization")

// ConfigError indicates a wiring defect: a component was used outside its
// valid scope or a required dependency is missing.
type ConfigError struct {
	Component string
	Missing   []string
	Reason    string
}

func (e *ConfigError) Error() string {
	switch {
	case len(e.Missing) > 0:
		return fmt.Sprintf("%s: missing %s", e.Component, strings.Join(e.Missing, ", "))
	case e.Reason != "":
		return fmt.Sprintf("%s: %s", e.Component, e.Reason)
	default:
		return fmt.Sprintf("%s: misconfigured", e.Component)
	}
}
