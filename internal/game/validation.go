package game

import (
	"fmt"
	"strings"
)

// ValidationError is a single problem found while loading a chart or settings.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found so loading fails once.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

func fieldf(format string, a ...interface{}) string {
	return fmt.Sprintf(format, a...)
}
