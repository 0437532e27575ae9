package util

import (
	"strings"
)

// MultiError collects multiple errors, e.g. the validation failures of a configuration.
type MultiError struct {
	Errors []error
}

// Collect appends err unless it is nil.
func (m *MultiError) Collect(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

// Empty returns true if no error was collected.
func (m MultiError) Empty() bool {
	return len(m.Errors) == 0
}

// Error joins the messages of all collected errors, one per line.
func (m MultiError) Error() string {
	messages := make([]string, 0, len(m.Errors))
	for _, err := range m.Errors {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "\n")
}
