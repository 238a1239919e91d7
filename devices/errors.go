package devices

import "strings"

// ErrorSet collects the failures of several devices and is itself an error.
type ErrorSet []error

// Len returns the number of collected errors.
func (e ErrorSet) Len() int {
	return len(e)
}

// Append adds the given errors to the set. Nil values are skipped.
func (e *ErrorSet) Append(args ...error) {
	for _, err := range args {
		if err != nil {
			*e = append(*e, err)
		}
	}
}

func (e ErrorSet) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}
