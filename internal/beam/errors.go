package beam

import (
	"errors"
	"fmt"
)

// ErrNotImplemented signals that a bare element base was invoked
// without a concrete variant. It indicates a construction defect,
// never a runtime condition.
var ErrNotImplemented = errors.New("field element not implemented")

// InvalidConfigError is returned when an operation is invoked in a way
// its configuration cannot satisfy, e.g. a time-dependent element
// applied without an absolute time.
type InvalidConfigError struct {
	Subject string
	Reason  string
}

func (e InvalidConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Subject, e.Reason)
}
