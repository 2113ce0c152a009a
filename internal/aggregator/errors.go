package aggregator

import (
	"errors"
	"fmt"
)

// Faults raised while reducing prices.
var (
	ErrInvalidPrice   = errors.New("invalid price")
	ErrVolumeOverflow = errors.New("traded volume overflows int64")
)

// NotFoundError reports that a well-formed lookup matched no records.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func notFound(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err carries a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
