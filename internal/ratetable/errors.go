package ratetable

import (
	"errors"
	"fmt"
)

// ErrInvalidTable is matched by every *InvalidTableError.
var ErrInvalidTable = errors.New("invalid rate table")

// InvalidTableError reports a rate table with no usable rows after cleaning.
type InvalidTableError struct {
	Reason string
	Rows   int
}

func (e *InvalidTableError) Error() string {
	return fmt.Sprintf("invalid rate table: %s (%d rows read)", e.Reason, e.Rows)
}

// Is makes errors.Is(err, ErrInvalidTable) succeed.
func (e *InvalidTableError) Is(target error) bool {
	return target == ErrInvalidTable
}
