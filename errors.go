package autocleaner

import "github.com/juju/errors"

const (
	ErrInvalidConfig = errors.ConstError("invalid config")
	ErrClosed        = errors.ConstError("cleaner is closed")
)
