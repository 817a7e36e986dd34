package probe

import "errors"

var (
	ErrEmptyEntry      = errors.New("probe entry cannot be empty")
	ErrNegativeLatency = errors.New("probe latency must not be negative")
)
