package catalog

import "errors"

var (
	// ErrDuplicateTopologyName is returned when a name is already bound
	ErrDuplicateTopologyName = errors.New("duplicate topology name")

	// ErrUnknownTopologyName is returned when a name is not bound
	ErrUnknownTopologyName = errors.New("unknown topology name")
)
