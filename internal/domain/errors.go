package domain

import "errors"

var (
	// ErrDuplicateLabel is returned when a node label is already present in a graph
	ErrDuplicateLabel = errors.New("duplicate node label")
	// ErrSelfLoop is returned when both link endpoints are the same node
	ErrSelfLoop = errors.New("self-loop link")
	// ErrUnknownEndpoint is returned when a link references a node not yet added
	ErrUnknownEndpoint = errors.New("unknown link endpoint")
	// ErrGraphFrozen is returned when a frozen graph is modified
	ErrGraphFrozen = errors.New("graph is frozen")
	// ErrEmptyLabel is returned when a node has no label
	ErrEmptyLabel = errors.New("empty node label")
)
