package fund

import "errors"

var (
	// ErrUnknownKind is returned for a transaction whose operation is not one of
	// Buy, Sell, ShortSell or Cover. It aborts a run.
	ErrUnknownKind = errors.New("unknown transaction kind")
	// ErrInvalidInput is returned for inputs violating the engine preconditions.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMissingColumn is returned when a dataset lacks a required column or attribute.
	ErrMissingColumn = errors.New("missing required column")
	// ErrNoData is returned when a requested date or month has no snapshot.
	ErrNoData = errors.New("no data")
)
