package errors

import "errors"

var (
	ErrElectionNotFound = errors.New("election not found")
	ErrJuntaNotFound    = errors.New("junta not found")
	ErrInvalidRegion    = errors.New("province is required")
)
