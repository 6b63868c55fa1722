package errors

import "errors"

var (
	ErrJuntaNotFound    = errors.New("junta not found")
	ErrPrecinctNotFound = errors.New("precinct not found")
	ErrVoterNotFound    = errors.New("voter not found")
	ErrNoActiveElection = errors.New("no active election")

	ErrInvalidBatchInput    = errors.New("batch size must be between 1 and 50")
	ErrInvalidPrecinctInput = errors.New("province, canton and parish are required")
	ErrPrecinctHasJuntas    = errors.New("precinct still has juntas assigned")

	ErrChairIsCandidate = errors.New("a registered candidate cannot chair a junta")

	ErrJuntaNotCreated = errors.New("junta has already been opened")
	ErrJuntaNotOpen    = errors.New("junta is not open")

	// ErrStateConflict reports a lost conditional update, somebody moved the
	// junta between the read and the write.
	ErrStateConflict = errors.New("junta state changed concurrently")
)
