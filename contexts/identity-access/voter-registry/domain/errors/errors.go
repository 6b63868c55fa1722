package errors

import "errors"

var (
	ErrVoterNotFound     = errors.New("voter not found")
	ErrDuplicateCedula   = errors.New("a voter with this cedula already exists")
	ErrInvalidCedula     = errors.New("cedula must be exactly 10 digits")
	ErrInvalidRole       = errors.New("role must be 1 (admin), 2 (voter) or 3 (chair)")
	ErrInvalidVoterInput = errors.New("full name, email and password are required")
	ErrJuntaNotFound     = errors.New("junta not found")
	ErrCandidateRole     = errors.New("a registered candidate can only hold the voter role")
)
