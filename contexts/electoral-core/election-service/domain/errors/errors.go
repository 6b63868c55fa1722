package errors

import "errors"

var (
	ErrInvalidElectionInput  = errors.New("election title is required")
	ErrInvalidDateRange      = errors.New("election end must be after its start")
	ErrElectionNotFound      = errors.New("election not found")
	ErrListNotFound          = errors.New("list not found")
	ErrInvalidListInput      = errors.New("list name is required")
	ErrListHasCandidates     = errors.New("list still has registered candidates")
	ErrListElectionMismatch  = errors.New("list does not belong to that election")
	ErrCandidateNotFound     = errors.New("candidate not found")
	ErrInvalidCandidateInput = errors.New("candidate cedula, list and role are required")
	ErrDuplicateCandidacy    = errors.New("voter is already a candidate in this election")
	ErrNotInConfiguration    = errors.New("election is no longer in configuration")
	ErrVoterNotFound         = errors.New("voter not found")
	ErrVoterRoleConflict     = errors.New("an administrator or junta chair cannot be a candidate")
)
