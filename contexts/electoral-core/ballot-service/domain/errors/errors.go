package errors

import "errors"

var (
	ErrVoterNotFound    = errors.New("voter not found")
	ErrAlreadyVoted     = errors.New("voter has already cast a ballot")
	ErrNoJuntaAssigned  = errors.New("voter has no junta assigned")
	ErrJuntaNotOpen     = errors.New("junta is not open for voting")
	ErrElectionNotFound = errors.New("election not found")
	ErrElectionInactive = errors.New("election is not in its voting window")

	ErrInvalidVoteInput  = errors.New("list, candidate and role are required")
	ErrInvalidTokenInput = errors.New("voter cedula is required")
	ErrTokenNotFound     = errors.New("no valid access token matches the code")
)
