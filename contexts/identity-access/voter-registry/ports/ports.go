package ports

import (
	"context"
	"time"

	"sufragio/contexts/identity-access/voter-registry/domain/entities"
)

type VoterRepository interface {
	// CreateVoter fails with the duplicate-cedula domain error when the
	// cedula is already registered.
	CreateVoter(ctx context.Context, voter entities.Voter) (entities.Voter, error)
	// UpdateVoter writes every column except HasVoted.
	UpdateVoter(ctx context.Context, voter entities.Voter) (entities.Voter, error)
	GetVoter(ctx context.Context, cedula string) (entities.Voter, error)
	ListVoters(ctx context.Context) ([]entities.Voter, error)
	ListVotersByJunta(ctx context.Context, juntaID int64) ([]entities.Voter, error)
	DeleteVoter(ctx context.Context, cedula string) error
}

type JuntaChecker interface {
	JuntaExists(ctx context.Context, juntaID int64) (bool, error)
}

type CandidateChecker interface {
	IsCandidate(ctx context.Context, cedula string) (bool, error)
}

type Clock interface {
	Now() time.Time
}
