package ports

import (
	"context"
	"time"

	"sufragio/contexts/electoral-core/election-service/domain/entities"
)

type ElectionRepository interface {
	SaveElection(ctx context.Context, election entities.Election) (entities.Election, error)
	GetElection(ctx context.Context, electionID int64) (entities.Election, error)
	ListElections(ctx context.Context) ([]entities.Election, error)
	UpdateElectionStatus(ctx context.Context, electionID int64, status entities.ElectionStatus) error
	DeleteElection(ctx context.Context, electionID int64) error
}

type ListRepository interface {
	SaveList(ctx context.Context, list entities.BallotList) (entities.BallotList, error)
	GetList(ctx context.Context, listID int64) (entities.BallotList, error)
	ListListsByElection(ctx context.Context, electionID int64) ([]entities.BallotList, error)
	CountCandidatesByList(ctx context.Context, listID int64) (int64, error)
	DeleteList(ctx context.Context, listID int64) error
}

type CandidateRepository interface {
	SaveCandidate(ctx context.Context, candidate entities.Candidate) (entities.Candidate, error)
	GetCandidate(ctx context.Context, candidateID int64) (entities.Candidate, error)
	HasCandidacy(ctx context.Context, cedula string, electionID int64) (bool, error)
	ListCandidatesByElection(ctx context.Context, electionID int64) ([]entities.CandidateDetail, error)
	DeleteCandidate(ctx context.Context, candidateID int64) error
}

// VoterProjection is the slice of the voter record this module needs for
// candidacy guards and ballot enrichment.
type VoterProjection struct {
	Cedula   string
	FullName string
	PhotoURL string
	RoleID   int
}

type VoterReader interface {
	GetVoter(ctx context.Context, cedula string) (VoterProjection, bool, error)
}

type Clock interface {
	Now() time.Time
}
