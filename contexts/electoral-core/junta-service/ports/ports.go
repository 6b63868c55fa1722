package ports

import (
	"context"
	"time"

	"sufragio/contexts/electoral-core/junta-service/domain/entities"
)

type JuntaRepository interface {
	SaveJuntas(ctx context.Context, juntas []entities.Junta) ([]entities.Junta, error)
	GetJunta(ctx context.Context, juntaID int64) (entities.Junta, error)
	ListJuntaDetails(ctx context.Context) ([]entities.JuntaDetail, error)
	ListJuntasByElection(ctx context.Context, electionID int64) ([]entities.JuntaDetail, error)
	CountJuntas(ctx context.Context, precinctID int64, electionID int64) (int64, error)
	// SetChair writes the chair and the new state in a single update so the
	// assignment and the lifecycle advance land together.
	SetChair(ctx context.Context, juntaID int64, cedula string, state entities.JuntaState) error
	// TransitionState succeeds only when the stored state still equals from.
	TransitionState(ctx context.Context, juntaID int64, from entities.JuntaState, to entities.JuntaState) error
	ForceState(ctx context.Context, juntaID int64, to entities.JuntaState) error
	DeleteJunta(ctx context.Context, juntaID int64) error
}

type PrecinctRepository interface {
	SavePrecinct(ctx context.Context, precinct entities.Precinct) (entities.Precinct, error)
	GetPrecinct(ctx context.Context, precinctID int64) (entities.Precinct, error)
	ListPrecincts(ctx context.Context) ([]entities.Precinct, error)
	CountJuntasByPrecinct(ctx context.Context, precinctID int64) (int64, error)
	DeletePrecinct(ctx context.Context, precinctID int64) error
}

// VoterProjection is the slice of the voter record the lifecycle needs for
// chair management.
type VoterProjection struct {
	Cedula   string
	FullName string
	Email    string
	RoleID   int
	JuntaID  int64
}

type VoterDirectory interface {
	GetVoter(ctx context.Context, cedula string) (VoterProjection, bool, error)
	// AssignChairRole promotes the voter to the chair role and binds them to
	// the junta.
	AssignChairRole(ctx context.Context, cedula string, juntaID int64) error
	// RevertChairRole demotes the voter back to a plain voter and clears the
	// junta binding.
	RevertChairRole(ctx context.Context, cedula string) error
	// ListChairEligible returns plain voters with no junta binding.
	ListChairEligible(ctx context.Context) ([]entities.ChairCandidate, error)
}

// CandidateChecker answers whether a cedula is registered as a candidate in
// any election. Candidates can never chair a junta.
type CandidateChecker interface {
	IsCandidate(ctx context.Context, cedula string) (bool, error)
}

// ElectionWindow is the schedule slice used to find the election currently in
// its voting window.
type ElectionWindow struct {
	ElectionID int64
	StartsAt   time.Time
	EndsAt     time.Time
}

type ElectionReader interface {
	FindActiveElection(ctx context.Context, now time.Time) (ElectionWindow, bool, error)
}

type Clock interface {
	Now() time.Time
}
