package ports

import (
	"context"
	"time"

	"sufragio/contexts/electoral-core/tally-service/domain/entities"
)

// CandidateTally is a raw aggregation row. Enrichment fields come from LEFT
// JOINs and may be empty; the query layer fills display defaults.
type CandidateTally struct {
	CandidateCedula string
	CandidateRole   string
	ListID          int64
	Votes           int64
	FullName        string
	PhotoURL        string
	ListName        string
	ListLogo        string
}

type ListTally struct {
	ListID   int64
	ListName string
	ListLogo string
	Votes    int64
}

// RegionFilter narrows a tally to precincts in a province, optionally down to
// canton and parish.
type RegionFilter struct {
	Province string
	Canton   string
	Parish   string
}

type ResultsRepository interface {
	TallyByCandidate(ctx context.Context, electionID int64) ([]CandidateTally, error)
	TallyByList(ctx context.Context, electionID int64) ([]ListTally, error)
	TallyByMesa(ctx context.Context, electionID int64, precinctID int64, mesaNumber int) ([]ListTally, error)
	TallyByRegion(ctx context.Context, electionID int64, filter RegionFilter) ([]ListTally, error)
}

type JuntaProjection struct {
	JuntaID    int64
	MesaNumber int
	PrecinctID int64
	ElectionID int64
}

type JuntaReader interface {
	GetJunta(ctx context.Context, juntaID int64) (JuntaProjection, bool, error)
}

// RollReader counts the electoral roll of a junta and how many of those
// voters already cast a ballot.
type RollReader interface {
	CountRoll(ctx context.Context, juntaID int64) (int64, error)
	CountVoted(ctx context.Context, juntaID int64) (int64, error)
}

type ElectionReader interface {
	ElectionExists(ctx context.Context, electionID int64) (bool, error)
}

// ResultsCache fronts the live standings with a short TTL. A miss or a cache
// failure falls through to the store; results are never served stale beyond
// the TTL.
type ResultsCache interface {
	GetLiveResults(ctx context.Context, electionID int64) ([]entities.CandidateResult, bool, error)
	SetLiveResults(ctx context.Context, electionID int64, results []entities.CandidateResult, ttl time.Duration) error
	InvalidateLiveResults(ctx context.Context, electionID int64) error
}
