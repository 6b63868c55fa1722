package ports

import (
	"context"
	"time"

	"sufragio/contexts/electoral-core/ballot-service/domain/entities"
	"sufragio/internal/shared/events"
)

// VoterStatus is the minimal voter slice the gate needs. The full registry
// record stays with identity-access.
type VoterStatus struct {
	Cedula   string
	Active   bool
	HasVoted bool
	JuntaID  int64
}

type VoterReader interface {
	GetVoterStatus(ctx context.Context, cedula string) (VoterStatus, bool, error)
}

type JuntaProjection struct {
	JuntaID    int64
	MesaNumber int
	PrecinctID int64
	ElectionID int64
	State      int
}

type JuntaReader interface {
	GetJunta(ctx context.Context, juntaID int64) (JuntaProjection, bool, error)
}

type ElectionWindow struct {
	ElectionID int64
	StartsAt   time.Time
	EndsAt     time.Time
}

type ElectionReader interface {
	GetElectionWindow(ctx context.Context, electionID int64) (ElectionWindow, bool, error)
}

// BallotRepository records ballots and owns the one-way HasVoted flip. The
// ballot insert, the conditional flip, and the outbox append happen in a
// single unit of work; a flip that finds the flag already set fails the whole
// cast.
type BallotRepository interface {
	RecordBallot(ctx context.Context, ballot entities.AnonymousVote, voterCedula string, event EventEnvelope) error
	// MarkVoted sets HasVoted only when it is still false. The bool reports
	// whether this call performed the flip.
	MarkVoted(ctx context.Context, cedula string) (bool, error)
	HasVoted(ctx context.Context, cedula string) (bool, error)
	CountVotesByElection(ctx context.Context, electionID int64) (int64, error)
}

type TokenRepository interface {
	SaveToken(ctx context.Context, token entities.AccessToken) (entities.AccessToken, error)
	ListValidTokens(ctx context.Context, cedula string, now time.Time) ([]entities.AccessToken, error)
	InvalidateToken(ctx context.Context, tokenID string) error
	InvalidateTokensForVoter(ctx context.Context, cedula string) error
}

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope = events.Envelope
