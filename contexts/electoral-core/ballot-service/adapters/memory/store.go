package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"sufragio/contexts/electoral-core/ballot-service/domain/entities"
	domainerrors "sufragio/contexts/electoral-core/ballot-service/domain/errors"
	"sufragio/contexts/electoral-core/ballot-service/ports"
)

type voterRecord struct {
	status ports.VoterStatus
}

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

type Store struct {
	mu sync.Mutex

	voters    map[string]*voterRecord
	juntas    map[int64]ports.JuntaProjection
	elections map[int64]ports.ElectionWindow
	ballots   []entities.AnonymousVote
	tokens    map[string]entities.AccessToken
	outbox    []*outboxRecord
}

func NewStore() *Store {
	return &Store{
		voters:    make(map[string]*voterRecord),
		juntas:    make(map[int64]ports.JuntaProjection),
		elections: make(map[int64]ports.ElectionWindow),
		tokens:    make(map[string]entities.AccessToken),
	}
}

func (s *Store) SetVoter(status ports.VoterStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voters[strings.TrimSpace(status.Cedula)] = &voterRecord{status: status}
}

func (s *Store) SetJunta(junta ports.JuntaProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.juntas[junta.JuntaID] = junta
}

func (s *Store) SetElectionWindow(window ports.ElectionWindow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elections[window.ElectionID] = window
}

func (s *Store) Ballots() []entities.AnonymousVote {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.AnonymousVote, len(s.ballots))
	copy(out, s.ballots)
	return out
}

func (s *Store) GetVoterStatus(_ context.Context, cedula string) (ports.VoterStatus, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.voters[strings.TrimSpace(cedula)]
	if !ok {
		return ports.VoterStatus{}, false, nil
	}
	return record.status, true, nil
}

func (s *Store) GetJunta(_ context.Context, juntaID int64) (ports.JuntaProjection, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	junta, ok := s.juntas[juntaID]
	return junta, ok, nil
}

func (s *Store) GetElectionWindow(_ context.Context, electionID int64) (ports.ElectionWindow, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	window, ok := s.elections[electionID]
	return window, ok, nil
}

// RecordBallot mirrors the relational adapter's transaction: the ballot
// insert, the conditional HasVoted flip, and the outbox append are atomic
// under the store mutex, and a voter whose flag is already set aborts the
// whole operation.
func (s *Store) RecordBallot(_ context.Context, ballot entities.AnonymousVote, voterCedula string, event ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.voters[strings.TrimSpace(voterCedula)]
	if !ok {
		return domainerrors.ErrVoterNotFound
	}
	if record.status.HasVoted {
		return domainerrors.ErrAlreadyVoted
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	record.status.HasVoted = true
	s.ballots = append(s.ballots, ballot)
	s.outbox = append(s.outbox, &outboxRecord{message: ports.OutboxMessage{
		OutboxID:     uuid.NewString(),
		EventType:    event.EventType,
		PartitionKey: event.PartitionKey,
		Payload:      payload,
		CreatedAt:    event.OccurredAt,
	}})
	return nil
}

func (s *Store) MarkVoted(_ context.Context, cedula string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.voters[strings.TrimSpace(cedula)]
	if !ok {
		return false, domainerrors.ErrVoterNotFound
	}
	if record.status.HasVoted {
		return false, nil
	}
	record.status.HasVoted = true
	return true, nil
}

func (s *Store) HasVoted(_ context.Context, cedula string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.voters[strings.TrimSpace(cedula)]
	if !ok {
		return false, domainerrors.ErrVoterNotFound
	}
	return record.status.HasVoted, nil
}

func (s *Store) CountVotesByElection(_ context.Context, electionID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, ballot := range s.ballots {
		if ballot.ElectionID == electionID {
			count++
		}
	}
	return count, nil
}

func (s *Store) SaveToken(_ context.Context, token entities.AccessToken) (entities.AccessToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token.TokenID] = token
	return token, nil
}

func (s *Store) ListValidTokens(_ context.Context, cedula string, now time.Time) ([]entities.AccessToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	normalized := strings.TrimSpace(cedula)
	tokens := make([]entities.AccessToken, 0)
	for _, token := range s.tokens {
		if token.VoterCedula == normalized && token.Valid && now.Before(token.ExpiresAt) {
			tokens = append(tokens, token)
		}
	}
	sort.Slice(tokens, func(i, j int) bool {
		return tokens[i].CreatedAt.After(tokens[j].CreatedAt)
	})
	return tokens, nil
}

func (s *Store) InvalidateToken(_ context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.tokens[tokenID]
	if !ok {
		return domainerrors.ErrTokenNotFound
	}
	token.Valid = false
	s.tokens[tokenID] = token
	return nil
}

func (s *Store) InvalidateTokensForVoter(_ context.Context, cedula string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	normalized := strings.TrimSpace(cedula)
	for id, token := range s.tokens {
		if token.VoterCedula == normalized && token.Valid {
			token.Valid = false
			s.tokens[id] = token
		}
	}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := make([]ports.OutboxMessage, 0)
	for _, record := range s.outbox {
		if record.published {
			continue
		}
		pending = append(pending, record.message)
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range s.outbox {
		if record.message.OutboxID == outboxID {
			record.published = true
			return nil
		}
	}
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.VoterReader = (*Store)(nil)
var _ ports.JuntaReader = (*Store)(nil)
var _ ports.ElectionReader = (*Store)(nil)
var _ ports.BallotRepository = (*Store)(nil)
var _ ports.TokenRepository = (*Store)(nil)
var _ ports.OutboxRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
