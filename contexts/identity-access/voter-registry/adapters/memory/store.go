package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"sufragio/contexts/identity-access/voter-registry/domain/entities"
	domainerrors "sufragio/contexts/identity-access/voter-registry/domain/errors"
	"sufragio/contexts/identity-access/voter-registry/ports"
)

type Store struct {
	mu sync.RWMutex

	voters     map[string]entities.Voter
	juntas     map[int64]struct{}
	candidates map[string]struct{}
}

func NewStore() *Store {
	return &Store{
		voters:     make(map[string]entities.Voter),
		juntas:     make(map[int64]struct{}),
		candidates: make(map[string]struct{}),
	}
}

func (s *Store) SetJunta(juntaID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.juntas[juntaID] = struct{}{}
}

func (s *Store) SetCandidate(cedula string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[strings.TrimSpace(cedula)] = struct{}{}
}

// MarkVoted emulates the ballot recorder's flag flip for test setups.
func (s *Store) MarkVoted(cedula string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	voter, ok := s.voters[strings.TrimSpace(cedula)]
	if !ok {
		return
	}
	voter.HasVoted = true
	s.voters[voter.Cedula] = voter
}

func (s *Store) CreateVoter(_ context.Context, voter entities.Voter) (entities.Voter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.voters[voter.Cedula]; exists {
		return entities.Voter{}, domainerrors.ErrDuplicateCedula
	}
	s.voters[voter.Cedula] = voter
	return voter, nil
}

func (s *Store) UpdateVoter(_ context.Context, voter entities.Voter) (entities.Voter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.voters[voter.Cedula]
	if !ok {
		return entities.Voter{}, domainerrors.ErrVoterNotFound
	}
	// HasVoted stays whatever the ballot flow made it.
	voter.HasVoted = existing.HasVoted
	s.voters[voter.Cedula] = voter
	return voter, nil
}

func (s *Store) GetVoter(_ context.Context, cedula string) (entities.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	voter, ok := s.voters[strings.TrimSpace(cedula)]
	if !ok {
		return entities.Voter{}, domainerrors.ErrVoterNotFound
	}
	return voter, nil
}

func (s *Store) ListVoters(_ context.Context) ([]entities.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	voters := make([]entities.Voter, 0, len(s.voters))
	for _, voter := range s.voters {
		voters = append(voters, voter)
	}
	sortVoters(voters)
	return voters, nil
}

func (s *Store) ListVotersByJunta(_ context.Context, juntaID int64) ([]entities.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	voters := make([]entities.Voter, 0)
	for _, voter := range s.voters {
		if voter.JuntaID == juntaID {
			voters = append(voters, voter)
		}
	}
	sortVoters(voters)
	return voters, nil
}

func (s *Store) DeleteVoter(_ context.Context, cedula string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	normalized := strings.TrimSpace(cedula)
	if _, ok := s.voters[normalized]; !ok {
		return domainerrors.ErrVoterNotFound
	}
	delete(s.voters, normalized)
	return nil
}

func (s *Store) JuntaExists(_ context.Context, juntaID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.juntas[juntaID]
	return ok, nil
}

func (s *Store) IsCandidate(_ context.Context, cedula string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.candidates[strings.TrimSpace(cedula)]
	return ok, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func sortVoters(voters []entities.Voter) {
	sort.Slice(voters, func(i, j int) bool {
		if voters[i].RoleID == voters[j].RoleID {
			return voters[i].Cedula < voters[j].Cedula
		}
		return voters[i].RoleID < voters[j].RoleID
	})
}

var _ ports.VoterRepository = (*Store)(nil)
var _ ports.JuntaChecker = (*Store)(nil)
var _ ports.CandidateChecker = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
