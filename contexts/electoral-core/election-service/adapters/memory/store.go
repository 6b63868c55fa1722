package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"sufragio/contexts/electoral-core/election-service/domain/entities"
	domainerrors "sufragio/contexts/electoral-core/election-service/domain/errors"
	"sufragio/contexts/electoral-core/election-service/ports"
)

type Store struct {
	mu sync.RWMutex

	elections  map[int64]entities.Election
	lists      map[int64]entities.BallotList
	candidates map[int64]entities.Candidate
	voters     map[string]ports.VoterProjection

	nextElectionID  int64
	nextListID      int64
	nextCandidateID int64
}

func NewStore() *Store {
	return &Store{
		elections:  make(map[int64]entities.Election),
		lists:      make(map[int64]entities.BallotList),
		candidates: make(map[int64]entities.Candidate),
		voters:     make(map[string]ports.VoterProjection),
	}
}

func (s *Store) SetVoter(voter ports.VoterProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voters[strings.TrimSpace(voter.Cedula)] = voter
}

func (s *Store) SaveElection(_ context.Context, election entities.Election) (entities.Election, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if election.ElectionID == 0 {
		s.nextElectionID++
		election.ElectionID = s.nextElectionID
	}
	s.elections[election.ElectionID] = election
	return election, nil
}

func (s *Store) GetElection(_ context.Context, electionID int64) (entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	election, ok := s.elections[electionID]
	if !ok {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}
	return election, nil
}

func (s *Store) ListElections(_ context.Context) ([]entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Election, 0, len(s.elections))
	for _, election := range s.elections {
		items = append(items, election)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ElectionID < items[j].ElectionID
	})
	return items, nil
}

func (s *Store) UpdateElectionStatus(_ context.Context, electionID int64, status entities.ElectionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	election, ok := s.elections[electionID]
	if !ok {
		return domainerrors.ErrElectionNotFound
	}
	election.Status = status
	s.elections[electionID] = election
	return nil
}

func (s *Store) DeleteElection(_ context.Context, electionID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.elections[electionID]; !ok {
		return domainerrors.ErrElectionNotFound
	}
	delete(s.elections, electionID)
	// FK cascade parity with the relational schema.
	for id, list := range s.lists {
		if list.ElectionID == electionID {
			delete(s.lists, id)
		}
	}
	for id, candidate := range s.candidates {
		if candidate.ElectionID == electionID {
			delete(s.candidates, id)
		}
	}
	return nil
}

func (s *Store) SaveList(_ context.Context, list entities.BallotList) (entities.BallotList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if list.ListID == 0 {
		s.nextListID++
		list.ListID = s.nextListID
	}
	s.lists[list.ListID] = list
	return list, nil
}

func (s *Store) GetList(_ context.Context, listID int64) (entities.BallotList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list, ok := s.lists[listID]
	if !ok {
		return entities.BallotList{}, domainerrors.ErrListNotFound
	}
	return list, nil
}

func (s *Store) ListListsByElection(_ context.Context, electionID int64) ([]entities.BallotList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.BallotList, 0)
	for _, list := range s.lists {
		if list.ElectionID == electionID {
			items = append(items, list)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ListID < items[j].ListID
	})
	return items, nil
}

func (s *Store) CountCandidatesByList(_ context.Context, listID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, candidate := range s.candidates {
		if candidate.ListID == listID {
			count++
		}
	}
	return count, nil
}

func (s *Store) DeleteList(_ context.Context, listID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lists[listID]; !ok {
		return domainerrors.ErrListNotFound
	}
	delete(s.lists, listID)
	return nil
}

func (s *Store) SaveCandidate(_ context.Context, candidate entities.Candidate) (entities.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if candidate.CandidateID == 0 {
		s.nextCandidateID++
		candidate.CandidateID = s.nextCandidateID
	}
	s.candidates[candidate.CandidateID] = candidate
	return candidate, nil
}

func (s *Store) GetCandidate(_ context.Context, candidateID int64) (entities.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	candidate, ok := s.candidates[candidateID]
	if !ok {
		return entities.Candidate{}, domainerrors.ErrCandidateNotFound
	}
	return candidate, nil
}

func (s *Store) HasCandidacy(_ context.Context, cedula string, electionID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, candidate := range s.candidates {
		if candidate.Cedula == strings.TrimSpace(cedula) && candidate.ElectionID == electionID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ListCandidatesByElection(_ context.Context, electionID int64) ([]entities.CandidateDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.CandidateDetail, 0)
	for _, candidate := range s.candidates {
		if candidate.ElectionID != electionID {
			continue
		}
		detail := entities.CandidateDetail{Candidate: candidate}
		if voter, ok := s.voters[candidate.Cedula]; ok {
			detail.FullName = voter.FullName
			detail.PhotoURL = voter.PhotoURL
		}
		if list, ok := s.lists[candidate.ListID]; ok {
			detail.ListName = list.Name
			detail.ListLogo = list.LogoURL
		}
		items = append(items, detail)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].RoleSought == items[j].RoleSought {
			return items[i].FullName < items[j].FullName
		}
		return items[i].RoleSought < items[j].RoleSought
	})
	return items, nil
}

func (s *Store) DeleteCandidate(_ context.Context, candidateID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.candidates[candidateID]; !ok {
		return domainerrors.ErrCandidateNotFound
	}
	delete(s.candidates, candidateID)
	return nil
}

func (s *Store) GetVoter(_ context.Context, cedula string) (ports.VoterProjection, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	voter, ok := s.voters[strings.TrimSpace(cedula)]
	return voter, ok, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

var _ ports.ElectionRepository = (*Store)(nil)
var _ ports.ListRepository = (*Store)(nil)
var _ ports.CandidateRepository = (*Store)(nil)
var _ ports.VoterReader = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
