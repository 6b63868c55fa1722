package memory

import (
	"context"
	"strings"
	"sync"

	"sufragio/contexts/electoral-core/tally-service/ports"
)

// VoteRecord is the seedable shape of an anonymous ballot for in-memory
// tallies.
type VoteRecord struct {
	ElectionID      int64
	PrecinctID      int64
	MesaNumber      int
	ListID          int64
	CandidateCedula string
	CandidateRole   string
}

type profile struct {
	fullName string
	photoURL string
}

type listInfo struct {
	name string
	logo string
}

type precinctInfo struct {
	province string
	canton   string
	parish   string
}

type rollEntry struct {
	juntaID int64
	voted   bool
}

type Store struct {
	mu sync.RWMutex

	votes     []VoteRecord
	profiles  map[string]profile
	lists     map[int64]listInfo
	precincts map[int64]precinctInfo
	juntas    map[int64]ports.JuntaProjection
	elections map[int64]struct{}
	roll      map[string]rollEntry
}

func NewStore() *Store {
	return &Store{
		profiles:  make(map[string]profile),
		lists:     make(map[int64]listInfo),
		precincts: make(map[int64]precinctInfo),
		juntas:    make(map[int64]ports.JuntaProjection),
		elections: make(map[int64]struct{}),
		roll:      make(map[string]rollEntry),
	}
}

func (s *Store) AddVote(vote VoteRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votes = append(s.votes, vote)
}

func (s *Store) SetProfile(cedula, fullName, photoURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[strings.TrimSpace(cedula)] = profile{fullName: fullName, photoURL: photoURL}
}

func (s *Store) SetList(listID int64, name, logo string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[listID] = listInfo{name: name, logo: logo}
}

func (s *Store) SetPrecinct(precinctID int64, province, canton, parish string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.precincts[precinctID] = precinctInfo{province: province, canton: canton, parish: parish}
}

func (s *Store) SetJunta(junta ports.JuntaProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.juntas[junta.JuntaID] = junta
}

func (s *Store) SetElection(electionID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elections[electionID] = struct{}{}
}

func (s *Store) SetRollVoter(cedula string, juntaID int64, voted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roll[strings.TrimSpace(cedula)] = rollEntry{juntaID: juntaID, voted: voted}
}

// TallyByCandidate groups in first-seen order so ties rank deterministically.
func (s *Store) TallyByCandidate(_ context.Context, electionID int64) ([]ports.CandidateTally, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	index := make(map[string]int)
	rows := make([]ports.CandidateTally, 0)
	for _, vote := range s.votes {
		if vote.ElectionID != electionID {
			continue
		}
		if i, ok := index[vote.CandidateCedula]; ok {
			rows[i].Votes++
			continue
		}
		row := ports.CandidateTally{
			CandidateCedula: vote.CandidateCedula,
			CandidateRole:   vote.CandidateRole,
			ListID:          vote.ListID,
			Votes:           1,
		}
		if p, ok := s.profiles[vote.CandidateCedula]; ok {
			row.FullName = p.fullName
			row.PhotoURL = p.photoURL
		}
		if l, ok := s.lists[vote.ListID]; ok {
			row.ListName = l.name
			row.ListLogo = l.logo
		}
		index[vote.CandidateCedula] = len(rows)
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *Store) TallyByList(_ context.Context, electionID int64) ([]ports.ListTally, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tallyListsLocked(func(vote VoteRecord) bool {
		return vote.ElectionID == electionID
	}), nil
}

func (s *Store) TallyByMesa(_ context.Context, electionID int64, precinctID int64, mesaNumber int) ([]ports.ListTally, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tallyListsLocked(func(vote VoteRecord) bool {
		return vote.ElectionID == electionID && vote.PrecinctID == precinctID && vote.MesaNumber == mesaNumber
	}), nil
}

func (s *Store) TallyByRegion(_ context.Context, electionID int64, filter ports.RegionFilter) ([]ports.ListTally, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tallyListsLocked(func(vote VoteRecord) bool {
		if vote.ElectionID != electionID {
			return false
		}
		precinct, ok := s.precincts[vote.PrecinctID]
		if !ok {
			return false
		}
		if precinct.province != filter.Province {
			return false
		}
		if filter.Canton != "" && precinct.canton != filter.Canton {
			return false
		}
		if filter.Parish != "" && precinct.parish != filter.Parish {
			return false
		}
		return true
	}), nil
}

func (s *Store) tallyListsLocked(keep func(VoteRecord) bool) []ports.ListTally {
	index := make(map[int64]int)
	rows := make([]ports.ListTally, 0)
	for _, vote := range s.votes {
		if !keep(vote) {
			continue
		}
		if i, ok := index[vote.ListID]; ok {
			rows[i].Votes++
			continue
		}
		row := ports.ListTally{ListID: vote.ListID, Votes: 1}
		if l, ok := s.lists[vote.ListID]; ok {
			row.ListName = l.name
			row.ListLogo = l.logo
		}
		index[vote.ListID] = len(rows)
		rows = append(rows, row)
	}
	return rows
}

func (s *Store) GetJunta(_ context.Context, juntaID int64) (ports.JuntaProjection, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	junta, ok := s.juntas[juntaID]
	return junta, ok, nil
}

func (s *Store) CountRoll(_ context.Context, juntaID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, entry := range s.roll {
		if entry.juntaID == juntaID {
			count++
		}
	}
	return count, nil
}

func (s *Store) CountVoted(_ context.Context, juntaID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, entry := range s.roll {
		if entry.juntaID == juntaID && entry.voted {
			count++
		}
	}
	return count, nil
}

func (s *Store) ElectionExists(_ context.Context, electionID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.elections[electionID]
	return ok, nil
}

var _ ports.ResultsRepository = (*Store)(nil)
var _ ports.JuntaReader = (*Store)(nil)
var _ ports.RollReader = (*Store)(nil)
var _ ports.ElectionReader = (*Store)(nil)
