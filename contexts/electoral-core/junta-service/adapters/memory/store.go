package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"sufragio/contexts/electoral-core/junta-service/domain/entities"
	domainerrors "sufragio/contexts/electoral-core/junta-service/domain/errors"
	"sufragio/contexts/electoral-core/junta-service/ports"
)

type voterRecord struct {
	projection ports.VoterProjection
}

type Store struct {
	mu sync.RWMutex

	juntas     map[int64]entities.Junta
	precincts  map[int64]entities.Precinct
	voters     map[string]*voterRecord
	candidates map[string]struct{}
	elections  []ports.ElectionWindow

	nextJuntaID    int64
	nextPrecinctID int64
}

func NewStore() *Store {
	return &Store{
		juntas:     make(map[int64]entities.Junta),
		precincts:  make(map[int64]entities.Precinct),
		voters:     make(map[string]*voterRecord),
		candidates: make(map[string]struct{}),
	}
}

func (s *Store) SetVoter(voter ports.VoterProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voters[strings.TrimSpace(voter.Cedula)] = &voterRecord{projection: voter}
}

func (s *Store) SetCandidate(cedula string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[strings.TrimSpace(cedula)] = struct{}{}
}

func (s *Store) SetElectionWindow(window ports.ElectionWindow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elections = append(s.elections, window)
}

func (s *Store) SaveJuntas(_ context.Context, juntas []entities.Junta) ([]entities.Junta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := make([]entities.Junta, 0, len(juntas))
	for _, junta := range juntas {
		if junta.JuntaID == 0 {
			s.nextJuntaID++
			junta.JuntaID = s.nextJuntaID
		}
		s.juntas[junta.JuntaID] = junta
		saved = append(saved, junta)
	}
	return saved, nil
}

func (s *Store) GetJunta(_ context.Context, juntaID int64) (entities.Junta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	junta, ok := s.juntas[juntaID]
	if !ok {
		return entities.Junta{}, domainerrors.ErrJuntaNotFound
	}
	return junta, nil
}

func (s *Store) ListJuntaDetails(_ context.Context) ([]entities.JuntaDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.detailsLocked(func(entities.Junta) bool { return true }), nil
}

func (s *Store) ListJuntasByElection(_ context.Context, electionID int64) ([]entities.JuntaDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.detailsLocked(func(junta entities.Junta) bool {
		return junta.ElectionID == electionID
	}), nil
}

func (s *Store) detailsLocked(keep func(entities.Junta) bool) []entities.JuntaDetail {
	details := make([]entities.JuntaDetail, 0)
	for _, junta := range s.juntas {
		if !keep(junta) {
			continue
		}
		detail := entities.JuntaDetail{Junta: junta}
		if junta.ChairCedula != "" {
			if record, ok := s.voters[junta.ChairCedula]; ok {
				detail.ChairName = record.projection.FullName
			}
		}
		if precinct, ok := s.precincts[junta.PrecinctID]; ok {
			detail.Province = precinct.Province
			detail.Canton = precinct.Canton
			detail.Parish = precinct.Parish
		}
		details = append(details, detail)
	}
	sort.Slice(details, func(i, j int) bool {
		return details[i].JuntaID < details[j].JuntaID
	})
	return details
}

func (s *Store) CountJuntas(_ context.Context, precinctID int64, electionID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, junta := range s.juntas {
		if junta.PrecinctID == precinctID && junta.ElectionID == electionID {
			count++
		}
	}
	return count, nil
}

func (s *Store) SetChair(_ context.Context, juntaID int64, cedula string, state entities.JuntaState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	junta, ok := s.juntas[juntaID]
	if !ok {
		return domainerrors.ErrJuntaNotFound
	}
	junta.ChairCedula = cedula
	junta.State = state
	s.juntas[juntaID] = junta
	return nil
}

func (s *Store) TransitionState(_ context.Context, juntaID int64, from entities.JuntaState, to entities.JuntaState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	junta, ok := s.juntas[juntaID]
	if !ok {
		return domainerrors.ErrJuntaNotFound
	}
	if junta.State != from {
		return domainerrors.ErrStateConflict
	}
	junta.State = to
	s.juntas[juntaID] = junta
	return nil
}

func (s *Store) ForceState(_ context.Context, juntaID int64, to entities.JuntaState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	junta, ok := s.juntas[juntaID]
	if !ok {
		return domainerrors.ErrJuntaNotFound
	}
	junta.State = to
	s.juntas[juntaID] = junta
	return nil
}

func (s *Store) DeleteJunta(_ context.Context, juntaID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.juntas[juntaID]; !ok {
		return domainerrors.ErrJuntaNotFound
	}
	delete(s.juntas, juntaID)
	return nil
}

func (s *Store) SavePrecinct(_ context.Context, precinct entities.Precinct) (entities.Precinct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if precinct.PrecinctID == 0 {
		s.nextPrecinctID++
		precinct.PrecinctID = s.nextPrecinctID
	}
	s.precincts[precinct.PrecinctID] = precinct
	return precinct, nil
}

func (s *Store) GetPrecinct(_ context.Context, precinctID int64) (entities.Precinct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	precinct, ok := s.precincts[precinctID]
	if !ok {
		return entities.Precinct{}, domainerrors.ErrPrecinctNotFound
	}
	return precinct, nil
}

func (s *Store) ListPrecincts(_ context.Context) ([]entities.Precinct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Precinct, 0, len(s.precincts))
	for _, precinct := range s.precincts {
		items = append(items, precinct)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].PrecinctID < items[j].PrecinctID
	})
	return items, nil
}

func (s *Store) CountJuntasByPrecinct(_ context.Context, precinctID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, junta := range s.juntas {
		if junta.PrecinctID == precinctID {
			count++
		}
	}
	return count, nil
}

func (s *Store) DeletePrecinct(_ context.Context, precinctID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.precincts[precinctID]; !ok {
		return domainerrors.ErrPrecinctNotFound
	}
	delete(s.precincts, precinctID)
	return nil
}

func (s *Store) GetVoter(_ context.Context, cedula string) (ports.VoterProjection, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.voters[strings.TrimSpace(cedula)]
	if !ok {
		return ports.VoterProjection{}, false, nil
	}
	return record.projection, true, nil
}

func (s *Store) AssignChairRole(_ context.Context, cedula string, juntaID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.voters[strings.TrimSpace(cedula)]
	if !ok {
		return domainerrors.ErrVoterNotFound
	}
	record.projection.RoleID = 3
	record.projection.JuntaID = juntaID
	return nil
}

func (s *Store) RevertChairRole(_ context.Context, cedula string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.voters[strings.TrimSpace(cedula)]
	if !ok {
		return domainerrors.ErrVoterNotFound
	}
	record.projection.RoleID = 2
	record.projection.JuntaID = 0
	return nil
}

func (s *Store) ListChairEligible(_ context.Context) ([]entities.ChairCandidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chairs := make([]entities.ChairCandidate, 0)
	for _, record := range s.voters {
		if record.projection.RoleID != 2 || record.projection.JuntaID != 0 {
			continue
		}
		chairs = append(chairs, entities.ChairCandidate{
			Cedula:   record.projection.Cedula,
			FullName: record.projection.FullName,
			Email:    record.projection.Email,
		})
	}
	sort.Slice(chairs, func(i, j int) bool {
		return chairs[i].Cedula < chairs[j].Cedula
	})
	return chairs, nil
}

func (s *Store) IsCandidate(_ context.Context, cedula string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.candidates[strings.TrimSpace(cedula)]
	return ok, nil
}

func (s *Store) FindActiveElection(_ context.Context, now time.Time) (ports.ElectionWindow, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, window := range s.elections {
		if !now.Before(window.StartsAt) && now.Before(window.EndsAt) {
			return window, true, nil
		}
	}
	return ports.ElectionWindow{}, false, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

var _ ports.JuntaRepository = (*Store)(nil)
var _ ports.PrecinctRepository = (*Store)(nil)
var _ ports.VoterDirectory = (*Store)(nil)
var _ ports.CandidateChecker = (*Store)(nil)
var _ ports.ElectionReader = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
