package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"sufragio/contexts/electoral-core/election-service/domain/entities"
	domainerrors "sufragio/contexts/electoral-core/election-service/domain/errors"
	"sufragio/contexts/electoral-core/election-service/ports"
)

const (
	roleAdmin = 1
	roleChair = 3
)

// Service orchestrates the election registry: election lifecycle with lazy
// status materialization, ballot lists, and configuration-phase candidate
// registration.
type Service struct {
	Elections  ports.ElectionRepository
	Lists      ports.ListRepository
	Candidates ports.CandidateRepository
	Voters     ports.VoterReader
	Clock      ports.Clock
	Logger     *slog.Logger
}

type CreateElectionInput struct {
	Title    string
	StartsAt time.Time
	EndsAt   time.Time
}

func (s Service) CreateElection(ctx context.Context, input CreateElectionInput) (entities.Election, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return entities.Election{}, domainerrors.ErrInvalidElectionInput
	}
	if !input.EndsAt.After(input.StartsAt) {
		return entities.Election{}, domainerrors.ErrInvalidDateRange
	}

	now := s.now()
	election := entities.Election{
		Title:    title,
		StartsAt: input.StartsAt.UTC(),
		EndsAt:   input.EndsAt.UTC(),
		// Status is never client-supplied; every election starts in
		// configuration and is re-derived on read.
		Status:    entities.ElectionStatusConfiguration,
		CreatedAt: now,
		UpdatedAt: now,
	}
	saved, err := s.Elections.SaveElection(ctx, election)
	if err != nil {
		return entities.Election{}, err
	}
	s.logger().Info("election created",
		"event", "election_created",
		"module", "electoral-core/election-service",
		"layer", "application",
		"election_id", saved.ElectionID,
		"starts_at", saved.StartsAt,
		"ends_at", saved.EndsAt,
	)
	return saved, nil
}

type UpdateElectionInput struct {
	ElectionID int64
	Title      string
	StartsAt   time.Time
	EndsAt     time.Time
}

func (s Service) UpdateElection(ctx context.Context, input UpdateElectionInput) (entities.Election, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return entities.Election{}, domainerrors.ErrInvalidElectionInput
	}
	if !input.EndsAt.After(input.StartsAt) {
		return entities.Election{}, domainerrors.ErrInvalidDateRange
	}

	existing, err := s.Elections.GetElection(ctx, input.ElectionID)
	if err != nil {
		return entities.Election{}, err
	}
	existing.Title = title
	existing.StartsAt = input.StartsAt.UTC()
	existing.EndsAt = input.EndsAt.UTC()
	existing.Status = entities.DeriveStatus(existing.StartsAt, existing.EndsAt, s.now())
	existing.UpdatedAt = s.now()
	return s.Elections.SaveElection(ctx, existing)
}

func (s Service) DeleteElection(ctx context.Context, electionID int64) error {
	if _, err := s.Elections.GetElection(ctx, electionID); err != nil {
		return err
	}
	return s.Elections.DeleteElection(ctx, electionID)
}

// GetElection returns the election with its status re-derived from the clock,
// persisting the new value when it changed.
func (s Service) GetElection(ctx context.Context, electionID int64) (entities.Election, error) {
	election, err := s.Elections.GetElection(ctx, electionID)
	if err != nil {
		return entities.Election{}, err
	}
	return s.materializeStatus(ctx, election)
}

func (s Service) ListElections(ctx context.Context) ([]entities.Election, error) {
	elections, err := s.Elections.ListElections(ctx)
	if err != nil {
		return nil, err
	}
	for i := range elections {
		refreshed, err := s.materializeStatus(ctx, elections[i])
		if err != nil {
			return nil, err
		}
		elections[i] = refreshed
	}
	return elections, nil
}

func (s Service) materializeStatus(ctx context.Context, election entities.Election) (entities.Election, error) {
	derived := entities.DeriveStatus(election.StartsAt, election.EndsAt, s.now())
	if derived == election.Status {
		return election, nil
	}
	if err := s.Elections.UpdateElectionStatus(ctx, election.ElectionID, derived); err != nil {
		return entities.Election{}, err
	}
	s.logger().Info("election status materialized",
		"event", "election_status_materialized",
		"module", "electoral-core/election-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"from", string(election.Status),
		"to", string(derived),
	)
	election.Status = derived
	return election, nil
}

type CreateListInput struct {
	ElectionID int64
	Name       string
	LogoURL    string
}

func (s Service) CreateList(ctx context.Context, input CreateListInput) (entities.BallotList, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return entities.BallotList{}, domainerrors.ErrInvalidListInput
	}
	if _, err := s.Elections.GetElection(ctx, input.ElectionID); err != nil {
		return entities.BallotList{}, err
	}
	return s.Lists.SaveList(ctx, entities.BallotList{
		Name:       name,
		LogoURL:    strings.TrimSpace(input.LogoURL),
		ElectionID: input.ElectionID,
	})
}

func (s Service) ListsByElection(ctx context.Context, electionID int64) ([]entities.BallotList, error) {
	if _, err := s.Elections.GetElection(ctx, electionID); err != nil {
		return nil, err
	}
	return s.Lists.ListListsByElection(ctx, electionID)
}

// DeleteList refuses while any candidate still runs on the list.
func (s Service) DeleteList(ctx context.Context, listID int64) error {
	if _, err := s.Lists.GetList(ctx, listID); err != nil {
		return err
	}
	count, err := s.Lists.CountCandidatesByList(ctx, listID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domainerrors.ErrListHasCandidates
	}
	return s.Lists.DeleteList(ctx, listID)
}

type RegisterCandidateInput struct {
	Cedula     string
	ListID     int64
	ElectionID int64
	RoleSought string
}

// RegisterCandidate enforces the configuration-phase rules: the election must
// still be in CONFIGURACION, the voter must exist and hold the plain voter
// role, the list must belong to the same election, and the (cedula, election)
// pair must be unique.
func (s Service) RegisterCandidate(ctx context.Context, input RegisterCandidateInput) (entities.Candidate, error) {
	cedula := strings.TrimSpace(input.Cedula)
	roleSought := strings.TrimSpace(input.RoleSought)
	if cedula == "" || roleSought == "" || input.ListID <= 0 || input.ElectionID <= 0 {
		return entities.Candidate{}, domainerrors.ErrInvalidCandidateInput
	}

	election, err := s.GetElection(ctx, input.ElectionID)
	if err != nil {
		return entities.Candidate{}, err
	}
	if election.Status != entities.ElectionStatusConfiguration {
		return entities.Candidate{}, domainerrors.ErrNotInConfiguration
	}

	voter, found, err := s.Voters.GetVoter(ctx, cedula)
	if err != nil {
		return entities.Candidate{}, err
	}
	if !found {
		return entities.Candidate{}, domainerrors.ErrVoterNotFound
	}
	if voter.RoleID == roleAdmin || voter.RoleID == roleChair {
		return entities.Candidate{}, domainerrors.ErrVoterRoleConflict
	}

	list, err := s.Lists.GetList(ctx, input.ListID)
	if err != nil {
		return entities.Candidate{}, err
	}
	if list.ElectionID != input.ElectionID {
		return entities.Candidate{}, domainerrors.ErrListElectionMismatch
	}

	exists, err := s.Candidates.HasCandidacy(ctx, cedula, input.ElectionID)
	if err != nil {
		return entities.Candidate{}, err
	}
	if exists {
		return entities.Candidate{}, domainerrors.ErrDuplicateCandidacy
	}

	saved, err := s.Candidates.SaveCandidate(ctx, entities.Candidate{
		Cedula:     cedula,
		ListID:     input.ListID,
		ElectionID: input.ElectionID,
		RoleSought: roleSought,
	})
	if err != nil {
		return entities.Candidate{}, err
	}
	s.logger().Info("candidate registered",
		"event", "election_candidate_registered",
		"module", "electoral-core/election-service",
		"layer", "application",
		"candidate_id", saved.CandidateID,
		"election_id", saved.ElectionID,
		"list_id", saved.ListID,
	)
	return saved, nil
}

type EditCandidateInput struct {
	CandidateID int64
	ListID      int64
	RoleSought  string
}

// EditCandidate allows list/role changes only; cedula and election are fixed
// for the life of the candidacy.
func (s Service) EditCandidate(ctx context.Context, input EditCandidateInput) (entities.Candidate, error) {
	roleSought := strings.TrimSpace(input.RoleSought)
	if roleSought == "" || input.ListID <= 0 {
		return entities.Candidate{}, domainerrors.ErrInvalidCandidateInput
	}

	candidate, err := s.Candidates.GetCandidate(ctx, input.CandidateID)
	if err != nil {
		return entities.Candidate{}, err
	}
	if err := s.requireConfiguration(ctx, candidate.ElectionID); err != nil {
		return entities.Candidate{}, err
	}

	list, err := s.Lists.GetList(ctx, input.ListID)
	if err != nil {
		return entities.Candidate{}, err
	}
	if list.ElectionID != candidate.ElectionID {
		return entities.Candidate{}, domainerrors.ErrListElectionMismatch
	}

	candidate.ListID = input.ListID
	candidate.RoleSought = roleSought
	return s.Candidates.SaveCandidate(ctx, candidate)
}

func (s Service) RemoveCandidate(ctx context.Context, candidateID int64) error {
	candidate, err := s.Candidates.GetCandidate(ctx, candidateID)
	if err != nil {
		return err
	}
	if err := s.requireConfiguration(ctx, candidate.ElectionID); err != nil {
		return err
	}
	return s.Candidates.DeleteCandidate(ctx, candidateID)
}

func (s Service) CandidatesByElection(ctx context.Context, electionID int64) ([]entities.CandidateDetail, error) {
	if _, err := s.Elections.GetElection(ctx, electionID); err != nil {
		return nil, err
	}
	return s.Candidates.ListCandidatesByElection(ctx, electionID)
}

func (s Service) requireConfiguration(ctx context.Context, electionID int64) error {
	election, err := s.GetElection(ctx, electionID)
	if err != nil {
		return err
	}
	if election.Status != entities.ElectionStatusConfiguration {
		return domainerrors.ErrNotInConfiguration
	}
	return nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
