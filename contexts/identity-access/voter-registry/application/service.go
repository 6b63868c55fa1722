package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"sufragio/contexts/identity-access/voter-registry/domain/entities"
	domainerrors "sufragio/contexts/identity-access/voter-registry/domain/errors"
	"sufragio/contexts/identity-access/voter-registry/ports"
)

type Service struct {
	Voters     ports.VoterRepository
	Juntas     ports.JuntaChecker
	Candidates ports.CandidateChecker
	Clock      ports.Clock
	Logger     *slog.Logger
}

type CreateVoterInput struct {
	Cedula   string
	FullName string
	Email    string
	Password string
	PhotoURL string
	RoleID   int
	JuntaID  int64
}

// CreateVoter registers a voter. New voters always start active and with the
// ballot flag unset, regardless of what the caller sends.
func (s Service) CreateVoter(ctx context.Context, input CreateVoterInput) (entities.Voter, error) {
	cedula := strings.TrimSpace(input.Cedula)
	fullName := strings.TrimSpace(input.FullName)
	email := strings.TrimSpace(input.Email)
	if !entities.ValidCedula(cedula) {
		return entities.Voter{}, domainerrors.ErrInvalidCedula
	}
	if fullName == "" || email == "" || input.Password == "" {
		return entities.Voter{}, domainerrors.ErrInvalidVoterInput
	}
	if !entities.ValidRole(input.RoleID) {
		return entities.Voter{}, domainerrors.ErrInvalidRole
	}
	if err := s.checkRoleAllowed(ctx, cedula, input.RoleID); err != nil {
		return entities.Voter{}, err
	}
	if err := s.checkJunta(ctx, input.JuntaID); err != nil {
		return entities.Voter{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return entities.Voter{}, err
	}

	now := s.now()
	voter, err := s.Voters.CreateVoter(ctx, entities.Voter{
		Cedula:       cedula,
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		PhotoURL:     strings.TrimSpace(input.PhotoURL),
		RoleID:       input.RoleID,
		Active:       true,
		HasVoted:     false,
		JuntaID:      input.JuntaID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return entities.Voter{}, err
	}
	s.logger().Info("voter registered",
		"event", "voter_registered",
		"module", "identity-access/voter-registry",
		"layer", "application",
		"role_id", voter.RoleID,
	)
	return voter, nil
}

type UpdateVoterInput struct {
	Cedula   string
	FullName string
	Email    string
	Password string
	PhotoURL string
	RoleID   int
	Active   bool
	JuntaID  int64
}

// UpdateVoter edits profile, role, activity and junta assignment. The
// HasVoted flag is deliberately not part of the input; only the ballot
// recorder flips it.
func (s Service) UpdateVoter(ctx context.Context, input UpdateVoterInput) (entities.Voter, error) {
	cedula := strings.TrimSpace(input.Cedula)
	existing, err := s.Voters.GetVoter(ctx, cedula)
	if err != nil {
		return entities.Voter{}, err
	}

	fullName := strings.TrimSpace(input.FullName)
	email := strings.TrimSpace(input.Email)
	if fullName == "" || email == "" {
		return entities.Voter{}, domainerrors.ErrInvalidVoterInput
	}
	if !entities.ValidRole(input.RoleID) {
		return entities.Voter{}, domainerrors.ErrInvalidRole
	}
	if input.RoleID != existing.RoleID {
		if err := s.checkRoleAllowed(ctx, cedula, input.RoleID); err != nil {
			return entities.Voter{}, err
		}
	}
	if input.JuntaID != existing.JuntaID {
		if err := s.checkJunta(ctx, input.JuntaID); err != nil {
			return entities.Voter{}, err
		}
	}

	existing.FullName = fullName
	existing.Email = email
	existing.PhotoURL = strings.TrimSpace(input.PhotoURL)
	existing.RoleID = input.RoleID
	existing.Active = input.Active
	existing.JuntaID = input.JuntaID
	existing.UpdatedAt = s.now()
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return entities.Voter{}, err
		}
		existing.PasswordHash = string(hash)
	}
	return s.Voters.UpdateVoter(ctx, existing)
}

func (s Service) GetVoter(ctx context.Context, cedula string) (entities.Voter, error) {
	return s.Voters.GetVoter(ctx, strings.TrimSpace(cedula))
}

func (s Service) ListVoters(ctx context.Context) ([]entities.Voter, error) {
	return s.Voters.ListVoters(ctx)
}

func (s Service) ListVotersByJunta(ctx context.Context, juntaID int64) ([]entities.Voter, error) {
	return s.Voters.ListVotersByJunta(ctx, juntaID)
}

func (s Service) DeleteVoter(ctx context.Context, cedula string) error {
	normalized := strings.TrimSpace(cedula)
	if _, err := s.Voters.GetVoter(ctx, normalized); err != nil {
		return err
	}
	return s.Voters.DeleteVoter(ctx, normalized)
}

// checkRoleAllowed blocks a registered candidate from taking the admin or
// chair role.
func (s Service) checkRoleAllowed(ctx context.Context, cedula string, roleID int) error {
	if roleID == entities.RoleVoter {
		return nil
	}
	isCandidate, err := s.Candidates.IsCandidate(ctx, cedula)
	if err != nil {
		return err
	}
	if isCandidate {
		return domainerrors.ErrCandidateRole
	}
	return nil
}

func (s Service) checkJunta(ctx context.Context, juntaID int64) error {
	if juntaID == 0 {
		return nil
	}
	exists, err := s.Juntas.JuntaExists(ctx, juntaID)
	if err != nil {
		return err
	}
	if !exists {
		return domainerrors.ErrJuntaNotFound
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
