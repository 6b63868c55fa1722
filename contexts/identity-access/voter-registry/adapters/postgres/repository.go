package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"sufragio/contexts/identity-access/voter-registry/domain/entities"
	domainerrors "sufragio/contexts/identity-access/voter-registry/domain/errors"
	"sufragio/contexts/identity-access/voter-registry/ports"
)

type voterModel struct {
	Cedula       string    `gorm:"column:cedula;primaryKey"`
	FullName     string    `gorm:"column:full_name"`
	Email        string    `gorm:"column:email"`
	PasswordHash string    `gorm:"column:password_hash"`
	PhotoURL     string    `gorm:"column:photo_url"`
	RoleID       int       `gorm:"column:role_id"`
	Active       bool      `gorm:"column:active"`
	HasVoted     bool      `gorm:"column:has_voted"`
	JuntaID      *int64    `gorm:"column:junta_id"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (voterModel) TableName() string { return "voters" }

type Repository struct {
	DB     *gorm.DB
	Logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	return &Repository{DB: db, Logger: logger}
}

func (r *Repository) CreateVoter(ctx context.Context, voter entities.Voter) (entities.Voter, error) {
	model := toModel(voter)
	if err := r.DB.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.Voter{}, domainerrors.ErrDuplicateCedula
		}
		r.logError(ctx, "voter_create_failed", err)
		return entities.Voter{}, err
	}
	return voter, nil
}

// UpdateVoter never writes has_voted; that column belongs to the ballot flow.
func (r *Repository) UpdateVoter(ctx context.Context, voter entities.Voter) (entities.Voter, error) {
	updates := map[string]any{
		"full_name":     voter.FullName,
		"email":         voter.Email,
		"password_hash": voter.PasswordHash,
		"photo_url":     voter.PhotoURL,
		"role_id":       voter.RoleID,
		"active":        voter.Active,
		"updated_at":    voter.UpdatedAt,
	}
	if voter.JuntaID > 0 {
		updates["junta_id"] = voter.JuntaID
	} else {
		updates["junta_id"] = nil
	}
	result := r.DB.WithContext(ctx).
		Model(&voterModel{}).
		Where("cedula = ?", voter.Cedula).
		Updates(updates)
	if result.Error != nil {
		r.logError(ctx, "voter_update_failed", result.Error)
		return entities.Voter{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.Voter{}, domainerrors.ErrVoterNotFound
	}
	return r.GetVoter(ctx, voter.Cedula)
}

func (r *Repository) GetVoter(ctx context.Context, cedula string) (entities.Voter, error) {
	var model voterModel
	err := r.DB.WithContext(ctx).First(&model, "cedula = ?", strings.TrimSpace(cedula)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Voter{}, domainerrors.ErrVoterNotFound
	}
	if err != nil {
		r.logError(ctx, "voter_get_failed", err)
		return entities.Voter{}, err
	}
	return toVoter(model), nil
}

func (r *Repository) ListVoters(ctx context.Context) ([]entities.Voter, error) {
	var models []voterModel
	err := r.DB.WithContext(ctx).
		Order("role_id ASC, cedula ASC").
		Find(&models).Error
	if err != nil {
		r.logError(ctx, "voter_list_failed", err)
		return nil, err
	}
	return toVoters(models), nil
}

func (r *Repository) ListVotersByJunta(ctx context.Context, juntaID int64) ([]entities.Voter, error) {
	var models []voterModel
	err := r.DB.WithContext(ctx).
		Where("junta_id = ?", juntaID).
		Order("role_id ASC, cedula ASC").
		Find(&models).Error
	if err != nil {
		r.logError(ctx, "voter_list_by_junta_failed", err)
		return nil, err
	}
	return toVoters(models), nil
}

func (r *Repository) DeleteVoter(ctx context.Context, cedula string) error {
	result := r.DB.WithContext(ctx).Where("cedula = ?", strings.TrimSpace(cedula)).Delete(&voterModel{})
	if result.Error != nil {
		r.logError(ctx, "voter_delete_failed", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrVoterNotFound
	}
	return nil
}

func (r *Repository) JuntaExists(ctx context.Context, juntaID int64) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Table("juntas").
		Where("junta_id = ?", juntaID).
		Count(&count).Error
	if err != nil {
		r.logError(ctx, "junta_exists_failed", err)
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) IsCandidate(ctx context.Context, cedula string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Table("candidates").
		Where("cedula = ?", strings.TrimSpace(cedula)).
		Count(&count).Error
	if err != nil {
		r.logError(ctx, "candidate_check_failed", err)
		return false, err
	}
	return count > 0, nil
}

func toModel(voter entities.Voter) voterModel {
	model := voterModel{
		Cedula:       voter.Cedula,
		FullName:     voter.FullName,
		Email:        voter.Email,
		PasswordHash: voter.PasswordHash,
		PhotoURL:     voter.PhotoURL,
		RoleID:       voter.RoleID,
		Active:       voter.Active,
		HasVoted:     voter.HasVoted,
		CreatedAt:    voter.CreatedAt,
		UpdatedAt:    voter.UpdatedAt,
	}
	if voter.JuntaID > 0 {
		juntaID := voter.JuntaID
		model.JuntaID = &juntaID
	}
	return model
}

func toVoter(model voterModel) entities.Voter {
	voter := entities.Voter{
		Cedula:       model.Cedula,
		FullName:     model.FullName,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		PhotoURL:     model.PhotoURL,
		RoleID:       model.RoleID,
		Active:       model.Active,
		HasVoted:     model.HasVoted,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
	if model.JuntaID != nil {
		voter.JuntaID = *model.JuntaID
	}
	return voter
}

func toVoters(models []voterModel) []entities.Voter {
	voters := make([]entities.Voter, 0, len(models))
	for _, model := range models {
		voters = append(voters, toVoter(model))
	}
	return voters
}

func (r *Repository) logError(ctx context.Context, event string, err error) {
	if r.Logger == nil {
		return
	}
	r.Logger.ErrorContext(ctx, "voter repository error",
		"event", event,
		"module", "identity-access/voter-registry",
		"layer", "adapter",
		"error", err,
	)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.VoterRepository = (*Repository)(nil)
var _ ports.JuntaChecker = (*Repository)(nil)
var _ ports.CandidateChecker = (*Repository)(nil)

// SystemClock supplies wall time for voter audit timestamps.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

var _ ports.Clock = SystemClock{}
