package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"sufragio/contexts/electoral-core/election-service/domain/entities"
	domainerrors "sufragio/contexts/electoral-core/election-service/domain/errors"
	"sufragio/contexts/electoral-core/election-service/ports"
)

type electionModel struct {
	ElectionID int64     `gorm:"column:election_id;primaryKey;autoIncrement"`
	Title      string    `gorm:"column:title"`
	StartsAt   time.Time `gorm:"column:starts_at"`
	EndsAt     time.Time `gorm:"column:ends_at"`
	Status     string    `gorm:"column:status"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (electionModel) TableName() string { return "elections" }

type listModel struct {
	ListID     int64  `gorm:"column:list_id;primaryKey;autoIncrement"`
	Name       string `gorm:"column:name"`
	LogoURL    string `gorm:"column:logo_url"`
	ElectionID int64  `gorm:"column:election_id"`
}

func (listModel) TableName() string { return "lists" }

type candidateModel struct {
	CandidateID int64  `gorm:"column:candidate_id;primaryKey;autoIncrement"`
	Cedula      string `gorm:"column:cedula"`
	ListID      int64  `gorm:"column:list_id"`
	ElectionID  int64  `gorm:"column:election_id"`
	RoleSought  string `gorm:"column:role_sought"`
}

func (candidateModel) TableName() string { return "candidates" }

type candidateDetailRow struct {
	candidateModel
	FullName string `gorm:"column:full_name"`
	PhotoURL string `gorm:"column:photo_url"`
	ListName string `gorm:"column:list_name"`
	ListLogo string `gorm:"column:list_logo"`
}

type voterRow struct {
	Cedula   string `gorm:"column:cedula"`
	FullName string `gorm:"column:full_name"`
	PhotoURL string `gorm:"column:photo_url"`
	RoleID   int    `gorm:"column:role_id"`
}

// Repository persists the election registry on PostgreSQL. It also serves as
// the module's read-only view over the voters table for candidacy guards.
type Repository struct {
	DB     *gorm.DB
	Logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	return &Repository{DB: db, Logger: logger}
}

func (r *Repository) SaveElection(ctx context.Context, election entities.Election) (entities.Election, error) {
	model := electionModel{
		ElectionID: election.ElectionID,
		Title:      election.Title,
		StartsAt:   election.StartsAt,
		EndsAt:     election.EndsAt,
		Status:     string(election.Status),
		CreatedAt:  election.CreatedAt,
		UpdatedAt:  election.UpdatedAt,
	}
	if err := r.DB.WithContext(ctx).Save(&model).Error; err != nil {
		r.logError(ctx, "election_save_failed", err)
		return entities.Election{}, err
	}
	election.ElectionID = model.ElectionID
	return election, nil
}

func (r *Repository) GetElection(ctx context.Context, electionID int64) (entities.Election, error) {
	var model electionModel
	err := r.DB.WithContext(ctx).First(&model, "election_id = ?", electionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}
	if err != nil {
		r.logError(ctx, "election_get_failed", err)
		return entities.Election{}, err
	}
	return toElection(model), nil
}

func (r *Repository) ListElections(ctx context.Context) ([]entities.Election, error) {
	var models []electionModel
	if err := r.DB.WithContext(ctx).Order("election_id ASC").Find(&models).Error; err != nil {
		r.logError(ctx, "election_list_failed", err)
		return nil, err
	}
	items := make([]entities.Election, 0, len(models))
	for _, model := range models {
		items = append(items, toElection(model))
	}
	return items, nil
}

func (r *Repository) UpdateElectionStatus(ctx context.Context, electionID int64, status entities.ElectionStatus) error {
	result := r.DB.WithContext(ctx).
		Model(&electionModel{}).
		Where("election_id = ?", electionID).
		Update("status", string(status))
	if result.Error != nil {
		r.logError(ctx, "election_status_update_failed", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrElectionNotFound
	}
	return nil
}

func (r *Repository) DeleteElection(ctx context.Context, electionID int64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("election_id = ?", electionID).Delete(&candidateModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("election_id = ?", electionID).Delete(&listModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("election_id = ?", electionID).Delete(&electionModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrElectionNotFound
		}
		return nil
	})
}

func (r *Repository) SaveList(ctx context.Context, list entities.BallotList) (entities.BallotList, error) {
	model := listModel{
		ListID:     list.ListID,
		Name:       list.Name,
		LogoURL:    list.LogoURL,
		ElectionID: list.ElectionID,
	}
	if err := r.DB.WithContext(ctx).Save(&model).Error; err != nil {
		r.logError(ctx, "list_save_failed", err)
		return entities.BallotList{}, err
	}
	list.ListID = model.ListID
	return list, nil
}

func (r *Repository) GetList(ctx context.Context, listID int64) (entities.BallotList, error) {
	var model listModel
	err := r.DB.WithContext(ctx).First(&model, "list_id = ?", listID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.BallotList{}, domainerrors.ErrListNotFound
	}
	if err != nil {
		r.logError(ctx, "list_get_failed", err)
		return entities.BallotList{}, err
	}
	return toList(model), nil
}

func (r *Repository) ListListsByElection(ctx context.Context, electionID int64) ([]entities.BallotList, error) {
	var models []listModel
	err := r.DB.WithContext(ctx).
		Where("election_id = ?", electionID).
		Order("list_id ASC").
		Find(&models).Error
	if err != nil {
		r.logError(ctx, "list_by_election_failed", err)
		return nil, err
	}
	items := make([]entities.BallotList, 0, len(models))
	for _, model := range models {
		items = append(items, toList(model))
	}
	return items, nil
}

func (r *Repository) CountCandidatesByList(ctx context.Context, listID int64) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&candidateModel{}).
		Where("list_id = ?", listID).
		Count(&count).Error
	if err != nil {
		r.logError(ctx, "candidate_count_failed", err)
		return 0, err
	}
	return count, nil
}

func (r *Repository) DeleteList(ctx context.Context, listID int64) error {
	result := r.DB.WithContext(ctx).Where("list_id = ?", listID).Delete(&listModel{})
	if result.Error != nil {
		r.logError(ctx, "list_delete_failed", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrListNotFound
	}
	return nil
}

func (r *Repository) SaveCandidate(ctx context.Context, candidate entities.Candidate) (entities.Candidate, error) {
	model := candidateModel{
		CandidateID: candidate.CandidateID,
		Cedula:      candidate.Cedula,
		ListID:      candidate.ListID,
		ElectionID:  candidate.ElectionID,
		RoleSought:  candidate.RoleSought,
	}
	if err := r.DB.WithContext(ctx).Save(&model).Error; err != nil {
		r.logError(ctx, "candidate_save_failed", err)
		return entities.Candidate{}, err
	}
	candidate.CandidateID = model.CandidateID
	return candidate, nil
}

func (r *Repository) GetCandidate(ctx context.Context, candidateID int64) (entities.Candidate, error) {
	var model candidateModel
	err := r.DB.WithContext(ctx).First(&model, "candidate_id = ?", candidateID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Candidate{}, domainerrors.ErrCandidateNotFound
	}
	if err != nil {
		r.logError(ctx, "candidate_get_failed", err)
		return entities.Candidate{}, err
	}
	return toCandidate(model), nil
}

func (r *Repository) HasCandidacy(ctx context.Context, cedula string, electionID int64) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&candidateModel{}).
		Where("cedula = ? AND election_id = ?", strings.TrimSpace(cedula), electionID).
		Count(&count).Error
	if err != nil {
		r.logError(ctx, "candidacy_lookup_failed", err)
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) ListCandidatesByElection(ctx context.Context, electionID int64) ([]entities.CandidateDetail, error) {
	var rows []candidateDetailRow
	err := r.DB.WithContext(ctx).
		Table("candidates").
		Select(`candidates.candidate_id, candidates.cedula, candidates.list_id,
			candidates.election_id, candidates.role_sought,
			voters.full_name AS full_name, voters.photo_url AS photo_url,
			lists.name AS list_name, lists.logo_url AS list_logo`).
		Joins("LEFT JOIN voters ON voters.cedula = candidates.cedula").
		Joins("LEFT JOIN lists ON lists.list_id = candidates.list_id").
		Where("candidates.election_id = ?", electionID).
		Order("candidates.role_sought ASC, voters.full_name ASC").
		Scan(&rows).Error
	if err != nil {
		r.logError(ctx, "candidate_detail_list_failed", err)
		return nil, err
	}
	items := make([]entities.CandidateDetail, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.CandidateDetail{
			Candidate: toCandidate(row.candidateModel),
			FullName:  row.FullName,
			PhotoURL:  row.PhotoURL,
			ListName:  row.ListName,
			ListLogo:  row.ListLogo,
		})
	}
	return items, nil
}

func (r *Repository) DeleteCandidate(ctx context.Context, candidateID int64) error {
	result := r.DB.WithContext(ctx).Where("candidate_id = ?", candidateID).Delete(&candidateModel{})
	if result.Error != nil {
		r.logError(ctx, "candidate_delete_failed", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCandidateNotFound
	}
	return nil
}

func (r *Repository) GetVoter(ctx context.Context, cedula string) (ports.VoterProjection, bool, error) {
	var row voterRow
	err := r.DB.WithContext(ctx).
		Table("voters").
		Select("cedula, full_name, photo_url, role_id").
		Where("cedula = ?", strings.TrimSpace(cedula)).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.VoterProjection{}, false, nil
	}
	if err != nil {
		r.logError(ctx, "voter_lookup_failed", err)
		return ports.VoterProjection{}, false, err
	}
	return ports.VoterProjection{
		Cedula:   row.Cedula,
		FullName: row.FullName,
		PhotoURL: row.PhotoURL,
		RoleID:   row.RoleID,
	}, true, nil
}

func toElection(model electionModel) entities.Election {
	return entities.Election{
		ElectionID: model.ElectionID,
		Title:      model.Title,
		StartsAt:   model.StartsAt,
		EndsAt:     model.EndsAt,
		Status:     entities.ElectionStatus(model.Status),
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func toList(model listModel) entities.BallotList {
	return entities.BallotList{
		ListID:     model.ListID,
		Name:       model.Name,
		LogoURL:    model.LogoURL,
		ElectionID: model.ElectionID,
	}
}

func toCandidate(model candidateModel) entities.Candidate {
	return entities.Candidate{
		CandidateID: model.CandidateID,
		Cedula:      model.Cedula,
		ListID:      model.ListID,
		ElectionID:  model.ElectionID,
		RoleSought:  model.RoleSought,
	}
}

func (r *Repository) logError(ctx context.Context, event string, err error) {
	if r.Logger == nil {
		return
	}
	r.Logger.ErrorContext(ctx, "election repository error",
		"event", event,
		"module", "electoral-core/election-service",
		"layer", "adapter",
		"error", err,
	)
}

var _ ports.ElectionRepository = (*Repository)(nil)
var _ ports.ListRepository = (*Repository)(nil)
var _ ports.CandidateRepository = (*Repository)(nil)
var _ ports.VoterReader = (*Repository)(nil)

// SystemClock supplies wall time for status derivation in production wiring.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

var _ ports.Clock = SystemClock{}
