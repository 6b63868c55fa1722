package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"sufragio/contexts/electoral-core/junta-service/domain/entities"
	domainerrors "sufragio/contexts/electoral-core/junta-service/domain/errors"
	"sufragio/contexts/electoral-core/junta-service/ports"
)

type juntaModel struct {
	JuntaID     int64   `gorm:"column:junta_id;primaryKey;autoIncrement"`
	MesaNumber  int     `gorm:"column:mesa_number"`
	PrecinctID  int64   `gorm:"column:precinct_id"`
	ElectionID  int64   `gorm:"column:election_id"`
	ChairCedula *string `gorm:"column:chair_cedula"`
	State       int     `gorm:"column:state"`
}

func (juntaModel) TableName() string { return "juntas" }

type precinctModel struct {
	PrecinctID int64  `gorm:"column:precinct_id;primaryKey;autoIncrement"`
	Province   string `gorm:"column:province"`
	Canton     string `gorm:"column:canton"`
	Parish     string `gorm:"column:parish"`
}

func (precinctModel) TableName() string { return "precincts" }

type juntaDetailRow struct {
	juntaModel
	ChairName string `gorm:"column:chair_name"`
	Province  string `gorm:"column:province"`
	Canton    string `gorm:"column:canton"`
	Parish    string `gorm:"column:parish"`
}

type Repository struct {
	DB     *gorm.DB
	Logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	return &Repository{DB: db, Logger: logger}
}

func (r *Repository) SaveJuntas(ctx context.Context, juntas []entities.Junta) ([]entities.Junta, error) {
	models := make([]juntaModel, 0, len(juntas))
	for _, junta := range juntas {
		models = append(models, toJuntaModel(junta))
	}
	if err := r.DB.WithContext(ctx).Create(&models).Error; err != nil {
		r.logError(ctx, "junta_batch_save_failed", err)
		return nil, err
	}
	saved := make([]entities.Junta, 0, len(models))
	for _, model := range models {
		saved = append(saved, toJunta(model))
	}
	return saved, nil
}

func (r *Repository) GetJunta(ctx context.Context, juntaID int64) (entities.Junta, error) {
	var model juntaModel
	err := r.DB.WithContext(ctx).First(&model, "junta_id = ?", juntaID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Junta{}, domainerrors.ErrJuntaNotFound
	}
	if err != nil {
		r.logError(ctx, "junta_get_failed", err)
		return entities.Junta{}, err
	}
	return toJunta(model), nil
}

func (r *Repository) ListJuntaDetails(ctx context.Context) ([]entities.JuntaDetail, error) {
	return r.listDetails(ctx, r.detailQuery(ctx))
}

func (r *Repository) ListJuntasByElection(ctx context.Context, electionID int64) ([]entities.JuntaDetail, error) {
	return r.listDetails(ctx, r.detailQuery(ctx).Where("juntas.election_id = ?", electionID))
}

func (r *Repository) detailQuery(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table("juntas").
		Select(`juntas.junta_id, juntas.mesa_number, juntas.precinct_id,
			juntas.election_id, juntas.chair_cedula, juntas.state,
			voters.full_name AS chair_name,
			precincts.province AS province, precincts.canton AS canton,
			precincts.parish AS parish`).
		Joins("LEFT JOIN voters ON voters.cedula = juntas.chair_cedula").
		Joins("LEFT JOIN precincts ON precincts.precinct_id = juntas.precinct_id").
		Order("juntas.junta_id ASC")
}

func (r *Repository) listDetails(ctx context.Context, query *gorm.DB) ([]entities.JuntaDetail, error) {
	var rows []juntaDetailRow
	if err := query.Scan(&rows).Error; err != nil {
		r.logError(ctx, "junta_detail_list_failed", err)
		return nil, err
	}
	details := make([]entities.JuntaDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, entities.JuntaDetail{
			Junta:     toJunta(row.juntaModel),
			ChairName: row.ChairName,
			Province:  row.Province,
			Canton:    row.Canton,
			Parish:    row.Parish,
		})
	}
	return details, nil
}

func (r *Repository) CountJuntas(ctx context.Context, precinctID int64, electionID int64) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&juntaModel{}).
		Where("precinct_id = ? AND election_id = ?", precinctID, electionID).
		Count(&count).Error
	if err != nil {
		r.logError(ctx, "junta_count_failed", err)
		return 0, err
	}
	return count, nil
}

func (r *Repository) SetChair(ctx context.Context, juntaID int64, cedula string, state entities.JuntaState) error {
	result := r.DB.WithContext(ctx).
		Model(&juntaModel{}).
		Where("junta_id = ?", juntaID).
		Updates(map[string]any{
			"chair_cedula": cedula,
			"state":        int(state),
		})
	if result.Error != nil {
		r.logError(ctx, "junta_set_chair_failed", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrJuntaNotFound
	}
	return nil
}

func (r *Repository) TransitionState(ctx context.Context, juntaID int64, from entities.JuntaState, to entities.JuntaState) error {
	result := r.DB.WithContext(ctx).
		Model(&juntaModel{}).
		Where("junta_id = ? AND state = ?", juntaID, int(from)).
		Update("state", int(to))
	if result.Error != nil {
		r.logError(ctx, "junta_transition_failed", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing junta from a lost conditional update.
		var count int64
		if err := r.DB.WithContext(ctx).Model(&juntaModel{}).Where("junta_id = ?", juntaID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrJuntaNotFound
		}
		return domainerrors.ErrStateConflict
	}
	return nil
}

func (r *Repository) ForceState(ctx context.Context, juntaID int64, to entities.JuntaState) error {
	result := r.DB.WithContext(ctx).
		Model(&juntaModel{}).
		Where("junta_id = ?", juntaID).
		Update("state", int(to))
	if result.Error != nil {
		r.logError(ctx, "junta_force_state_failed", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrJuntaNotFound
	}
	return nil
}

func (r *Repository) DeleteJunta(ctx context.Context, juntaID int64) error {
	result := r.DB.WithContext(ctx).Where("junta_id = ?", juntaID).Delete(&juntaModel{})
	if result.Error != nil {
		r.logError(ctx, "junta_delete_failed", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrJuntaNotFound
	}
	return nil
}

func (r *Repository) SavePrecinct(ctx context.Context, precinct entities.Precinct) (entities.Precinct, error) {
	model := precinctModel{
		PrecinctID: precinct.PrecinctID,
		Province:   precinct.Province,
		Canton:     precinct.Canton,
		Parish:     precinct.Parish,
	}
	if err := r.DB.WithContext(ctx).Save(&model).Error; err != nil {
		r.logError(ctx, "precinct_save_failed", err)
		return entities.Precinct{}, err
	}
	precinct.PrecinctID = model.PrecinctID
	return precinct, nil
}

func (r *Repository) GetPrecinct(ctx context.Context, precinctID int64) (entities.Precinct, error) {
	var model precinctModel
	err := r.DB.WithContext(ctx).First(&model, "precinct_id = ?", precinctID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Precinct{}, domainerrors.ErrPrecinctNotFound
	}
	if err != nil {
		r.logError(ctx, "precinct_get_failed", err)
		return entities.Precinct{}, err
	}
	return toPrecinct(model), nil
}

func (r *Repository) ListPrecincts(ctx context.Context) ([]entities.Precinct, error) {
	var models []precinctModel
	if err := r.DB.WithContext(ctx).Order("precinct_id ASC").Find(&models).Error; err != nil {
		r.logError(ctx, "precinct_list_failed", err)
		return nil, err
	}
	items := make([]entities.Precinct, 0, len(models))
	for _, model := range models {
		items = append(items, toPrecinct(model))
	}
	return items, nil
}

func (r *Repository) CountJuntasByPrecinct(ctx context.Context, precinctID int64) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&juntaModel{}).
		Where("precinct_id = ?", precinctID).
		Count(&count).Error
	if err != nil {
		r.logError(ctx, "precinct_junta_count_failed", err)
		return 0, err
	}
	return count, nil
}

func (r *Repository) DeletePrecinct(ctx context.Context, precinctID int64) error {
	result := r.DB.WithContext(ctx).Where("precinct_id = ?", precinctID).Delete(&precinctModel{})
	if result.Error != nil {
		r.logError(ctx, "precinct_delete_failed", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPrecinctNotFound
	}
	return nil
}

func (r *Repository) GetVoter(ctx context.Context, cedula string) (ports.VoterProjection, bool, error) {
	type voterRow struct {
		Cedula   string `gorm:"column:cedula"`
		FullName string `gorm:"column:full_name"`
		Email    string `gorm:"column:email"`
		RoleID   int    `gorm:"column:role_id"`
		JuntaID  *int64 `gorm:"column:junta_id"`
	}
	var row voterRow
	err := r.DB.WithContext(ctx).
		Table("voters").
		Select("cedula, full_name, email, role_id, junta_id").
		Where("cedula = ?", strings.TrimSpace(cedula)).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.VoterProjection{}, false, nil
	}
	if err != nil {
		r.logError(ctx, "voter_lookup_failed", err)
		return ports.VoterProjection{}, false, err
	}
	projection := ports.VoterProjection{
		Cedula:   row.Cedula,
		FullName: row.FullName,
		Email:    row.Email,
		RoleID:   row.RoleID,
	}
	if row.JuntaID != nil {
		projection.JuntaID = *row.JuntaID
	}
	return projection, true, nil
}

func (r *Repository) AssignChairRole(ctx context.Context, cedula string, juntaID int64) error {
	result := r.DB.WithContext(ctx).
		Table("voters").
		Where("cedula = ?", strings.TrimSpace(cedula)).
		Updates(map[string]any{
			"role_id":  3,
			"junta_id": juntaID,
		})
	if result.Error != nil {
		r.logError(ctx, "chair_role_assign_failed", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrVoterNotFound
	}
	return nil
}

func (r *Repository) RevertChairRole(ctx context.Context, cedula string) error {
	result := r.DB.WithContext(ctx).
		Table("voters").
		Where("cedula = ?", strings.TrimSpace(cedula)).
		Updates(map[string]any{
			"role_id":  2,
			"junta_id": nil,
		})
	if result.Error != nil {
		r.logError(ctx, "chair_role_revert_failed", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrVoterNotFound
	}
	return nil
}

func (r *Repository) ListChairEligible(ctx context.Context) ([]entities.ChairCandidate, error) {
	type chairRow struct {
		Cedula   string `gorm:"column:cedula"`
		FullName string `gorm:"column:full_name"`
		Email    string `gorm:"column:email"`
	}
	var rows []chairRow
	err := r.DB.WithContext(ctx).
		Table("voters").
		Select("cedula, full_name, email").
		Where("role_id = ? AND junta_id IS NULL AND active = ?", 2, true).
		Order("cedula ASC").
		Scan(&rows).Error
	if err != nil {
		r.logError(ctx, "chair_eligible_list_failed", err)
		return nil, err
	}
	chairs := make([]entities.ChairCandidate, 0, len(rows))
	for _, row := range rows {
		chairs = append(chairs, entities.ChairCandidate{
			Cedula:   row.Cedula,
			FullName: row.FullName,
			Email:    row.Email,
		})
	}
	return chairs, nil
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

func (r *Repository) FindActiveElection(ctx context.Context, now time.Time) (ports.ElectionWindow, bool, error) {
	type electionRow struct {
		ElectionID int64     `gorm:"column:election_id"`
		StartsAt   time.Time `gorm:"column:starts_at"`
		EndsAt     time.Time `gorm:"column:ends_at"`
	}
	var row electionRow
	err := r.DB.WithContext(ctx).
		Table("elections").
		Select("election_id, starts_at, ends_at").
		Where("starts_at <= ? AND ends_at > ?", now, now).
		Order("starts_at ASC").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.ElectionWindow{}, false, nil
	}
	if err != nil {
		r.logError(ctx, "active_election_lookup_failed", err)
		return ports.ElectionWindow{}, false, err
	}
	return ports.ElectionWindow{
		ElectionID: row.ElectionID,
		StartsAt:   row.StartsAt,
		EndsAt:     row.EndsAt,
	}, true, nil
}

func toJuntaModel(junta entities.Junta) juntaModel {
	model := juntaModel{
		JuntaID:    junta.JuntaID,
		MesaNumber: junta.MesaNumber,
		PrecinctID: junta.PrecinctID,
		ElectionID: junta.ElectionID,
		State:      int(junta.State),
	}
	if junta.ChairCedula != "" {
		cedula := junta.ChairCedula
		model.ChairCedula = &cedula
	}
	return model
}

func toJunta(model juntaModel) entities.Junta {
	junta := entities.Junta{
		JuntaID:    model.JuntaID,
		MesaNumber: model.MesaNumber,
		PrecinctID: model.PrecinctID,
		ElectionID: model.ElectionID,
		State:      entities.JuntaState(model.State),
	}
	if model.ChairCedula != nil {
		junta.ChairCedula = *model.ChairCedula
	}
	return junta
}

func toPrecinct(model precinctModel) entities.Precinct {
	return entities.Precinct{
		PrecinctID: model.PrecinctID,
		Province:   model.Province,
		Canton:     model.Canton,
		Parish:     model.Parish,
	}
}

func (r *Repository) logError(ctx context.Context, event string, err error) {
	if r.Logger == nil {
		return
	}
	r.Logger.ErrorContext(ctx, "junta repository error",
		"event", event,
		"module", "electoral-core/junta-service",
		"layer", "adapter",
		"error", err,
	)
}

var _ ports.JuntaRepository = (*Repository)(nil)
var _ ports.PrecinctRepository = (*Repository)(nil)
var _ ports.VoterDirectory = (*Repository)(nil)
var _ ports.CandidateChecker = (*Repository)(nil)
var _ ports.ElectionReader = (*Repository)(nil)

// SystemClock supplies wall time for the active election window check.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

var _ ports.Clock = SystemClock{}
