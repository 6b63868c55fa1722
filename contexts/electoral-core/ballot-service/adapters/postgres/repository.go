package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sufragio/contexts/electoral-core/ballot-service/domain/entities"
	domainerrors "sufragio/contexts/electoral-core/ballot-service/domain/errors"
	"sufragio/contexts/electoral-core/ballot-service/ports"
)

type voteModel struct {
	VoteID          string    `gorm:"column:vote_id;primaryKey"`
	CastAt          time.Time `gorm:"column:cast_at"`
	ElectionID      int64     `gorm:"column:election_id"`
	PrecinctID      int64     `gorm:"column:precinct_id"`
	MesaNumber      int       `gorm:"column:mesa_number"`
	ListID          int64     `gorm:"column:list_id"`
	CandidateCedula string    `gorm:"column:candidate_cedula"`
	CandidateRole   string    `gorm:"column:candidate_role"`
}

func (voteModel) TableName() string { return "anonymous_votes" }

type tokenModel struct {
	TokenID     string    `gorm:"column:token_id;primaryKey"`
	VoterCedula string    `gorm:"column:voter_cedula"`
	CodeHash    string    `gorm:"column:code_hash"`
	Valid       bool      `gorm:"column:valid"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	ExpiresAt   time.Time `gorm:"column:expires_at"`
}

func (tokenModel) TableName() string { return "access_tokens" }

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string { return "ballot_outbox" }

type Repository struct {
	DB     *gorm.DB
	Logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	return &Repository{DB: db, Logger: logger}
}

func (r *Repository) GetVoterStatus(ctx context.Context, cedula string) (ports.VoterStatus, bool, error) {
	type voterRow struct {
		Cedula   string `gorm:"column:cedula"`
		Active   bool   `gorm:"column:active"`
		HasVoted bool   `gorm:"column:has_voted"`
		JuntaID  *int64 `gorm:"column:junta_id"`
	}
	var row voterRow
	err := r.DB.WithContext(ctx).
		Table("voters").
		Select("cedula, active, has_voted, junta_id").
		Where("cedula = ?", strings.TrimSpace(cedula)).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.VoterStatus{}, false, nil
	}
	if err != nil {
		r.logError(ctx, "voter_status_lookup_failed", err)
		return ports.VoterStatus{}, false, err
	}
	status := ports.VoterStatus{
		Cedula:   row.Cedula,
		Active:   row.Active,
		HasVoted: row.HasVoted,
	}
	if row.JuntaID != nil {
		status.JuntaID = *row.JuntaID
	}
	return status, true, nil
}

func (r *Repository) GetJunta(ctx context.Context, juntaID int64) (ports.JuntaProjection, bool, error) {
	type juntaRow struct {
		JuntaID    int64 `gorm:"column:junta_id"`
		MesaNumber int   `gorm:"column:mesa_number"`
		PrecinctID int64 `gorm:"column:precinct_id"`
		ElectionID int64 `gorm:"column:election_id"`
		State      int   `gorm:"column:state"`
	}
	var row juntaRow
	err := r.DB.WithContext(ctx).
		Table("juntas").
		Select("junta_id, mesa_number, precinct_id, election_id, state").
		Where("junta_id = ?", juntaID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.JuntaProjection{}, false, nil
	}
	if err != nil {
		r.logError(ctx, "junta_lookup_failed", err)
		return ports.JuntaProjection{}, false, err
	}
	return ports.JuntaProjection{
		JuntaID:    row.JuntaID,
		MesaNumber: row.MesaNumber,
		PrecinctID: row.PrecinctID,
		ElectionID: row.ElectionID,
		State:      row.State,
	}, true, nil
}

func (r *Repository) GetElectionWindow(ctx context.Context, electionID int64) (ports.ElectionWindow, bool, error) {
	type electionRow struct {
		ElectionID int64     `gorm:"column:election_id"`
		StartsAt   time.Time `gorm:"column:starts_at"`
		EndsAt     time.Time `gorm:"column:ends_at"`
	}
	var row electionRow
	err := r.DB.WithContext(ctx).
		Table("elections").
		Select("election_id, starts_at, ends_at").
		Where("election_id = ?", electionID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.ElectionWindow{}, false, nil
	}
	if err != nil {
		r.logError(ctx, "election_window_lookup_failed", err)
		return ports.ElectionWindow{}, false, err
	}
	return ports.ElectionWindow{
		ElectionID: row.ElectionID,
		StartsAt:   row.StartsAt,
		EndsAt:     row.EndsAt,
	}, true, nil
}

// RecordBallot commits the ballot insert, the conditional HasVoted flip, and
// the outbox append in one transaction. The flip updates only rows where
// has_voted is still false; zero rows affected means a concurrent cast won the
// race and the whole transaction rolls back.
func (r *Repository) RecordBallot(ctx context.Context, ballot entities.AnonymousVote, voterCedula string, event ports.EventEnvelope) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Table("voters").
			Where("cedula = ? AND has_voted = ?", strings.TrimSpace(voterCedula), false).
			Update("has_voted", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrAlreadyVoted
		}
		if err := tx.Create(&voteModel{
			VoteID:          ballot.VoteID,
			CastAt:          ballot.CastAt,
			ElectionID:      ballot.ElectionID,
			PrecinctID:      ballot.PrecinctID,
			MesaNumber:      ballot.MesaNumber,
			ListID:          ballot.ListID,
			CandidateCedula: ballot.CandidateCedula,
			CandidateRole:   ballot.CandidateRole,
		}).Error; err != nil {
			return err
		}
		return tx.Create(&outboxModel{
			OutboxID:     uuid.NewString(),
			EventType:    event.EventType,
			PartitionKey: event.PartitionKey,
			Payload:      payload,
			CreatedAt:    event.OccurredAt,
		}).Error
	})
	if err != nil && !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		r.logError(ctx, "ballot_record_tx_failed", err)
	}
	return err
}

func (r *Repository) MarkVoted(ctx context.Context, cedula string) (bool, error) {
	result := r.DB.WithContext(ctx).
		Table("voters").
		Where("cedula = ? AND has_voted = ?", strings.TrimSpace(cedula), false).
		Update("has_voted", true)
	if result.Error != nil {
		r.logError(ctx, "mark_voted_failed", result.Error)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) HasVoted(ctx context.Context, cedula string) (bool, error) {
	type voterRow struct {
		HasVoted bool `gorm:"column:has_voted"`
	}
	var row voterRow
	err := r.DB.WithContext(ctx).
		Table("voters").
		Select("has_voted").
		Where("cedula = ?", strings.TrimSpace(cedula)).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, domainerrors.ErrVoterNotFound
	}
	if err != nil {
		r.logError(ctx, "has_voted_lookup_failed", err)
		return false, err
	}
	return row.HasVoted, nil
}

func (r *Repository) CountVotesByElection(ctx context.Context, electionID int64) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&voteModel{}).
		Where("election_id = ?", electionID).
		Count(&count).Error
	if err != nil {
		r.logError(ctx, "vote_count_failed", err)
		return 0, err
	}
	return count, nil
}

func (r *Repository) SaveToken(ctx context.Context, token entities.AccessToken) (entities.AccessToken, error) {
	model := tokenModel{
		TokenID:     token.TokenID,
		VoterCedula: token.VoterCedula,
		CodeHash:    token.CodeHash,
		Valid:       token.Valid,
		CreatedAt:   token.CreatedAt,
		ExpiresAt:   token.ExpiresAt,
	}
	if err := r.DB.WithContext(ctx).Create(&model).Error; err != nil {
		r.logError(ctx, "token_save_failed", err)
		return entities.AccessToken{}, err
	}
	return token, nil
}

func (r *Repository) ListValidTokens(ctx context.Context, cedula string, now time.Time) ([]entities.AccessToken, error) {
	var models []tokenModel
	err := r.DB.WithContext(ctx).
		Where("voter_cedula = ? AND valid = ? AND expires_at > ?", strings.TrimSpace(cedula), true, now).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		r.logError(ctx, "token_list_failed", err)
		return nil, err
	}
	tokens := make([]entities.AccessToken, 0, len(models))
	for _, model := range models {
		tokens = append(tokens, entities.AccessToken{
			TokenID:     model.TokenID,
			VoterCedula: model.VoterCedula,
			CodeHash:    model.CodeHash,
			Valid:       model.Valid,
			CreatedAt:   model.CreatedAt,
			ExpiresAt:   model.ExpiresAt,
		})
	}
	return tokens, nil
}

func (r *Repository) InvalidateToken(ctx context.Context, tokenID string) error {
	result := r.DB.WithContext(ctx).
		Model(&tokenModel{}).
		Where("token_id = ?", tokenID).
		Update("valid", false)
	if result.Error != nil {
		r.logError(ctx, "token_invalidate_failed", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrTokenNotFound
	}
	return nil
}

func (r *Repository) InvalidateTokensForVoter(ctx context.Context, cedula string) error {
	err := r.DB.WithContext(ctx).
		Model(&tokenModel{}).
		Where("voter_cedula = ? AND valid = ?", strings.TrimSpace(cedula), true).
		Update("valid", false).Error
	if err != nil {
		r.logError(ctx, "token_invalidate_all_failed", err)
	}
	return err
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var models []outboxModel
	err := r.DB.WithContext(ctx).
		Where("published_at IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		r.logError(ctx, "outbox_list_failed", err)
		return nil, err
	}
	messages := make([]ports.OutboxMessage, 0, len(models))
	for _, model := range models {
		messages = append(messages, ports.OutboxMessage{
			OutboxID:     model.OutboxID,
			EventType:    model.EventType,
			PartitionKey: model.PartitionKey,
			Payload:      model.Payload,
			CreatedAt:    model.CreatedAt,
		})
	}
	return messages, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	err := r.DB.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Update("published_at", publishedAt).Error
	if err != nil {
		r.logError(ctx, "outbox_mark_published_failed", err)
	}
	return err
}

func (r *Repository) logError(ctx context.Context, event string, err error) {
	if r.Logger == nil {
		return
	}
	r.Logger.ErrorContext(ctx, "ballot repository error",
		"event", event,
		"module", "electoral-core/ballot-service",
		"layer", "adapter",
		"error", err,
	)
}

var _ ports.VoterReader = (*Repository)(nil)
var _ ports.JuntaReader = (*Repository)(nil)
var _ ports.ElectionReader = (*Repository)(nil)
var _ ports.BallotRepository = (*Repository)(nil)
var _ ports.TokenRepository = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)

// UUIDGenerator creates identifiers for ballots, tokens and outbox events.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.IDGenerator = UUIDGenerator{}

// SystemClock supplies wall time for ballot timestamps and token expiry.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

var _ ports.Clock = SystemClock{}
