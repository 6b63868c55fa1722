package postgresadapter

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"sufragio/contexts/electoral-core/tally-service/ports"
)

type Repository struct {
	DB     *gorm.DB
	Logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	return &Repository{DB: db, Logger: logger}
}

type candidateTallyRow struct {
	CandidateCedula string `gorm:"column:candidate_cedula"`
	CandidateRole   string `gorm:"column:candidate_role"`
	ListID          int64  `gorm:"column:list_id"`
	Votes           int64  `gorm:"column:votes"`
	FullName        string `gorm:"column:full_name"`
	PhotoURL        string `gorm:"column:photo_url"`
	ListName        string `gorm:"column:list_name"`
	ListLogo        string `gorm:"column:list_logo"`
}

func (r *Repository) TallyByCandidate(ctx context.Context, electionID int64) ([]ports.CandidateTally, error) {
	var rows []candidateTallyRow
	err := r.DB.WithContext(ctx).
		Table("anonymous_votes").
		Select(`anonymous_votes.candidate_cedula,
			MIN(anonymous_votes.candidate_role) AS candidate_role,
			MIN(anonymous_votes.list_id) AS list_id,
			COUNT(*) AS votes,
			MIN(voters.full_name) AS full_name,
			MIN(voters.photo_url) AS photo_url,
			MIN(lists.name) AS list_name,
			MIN(lists.logo_url) AS list_logo`).
		Joins("LEFT JOIN voters ON voters.cedula = anonymous_votes.candidate_cedula").
		Joins("LEFT JOIN lists ON lists.list_id = anonymous_votes.list_id").
		Where("anonymous_votes.election_id = ?", electionID).
		Group("anonymous_votes.candidate_cedula").
		Order("votes DESC, anonymous_votes.candidate_cedula ASC").
		Scan(&rows).Error
	if err != nil {
		r.logError(ctx, "tally_by_candidate_failed", err)
		return nil, err
	}
	tallies := make([]ports.CandidateTally, 0, len(rows))
	for _, row := range rows {
		tallies = append(tallies, ports.CandidateTally{
			CandidateCedula: row.CandidateCedula,
			CandidateRole:   row.CandidateRole,
			ListID:          row.ListID,
			Votes:           row.Votes,
			FullName:        row.FullName,
			PhotoURL:        row.PhotoURL,
			ListName:        row.ListName,
			ListLogo:        row.ListLogo,
		})
	}
	return tallies, nil
}

type listTallyRow struct {
	ListID   int64  `gorm:"column:list_id"`
	ListName string `gorm:"column:list_name"`
	ListLogo string `gorm:"column:list_logo"`
	Votes    int64  `gorm:"column:votes"`
}

func (r *Repository) TallyByList(ctx context.Context, electionID int64) ([]ports.ListTally, error) {
	return r.tallyLists(ctx, r.listQuery(ctx).Where("anonymous_votes.election_id = ?", electionID))
}

func (r *Repository) TallyByMesa(ctx context.Context, electionID int64, precinctID int64, mesaNumber int) ([]ports.ListTally, error) {
	return r.tallyLists(ctx, r.listQuery(ctx).
		Where("anonymous_votes.election_id = ? AND anonymous_votes.precinct_id = ? AND anonymous_votes.mesa_number = ?",
			electionID, precinctID, mesaNumber))
}

func (r *Repository) TallyByRegion(ctx context.Context, electionID int64, filter ports.RegionFilter) ([]ports.ListTally, error) {
	query := r.listQuery(ctx).
		Joins("JOIN precincts ON precincts.precinct_id = anonymous_votes.precinct_id").
		Where("anonymous_votes.election_id = ? AND precincts.province = ?", electionID, filter.Province)
	if filter.Canton != "" {
		query = query.Where("precincts.canton = ?", filter.Canton)
	}
	if filter.Parish != "" {
		query = query.Where("precincts.parish = ?", filter.Parish)
	}
	return r.tallyLists(ctx, query)
}

func (r *Repository) listQuery(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table("anonymous_votes").
		Select(`anonymous_votes.list_id,
			MIN(lists.name) AS list_name,
			MIN(lists.logo_url) AS list_logo,
			COUNT(*) AS votes`).
		Joins("LEFT JOIN lists ON lists.list_id = anonymous_votes.list_id").
		Group("anonymous_votes.list_id").
		Order("votes DESC, anonymous_votes.list_id ASC")
}

func (r *Repository) tallyLists(ctx context.Context, query *gorm.DB) ([]ports.ListTally, error) {
	var rows []listTallyRow
	if err := query.Scan(&rows).Error; err != nil {
		r.logError(ctx, "tally_by_list_failed", err)
		return nil, err
	}
	tallies := make([]ports.ListTally, 0, len(rows))
	for _, row := range rows {
		tallies = append(tallies, ports.ListTally{
			ListID:   row.ListID,
			ListName: row.ListName,
			ListLogo: row.ListLogo,
			Votes:    row.Votes,
		})
	}
	return tallies, nil
}

func (r *Repository) GetJunta(ctx context.Context, juntaID int64) (ports.JuntaProjection, bool, error) {
	type juntaRow struct {
		JuntaID    int64 `gorm:"column:junta_id"`
		MesaNumber int   `gorm:"column:mesa_number"`
		PrecinctID int64 `gorm:"column:precinct_id"`
		ElectionID int64 `gorm:"column:election_id"`
	}
	var row juntaRow
	err := r.DB.WithContext(ctx).
		Table("juntas").
		Select("junta_id, mesa_number, precinct_id, election_id").
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
	}, true, nil
}

func (r *Repository) CountRoll(ctx context.Context, juntaID int64) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Table("voters").
		Where("junta_id = ?", juntaID).
		Count(&count).Error
	if err != nil {
		r.logError(ctx, "roll_count_failed", err)
		return 0, err
	}
	return count, nil
}

func (r *Repository) CountVoted(ctx context.Context, juntaID int64) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Table("voters").
		Where("junta_id = ? AND has_voted = ?", juntaID, true).
		Count(&count).Error
	if err != nil {
		r.logError(ctx, "voted_count_failed", err)
		return 0, err
	}
	return count, nil
}

func (r *Repository) ElectionExists(ctx context.Context, electionID int64) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Table("elections").
		Where("election_id = ?", electionID).
		Count(&count).Error
	if err != nil {
		r.logError(ctx, "election_exists_failed", err)
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) logError(ctx context.Context, event string, err error) {
	if r.Logger == nil {
		return
	}
	r.Logger.ErrorContext(ctx, "tally repository error",
		"event", event,
		"module", "electoral-core/tally-service",
		"layer", "adapter",
		"error", err,
	)
}

var _ ports.ResultsRepository = (*Repository)(nil)
var _ ports.JuntaReader = (*Repository)(nil)
var _ ports.RollReader = (*Repository)(nil)
var _ ports.ElectionReader = (*Repository)(nil)
