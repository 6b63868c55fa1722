package queries

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"sufragio/contexts/electoral-core/tally-service/domain/entities"
	domainerrors "sufragio/contexts/electoral-core/tally-service/domain/errors"
	"sufragio/contexts/electoral-core/tally-service/ports"
)

// Display defaults for candidates whose registry record disappeared or who
// run without a list.
const (
	unknownCandidate = "Desconocido"
	independentList  = "Independiente"
)

const defaultCacheTTL = 15 * time.Second

type UseCase struct {
	Results   ports.ResultsRepository
	Juntas    ports.JuntaReader
	Roll      ports.RollReader
	Elections ports.ElectionReader
	Cache     ports.ResultsCache
	CacheTTL  time.Duration
	Logger    *slog.Logger
}

// LiveResults returns the per-candidate standings for an election, percentages
// rounded to two decimals, ordered by votes descending. Ties keep the
// aggregation order so repeated calls return the same ranking.
func (uc UseCase) LiveResults(ctx context.Context, electionID int64) ([]entities.CandidateResult, error) {
	exists, err := uc.Elections.ElectionExists(ctx, electionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domainerrors.ErrElectionNotFound
	}

	if uc.Cache != nil {
		cached, hit, err := uc.Cache.GetLiveResults(ctx, electionID)
		if err != nil {
			uc.logCacheError(ctx, "tally_cache_get_failed", err)
		} else if hit {
			return cached, nil
		}
	}

	rows, err := uc.Results.TallyByCandidate(ctx, electionID)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, row := range rows {
		total += row.Votes
	}
	results := make([]entities.CandidateResult, 0, len(rows))
	for _, row := range rows {
		result := entities.CandidateResult{
			CandidateCedula: row.CandidateCedula,
			CandidateRole:   row.CandidateRole,
			FullName:        row.FullName,
			PhotoURL:        row.PhotoURL,
			ListID:          row.ListID,
			ListName:        row.ListName,
			ListLogo:        row.ListLogo,
			Votes:           row.Votes,
			Percentage:      percentage(row.Votes, total),
		}
		if result.FullName == "" {
			result.FullName = unknownCandidate
		}
		if result.ListName == "" {
			result.ListName = independentList
		}
		results = append(results, result)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Votes > results[j].Votes
	})

	if uc.Cache != nil {
		ttl := uc.CacheTTL
		if ttl <= 0 {
			ttl = defaultCacheTTL
		}
		if err := uc.Cache.SetLiveResults(ctx, electionID, results, ttl); err != nil {
			uc.logCacheError(ctx, "tally_cache_set_failed", err)
		}
	}
	return results, nil
}

// ResultsByJunta breaks down the ballots cast at the junta's mesa per list.
func (uc UseCase) ResultsByJunta(ctx context.Context, juntaID int64) ([]entities.ListResult, error) {
	junta, found, err := uc.Juntas.GetJunta(ctx, juntaID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domainerrors.ErrJuntaNotFound
	}
	rows, err := uc.Results.TallyByMesa(ctx, junta.ElectionID, junta.PrecinctID, junta.MesaNumber)
	if err != nil {
		return nil, err
	}
	return listResults(rows), nil
}

func (uc UseCase) ResultsByList(ctx context.Context, electionID int64) ([]entities.ListResult, error) {
	exists, err := uc.Elections.ElectionExists(ctx, electionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domainerrors.ErrElectionNotFound
	}
	rows, err := uc.Results.TallyByList(ctx, electionID)
	if err != nil {
		return nil, err
	}
	return listResults(rows), nil
}

func (uc UseCase) ResultsByRegion(ctx context.Context, electionID int64, filter ports.RegionFilter) ([]entities.ListResult, error) {
	filter.Province = strings.TrimSpace(filter.Province)
	filter.Canton = strings.TrimSpace(filter.Canton)
	filter.Parish = strings.TrimSpace(filter.Parish)
	if filter.Province == "" {
		return nil, domainerrors.ErrInvalidRegion
	}
	exists, err := uc.Elections.ElectionExists(ctx, electionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domainerrors.ErrElectionNotFound
	}
	rows, err := uc.Results.TallyByRegion(ctx, electionID, filter)
	if err != nil {
		return nil, err
	}
	return listResults(rows), nil
}

// ValidateClosure compares the junta's roll with the ballots already cast.
// The report is advisory: a mismatch never blocks CloseStation.
func (uc UseCase) ValidateClosure(ctx context.Context, juntaID int64) (entities.ClosureReport, error) {
	_, found, err := uc.Juntas.GetJunta(ctx, juntaID)
	if err != nil {
		return entities.ClosureReport{}, err
	}
	if !found {
		return entities.ClosureReport{}, domainerrors.ErrJuntaNotFound
	}
	roll, err := uc.Roll.CountRoll(ctx, juntaID)
	if err != nil {
		return entities.ClosureReport{}, err
	}
	voted, err := uc.Roll.CountVoted(ctx, juntaID)
	if err != nil {
		return entities.ClosureReport{}, err
	}
	return entities.ClosureReport{
		JuntaID:   juntaID,
		TotalRoll: roll,
		VotesCast: voted,
		Pending:   roll - voted,
		Matches:   roll == voted,
	}, nil
}

func listResults(rows []ports.ListTally) []entities.ListResult {
	var total int64
	for _, row := range rows {
		total += row.Votes
	}
	results := make([]entities.ListResult, 0, len(rows))
	for _, row := range rows {
		result := entities.ListResult{
			ListID:     row.ListID,
			ListName:   row.ListName,
			ListLogo:   row.ListLogo,
			Votes:      row.Votes,
			Percentage: percentage(row.Votes, total),
		}
		if result.ListName == "" {
			result.ListName = independentList
		}
		results = append(results, result)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Votes > results[j].Votes
	})
	return results
}

func percentage(votes, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(votes)/float64(total)*10000) / 100
}

func (uc UseCase) logCacheError(ctx context.Context, event string, err error) {
	logger := uc.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.WarnContext(ctx, "results cache degraded",
		"event", event,
		"module", "electoral-core/tally-service",
		"layer", "application",
		"error", err.Error(),
	)
}
