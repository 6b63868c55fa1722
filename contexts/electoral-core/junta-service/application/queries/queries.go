package queries

import (
	"context"
	"log/slog"

	application "sufragio/contexts/electoral-core/junta-service/application"
	"sufragio/contexts/electoral-core/junta-service/domain/entities"
	"sufragio/contexts/electoral-core/junta-service/ports"
)

// Placeholder copy shown when a junta has no chair or the precinct record is
// gone. Matches the admin frontend wording.
const (
	unassignedChair = "Sin asignar"
	missingAddress  = "Sin dirección"
)

type UseCase struct {
	Juntas    ports.JuntaRepository
	Precincts ports.PrecinctRepository
	Voters    ports.VoterDirectory
	Logger    *slog.Logger
}

func (uc UseCase) GetJunta(ctx context.Context, juntaID int64) (entities.Junta, error) {
	return uc.Juntas.GetJunta(ctx, juntaID)
}

func (uc UseCase) ListJuntas(ctx context.Context) ([]entities.JuntaDetail, error) {
	details, err := uc.Juntas.ListJuntaDetails(ctx)
	if err != nil {
		uc.logQueryError(ctx, "junta_list_failed", err)
		return nil, err
	}
	return fillDefaults(details), nil
}

func (uc UseCase) JuntasByElection(ctx context.Context, electionID int64) ([]entities.JuntaDetail, error) {
	details, err := uc.Juntas.ListJuntasByElection(ctx, electionID)
	if err != nil {
		uc.logQueryError(ctx, "junta_list_by_election_failed", err)
		return nil, err
	}
	return fillDefaults(details), nil
}

// PossibleChairs lists plain voters without a junta binding. Registration as a
// candidate disqualifies at assignment time, not here, so the admin screen can
// still show the full roster.
func (uc UseCase) PossibleChairs(ctx context.Context) ([]entities.ChairCandidate, error) {
	chairs, err := uc.Voters.ListChairEligible(ctx)
	if err != nil {
		uc.logQueryError(ctx, "possible_chairs_failed", err)
		return nil, err
	}
	return chairs, nil
}

func (uc UseCase) GetPrecinct(ctx context.Context, precinctID int64) (entities.Precinct, error) {
	return uc.Precincts.GetPrecinct(ctx, precinctID)
}

func (uc UseCase) ListPrecincts(ctx context.Context) ([]entities.Precinct, error) {
	return uc.Precincts.ListPrecincts(ctx)
}

func fillDefaults(details []entities.JuntaDetail) []entities.JuntaDetail {
	for i := range details {
		if details[i].ChairName == "" {
			details[i].ChairName = unassignedChair
		}
		if details[i].Province == "" {
			details[i].Province = missingAddress
		}
	}
	return details
}

func (uc UseCase) logQueryError(ctx context.Context, event string, err error) {
	application.ResolveLogger(uc.Logger).WarnContext(ctx, "junta query failed",
		"event", event,
		"module", "electoral-core/junta-service",
		"layer", "application",
		"error", err.Error(),
	)
}
