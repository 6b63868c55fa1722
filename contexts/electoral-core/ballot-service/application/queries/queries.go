package queries

import (
	"context"
	"log/slog"
	"strings"

	application "sufragio/contexts/electoral-core/ballot-service/application"
	"sufragio/contexts/electoral-core/ballot-service/domain/entities"
	domainerrors "sufragio/contexts/electoral-core/ballot-service/domain/errors"
	"sufragio/contexts/electoral-core/ballot-service/ports"
)

type UseCase struct {
	Voters  ports.VoterReader
	Juntas  ports.JuntaReader
	Ballots ports.BallotRepository
	Logger  *slog.Logger
}

// CanVote runs the eligibility gate without side effects. Collaborator
// failures surface as errors, which callers must treat as a denial.
func (uc UseCase) CanVote(ctx context.Context, cedula string) (entities.EligibilityDecision, error) {
	gate := application.Gate{Voters: uc.Voters, Juntas: uc.Juntas}
	result, err := gate.Evaluate(ctx, strings.TrimSpace(cedula))
	if err != nil {
		application.ResolveLogger(uc.Logger).WarnContext(ctx, "eligibility check failed",
			"event", "ballot_eligibility_check_failed",
			"module", "electoral-core/ballot-service",
			"layer", "application",
			"error", err.Error(),
		)
		return entities.EligibilityDecision{}, err
	}
	return result.Decision, nil
}

func (uc UseCase) HasVoted(ctx context.Context, cedula string) (bool, error) {
	normalized := strings.TrimSpace(cedula)
	_, found, err := uc.Voters.GetVoterStatus(ctx, normalized)
	if err != nil {
		return false, err
	}
	if !found {
		return false, domainerrors.ErrVoterNotFound
	}
	return uc.Ballots.HasVoted(ctx, normalized)
}
