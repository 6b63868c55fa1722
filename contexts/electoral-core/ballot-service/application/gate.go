package application

import (
	"context"

	"sufragio/contexts/electoral-core/ballot-service/domain/entities"
	"sufragio/contexts/electoral-core/ballot-service/ports"
)

// Gate is the ordered eligibility check shared by the CanVote query and the
// CastVote command. Checks short-circuit on the first failed rule; any
// collaborator error propagates so callers deny by default rather than guess.
type Gate struct {
	Voters ports.VoterReader
	Juntas ports.JuntaReader
}

type GateResult struct {
	Decision entities.EligibilityDecision
	Voter    ports.VoterStatus
	Junta    ports.JuntaProjection
}

func (g Gate) Evaluate(ctx context.Context, cedula string) (GateResult, error) {
	voter, found, err := g.Voters.GetVoterStatus(ctx, cedula)
	if err != nil {
		return GateResult{}, err
	}
	if !found {
		return denied(entities.DenialVoterNotFound, 0), nil
	}

	result := GateResult{Voter: voter}
	if voter.HasVoted {
		result.Decision = decision(entities.DenialAlreadyVoted, 0)
		return result, nil
	}
	if voter.JuntaID <= 0 {
		result.Decision = decision(entities.DenialNoJuntaAssigned, 0)
		return result, nil
	}

	junta, found, err := g.Juntas.GetJunta(ctx, voter.JuntaID)
	if err != nil {
		return GateResult{}, err
	}
	if !found {
		// A dangling junta reference denies the same way a closed one does.
		result.Decision = decision(entities.DenialJuntaNotOpen, 0)
		return result, nil
	}
	result.Junta = junta
	if junta.State != entities.JuntaStateOpen {
		result.Decision = decision(entities.DenialJuntaNotOpen, junta.State)
		return result, nil
	}

	result.Decision = entities.EligibilityDecision{Allowed: true}
	return result, nil
}

func decision(reason entities.DenialReason, juntaState int) entities.EligibilityDecision {
	return entities.EligibilityDecision{
		Reason:     reason,
		JuntaState: juntaState,
		Message:    entities.DenialMessage(reason, juntaState),
	}
}

func denied(reason entities.DenialReason, juntaState int) GateResult {
	return GateResult{Decision: decision(reason, juntaState)}
}
