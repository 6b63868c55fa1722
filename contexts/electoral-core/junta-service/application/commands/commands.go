package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "sufragio/contexts/electoral-core/junta-service/application"
	"sufragio/contexts/electoral-core/junta-service/domain/entities"
	domainerrors "sufragio/contexts/electoral-core/junta-service/domain/errors"
	"sufragio/contexts/electoral-core/junta-service/ports"
)

const maxBatchSize = 50

type UseCase struct {
	Juntas     ports.JuntaRepository
	Precincts  ports.PrecinctRepository
	Voters     ports.VoterDirectory
	Candidates ports.CandidateChecker
	Elections  ports.ElectionReader
	Clock      ports.Clock
	Logger     *slog.Logger
}

type CreateBatchCommand struct {
	PrecinctID int64
	Count      int
}

// CreateBatch opens a block of juntas for a precinct under the election
// currently in its voting window. Mesa numbers continue from the count already
// registered for that precinct and election.
func (uc UseCase) CreateBatch(ctx context.Context, cmd CreateBatchCommand) ([]entities.Junta, error) {
	logger := application.ResolveLogger(uc.Logger)
	if cmd.Count < 1 || cmd.Count > maxBatchSize {
		return nil, domainerrors.ErrInvalidBatchInput
	}
	if _, err := uc.Precincts.GetPrecinct(ctx, cmd.PrecinctID); err != nil {
		return nil, err
	}

	window, found, err := uc.Elections.FindActiveElection(ctx, uc.now())
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domainerrors.ErrNoActiveElection
	}

	existing, err := uc.Juntas.CountJuntas(ctx, cmd.PrecinctID, window.ElectionID)
	if err != nil {
		return nil, err
	}

	batch := make([]entities.Junta, 0, cmd.Count)
	for i := 0; i < cmd.Count; i++ {
		batch = append(batch, entities.Junta{
			MesaNumber: int(existing) + i + 1,
			PrecinctID: cmd.PrecinctID,
			ElectionID: window.ElectionID,
			State:      entities.JuntaCreated,
		})
	}
	saved, err := uc.Juntas.SaveJuntas(ctx, batch)
	if err != nil {
		return nil, err
	}
	logger.Info("junta batch created",
		"event", "junta_batch_created",
		"module", "electoral-core/junta-service",
		"layer", "application",
		"precinct_id", cmd.PrecinctID,
		"election_id", window.ElectionID,
		"count", len(saved),
		"first_mesa", int(existing)+1,
	)
	return saved, nil
}

type AssignChairCommand struct {
	JuntaID     int64
	VoterCedula string
}

// AssignChair binds a voter as the junta chair. A voter already registered as
// a candidate in any election is refused. If the junta is still CREATED the
// assignment also opens it.
func (uc UseCase) AssignChair(ctx context.Context, cmd AssignChairCommand) (entities.Junta, error) {
	logger := application.ResolveLogger(uc.Logger)
	cedula := strings.TrimSpace(cmd.VoterCedula)

	junta, err := uc.Juntas.GetJunta(ctx, cmd.JuntaID)
	if err != nil {
		return entities.Junta{}, err
	}
	_, found, err := uc.Voters.GetVoter(ctx, cedula)
	if err != nil {
		return entities.Junta{}, err
	}
	if !found {
		return entities.Junta{}, domainerrors.ErrVoterNotFound
	}
	isCandidate, err := uc.Candidates.IsCandidate(ctx, cedula)
	if err != nil {
		return entities.Junta{}, err
	}
	if isCandidate {
		return entities.Junta{}, domainerrors.ErrChairIsCandidate
	}

	nextState := junta.State
	if junta.State == entities.JuntaCreated {
		nextState = entities.JuntaOpen
	}
	if err := uc.Juntas.SetChair(ctx, junta.JuntaID, cedula, nextState); err != nil {
		return entities.Junta{}, err
	}
	if err := uc.Voters.AssignChairRole(ctx, cedula, junta.JuntaID); err != nil {
		logger.Error("chair role assignment failed after junta update",
			"event", "junta_chair_role_failed",
			"module", "electoral-core/junta-service",
			"layer", "application",
			"junta_id", junta.JuntaID,
			"error", err.Error(),
		)
		return entities.Junta{}, err
	}

	junta.ChairCedula = cedula
	junta.State = nextState
	logger.Info("junta chair assigned",
		"event", "junta_chair_assigned",
		"module", "electoral-core/junta-service",
		"layer", "application",
		"junta_id", junta.JuntaID,
		"state", junta.State.String(),
	)
	return junta, nil
}

// OpenDay is the explicit chair-triggered open. Opening an already OPEN junta
// succeeds without effect; any later state is refused.
func (uc UseCase) OpenDay(ctx context.Context, juntaID int64) (entities.Junta, error) {
	junta, err := uc.Juntas.GetJunta(ctx, juntaID)
	if err != nil {
		return entities.Junta{}, err
	}
	switch junta.State {
	case entities.JuntaOpen:
		return junta, nil
	case entities.JuntaCreated:
		if err := uc.Juntas.TransitionState(ctx, juntaID, entities.JuntaCreated, entities.JuntaOpen); err != nil {
			return entities.Junta{}, err
		}
		junta.State = entities.JuntaOpen
		uc.logTransition(ctx, junta, entities.JuntaCreated)
		return junta, nil
	default:
		return entities.Junta{}, fmt.Errorf("%w: current state %s", domainerrors.ErrJuntaNotCreated, junta.State)
	}
}

// CloseStation moves an OPEN junta to PENDING_REVIEW. Any other state is
// refused with the current state in the message so the chair can tell an
// unopened mesa from an already closed one.
func (uc UseCase) CloseStation(ctx context.Context, juntaID int64) (entities.Junta, error) {
	junta, err := uc.Juntas.GetJunta(ctx, juntaID)
	if err != nil {
		return entities.Junta{}, err
	}
	if junta.State != entities.JuntaOpen {
		return entities.Junta{}, fmt.Errorf("%w: current state %s", domainerrors.ErrJuntaNotOpen, junta.State)
	}
	if err := uc.Juntas.TransitionState(ctx, juntaID, entities.JuntaOpen, entities.JuntaPendingReview); err != nil {
		return entities.Junta{}, err
	}
	junta.State = entities.JuntaPendingReview
	uc.logTransition(ctx, junta, entities.JuntaOpen)
	return junta, nil
}

// ApproveJunta folds the junta into the official count. Approving an already
// APPROVED junta is a no-op.
func (uc UseCase) ApproveJunta(ctx context.Context, juntaID int64) (entities.Junta, error) {
	junta, err := uc.Juntas.GetJunta(ctx, juntaID)
	if err != nil {
		return entities.Junta{}, err
	}
	if junta.State == entities.JuntaApproved {
		return junta, nil
	}
	previous := junta.State
	if err := uc.Juntas.ForceState(ctx, juntaID, entities.JuntaApproved); err != nil {
		return entities.Junta{}, err
	}
	junta.State = entities.JuntaApproved
	uc.logTransition(ctx, junta, previous)
	return junta, nil
}

// RemoveJunta deletes the record and, when a chair was assigned, reverts that
// voter back to a plain voter.
func (uc UseCase) RemoveJunta(ctx context.Context, juntaID int64) error {
	logger := application.ResolveLogger(uc.Logger)
	junta, err := uc.Juntas.GetJunta(ctx, juntaID)
	if err != nil {
		return err
	}
	if junta.ChairCedula != "" {
		if err := uc.Voters.RevertChairRole(ctx, junta.ChairCedula); err != nil {
			return err
		}
	}
	if err := uc.Juntas.DeleteJunta(ctx, juntaID); err != nil {
		return err
	}
	logger.Info("junta removed",
		"event", "junta_removed",
		"module", "electoral-core/junta-service",
		"layer", "application",
		"junta_id", juntaID,
		"had_chair", junta.ChairCedula != "",
	)
	return nil
}

type CreatePrecinctCommand struct {
	Province string
	Canton   string
	Parish   string
}

func (uc UseCase) CreatePrecinct(ctx context.Context, cmd CreatePrecinctCommand) (entities.Precinct, error) {
	province := strings.TrimSpace(cmd.Province)
	canton := strings.TrimSpace(cmd.Canton)
	parish := strings.TrimSpace(cmd.Parish)
	if province == "" || canton == "" || parish == "" {
		return entities.Precinct{}, domainerrors.ErrInvalidPrecinctInput
	}
	return uc.Precincts.SavePrecinct(ctx, entities.Precinct{
		Province: province,
		Canton:   canton,
		Parish:   parish,
	})
}

func (uc UseCase) DeletePrecinct(ctx context.Context, precinctID int64) error {
	if _, err := uc.Precincts.GetPrecinct(ctx, precinctID); err != nil {
		return err
	}
	count, err := uc.Precincts.CountJuntasByPrecinct(ctx, precinctID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domainerrors.ErrPrecinctHasJuntas
	}
	return uc.Precincts.DeletePrecinct(ctx, precinctID)
}

func (uc UseCase) logTransition(ctx context.Context, junta entities.Junta, from entities.JuntaState) {
	application.ResolveLogger(uc.Logger).InfoContext(ctx, "junta state transition",
		"event", "junta_state_transition",
		"module", "electoral-core/junta-service",
		"layer", "application",
		"junta_id", junta.JuntaID,
		"from", from.String(),
		"to", junta.State.String(),
	)
}

func (uc UseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
