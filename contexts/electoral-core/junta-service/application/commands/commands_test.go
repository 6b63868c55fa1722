package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"sufragio/contexts/electoral-core/junta-service/adapters/memory"
	"sufragio/contexts/electoral-core/junta-service/domain/entities"
	domainerrors "sufragio/contexts/electoral-core/junta-service/domain/errors"
	"sufragio/contexts/electoral-core/junta-service/ports"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func newTestUseCase(t *testing.T) (UseCase, *memory.Store, *fixedClock) {
	t.Helper()
	store := memory.NewStore()
	clock := &fixedClock{now: time.Date(2026, 5, 10, 10, 0, 0, 0, time.UTC)}
	store.SetElectionWindow(ports.ElectionWindow{
		ElectionID: 7,
		StartsAt:   clock.now.Add(-time.Hour),
		EndsAt:     clock.now.Add(time.Hour),
	})
	uc := UseCase{
		Juntas:     store,
		Precincts:  store,
		Voters:     store,
		Candidates: store,
		Elections:  store,
		Clock:      clock,
	}
	return uc, store, clock
}

func seedPrecinct(t *testing.T, uc UseCase) entities.Precinct {
	t.Helper()
	precinct, err := uc.CreatePrecinct(context.Background(), CreatePrecinctCommand{
		Province: "Pichincha", Canton: "Quito", Parish: "Iñaquito",
	})
	if err != nil {
		t.Fatalf("CreatePrecinct: %v", err)
	}
	return precinct
}

func TestCreateBatchNumbersContinuePerPrecinct(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	ctx := context.Background()
	precinct := seedPrecinct(t, uc)

	first, err := uc.CreateBatch(ctx, CreateBatchCommand{PrecinctID: precinct.PrecinctID, Count: 3})
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	second, err := uc.CreateBatch(ctx, CreateBatchCommand{PrecinctID: precinct.PrecinctID, Count: 2})
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	wantFirst := []int{1, 2, 3}
	for i, junta := range first {
		if junta.MesaNumber != wantFirst[i] {
			t.Fatalf("first batch mesa[%d] = %d, want %d", i, junta.MesaNumber, wantFirst[i])
		}
		if junta.State != entities.JuntaCreated {
			t.Fatalf("new junta state = %s", junta.State)
		}
	}
	wantSecond := []int{4, 5}
	for i, junta := range second {
		if junta.MesaNumber != wantSecond[i] {
			t.Fatalf("second batch mesa[%d] = %d, want %d", i, junta.MesaNumber, wantSecond[i])
		}
	}
}

func TestCreateBatchRequiresActiveElection(t *testing.T) {
	uc, _, clock := newTestUseCase(t)
	precinct := seedPrecinct(t, uc)

	clock.now = clock.now.Add(5 * time.Hour)
	_, err := uc.CreateBatch(context.Background(), CreateBatchCommand{PrecinctID: precinct.PrecinctID, Count: 1})
	if !errors.Is(err, domainerrors.ErrNoActiveElection) {
		t.Fatalf("err = %v, want ErrNoActiveElection", err)
	}
}

func TestAssignChairOpensCreatedJunta(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	ctx := context.Background()
	precinct := seedPrecinct(t, uc)
	batch, _ := uc.CreateBatch(ctx, CreateBatchCommand{PrecinctID: precinct.PrecinctID, Count: 1})
	store.SetVoter(ports.VoterProjection{Cedula: "0102030405", FullName: "Rosa Vera", RoleID: 2})

	junta, err := uc.AssignChair(ctx, AssignChairCommand{JuntaID: batch[0].JuntaID, VoterCedula: "0102030405"})
	if err != nil {
		t.Fatalf("AssignChair: %v", err)
	}
	if junta.State != entities.JuntaOpen {
		t.Fatalf("state = %s, want OPEN", junta.State)
	}
	if junta.ChairCedula != "0102030405" {
		t.Fatalf("chair = %q", junta.ChairCedula)
	}

	voter, _, err := store.GetVoter(ctx, "0102030405")
	if err != nil {
		t.Fatalf("GetVoter: %v", err)
	}
	if voter.RoleID != 3 || voter.JuntaID != junta.JuntaID {
		t.Fatalf("voter role/junta = %d/%d", voter.RoleID, voter.JuntaID)
	}
}

func TestAssignChairRejectsCandidates(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	ctx := context.Background()
	precinct := seedPrecinct(t, uc)
	batch, _ := uc.CreateBatch(ctx, CreateBatchCommand{PrecinctID: precinct.PrecinctID, Count: 1})
	store.SetVoter(ports.VoterProjection{Cedula: "0909090909", FullName: "Pedro León", RoleID: 2})
	store.SetCandidate("0909090909")

	_, err := uc.AssignChair(ctx, AssignChairCommand{JuntaID: batch[0].JuntaID, VoterCedula: "0909090909"})
	if !errors.Is(err, domainerrors.ErrChairIsCandidate) {
		t.Fatalf("err = %v, want ErrChairIsCandidate", err)
	}
}

func TestLifecycleTransitions(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	ctx := context.Background()
	precinct := seedPrecinct(t, uc)
	batch, _ := uc.CreateBatch(ctx, CreateBatchCommand{PrecinctID: precinct.PrecinctID, Count: 1})
	juntaID := batch[0].JuntaID

	t.Run("close before open fails with current state", func(t *testing.T) {
		_, err := uc.CloseStation(ctx, juntaID)
		if !errors.Is(err, domainerrors.ErrJuntaNotOpen) {
			t.Fatalf("err = %v, want ErrJuntaNotOpen", err)
		}
	})

	t.Run("open day advances created junta", func(t *testing.T) {
		junta, err := uc.OpenDay(ctx, juntaID)
		if err != nil {
			t.Fatalf("OpenDay: %v", err)
		}
		if junta.State != entities.JuntaOpen {
			t.Fatalf("state = %s", junta.State)
		}
	})

	t.Run("open day is idempotent while open", func(t *testing.T) {
		junta, err := uc.OpenDay(ctx, juntaID)
		if err != nil {
			t.Fatalf("OpenDay: %v", err)
		}
		if junta.State != entities.JuntaOpen {
			t.Fatalf("state = %s", junta.State)
		}
	})

	t.Run("close moves to pending review", func(t *testing.T) {
		junta, err := uc.CloseStation(ctx, juntaID)
		if err != nil {
			t.Fatalf("CloseStation: %v", err)
		}
		if junta.State != entities.JuntaPendingReview {
			t.Fatalf("state = %s", junta.State)
		}
	})

	t.Run("open day refused after close", func(t *testing.T) {
		_, err := uc.OpenDay(ctx, juntaID)
		if !errors.Is(err, domainerrors.ErrJuntaNotCreated) {
			t.Fatalf("err = %v, want ErrJuntaNotCreated", err)
		}
	})

	t.Run("approve is idempotent", func(t *testing.T) {
		junta, err := uc.ApproveJunta(ctx, juntaID)
		if err != nil {
			t.Fatalf("ApproveJunta: %v", err)
		}
		if junta.State != entities.JuntaApproved {
			t.Fatalf("state = %s", junta.State)
		}
		again, err := uc.ApproveJunta(ctx, juntaID)
		if err != nil {
			t.Fatalf("second ApproveJunta: %v", err)
		}
		if again.State != entities.JuntaApproved {
			t.Fatalf("state = %s", again.State)
		}
	})

	stored, err := store.GetJunta(ctx, juntaID)
	if err != nil {
		t.Fatalf("GetJunta: %v", err)
	}
	if stored.State != entities.JuntaApproved {
		t.Fatalf("persisted state = %s", stored.State)
	}
}

func TestRemoveJuntaRevertsChairRole(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	ctx := context.Background()
	precinct := seedPrecinct(t, uc)
	batch, _ := uc.CreateBatch(ctx, CreateBatchCommand{PrecinctID: precinct.PrecinctID, Count: 1})
	store.SetVoter(ports.VoterProjection{Cedula: "0102030405", FullName: "Rosa Vera", RoleID: 2})
	if _, err := uc.AssignChair(ctx, AssignChairCommand{JuntaID: batch[0].JuntaID, VoterCedula: "0102030405"}); err != nil {
		t.Fatalf("AssignChair: %v", err)
	}

	if err := uc.RemoveJunta(ctx, batch[0].JuntaID); err != nil {
		t.Fatalf("RemoveJunta: %v", err)
	}

	voter, _, err := store.GetVoter(ctx, "0102030405")
	if err != nil {
		t.Fatalf("GetVoter: %v", err)
	}
	if voter.RoleID != 2 || voter.JuntaID != 0 {
		t.Fatalf("voter role/junta after removal = %d/%d", voter.RoleID, voter.JuntaID)
	}
	if _, err := store.GetJunta(ctx, batch[0].JuntaID); !errors.Is(err, domainerrors.ErrJuntaNotFound) {
		t.Fatalf("junta still present, err = %v", err)
	}
}

func TestDeletePrecinctBlockedByJuntas(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	ctx := context.Background()
	precinct := seedPrecinct(t, uc)
	if _, err := uc.CreateBatch(ctx, CreateBatchCommand{PrecinctID: precinct.PrecinctID, Count: 1}); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	if err := uc.DeletePrecinct(ctx, precinct.PrecinctID); !errors.Is(err, domainerrors.ErrPrecinctHasJuntas) {
		t.Fatalf("err = %v, want ErrPrecinctHasJuntas", err)
	}
}

func TestTransitionTableOnlyAdvancesOneStep(t *testing.T) {
	valid := []struct{ from, to entities.JuntaState }{
		{entities.JuntaCreated, entities.JuntaOpen},
		{entities.JuntaOpen, entities.JuntaPendingReview},
		{entities.JuntaPendingReview, entities.JuntaApproved},
	}
	for _, tc := range valid {
		if !entities.CanTransition(tc.from, tc.to) {
			t.Fatalf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}
	invalid := []struct{ from, to entities.JuntaState }{
		{entities.JuntaCreated, entities.JuntaPendingReview},
		{entities.JuntaOpen, entities.JuntaCreated},
		{entities.JuntaApproved, entities.JuntaOpen},
		{entities.JuntaApproved, entities.JuntaApproved},
	}
	for _, tc := range invalid {
		if entities.CanTransition(tc.from, tc.to) {
			t.Fatalf("expected %s -> %s to be refused", tc.from, tc.to)
		}
	}
}
