package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"sufragio/contexts/electoral-core/election-service/adapters/memory"
	"sufragio/contexts/electoral-core/election-service/domain/entities"
	domainerrors "sufragio/contexts/electoral-core/election-service/domain/errors"
	"sufragio/contexts/electoral-core/election-service/ports"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func newTestService(t *testing.T) (Service, *memory.Store, *fixedClock) {
	t.Helper()
	store := memory.NewStore()
	clock := &fixedClock{now: time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)}
	service := Service{
		Elections:  store,
		Lists:      store,
		Candidates: store,
		Voters:     store,
		Clock:      clock,
	}
	return service, store, clock
}

func TestCreateElectionStartsInConfiguration(t *testing.T) {
	service, _, clock := newTestService(t)

	election, err := service.CreateElection(context.Background(), CreateElectionInput{
		Title:    "Consejo Estudiantil 2026",
		StartsAt: clock.now.Add(time.Hour),
		EndsAt:   clock.now.Add(3 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateElection: %v", err)
	}
	if election.Status != entities.ElectionStatusConfiguration {
		t.Fatalf("status = %s, want %s", election.Status, entities.ElectionStatusConfiguration)
	}
	if election.ElectionID == 0 {
		t.Fatal("expected assigned election id")
	}
}

func TestCreateElectionRejectsInvertedDates(t *testing.T) {
	service, _, clock := newTestService(t)

	_, err := service.CreateElection(context.Background(), CreateElectionInput{
		Title:    "Invertida",
		StartsAt: clock.now.Add(3 * time.Hour),
		EndsAt:   clock.now.Add(time.Hour),
	})
	if !errors.Is(err, domainerrors.ErrInvalidDateRange) {
		t.Fatalf("err = %v, want ErrInvalidDateRange", err)
	}
}

func TestGetElectionMaterializesStatusAcrossSchedule(t *testing.T) {
	service, store, clock := newTestService(t)

	created, err := service.CreateElection(context.Background(), CreateElectionInput{
		Title:    "Jornada Completa",
		StartsAt: clock.now.Add(time.Hour),
		EndsAt:   clock.now.Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateElection: %v", err)
	}

	cases := []struct {
		name string
		at   time.Time
		want entities.ElectionStatus
	}{
		{"before start", clock.now, entities.ElectionStatusConfiguration},
		{"mid window", clock.now.Add(90 * time.Minute), entities.ElectionStatusActive},
		{"after end", clock.now.Add(3 * time.Hour), entities.ElectionStatusFinished},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clock.now = tc.at
			election, err := service.GetElection(context.Background(), created.ElectionID)
			if err != nil {
				t.Fatalf("GetElection: %v", err)
			}
			if election.Status != tc.want {
				t.Fatalf("status = %s, want %s", election.Status, tc.want)
			}
			// The derived status must also be persisted, not just returned.
			stored, err := store.GetElection(context.Background(), created.ElectionID)
			if err != nil {
				t.Fatalf("store GetElection: %v", err)
			}
			if stored.Status != tc.want {
				t.Fatalf("persisted status = %s, want %s", stored.Status, tc.want)
			}
		})
	}
}

func TestRegisterCandidateGuards(t *testing.T) {
	service, store, clock := newTestService(t)
	ctx := context.Background()

	election, err := service.CreateElection(ctx, CreateElectionInput{
		Title:    "Guardias",
		StartsAt: clock.now.Add(time.Hour),
		EndsAt:   clock.now.Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateElection: %v", err)
	}
	list, err := service.CreateList(ctx, CreateListInput{ElectionID: election.ElectionID, Name: "Lista A"})
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}

	store.SetVoter(ports.VoterProjection{Cedula: "0102030405", FullName: "Ana Mera", RoleID: 2})
	store.SetVoter(ports.VoterProjection{Cedula: "0911111111", FullName: "Luis Pozo", RoleID: 3})

	t.Run("unknown voter", func(t *testing.T) {
		_, err := service.RegisterCandidate(ctx, RegisterCandidateInput{
			Cedula: "9999999999", ListID: list.ListID, ElectionID: election.ElectionID, RoleSought: "Presidente",
		})
		if !errors.Is(err, domainerrors.ErrVoterNotFound) {
			t.Fatalf("err = %v, want ErrVoterNotFound", err)
		}
	})

	t.Run("chair cannot run", func(t *testing.T) {
		_, err := service.RegisterCandidate(ctx, RegisterCandidateInput{
			Cedula: "0911111111", ListID: list.ListID, ElectionID: election.ElectionID, RoleSought: "Presidente",
		})
		if !errors.Is(err, domainerrors.ErrVoterRoleConflict) {
			t.Fatalf("err = %v, want ErrVoterRoleConflict", err)
		}
	})

	t.Run("successful registration", func(t *testing.T) {
		candidate, err := service.RegisterCandidate(ctx, RegisterCandidateInput{
			Cedula: "0102030405", ListID: list.ListID, ElectionID: election.ElectionID, RoleSought: "Presidente",
		})
		if err != nil {
			t.Fatalf("RegisterCandidate: %v", err)
		}
		if candidate.CandidateID == 0 {
			t.Fatal("expected assigned candidate id")
		}
	})

	t.Run("duplicate candidacy", func(t *testing.T) {
		_, err := service.RegisterCandidate(ctx, RegisterCandidateInput{
			Cedula: "0102030405", ListID: list.ListID, ElectionID: election.ElectionID, RoleSought: "Vicepresidente",
		})
		if !errors.Is(err, domainerrors.ErrDuplicateCandidacy) {
			t.Fatalf("err = %v, want ErrDuplicateCandidacy", err)
		}
	})

	t.Run("closed outside configuration", func(t *testing.T) {
		clock.now = clock.now.Add(90 * time.Minute)
		store.SetVoter(ports.VoterProjection{Cedula: "0202020202", FullName: "Eva Ruiz", RoleID: 2})
		_, err := service.RegisterCandidate(ctx, RegisterCandidateInput{
			Cedula: "0202020202", ListID: list.ListID, ElectionID: election.ElectionID, RoleSought: "Presidente",
		})
		if !errors.Is(err, domainerrors.ErrNotInConfiguration) {
			t.Fatalf("err = %v, want ErrNotInConfiguration", err)
		}
	})
}

func TestRegisterCandidateListMustBelongToElection(t *testing.T) {
	service, store, clock := newTestService(t)
	ctx := context.Background()

	first, _ := service.CreateElection(ctx, CreateElectionInput{
		Title: "Primera", StartsAt: clock.now.Add(time.Hour), EndsAt: clock.now.Add(2 * time.Hour),
	})
	second, _ := service.CreateElection(ctx, CreateElectionInput{
		Title: "Segunda", StartsAt: clock.now.Add(time.Hour), EndsAt: clock.now.Add(2 * time.Hour),
	})
	foreignList, _ := service.CreateList(ctx, CreateListInput{ElectionID: second.ElectionID, Name: "Ajena"})
	store.SetVoter(ports.VoterProjection{Cedula: "0102030405", FullName: "Ana Mera", RoleID: 2})

	_, err := service.RegisterCandidate(ctx, RegisterCandidateInput{
		Cedula: "0102030405", ListID: foreignList.ListID, ElectionID: first.ElectionID, RoleSought: "Presidente",
	})
	if !errors.Is(err, domainerrors.ErrListElectionMismatch) {
		t.Fatalf("err = %v, want ErrListElectionMismatch", err)
	}
}

func TestDeleteListBlockedByCandidates(t *testing.T) {
	service, store, clock := newTestService(t)
	ctx := context.Background()

	election, _ := service.CreateElection(ctx, CreateElectionInput{
		Title: "Con Candidatos", StartsAt: clock.now.Add(time.Hour), EndsAt: clock.now.Add(2 * time.Hour),
	})
	list, _ := service.CreateList(ctx, CreateListInput{ElectionID: election.ElectionID, Name: "Lista B"})
	store.SetVoter(ports.VoterProjection{Cedula: "0102030405", FullName: "Ana Mera", RoleID: 2})
	if _, err := service.RegisterCandidate(ctx, RegisterCandidateInput{
		Cedula: "0102030405", ListID: list.ListID, ElectionID: election.ElectionID, RoleSought: "Presidente",
	}); err != nil {
		t.Fatalf("RegisterCandidate: %v", err)
	}

	if err := service.DeleteList(ctx, list.ListID); !errors.Is(err, domainerrors.ErrListHasCandidates) {
		t.Fatalf("err = %v, want ErrListHasCandidates", err)
	}
}

func TestDeriveStatusBoundaries(t *testing.T) {
	start := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	if got := entities.DeriveStatus(start, end, start.Add(-time.Second)); got != entities.ElectionStatusConfiguration {
		t.Fatalf("before start = %s", got)
	}
	if got := entities.DeriveStatus(start, end, start); got != entities.ElectionStatusActive {
		t.Fatalf("at start = %s", got)
	}
	if got := entities.DeriveStatus(start, end, end); got != entities.ElectionStatusFinished {
		t.Fatalf("at end = %s", got)
	}
}
