package queries

import (
	"context"
	"testing"

	"sufragio/contexts/electoral-core/junta-service/adapters/memory"
	"sufragio/contexts/electoral-core/junta-service/domain/entities"
	"sufragio/contexts/electoral-core/junta-service/ports"
)

func TestListJuntasFillsPlaceholders(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	// One junta with no chair and a dangling precinct reference.
	if _, err := store.SaveJuntas(ctx, []entities.Junta{{
		MesaNumber: 1,
		PrecinctID: 99,
		ElectionID: 7,
		State:      entities.JuntaCreated,
	}}); err != nil {
		t.Fatalf("SaveJuntas: %v", err)
	}

	uc := UseCase{Juntas: store, Precincts: store, Voters: store}
	details, err := uc.ListJuntas(ctx)
	if err != nil {
		t.Fatalf("ListJuntas: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("len = %d", len(details))
	}
	if details[0].ChairName != "Sin asignar" {
		t.Fatalf("chair name = %q", details[0].ChairName)
	}
	if details[0].Province != "Sin dirección" {
		t.Fatalf("province = %q", details[0].Province)
	}
}

func TestPossibleChairsExcludesBoundVoters(t *testing.T) {
	store := memory.NewStore()
	store.SetVoter(ports.VoterProjection{Cedula: "0101010101", FullName: "Libre Uno", RoleID: 2})
	store.SetVoter(ports.VoterProjection{Cedula: "0202020202", FullName: "Ya Jefe", RoleID: 3, JuntaID: 4})
	store.SetVoter(ports.VoterProjection{Cedula: "0303030303", FullName: "Admin", RoleID: 1})

	uc := UseCase{Juntas: store, Precincts: store, Voters: store}
	chairs, err := uc.PossibleChairs(context.Background())
	if err != nil {
		t.Fatalf("PossibleChairs: %v", err)
	}
	if len(chairs) != 1 || chairs[0].Cedula != "0101010101" {
		t.Fatalf("chairs = %+v", chairs)
	}
}
