package application_test

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"sufragio/contexts/identity-access/voter-registry/adapters/memory"
	"sufragio/contexts/identity-access/voter-registry/application"
	"sufragio/contexts/identity-access/voter-registry/domain/entities"
	domainerrors "sufragio/contexts/identity-access/voter-registry/domain/errors"
)

func newService(t *testing.T) (application.Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	service := application.Service{
		Voters:     store,
		Juntas:     store,
		Candidates: store,
		Clock:      store,
	}
	return service, store
}

func TestCreateVoterForcesFlags(t *testing.T) {
	service, _ := newService(t)

	voter, err := service.CreateVoter(context.Background(), application.CreateVoterInput{
		Cedula:   "1712345678",
		FullName: "Ana Torres",
		Email:    "ana@example.ec",
		Password: "secret",
		RoleID:   entities.RoleVoter,
	})
	if err != nil {
		t.Fatalf("CreateVoter: %v", err)
	}
	if !voter.Active {
		t.Fatal("new voter should start active")
	}
	if voter.HasVoted {
		t.Fatal("new voter should start with has_voted unset")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(voter.PasswordHash), []byte("secret")); err != nil {
		t.Fatalf("password hash does not verify: %v", err)
	}
}

func TestCreateVoterValidation(t *testing.T) {
	service, store := newService(t)
	store.SetCandidate("1799999999")

	cases := []struct {
		name  string
		input application.CreateVoterInput
		want  error
	}{
		{
			name: "short cedula",
			input: application.CreateVoterInput{
				Cedula: "12345", FullName: "X", Email: "x@x", Password: "p", RoleID: entities.RoleVoter,
			},
			want: domainerrors.ErrInvalidCedula,
		},
		{
			name: "non numeric cedula",
			input: application.CreateVoterInput{
				Cedula: "17123A5678", FullName: "X", Email: "x@x", Password: "p", RoleID: entities.RoleVoter,
			},
			want: domainerrors.ErrInvalidCedula,
		},
		{
			name: "missing name",
			input: application.CreateVoterInput{
				Cedula: "1712345678", Email: "x@x", Password: "p", RoleID: entities.RoleVoter,
			},
			want: domainerrors.ErrInvalidVoterInput,
		},
		{
			name: "unknown role",
			input: application.CreateVoterInput{
				Cedula: "1712345678", FullName: "X", Email: "x@x", Password: "p", RoleID: 9,
			},
			want: domainerrors.ErrInvalidRole,
		},
		{
			name: "candidate cannot be chair",
			input: application.CreateVoterInput{
				Cedula: "1799999999", FullName: "X", Email: "x@x", Password: "p", RoleID: entities.RoleChair,
			},
			want: domainerrors.ErrCandidateRole,
		},
		{
			name: "unknown junta",
			input: application.CreateVoterInput{
				Cedula: "1712345678", FullName: "X", Email: "x@x", Password: "p", RoleID: entities.RoleVoter, JuntaID: 44,
			},
			want: domainerrors.ErrJuntaNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := service.CreateVoter(context.Background(), tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCreateVoterDuplicateCedula(t *testing.T) {
	service, _ := newService(t)

	input := application.CreateVoterInput{
		Cedula:   "1712345678",
		FullName: "Ana Torres",
		Email:    "ana@example.ec",
		Password: "secret",
		RoleID:   entities.RoleVoter,
	}
	if _, err := service.CreateVoter(context.Background(), input); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := service.CreateVoter(context.Background(), input); !errors.Is(err, domainerrors.ErrDuplicateCedula) {
		t.Fatalf("got %v, want ErrDuplicateCedula", err)
	}
}

func TestUpdateVoterNeverTouchesHasVoted(t *testing.T) {
	service, store := newService(t)

	if _, err := service.CreateVoter(context.Background(), application.CreateVoterInput{
		Cedula:   "1712345678",
		FullName: "Ana Torres",
		Email:    "ana@example.ec",
		Password: "secret",
		RoleID:   entities.RoleVoter,
	}); err != nil {
		t.Fatalf("CreateVoter: %v", err)
	}
	store.MarkVoted("1712345678")

	updated, err := service.UpdateVoter(context.Background(), application.UpdateVoterInput{
		Cedula:   "1712345678",
		FullName: "Ana T. Morales",
		Email:    "ana.morales@example.ec",
		RoleID:   entities.RoleVoter,
		Active:   false,
	})
	if err != nil {
		t.Fatalf("UpdateVoter: %v", err)
	}
	if !updated.HasVoted {
		t.Fatal("profile edits must not clear the has_voted flag")
	}
	if updated.Active {
		t.Fatal("active flag should follow the update")
	}
	if updated.FullName != "Ana T. Morales" {
		t.Fatalf("full name not updated: %q", updated.FullName)
	}
}

func TestUpdateVoterRoleGuards(t *testing.T) {
	service, store := newService(t)
	store.SetCandidate("1712345678")

	if _, err := service.CreateVoter(context.Background(), application.CreateVoterInput{
		Cedula:   "1712345678",
		FullName: "Luis Vega",
		Email:    "luis@example.ec",
		Password: "secret",
		RoleID:   entities.RoleVoter,
	}); err != nil {
		t.Fatalf("CreateVoter: %v", err)
	}

	_, err := service.UpdateVoter(context.Background(), application.UpdateVoterInput{
		Cedula:   "1712345678",
		FullName: "Luis Vega",
		Email:    "luis@example.ec",
		RoleID:   entities.RoleChair,
		Active:   true,
	})
	if !errors.Is(err, domainerrors.ErrCandidateRole) {
		t.Fatalf("got %v, want ErrCandidateRole", err)
	}

	// Keeping the same role skips the candidate check.
	if _, err := service.UpdateVoter(context.Background(), application.UpdateVoterInput{
		Cedula:   "1712345678",
		FullName: "Luis Vega",
		Email:    "luis@example.ec",
		RoleID:   entities.RoleVoter,
		Active:   true,
	}); err != nil {
		t.Fatalf("same-role update: %v", err)
	}
}

func TestUpdateVoterJuntaAssignment(t *testing.T) {
	service, store := newService(t)
	store.SetJunta(7)

	if _, err := service.CreateVoter(context.Background(), application.CreateVoterInput{
		Cedula:   "1712345678",
		FullName: "Ana Torres",
		Email:    "ana@example.ec",
		Password: "secret",
		RoleID:   entities.RoleVoter,
	}); err != nil {
		t.Fatalf("CreateVoter: %v", err)
	}

	_, err := service.UpdateVoter(context.Background(), application.UpdateVoterInput{
		Cedula:   "1712345678",
		FullName: "Ana Torres",
		Email:    "ana@example.ec",
		RoleID:   entities.RoleVoter,
		Active:   true,
		JuntaID:  99,
	})
	if !errors.Is(err, domainerrors.ErrJuntaNotFound) {
		t.Fatalf("got %v, want ErrJuntaNotFound", err)
	}

	updated, err := service.UpdateVoter(context.Background(), application.UpdateVoterInput{
		Cedula:   "1712345678",
		FullName: "Ana Torres",
		Email:    "ana@example.ec",
		RoleID:   entities.RoleVoter,
		Active:   true,
		JuntaID:  7,
	})
	if err != nil {
		t.Fatalf("UpdateVoter: %v", err)
	}
	if updated.JuntaID != 7 {
		t.Fatalf("junta id = %d, want 7", updated.JuntaID)
	}
}

func TestListVotersByJunta(t *testing.T) {
	service, store := newService(t)
	store.SetJunta(1)
	store.SetJunta(2)

	seeds := []struct {
		cedula string
		junta  int64
	}{
		{"1710000001", 1},
		{"1710000002", 2},
		{"1710000003", 1},
	}
	for _, seed := range seeds {
		if _, err := service.CreateVoter(context.Background(), application.CreateVoterInput{
			Cedula:   seed.cedula,
			FullName: "Voter " + seed.cedula,
			Email:    seed.cedula + "@example.ec",
			Password: "secret",
			RoleID:   entities.RoleVoter,
			JuntaID:  seed.junta,
		}); err != nil {
			t.Fatalf("seed %s: %v", seed.cedula, err)
		}
	}

	voters, err := service.ListVotersByJunta(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListVotersByJunta: %v", err)
	}
	if len(voters) != 2 {
		t.Fatalf("got %d voters, want 2", len(voters))
	}
	if voters[0].Cedula != "1710000001" || voters[1].Cedula != "1710000003" {
		t.Fatalf("unexpected order: %s, %s", voters[0].Cedula, voters[1].Cedula)
	}
}

func TestDeleteVoter(t *testing.T) {
	service, _ := newService(t)

	if err := service.DeleteVoter(context.Background(), "1712345678"); !errors.Is(err, domainerrors.ErrVoterNotFound) {
		t.Fatalf("got %v, want ErrVoterNotFound", err)
	}

	if _, err := service.CreateVoter(context.Background(), application.CreateVoterInput{
		Cedula:   "1712345678",
		FullName: "Ana Torres",
		Email:    "ana@example.ec",
		Password: "secret",
		RoleID:   entities.RoleVoter,
	}); err != nil {
		t.Fatalf("CreateVoter: %v", err)
	}
	if err := service.DeleteVoter(context.Background(), "1712345678"); err != nil {
		t.Fatalf("DeleteVoter: %v", err)
	}
	if _, err := service.GetVoter(context.Background(), "1712345678"); !errors.Is(err, domainerrors.ErrVoterNotFound) {
		t.Fatalf("got %v, want ErrVoterNotFound after delete", err)
	}
}
