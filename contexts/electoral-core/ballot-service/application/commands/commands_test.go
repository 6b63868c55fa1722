package commands

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"sufragio/contexts/electoral-core/ballot-service/adapters/memory"
	"sufragio/contexts/electoral-core/ballot-service/domain/entities"
	domainerrors "sufragio/contexts/electoral-core/ballot-service/domain/errors"
	"sufragio/contexts/electoral-core/ballot-service/ports"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func newTestUseCase(t *testing.T) (UseCase, *memory.Store, *fixedClock) {
	t.Helper()
	store := memory.NewStore()
	clock := &fixedClock{now: time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)}
	store.SetElectionWindow(ports.ElectionWindow{
		ElectionID: 7,
		StartsAt:   clock.now.Add(-time.Hour),
		EndsAt:     clock.now.Add(time.Hour),
	})
	store.SetJunta(ports.JuntaProjection{
		JuntaID:    4,
		MesaNumber: 12,
		PrecinctID: 3,
		ElectionID: 7,
		State:      entities.JuntaStateOpen,
	})
	uc := UseCase{
		Voters:    store,
		Juntas:    store,
		Elections: store,
		Ballots:   store,
		Tokens:    store,
		Clock:     clock,
		IDGen:     store,
	}
	return uc, store, clock
}

func validCast(cedula string) CastVoteCommand {
	return CastVoteCommand{
		VoterCedula:     cedula,
		ListID:          2,
		CandidateCedula: "0807060504",
		CandidateRole:   "Presidente",
	}
}

func TestCastVoteRecordsAnonymousBallot(t *testing.T) {
	uc, store, clock := newTestUseCase(t)
	store.SetVoter(ports.VoterStatus{Cedula: "0102030405", Active: true, JuntaID: 4})

	ballot, err := uc.CastVote(context.Background(), validCast("0102030405"))
	if err != nil {
		t.Fatalf("CastVote: %v", err)
	}
	if ballot.VoteID == "" {
		t.Fatal("expected vote id")
	}
	if ballot.ElectionID != 7 || ballot.PrecinctID != 3 || ballot.MesaNumber != 12 {
		t.Fatalf("geography = %d/%d/%d", ballot.ElectionID, ballot.PrecinctID, ballot.MesaNumber)
	}
	if !ballot.CastAt.Equal(clock.now) {
		t.Fatalf("cast at = %s", ballot.CastAt)
	}

	hasVoted, err := store.HasVoted(context.Background(), "0102030405")
	if err != nil {
		t.Fatalf("HasVoted: %v", err)
	}
	if !hasVoted {
		t.Fatal("voter not marked as voted")
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListPendingOutbox: %v", err)
	}
	if len(pending) != 1 || pending[0].EventType != EventBallotRecorded {
		t.Fatalf("outbox = %+v", pending)
	}
}

func TestCastVoteDeniesPerGateOrder(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	ctx := context.Background()

	t.Run("unknown voter", func(t *testing.T) {
		_, err := uc.CastVote(ctx, validCast("9999999999"))
		if !errors.Is(err, domainerrors.ErrVoterNotFound) {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("already voted", func(t *testing.T) {
		store.SetVoter(ports.VoterStatus{Cedula: "0201010101", Active: true, HasVoted: true, JuntaID: 4})
		_, err := uc.CastVote(ctx, validCast("0201010101"))
		if !errors.Is(err, domainerrors.ErrAlreadyVoted) {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("no junta assigned", func(t *testing.T) {
		store.SetVoter(ports.VoterStatus{Cedula: "0303030303", Active: true})
		_, err := uc.CastVote(ctx, validCast("0303030303"))
		if !errors.Is(err, domainerrors.ErrNoJuntaAssigned) {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("junta not open", func(t *testing.T) {
		store.SetJunta(ports.JuntaProjection{JuntaID: 5, MesaNumber: 1, PrecinctID: 3, ElectionID: 7, State: entities.JuntaStateCreated})
		store.SetVoter(ports.VoterStatus{Cedula: "0404040404", Active: true, JuntaID: 5})
		_, err := uc.CastVote(ctx, validCast("0404040404"))
		if !errors.Is(err, domainerrors.ErrJuntaNotOpen) {
			t.Fatalf("err = %v", err)
		}
	})
}

func TestCastVoteRequiresElectionWindow(t *testing.T) {
	uc, store, clock := newTestUseCase(t)
	store.SetVoter(ports.VoterStatus{Cedula: "0102030405", Active: true, JuntaID: 4})

	clock.now = clock.now.Add(2 * time.Hour)
	_, err := uc.CastVote(context.Background(), validCast("0102030405"))
	if !errors.Is(err, domainerrors.ErrElectionInactive) {
		t.Fatalf("err = %v, want ErrElectionInactive", err)
	}
}

// Concurrent casts for the same voter must produce exactly one ballot no
// matter how the goroutines interleave.
func TestCastVoteConcurrentSameVoterSingleBallot(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	store.SetVoter(ports.VoterStatus{Cedula: "0102030405", Active: true, JuntaID: 4})

	const attempts = 32
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.CastVote(context.Background(), validCast("0102030405"))
		}(i)
	}
	wg.Wait()

	var successes int
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		if !errors.Is(err, domainerrors.ErrAlreadyVoted) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("successes = %d, want exactly 1", successes)
	}
	if got := len(store.Ballots()); got != 1 {
		t.Fatalf("ballots recorded = %d, want 1", got)
	}
}

func TestCastVoteBallotCarriesNoVoterIdentity(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	store.SetVoter(ports.VoterStatus{Cedula: "0102030405", Active: true, JuntaID: 4})

	if _, err := uc.CastVote(context.Background(), validCast("0102030405")); err != nil {
		t.Fatalf("CastVote: %v", err)
	}
	for _, ballot := range store.Ballots() {
		if ballot.CandidateCedula == "0102030405" {
			t.Fatal("candidate cedula collided with voter cedula in fixture")
		}
	}
	// The ballot row only has candidate and geography fields; this assertion
	// documents that nothing voter-shaped leaks through the payload either.
	pending, _ := store.ListPendingOutbox(context.Background(), 1)
	if len(pending) != 1 {
		t.Fatalf("outbox rows = %d", len(pending))
	}
	if strings.Contains(string(pending[0].Payload), "0102030405") {
		t.Fatal("outbox payload references the voter cedula")
	}
}

func TestMarkVotedIsIdempotent(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	store.SetVoter(ports.VoterStatus{Cedula: "0102030405", Active: true, JuntaID: 4})
	ctx := context.Background()

	flipped, err := uc.MarkVoted(ctx, "0102030405")
	if err != nil {
		t.Fatalf("MarkVoted: %v", err)
	}
	if !flipped {
		t.Fatal("first mark should flip")
	}
	flipped, err = uc.MarkVoted(ctx, "0102030405")
	if err != nil {
		t.Fatalf("second MarkVoted: %v", err)
	}
	if flipped {
		t.Fatal("second mark should be a no-op")
	}
}

func TestIssueAccessToken(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	store.SetVoter(ports.VoterStatus{Cedula: "0102030405", Active: true, JuntaID: 4})
	ctx := context.Background()

	first, err := uc.IssueAccessToken(ctx, "0102030405")
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if len(first.Code) != 6 {
		t.Fatalf("code = %q, want 6 digits", first.Code)
	}
	if bcrypt.CompareHashAndPassword([]byte(first.Token.CodeHash), []byte(first.Code)) != nil {
		t.Fatal("stored hash does not match issued code")
	}

	second, err := uc.IssueAccessToken(ctx, "0102030405")
	if err != nil {
		t.Fatalf("second IssueAccessToken: %v", err)
	}

	// Reissuing invalidates the first token.
	if _, err := uc.RedeemAccessToken(ctx, "0102030405", first.Code); !errors.Is(err, domainerrors.ErrTokenNotFound) {
		t.Fatalf("stale code redeemed, err = %v", err)
	}
	token, err := uc.RedeemAccessToken(ctx, "0102030405", second.Code)
	if err != nil {
		t.Fatalf("RedeemAccessToken: %v", err)
	}
	if token.TokenID != second.Token.TokenID {
		t.Fatalf("redeemed token = %s", token.TokenID)
	}
	// One-time use.
	if _, err := uc.RedeemAccessToken(ctx, "0102030405", second.Code); !errors.Is(err, domainerrors.ErrTokenNotFound) {
		t.Fatalf("code redeemed twice, err = %v", err)
	}
}

func TestIssueAccessTokenRefusedAfterVote(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	store.SetVoter(ports.VoterStatus{Cedula: "0102030405", Active: true, HasVoted: true, JuntaID: 4})

	_, err := uc.IssueAccessToken(context.Background(), "0102030405")
	if !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		t.Fatalf("err = %v, want ErrAlreadyVoted", err)
	}
}
