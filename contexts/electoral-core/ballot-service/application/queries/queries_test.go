package queries

import (
	"context"
	"testing"

	"sufragio/contexts/electoral-core/ballot-service/adapters/memory"
	"sufragio/contexts/electoral-core/ballot-service/domain/entities"
	"sufragio/contexts/electoral-core/ballot-service/ports"
)

func TestCanVoteDecisions(t *testing.T) {
	store := memory.NewStore()
	store.SetJunta(ports.JuntaProjection{JuntaID: 1, State: entities.JuntaStateCreated})
	store.SetJunta(ports.JuntaProjection{JuntaID: 2, State: entities.JuntaStateOpen})
	store.SetJunta(ports.JuntaProjection{JuntaID: 3, State: entities.JuntaStatePendingReview})
	store.SetVoter(ports.VoterStatus{Cedula: "0101010101", Active: true, JuntaID: 2})
	store.SetVoter(ports.VoterStatus{Cedula: "0202020202", Active: true, HasVoted: true, JuntaID: 2})
	store.SetVoter(ports.VoterStatus{Cedula: "0303030303", Active: true})
	store.SetVoter(ports.VoterStatus{Cedula: "0404040404", Active: true, JuntaID: 1})
	store.SetVoter(ports.VoterStatus{Cedula: "0505050505", Active: true, JuntaID: 3})

	uc := UseCase{Voters: store, Juntas: store, Ballots: store}
	ctx := context.Background()

	cases := []struct {
		name       string
		cedula     string
		allowed    bool
		reason     entities.DenialReason
		juntaState int
	}{
		{"open junta allows", "0101010101", true, entities.DenialNone, 0},
		{"unknown voter", "9999999999", false, entities.DenialVoterNotFound, 0},
		{"already voted", "0202020202", false, entities.DenialAlreadyVoted, 0},
		{"no junta assigned", "0303030303", false, entities.DenialNoJuntaAssigned, 0},
		{"junta not yet opened", "0404040404", false, entities.DenialJuntaNotOpen, entities.JuntaStateCreated},
		{"junta pending review", "0505050505", false, entities.DenialJuntaNotOpen, entities.JuntaStatePendingReview},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision, err := uc.CanVote(ctx, tc.cedula)
			if err != nil {
				t.Fatalf("CanVote: %v", err)
			}
			if decision.Allowed != tc.allowed {
				t.Fatalf("allowed = %v", decision.Allowed)
			}
			if decision.Reason != tc.reason {
				t.Fatalf("reason = %s, want %s", decision.Reason, tc.reason)
			}
			if decision.JuntaState != tc.juntaState {
				t.Fatalf("junta state = %d, want %d", decision.JuntaState, tc.juntaState)
			}
			if !decision.Allowed && decision.Message == "" {
				t.Fatal("denial without message")
			}
		})
	}
}

// A junta that opens after a denial admits the same voter on the next check.
func TestCanVoteFollowsJuntaLifecycle(t *testing.T) {
	store := memory.NewStore()
	store.SetJunta(ports.JuntaProjection{JuntaID: 1, State: entities.JuntaStateCreated})
	store.SetVoter(ports.VoterStatus{Cedula: "0101010101", Active: true, JuntaID: 1})

	uc := UseCase{Voters: store, Juntas: store, Ballots: store}
	ctx := context.Background()

	decision, err := uc.CanVote(ctx, "0101010101")
	if err != nil {
		t.Fatalf("CanVote: %v", err)
	}
	if decision.Allowed || decision.Reason != entities.DenialJuntaNotOpen {
		t.Fatalf("decision = %+v", decision)
	}

	store.SetJunta(ports.JuntaProjection{JuntaID: 1, State: entities.JuntaStateOpen})
	decision, err = uc.CanVote(ctx, "0101010101")
	if err != nil {
		t.Fatalf("CanVote after open: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("decision = %+v", decision)
	}
}
