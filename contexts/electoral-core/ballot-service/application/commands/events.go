package commands

import (
	"context"
	"encoding/json"
	"time"

	"sufragio/contexts/electoral-core/ballot-service/domain/entities"
	"sufragio/contexts/electoral-core/ballot-service/ports"
)

const (
	EventBallotRecorded = "ballot.recorded"
	sourceService       = "sufragio-api"
	schemaVersion       = 1
)

// BallotRecordedPayload is the anonymized event body. It mirrors the ballot
// row and, like it, carries no voter identity.
type BallotRecordedPayload struct {
	VoteID          string    `json:"vote_id"`
	CastAt          time.Time `json:"cast_at"`
	ElectionID      int64     `json:"election_id"`
	PrecinctID      int64     `json:"precinct_id"`
	MesaNumber      int       `json:"mesa_number"`
	ListID          int64     `json:"list_id"`
	CandidateCedula string    `json:"candidate_cedula"`
	CandidateRole   string    `json:"candidate_role"`
}

func (uc UseCase) ballotRecordedEnvelope(ctx context.Context, ballot entities.AnonymousVote) (ports.EventEnvelope, error) {
	payload, err := json.Marshal(BallotRecordedPayload{
		VoteID:          ballot.VoteID,
		CastAt:          ballot.CastAt,
		ElectionID:      ballot.ElectionID,
		PrecinctID:      ballot.PrecinctID,
		MesaNumber:      ballot.MesaNumber,
		ListID:          ballot.ListID,
		CandidateCedula: ballot.CandidateCedula,
		CandidateRole:   ballot.CandidateRole,
	})
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:       eventID,
		EventType:     EventBallotRecorded,
		OccurredAt:    ballot.CastAt,
		SourceService: sourceService,
		SchemaVersion: schemaVersion,
		PartitionKey:  ballot.VoteID,
		Data:          payload,
	}, nil
}
