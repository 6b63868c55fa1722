package entities

import "time"

// AnonymousVote records what was chosen, never who chose it. The precinct and
// mesa number are copied from the voter's junta at cast time so tallies can be
// grouped geographically without a voter reference.
type AnonymousVote struct {
	VoteID          string
	CastAt          time.Time
	ElectionID      int64
	PrecinctID      int64
	MesaNumber      int
	ListID          int64
	CandidateCedula string
	CandidateRole   string
}

// AccessToken is a chair-issued one-time credential. Only the bcrypt hash of
// the 6-digit code is stored; the plain code is shown once at issue time.
type AccessToken struct {
	TokenID     string
	VoterCedula string
	CodeHash    string
	Valid       bool
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

type DenialReason string

const (
	DenialNone            DenialReason = ""
	DenialVoterNotFound   DenialReason = "VOTER_NOT_FOUND"
	DenialAlreadyVoted    DenialReason = "ALREADY_VOTED"
	DenialNoJuntaAssigned DenialReason = "NO_JUNTA_ASSIGNED"
	DenialJuntaNotOpen    DenialReason = "JUNTA_NOT_OPEN"
)

// Junta states as stored by the lifecycle service. Only OPEN admits ballots.
const (
	JuntaStateCreated       = 1
	JuntaStateOpen          = 2
	JuntaStatePendingReview = 3
	JuntaStateApproved      = 4
)

// EligibilityDecision is the outcome of the voting gate. When denied because
// the junta is not open, JuntaState carries the actual state so the frontend
// can tell an unopened mesa from a concluded one.
type EligibilityDecision struct {
	Allowed    bool
	Reason     DenialReason
	JuntaState int
	Message    string
}

func DenialMessage(reason DenialReason, juntaState int) string {
	switch reason {
	case DenialVoterNotFound:
		return "votante no registrado"
	case DenialAlreadyVoted:
		return "el votante ya sufragó"
	case DenialNoJuntaAssigned:
		return "el votante no tiene mesa asignada"
	case DenialJuntaNotOpen:
		switch juntaState {
		case JuntaStateCreated:
			return "la mesa aún no ha sido abierta"
		case JuntaStatePendingReview:
			return "la mesa está cerrada y pendiente de revisión"
		case JuntaStateApproved:
			return "la jornada de esta mesa ha concluido"
		default:
			return "la mesa no está abierta"
		}
	default:
		return ""
	}
}
