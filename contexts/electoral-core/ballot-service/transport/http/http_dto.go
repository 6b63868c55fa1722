package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CastVoteRequest struct {
	VoterCedula     string `json:"voter_cedula"`
	ListID          int64  `json:"list_id"`
	CandidateCedula string `json:"candidate_cedula"`
	CandidateRole   string `json:"candidate_role"`
}

type CastVoteResponse struct {
	VoteID     string    `json:"vote_id"`
	CastAt     time.Time `json:"cast_at"`
	ElectionID int64     `json:"election_id"`
	PrecinctID int64     `json:"precinct_id"`
	MesaNumber int       `json:"mesa_number"`
}

type EligibilityResponse struct {
	Allowed    bool   `json:"allowed"`
	Reason     string `json:"reason,omitempty"`
	JuntaState int    `json:"junta_state,omitempty"`
	Message    string `json:"message,omitempty"`
}

type HasVotedResponse struct {
	Cedula   string `json:"cedula"`
	HasVoted bool   `json:"has_voted"`
}

type MarkVotedResponse struct {
	Cedula  string `json:"cedula"`
	Flipped bool   `json:"flipped"`
}

type IssueTokenRequest struct {
	VoterCedula string `json:"voter_cedula"`
}

type IssueTokenResponse struct {
	TokenID   string    `json:"token_id"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

type RedeemTokenRequest struct {
	VoterCedula string `json:"voter_cedula"`
	Code        string `json:"code"`
}

type RedeemTokenResponse struct {
	TokenID  string `json:"token_id"`
	Redeemed bool   `json:"redeemed"`
}
