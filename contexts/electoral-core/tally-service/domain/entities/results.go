package entities

// CandidateResult is one row of the live standings, enriched with the voter
// profile and list branding when available.
type CandidateResult struct {
	CandidateCedula string  `json:"candidate_cedula"`
	CandidateRole   string  `json:"candidate_role"`
	FullName        string  `json:"full_name"`
	PhotoURL        string  `json:"photo_url,omitempty"`
	ListID          int64   `json:"list_id"`
	ListName        string  `json:"list_name"`
	ListLogo        string  `json:"list_logo,omitempty"`
	Votes           int64   `json:"votes"`
	Percentage      float64 `json:"percentage"`
}

type ListResult struct {
	ListID     int64   `json:"list_id"`
	ListName   string  `json:"list_name"`
	ListLogo   string  `json:"list_logo,omitempty"`
	Votes      int64   `json:"votes"`
	Percentage float64 `json:"percentage"`
}

// ClosureReport compares the junta roll against the ballots marked cast. It is
// advisory only and never blocks closing the station.
type ClosureReport struct {
	JuntaID   int64 `json:"junta_id"`
	TotalRoll int64 `json:"total_roll"`
	VotesCast int64 `json:"votes_cast"`
	Pending   int64 `json:"pending"`
	Matches   bool  `json:"matches"`
}
