package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateBatchRequest struct {
	PrecinctID int64 `json:"precinct_id"`
	Count      int   `json:"count"`
}

type AssignChairRequest struct {
	VoterCedula string `json:"voter_cedula"`
}

type JuntaResponse struct {
	JuntaID     int64  `json:"junta_id"`
	MesaNumber  int    `json:"mesa_number"`
	PrecinctID  int64  `json:"precinct_id"`
	ElectionID  int64  `json:"election_id"`
	ChairCedula string `json:"chair_cedula,omitempty"`
	State       int    `json:"state"`
	StateName   string `json:"state_name"`
}

type JuntaDetailResponse struct {
	JuntaResponse
	ChairName string `json:"chair_name"`
	Province  string `json:"province"`
	Canton    string `json:"canton,omitempty"`
	Parish    string `json:"parish,omitempty"`
}

type JuntasResponse struct {
	Items []JuntaDetailResponse `json:"items"`
}

type BatchResponse struct {
	Items []JuntaResponse `json:"items"`
}

type ChairCandidateResponse struct {
	Cedula   string `json:"cedula"`
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
}

type ChairCandidatesResponse struct {
	Items []ChairCandidateResponse `json:"items"`
}

type CreatePrecinctRequest struct {
	Province string `json:"province"`
	Canton   string `json:"canton"`
	Parish   string `json:"parish"`
}

type PrecinctResponse struct {
	PrecinctID int64  `json:"precinct_id"`
	Province   string `json:"province"`
	Canton     string `json:"canton"`
	Parish     string `json:"parish"`
}

type PrecinctsResponse struct {
	Items []PrecinctResponse `json:"items"`
}
