package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateElectionRequest struct {
	Title    string    `json:"title"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

type UpdateElectionRequest struct {
	Title    string    `json:"title"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

type ElectionResponse struct {
	ElectionID int64     `json:"election_id"`
	Title      string    `json:"title"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	Status     string    `json:"status"`
}

type ElectionListResponse struct {
	Items []ElectionResponse `json:"items"`
}

type CreateListRequest struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`
}

type ListResponse struct {
	ListID     int64  `json:"list_id"`
	Name       string `json:"name"`
	LogoURL    string `json:"logo_url,omitempty"`
	ElectionID int64  `json:"election_id"`
}

type ListsResponse struct {
	Items []ListResponse `json:"items"`
}

type RegisterCandidateRequest struct {
	Cedula     string `json:"cedula"`
	ListID     int64  `json:"list_id"`
	ElectionID int64  `json:"election_id"`
	RoleSought string `json:"role_sought"`
}

type EditCandidateRequest struct {
	ListID     int64  `json:"list_id"`
	RoleSought string `json:"role_sought"`
}

type CandidateResponse struct {
	CandidateID int64  `json:"candidate_id"`
	Cedula      string `json:"cedula"`
	ListID      int64  `json:"list_id"`
	ElectionID  int64  `json:"election_id"`
	RoleSought  string `json:"role_sought"`
}

type CandidateDetailResponse struct {
	CandidateResponse
	FullName string `json:"full_name"`
	PhotoURL string `json:"photo_url,omitempty"`
	ListName string `json:"list_name"`
	ListLogo string `json:"list_logo,omitempty"`
}

type CandidatesResponse struct {
	Items []CandidateDetailResponse `json:"items"`
}
