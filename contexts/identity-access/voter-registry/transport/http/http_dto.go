package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateVoterRequest struct {
	Cedula   string `json:"cedula"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	PhotoURL string `json:"photo_url,omitempty"`
	RoleID   int    `json:"role_id"`
	JuntaID  int64  `json:"junta_id,omitempty"`
}

type UpdateVoterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
	RoleID   int    `json:"role_id"`
	Active   bool   `json:"active"`
	JuntaID  int64  `json:"junta_id,omitempty"`
}

// VoterResponse never exposes the password hash.
type VoterResponse struct {
	Cedula    string    `json:"cedula"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	RoleID    int       `json:"role_id"`
	Active    bool      `json:"active"`
	HasVoted  bool      `json:"has_voted"`
	JuntaID   int64     `json:"junta_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type VotersResponse struct {
	Items []VoterResponse `json:"items"`
}
