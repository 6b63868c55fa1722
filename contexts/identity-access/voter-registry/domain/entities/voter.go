package entities

import "time"

const (
	RoleAdmin = 1
	RoleVoter = 2
	RoleChair = 3
)

type Voter struct {
	Cedula       string
	FullName     string
	Email        string
	PasswordHash string
	PhotoURL     string
	RoleID       int
	Active       bool
	HasVoted     bool
	JuntaID      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func ValidRole(roleID int) bool {
	return roleID >= RoleAdmin && roleID <= RoleChair
}

// ValidCedula accepts exactly ten digits.
func ValidCedula(cedula string) bool {
	if len(cedula) != 10 {
		return false
	}
	for _, r := range cedula {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
