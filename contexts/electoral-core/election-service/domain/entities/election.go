package entities

import "time"

type ElectionStatus string

const (
	ElectionStatusConfiguration ElectionStatus = "CONFIGURACION"
	ElectionStatusActive        ElectionStatus = "ACTIVA"
	ElectionStatusFinished      ElectionStatus = "FINALIZADA"
)

type Election struct {
	ElectionID int64
	Title      string
	StartsAt   time.Time
	EndsAt     time.Time
	Status     ElectionStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DeriveStatus is a pure function of the schedule and the supplied clock
// reading. Callers persist the result when it differs from the stored value.
func DeriveStatus(startsAt time.Time, endsAt time.Time, now time.Time) ElectionStatus {
	if now.Before(startsAt) {
		return ElectionStatusConfiguration
	}
	if now.Before(endsAt) {
		return ElectionStatusActive
	}
	return ElectionStatusFinished
}

type BallotList struct {
	ListID     int64
	Name       string
	LogoURL    string
	ElectionID int64
}

type Candidate struct {
	CandidateID int64
	Cedula      string
	ListID      int64
	ElectionID  int64
	RoleSought  string
}

// CandidateDetail is the admin/ballot read model: candidacy enriched with the
// voter profile and list branding.
type CandidateDetail struct {
	Candidate
	FullName string
	PhotoURL string
	ListName string
	ListLogo string
}
