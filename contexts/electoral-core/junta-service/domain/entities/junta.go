package entities

// JuntaState is stored as a small integer for schema compatibility with the
// original electoral rolls, but transitions are validated centrally through
// CanTransition instead of ad hoc integer comparisons.
type JuntaState int

const (
	JuntaCreated       JuntaState = 1
	JuntaOpen          JuntaState = 2
	JuntaPendingReview JuntaState = 3
	JuntaApproved      JuntaState = 4
)

func (s JuntaState) String() string {
	switch s {
	case JuntaCreated:
		return "CREATED"
	case JuntaOpen:
		return "OPEN"
	case JuntaPendingReview:
		return "PENDING_REVIEW"
	case JuntaApproved:
		return "APPROVED"
	default:
		return "UNKNOWN"
	}
}

func (s JuntaState) Valid() bool {
	return s >= JuntaCreated && s <= JuntaApproved
}

// transitions is the single source of truth for the lifecycle. States only
// advance one step at a time; there is no path back to a lower state.
var transitions = map[JuntaState]JuntaState{
	JuntaCreated:       JuntaOpen,
	JuntaOpen:          JuntaPendingReview,
	JuntaPendingReview: JuntaApproved,
}

func CanTransition(from, to JuntaState) bool {
	next, ok := transitions[from]
	return ok && next == to
}

type Junta struct {
	JuntaID     int64
	MesaNumber  int
	PrecinctID  int64
	ElectionID  int64
	ChairCedula string
	State       JuntaState
}

// Precinct is the physical location (Direccion) juntas are grouped under.
type Precinct struct {
	PrecinctID int64
	Province   string
	Canton     string
	Parish     string
}

// JuntaDetail is the admin read model: junta enriched with the chair name and
// the precinct address.
type JuntaDetail struct {
	Junta
	ChairName string
	Province  string
	Canton    string
	Parish    string
}

// ChairCandidate is a voter eligible to be assigned as chair.
type ChairCandidate struct {
	Cedula   string
	FullName string
	Email    string
}
