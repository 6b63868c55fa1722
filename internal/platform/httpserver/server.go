package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	ballotservice "sufragio/contexts/electoral-core/ballot-service"
	electionservice "sufragio/contexts/electoral-core/election-service"
	juntaservice "sufragio/contexts/electoral-core/junta-service"
	tallyservice "sufragio/contexts/electoral-core/tally-service"
	voterregistry "sufragio/contexts/identity-access/voter-registry"

	httpSwagger "github.com/swaggo/http-swagger"
)

type Server struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	addr      string
	elections electionservice.Module
	juntas    juntaservice.Module
	ballots   ballotservice.Module
	tally     tallyservice.Module
	voters    voterregistry.Module
}

func New(
	elections electionservice.Module,
	juntas juntaservice.Module,
	ballots ballotservice.Module,
	tally tallyservice.Module,
	voters voterregistry.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		elections: elections,
		juntas:    juntas,
		ballots:   ballots,
		tally:     tally,
		voters:    voters,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/v1/elections", s.handleCreateElection)
	s.mux.HandleFunc("GET /api/v1/elections", s.handleListElections)
	s.mux.HandleFunc("GET /api/v1/elections/{election_id}", s.handleGetElection)
	s.mux.HandleFunc("PUT /api/v1/elections/{election_id}", s.handleUpdateElection)
	s.mux.HandleFunc("DELETE /api/v1/elections/{election_id}", s.handleDeleteElection)
	s.mux.HandleFunc("POST /api/v1/elections/{election_id}/lists", s.handleCreateList)
	s.mux.HandleFunc("GET /api/v1/elections/{election_id}/lists", s.handleListsByElection)
	s.mux.HandleFunc("DELETE /api/v1/lists/{list_id}", s.handleDeleteList)
	s.mux.HandleFunc("POST /api/v1/candidates", s.handleRegisterCandidate)
	s.mux.HandleFunc("PUT /api/v1/candidates/{candidate_id}", s.handleEditCandidate)
	s.mux.HandleFunc("DELETE /api/v1/candidates/{candidate_id}", s.handleRemoveCandidate)
	s.mux.HandleFunc("GET /api/v1/elections/{election_id}/candidates", s.handleCandidatesByElection)

	s.mux.HandleFunc("POST /api/v1/juntas/batch", s.handleCreateJuntaBatch)
	s.mux.HandleFunc("GET /api/v1/juntas", s.handleListJuntas)
	s.mux.HandleFunc("GET /api/v1/juntas/possible-chairs", s.handlePossibleChairs)
	s.mux.HandleFunc("GET /api/v1/juntas/{junta_id}", s.handleGetJunta)
	s.mux.HandleFunc("POST /api/v1/juntas/{junta_id}/chair", s.handleAssignChair)
	s.mux.HandleFunc("POST /api/v1/juntas/{junta_id}/open", s.handleOpenDay)
	s.mux.HandleFunc("POST /api/v1/juntas/{junta_id}/close", s.handleCloseStation)
	s.mux.HandleFunc("POST /api/v1/juntas/{junta_id}/approve", s.handleApproveJunta)
	s.mux.HandleFunc("DELETE /api/v1/juntas/{junta_id}", s.handleRemoveJunta)
	s.mux.HandleFunc("GET /api/v1/elections/{election_id}/juntas", s.handleJuntasByElection)
	s.mux.HandleFunc("POST /api/v1/precincts", s.handleCreatePrecinct)
	s.mux.HandleFunc("GET /api/v1/precincts", s.handleListPrecincts)
	s.mux.HandleFunc("DELETE /api/v1/precincts/{precinct_id}", s.handleDeletePrecinct)

	s.mux.HandleFunc("POST /api/v1/ballots", s.handleCastVote)
	s.mux.HandleFunc("GET /api/v1/ballots/eligibility/{cedula}", s.handleCanVote)
	s.mux.HandleFunc("GET /api/v1/ballots/status/{cedula}", s.handleHasVoted)
	s.mux.HandleFunc("POST /api/v1/ballots/mark-voted/{cedula}", s.handleMarkVoted)
	s.mux.HandleFunc("POST /api/v1/ballots/tokens", s.handleIssueToken)
	s.mux.HandleFunc("POST /api/v1/ballots/tokens/redeem", s.handleRedeemToken)

	s.mux.HandleFunc("GET /api/v1/results/{election_id}/live", s.handleLiveResults)
	s.mux.HandleFunc("GET /api/v1/results/{election_id}/lists", s.handleResultsByList)
	s.mux.HandleFunc("GET /api/v1/results/{election_id}/region", s.handleResultsByRegion)
	s.mux.HandleFunc("GET /api/v1/results/juntas/{junta_id}", s.handleResultsByJunta)
	s.mux.HandleFunc("GET /api/v1/results/juntas/{junta_id}/closure", s.handleClosureCheck)

	s.mux.HandleFunc("POST /api/v1/voters", s.handleCreateVoter)
	s.mux.HandleFunc("GET /api/v1/voters", s.handleListVoters)
	s.mux.HandleFunc("GET /api/v1/voters/{cedula}", s.handleGetVoter)
	s.mux.HandleFunc("PUT /api/v1/voters/{cedula}", s.handleUpdateVoter)
	s.mux.HandleFunc("DELETE /api/v1/voters/{cedula}", s.handleDeleteVoter)
	s.mux.HandleFunc("GET /api/v1/juntas/{junta_id}/voters", s.handleVotersByJunta)
}

func (s *Server) decodeJSON(
	w http.ResponseWriter,
	r *http.Request,
	target any,
	writeError func(http.ResponseWriter, int, string, string),
) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
