package httpserver

import (
	"errors"
	"net/http"

	tallyerrors "sufragio/contexts/electoral-core/tally-service/domain/errors"
	tallyhttp "sufragio/contexts/electoral-core/tally-service/transport/http"
)

func writeTallyError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, tallyhttp.ErrorResponse{Code: code, Message: message})
}

func writeTallyDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tallyerrors.ErrElectionNotFound),
		errors.Is(err, tallyerrors.ErrJuntaNotFound):
		writeTallyError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, tallyerrors.ErrInvalidRegion):
		writeTallyError(w, http.StatusBadRequest, "invalid_region", err.Error())
	default:
		writeTallyError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleLiveResults(w http.ResponseWriter, r *http.Request) {
	electionID, ok := pathID(r, "election_id")
	if !ok {
		writeTallyError(w, http.StatusBadRequest, "invalid_id", "election_id must be a positive integer")
		return
	}
	resp, err := s.tally.Handler.LiveResultsHandler(r.Context(), electionID)
	if err != nil {
		writeTallyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResultsByList(w http.ResponseWriter, r *http.Request) {
	electionID, ok := pathID(r, "election_id")
	if !ok {
		writeTallyError(w, http.StatusBadRequest, "invalid_id", "election_id must be a positive integer")
		return
	}
	resp, err := s.tally.Handler.ResultsByListHandler(r.Context(), electionID)
	if err != nil {
		writeTallyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResultsByRegion(w http.ResponseWriter, r *http.Request) {
	electionID, ok := pathID(r, "election_id")
	if !ok {
		writeTallyError(w, http.StatusBadRequest, "invalid_id", "election_id must be a positive integer")
		return
	}
	query := r.URL.Query()
	resp, err := s.tally.Handler.ResultsByRegionHandler(
		r.Context(),
		electionID,
		query.Get("province"),
		query.Get("canton"),
		query.Get("parish"),
	)
	if err != nil {
		writeTallyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResultsByJunta(w http.ResponseWriter, r *http.Request) {
	juntaID, ok := pathID(r, "junta_id")
	if !ok {
		writeTallyError(w, http.StatusBadRequest, "invalid_id", "junta_id must be a positive integer")
		return
	}
	resp, err := s.tally.Handler.ResultsByJuntaHandler(r.Context(), juntaID)
	if err != nil {
		writeTallyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClosureCheck(w http.ResponseWriter, r *http.Request) {
	juntaID, ok := pathID(r, "junta_id")
	if !ok {
		writeTallyError(w, http.StatusBadRequest, "invalid_id", "junta_id must be a positive integer")
		return
	}
	resp, err := s.tally.Handler.ClosureCheckHandler(r.Context(), juntaID)
	if err != nil {
		writeTallyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
