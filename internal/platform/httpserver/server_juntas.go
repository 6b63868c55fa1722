package httpserver

import (
	"errors"
	"net/http"

	juntaerrors "sufragio/contexts/electoral-core/junta-service/domain/errors"
	juntahttp "sufragio/contexts/electoral-core/junta-service/transport/http"
)

func writeJuntaError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, juntahttp.ErrorResponse{Code: code, Message: message})
}

func writeJuntaDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, juntaerrors.ErrJuntaNotFound),
		errors.Is(err, juntaerrors.ErrPrecinctNotFound),
		errors.Is(err, juntaerrors.ErrVoterNotFound):
		writeJuntaError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, juntaerrors.ErrInvalidBatchInput),
		errors.Is(err, juntaerrors.ErrInvalidPrecinctInput):
		writeJuntaError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, juntaerrors.ErrNoActiveElection),
		errors.Is(err, juntaerrors.ErrChairIsCandidate),
		errors.Is(err, juntaerrors.ErrPrecinctHasJuntas),
		errors.Is(err, juntaerrors.ErrJuntaNotCreated),
		errors.Is(err, juntaerrors.ErrJuntaNotOpen),
		errors.Is(err, juntaerrors.ErrStateConflict):
		writeJuntaError(w, http.StatusConflict, "conflict", err.Error())
	default:
		writeJuntaError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleCreateJuntaBatch(w http.ResponseWriter, r *http.Request) {
	var req juntahttp.CreateBatchRequest
	if !s.decodeJSON(w, r, &req, writeJuntaError) {
		return
	}
	resp, err := s.juntas.Handler.CreateBatchHandler(r.Context(), req)
	if err != nil {
		writeJuntaDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListJuntas(w http.ResponseWriter, r *http.Request) {
	resp, err := s.juntas.Handler.ListJuntasHandler(r.Context())
	if err != nil {
		writeJuntaDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetJunta(w http.ResponseWriter, r *http.Request) {
	juntaID, ok := pathID(r, "junta_id")
	if !ok {
		writeJuntaError(w, http.StatusBadRequest, "invalid_id", "junta_id must be a positive integer")
		return
	}
	resp, err := s.juntas.Handler.GetJuntaHandler(r.Context(), juntaID)
	if err != nil {
		writeJuntaDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAssignChair(w http.ResponseWriter, r *http.Request) {
	juntaID, ok := pathID(r, "junta_id")
	if !ok {
		writeJuntaError(w, http.StatusBadRequest, "invalid_id", "junta_id must be a positive integer")
		return
	}
	var req juntahttp.AssignChairRequest
	if !s.decodeJSON(w, r, &req, writeJuntaError) {
		return
	}
	resp, err := s.juntas.Handler.AssignChairHandler(r.Context(), juntaID, req)
	if err != nil {
		writeJuntaDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOpenDay(w http.ResponseWriter, r *http.Request) {
	juntaID, ok := pathID(r, "junta_id")
	if !ok {
		writeJuntaError(w, http.StatusBadRequest, "invalid_id", "junta_id must be a positive integer")
		return
	}
	resp, err := s.juntas.Handler.OpenDayHandler(r.Context(), juntaID)
	if err != nil {
		writeJuntaDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCloseStation(w http.ResponseWriter, r *http.Request) {
	juntaID, ok := pathID(r, "junta_id")
	if !ok {
		writeJuntaError(w, http.StatusBadRequest, "invalid_id", "junta_id must be a positive integer")
		return
	}
	resp, err := s.juntas.Handler.CloseStationHandler(r.Context(), juntaID)
	if err != nil {
		writeJuntaDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApproveJunta(w http.ResponseWriter, r *http.Request) {
	juntaID, ok := pathID(r, "junta_id")
	if !ok {
		writeJuntaError(w, http.StatusBadRequest, "invalid_id", "junta_id must be a positive integer")
		return
	}
	resp, err := s.juntas.Handler.ApproveJuntaHandler(r.Context(), juntaID)
	if err != nil {
		writeJuntaDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveJunta(w http.ResponseWriter, r *http.Request) {
	juntaID, ok := pathID(r, "junta_id")
	if !ok {
		writeJuntaError(w, http.StatusBadRequest, "invalid_id", "junta_id must be a positive integer")
		return
	}
	if err := s.juntas.Handler.RemoveJuntaHandler(r.Context(), juntaID); err != nil {
		writeJuntaDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleJuntasByElection(w http.ResponseWriter, r *http.Request) {
	electionID, ok := pathID(r, "election_id")
	if !ok {
		writeJuntaError(w, http.StatusBadRequest, "invalid_id", "election_id must be a positive integer")
		return
	}
	resp, err := s.juntas.Handler.JuntasByElectionHandler(r.Context(), electionID)
	if err != nil {
		writeJuntaDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePossibleChairs(w http.ResponseWriter, r *http.Request) {
	resp, err := s.juntas.Handler.PossibleChairsHandler(r.Context())
	if err != nil {
		writeJuntaDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreatePrecinct(w http.ResponseWriter, r *http.Request) {
	var req juntahttp.CreatePrecinctRequest
	if !s.decodeJSON(w, r, &req, writeJuntaError) {
		return
	}
	resp, err := s.juntas.Handler.CreatePrecinctHandler(r.Context(), req)
	if err != nil {
		writeJuntaDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListPrecincts(w http.ResponseWriter, r *http.Request) {
	resp, err := s.juntas.Handler.ListPrecinctsHandler(r.Context())
	if err != nil {
		writeJuntaDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeletePrecinct(w http.ResponseWriter, r *http.Request) {
	precinctID, ok := pathID(r, "precinct_id")
	if !ok {
		writeJuntaError(w, http.StatusBadRequest, "invalid_id", "precinct_id must be a positive integer")
		return
	}
	if err := s.juntas.Handler.DeletePrecinctHandler(r.Context(), precinctID); err != nil {
		writeJuntaDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
