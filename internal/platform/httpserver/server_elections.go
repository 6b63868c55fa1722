package httpserver

import (
	"errors"
	"net/http"

	electionerrors "sufragio/contexts/electoral-core/election-service/domain/errors"
	electionhttp "sufragio/contexts/electoral-core/election-service/transport/http"
)

func writeElectionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, electionhttp.ErrorResponse{Code: code, Message: message})
}

func writeElectionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, electionerrors.ErrElectionNotFound),
		errors.Is(err, electionerrors.ErrListNotFound),
		errors.Is(err, electionerrors.ErrCandidateNotFound),
		errors.Is(err, electionerrors.ErrVoterNotFound):
		writeElectionError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, electionerrors.ErrInvalidElectionInput),
		errors.Is(err, electionerrors.ErrInvalidDateRange),
		errors.Is(err, electionerrors.ErrInvalidListInput),
		errors.Is(err, electionerrors.ErrInvalidCandidateInput),
		errors.Is(err, electionerrors.ErrListElectionMismatch):
		writeElectionError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, electionerrors.ErrDuplicateCandidacy),
		errors.Is(err, electionerrors.ErrListHasCandidates),
		errors.Is(err, electionerrors.ErrVoterRoleConflict),
		errors.Is(err, electionerrors.ErrNotInConfiguration):
		writeElectionError(w, http.StatusConflict, "conflict", err.Error())
	default:
		writeElectionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleCreateElection(w http.ResponseWriter, r *http.Request) {
	var req electionhttp.CreateElectionRequest
	if !s.decodeJSON(w, r, &req, writeElectionError) {
		return
	}
	resp, err := s.elections.Handler.CreateElectionHandler(r.Context(), req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListElections(w http.ResponseWriter, r *http.Request) {
	resp, err := s.elections.Handler.ListElectionsHandler(r.Context())
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetElection(w http.ResponseWriter, r *http.Request) {
	electionID, ok := pathID(r, "election_id")
	if !ok {
		writeElectionError(w, http.StatusBadRequest, "invalid_id", "election_id must be a positive integer")
		return
	}
	resp, err := s.elections.Handler.GetElectionHandler(r.Context(), electionID)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateElection(w http.ResponseWriter, r *http.Request) {
	electionID, ok := pathID(r, "election_id")
	if !ok {
		writeElectionError(w, http.StatusBadRequest, "invalid_id", "election_id must be a positive integer")
		return
	}
	var req electionhttp.UpdateElectionRequest
	if !s.decodeJSON(w, r, &req, writeElectionError) {
		return
	}
	resp, err := s.elections.Handler.UpdateElectionHandler(r.Context(), electionID, req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteElection(w http.ResponseWriter, r *http.Request) {
	electionID, ok := pathID(r, "election_id")
	if !ok {
		writeElectionError(w, http.StatusBadRequest, "invalid_id", "election_id must be a positive integer")
		return
	}
	if err := s.elections.Handler.DeleteElectionHandler(r.Context(), electionID); err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	electionID, ok := pathID(r, "election_id")
	if !ok {
		writeElectionError(w, http.StatusBadRequest, "invalid_id", "election_id must be a positive integer")
		return
	}
	var req electionhttp.CreateListRequest
	if !s.decodeJSON(w, r, &req, writeElectionError) {
		return
	}
	resp, err := s.elections.Handler.CreateListHandler(r.Context(), electionID, req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListsByElection(w http.ResponseWriter, r *http.Request) {
	electionID, ok := pathID(r, "election_id")
	if !ok {
		writeElectionError(w, http.StatusBadRequest, "invalid_id", "election_id must be a positive integer")
		return
	}
	resp, err := s.elections.Handler.ListsByElectionHandler(r.Context(), electionID)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(r, "list_id")
	if !ok {
		writeElectionError(w, http.StatusBadRequest, "invalid_id", "list_id must be a positive integer")
		return
	}
	if err := s.elections.Handler.DeleteListHandler(r.Context(), listID); err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleRegisterCandidate(w http.ResponseWriter, r *http.Request) {
	var req electionhttp.RegisterCandidateRequest
	if !s.decodeJSON(w, r, &req, writeElectionError) {
		return
	}
	resp, err := s.elections.Handler.RegisterCandidateHandler(r.Context(), req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleEditCandidate(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := pathID(r, "candidate_id")
	if !ok {
		writeElectionError(w, http.StatusBadRequest, "invalid_id", "candidate_id must be a positive integer")
		return
	}
	var req electionhttp.EditCandidateRequest
	if !s.decodeJSON(w, r, &req, writeElectionError) {
		return
	}
	resp, err := s.elections.Handler.EditCandidateHandler(r.Context(), candidateID, req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveCandidate(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := pathID(r, "candidate_id")
	if !ok {
		writeElectionError(w, http.StatusBadRequest, "invalid_id", "candidate_id must be a positive integer")
		return
	}
	if err := s.elections.Handler.RemoveCandidateHandler(r.Context(), candidateID); err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleCandidatesByElection(w http.ResponseWriter, r *http.Request) {
	electionID, ok := pathID(r, "election_id")
	if !ok {
		writeElectionError(w, http.StatusBadRequest, "invalid_id", "election_id must be a positive integer")
		return
	}
	resp, err := s.elections.Handler.CandidatesByElectionHandler(r.Context(), electionID)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
