package httpserver

import (
	"errors"
	"net/http"
	"strings"

	votererrors "sufragio/contexts/identity-access/voter-registry/domain/errors"
	voterhttp "sufragio/contexts/identity-access/voter-registry/transport/http"
)

func writeVoterError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, voterhttp.ErrorResponse{Code: code, Message: message})
}

func writeVoterDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, votererrors.ErrVoterNotFound),
		errors.Is(err, votererrors.ErrJuntaNotFound):
		writeVoterError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, votererrors.ErrDuplicateCedula):
		writeVoterError(w, http.StatusConflict, "duplicate_cedula", err.Error())
	case errors.Is(err, votererrors.ErrCandidateRole):
		writeVoterError(w, http.StatusConflict, "candidate_role_conflict", err.Error())
	case errors.Is(err, votererrors.ErrInvalidCedula),
		errors.Is(err, votererrors.ErrInvalidRole),
		errors.Is(err, votererrors.ErrInvalidVoterInput):
		writeVoterError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeVoterError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireVoterCedula(w http.ResponseWriter, r *http.Request) (string, bool) {
	cedula := strings.TrimSpace(r.PathValue("cedula"))
	if cedula == "" {
		writeVoterError(w, http.StatusBadRequest, "invalid_request", "cedula is required")
		return "", false
	}
	return cedula, true
}

func (s *Server) handleCreateVoter(w http.ResponseWriter, r *http.Request) {
	var req voterhttp.CreateVoterRequest
	if !s.decodeJSON(w, r, &req, writeVoterError) {
		return
	}
	resp, err := s.voters.Handler.CreateVoterHandler(r.Context(), req)
	if err != nil {
		writeVoterDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListVoters(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voters.Handler.ListVotersHandler(r.Context())
	if err != nil {
		writeVoterDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetVoter(w http.ResponseWriter, r *http.Request) {
	cedula, ok := requireVoterCedula(w, r)
	if !ok {
		return
	}
	resp, err := s.voters.Handler.GetVoterHandler(r.Context(), cedula)
	if err != nil {
		writeVoterDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateVoter(w http.ResponseWriter, r *http.Request) {
	cedula, ok := requireVoterCedula(w, r)
	if !ok {
		return
	}
	var req voterhttp.UpdateVoterRequest
	if !s.decodeJSON(w, r, &req, writeVoterError) {
		return
	}
	resp, err := s.voters.Handler.UpdateVoterHandler(r.Context(), cedula, req)
	if err != nil {
		writeVoterDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteVoter(w http.ResponseWriter, r *http.Request) {
	cedula, ok := requireVoterCedula(w, r)
	if !ok {
		return
	}
	if err := s.voters.Handler.DeleteVoterHandler(r.Context(), cedula); err != nil {
		writeVoterDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleVotersByJunta(w http.ResponseWriter, r *http.Request) {
	juntaID, ok := pathID(r, "junta_id")
	if !ok {
		writeVoterError(w, http.StatusBadRequest, "invalid_id", "junta_id must be a positive integer")
		return
	}
	resp, err := s.voters.Handler.ListVotersByJuntaHandler(r.Context(), juntaID)
	if err != nil {
		writeVoterDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
