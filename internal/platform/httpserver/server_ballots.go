package httpserver

import (
	"errors"
	"net/http"
	"strings"

	balloterrors "sufragio/contexts/electoral-core/ballot-service/domain/errors"
	ballothttp "sufragio/contexts/electoral-core/ballot-service/transport/http"
)

func writeBallotError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ballothttp.ErrorResponse{Code: code, Message: message})
}

func writeBallotDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, balloterrors.ErrVoterNotFound),
		errors.Is(err, balloterrors.ErrElectionNotFound):
		writeBallotError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, balloterrors.ErrAlreadyVoted):
		writeBallotError(w, http.StatusConflict, "already_voted", err.Error())
	case errors.Is(err, balloterrors.ErrNoJuntaAssigned):
		writeBallotError(w, http.StatusConflict, "no_junta_assigned", err.Error())
	case errors.Is(err, balloterrors.ErrJuntaNotOpen):
		writeBallotError(w, http.StatusConflict, "junta_not_open", err.Error())
	case errors.Is(err, balloterrors.ErrElectionInactive):
		writeBallotError(w, http.StatusConflict, "election_inactive", err.Error())
	case errors.Is(err, balloterrors.ErrInvalidVoteInput),
		errors.Is(err, balloterrors.ErrInvalidTokenInput):
		writeBallotError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, balloterrors.ErrTokenNotFound):
		writeBallotError(w, http.StatusUnauthorized, "invalid_token", err.Error())
	default:
		writeBallotError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireCedula(w http.ResponseWriter, r *http.Request) (string, bool) {
	cedula := strings.TrimSpace(r.PathValue("cedula"))
	if cedula == "" {
		writeBallotError(w, http.StatusBadRequest, "invalid_request", "cedula is required")
		return "", false
	}
	return cedula, true
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	var req ballothttp.CastVoteRequest
	if !s.decodeJSON(w, r, &req, writeBallotError) {
		return
	}
	resp, err := s.ballots.Handler.CastVoteHandler(r.Context(), req)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleCanVote(w http.ResponseWriter, r *http.Request) {
	cedula, ok := requireCedula(w, r)
	if !ok {
		return
	}
	resp, err := s.ballots.Handler.CanVoteHandler(r.Context(), cedula)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHasVoted(w http.ResponseWriter, r *http.Request) {
	cedula, ok := requireCedula(w, r)
	if !ok {
		return
	}
	resp, err := s.ballots.Handler.HasVotedHandler(r.Context(), cedula)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMarkVoted(w http.ResponseWriter, r *http.Request) {
	cedula, ok := requireCedula(w, r)
	if !ok {
		return
	}
	resp, err := s.ballots.Handler.MarkVotedHandler(r.Context(), cedula)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	var req ballothttp.IssueTokenRequest
	if !s.decodeJSON(w, r, &req, writeBallotError) {
		return
	}
	resp, err := s.ballots.Handler.IssueTokenHandler(r.Context(), req)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRedeemToken(w http.ResponseWriter, r *http.Request) {
	var req ballothttp.RedeemTokenRequest
	if !s.decodeJSON(w, r, &req, writeBallotError) {
		return
	}
	resp, err := s.ballots.Handler.RedeemTokenHandler(r.Context(), req)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
