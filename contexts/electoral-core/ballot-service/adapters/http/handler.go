package httpadapter

import (
	"context"
	"log/slog"

	"sufragio/contexts/electoral-core/ballot-service/application/commands"
	"sufragio/contexts/electoral-core/ballot-service/application/queries"
	httptransport "sufragio/contexts/electoral-core/ballot-service/transport/http"
)

type Handler struct {
	Commands commands.UseCase
	Queries  queries.UseCase
	Logger   *slog.Logger
}

func (h Handler) CastVoteHandler(ctx context.Context, req httptransport.CastVoteRequest) (httptransport.CastVoteResponse, error) {
	ballot, err := h.Commands.CastVote(ctx, commands.CastVoteCommand{
		VoterCedula:     req.VoterCedula,
		ListID:          req.ListID,
		CandidateCedula: req.CandidateCedula,
		CandidateRole:   req.CandidateRole,
	})
	if err != nil {
		return httptransport.CastVoteResponse{}, err
	}
	return httptransport.CastVoteResponse{
		VoteID:     ballot.VoteID,
		CastAt:     ballot.CastAt,
		ElectionID: ballot.ElectionID,
		PrecinctID: ballot.PrecinctID,
		MesaNumber: ballot.MesaNumber,
	}, nil
}

func (h Handler) CanVoteHandler(ctx context.Context, cedula string) (httptransport.EligibilityResponse, error) {
	decision, err := h.Queries.CanVote(ctx, cedula)
	if err != nil {
		return httptransport.EligibilityResponse{}, err
	}
	return httptransport.EligibilityResponse{
		Allowed:    decision.Allowed,
		Reason:     string(decision.Reason),
		JuntaState: decision.JuntaState,
		Message:    decision.Message,
	}, nil
}

func (h Handler) HasVotedHandler(ctx context.Context, cedula string) (httptransport.HasVotedResponse, error) {
	hasVoted, err := h.Queries.HasVoted(ctx, cedula)
	if err != nil {
		return httptransport.HasVotedResponse{}, err
	}
	return httptransport.HasVotedResponse{Cedula: cedula, HasVoted: hasVoted}, nil
}

func (h Handler) MarkVotedHandler(ctx context.Context, cedula string) (httptransport.MarkVotedResponse, error) {
	flipped, err := h.Commands.MarkVoted(ctx, cedula)
	if err != nil {
		return httptransport.MarkVotedResponse{}, err
	}
	return httptransport.MarkVotedResponse{Cedula: cedula, Flipped: flipped}, nil
}

func (h Handler) IssueTokenHandler(ctx context.Context, req httptransport.IssueTokenRequest) (httptransport.IssueTokenResponse, error) {
	issued, err := h.Commands.IssueAccessToken(ctx, req.VoterCedula)
	if err != nil {
		return httptransport.IssueTokenResponse{}, err
	}
	return httptransport.IssueTokenResponse{
		TokenID:   issued.Token.TokenID,
		Code:      issued.Code,
		ExpiresAt: issued.Token.ExpiresAt,
	}, nil
}

func (h Handler) RedeemTokenHandler(ctx context.Context, req httptransport.RedeemTokenRequest) (httptransport.RedeemTokenResponse, error) {
	token, err := h.Commands.RedeemAccessToken(ctx, req.VoterCedula, req.Code)
	if err != nil {
		return httptransport.RedeemTokenResponse{}, err
	}
	return httptransport.RedeemTokenResponse{TokenID: token.TokenID, Redeemed: true}, nil
}
