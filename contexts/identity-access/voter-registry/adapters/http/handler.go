package httpadapter

import (
	"context"
	"log/slog"

	"sufragio/contexts/identity-access/voter-registry/application"
	"sufragio/contexts/identity-access/voter-registry/domain/entities"
	httptransport "sufragio/contexts/identity-access/voter-registry/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateVoterHandler(ctx context.Context, req httptransport.CreateVoterRequest) (httptransport.VoterResponse, error) {
	voter, err := h.Service.CreateVoter(ctx, application.CreateVoterInput{
		Cedula:   req.Cedula,
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		PhotoURL: req.PhotoURL,
		RoleID:   req.RoleID,
		JuntaID:  req.JuntaID,
	})
	if err != nil {
		return httptransport.VoterResponse{}, err
	}
	return mapVoter(voter), nil
}

func (h Handler) UpdateVoterHandler(ctx context.Context, cedula string, req httptransport.UpdateVoterRequest) (httptransport.VoterResponse, error) {
	voter, err := h.Service.UpdateVoter(ctx, application.UpdateVoterInput{
		Cedula:   cedula,
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		PhotoURL: req.PhotoURL,
		RoleID:   req.RoleID,
		Active:   req.Active,
		JuntaID:  req.JuntaID,
	})
	if err != nil {
		return httptransport.VoterResponse{}, err
	}
	return mapVoter(voter), nil
}

func (h Handler) GetVoterHandler(ctx context.Context, cedula string) (httptransport.VoterResponse, error) {
	voter, err := h.Service.GetVoter(ctx, cedula)
	if err != nil {
		return httptransport.VoterResponse{}, err
	}
	return mapVoter(voter), nil
}

func (h Handler) ListVotersHandler(ctx context.Context) (httptransport.VotersResponse, error) {
	voters, err := h.Service.ListVoters(ctx)
	if err != nil {
		return httptransport.VotersResponse{}, err
	}
	return mapVoters(voters), nil
}

func (h Handler) ListVotersByJuntaHandler(ctx context.Context, juntaID int64) (httptransport.VotersResponse, error) {
	voters, err := h.Service.ListVotersByJunta(ctx, juntaID)
	if err != nil {
		return httptransport.VotersResponse{}, err
	}
	return mapVoters(voters), nil
}

func (h Handler) DeleteVoterHandler(ctx context.Context, cedula string) error {
	return h.Service.DeleteVoter(ctx, cedula)
}

func mapVoter(voter entities.Voter) httptransport.VoterResponse {
	return httptransport.VoterResponse{
		Cedula:    voter.Cedula,
		FullName:  voter.FullName,
		Email:     voter.Email,
		PhotoURL:  voter.PhotoURL,
		RoleID:    voter.RoleID,
		Active:    voter.Active,
		HasVoted:  voter.HasVoted,
		JuntaID:   voter.JuntaID,
		CreatedAt: voter.CreatedAt,
		UpdatedAt: voter.UpdatedAt,
	}
}

func mapVoters(voters []entities.Voter) httptransport.VotersResponse {
	items := make([]httptransport.VoterResponse, 0, len(voters))
	for _, voter := range voters {
		items = append(items, mapVoter(voter))
	}
	return httptransport.VotersResponse{Items: items}
}
