package httpadapter

import (
	"context"
	"log/slog"

	"sufragio/contexts/electoral-core/election-service/application"
	"sufragio/contexts/electoral-core/election-service/domain/entities"
	httptransport "sufragio/contexts/electoral-core/election-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateElectionHandler(ctx context.Context, req httptransport.CreateElectionRequest) (httptransport.ElectionResponse, error) {
	election, err := h.Service.CreateElection(ctx, application.CreateElectionInput{
		Title:    req.Title,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	})
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return mapElection(election), nil
}

func (h Handler) UpdateElectionHandler(ctx context.Context, electionID int64, req httptransport.UpdateElectionRequest) (httptransport.ElectionResponse, error) {
	election, err := h.Service.UpdateElection(ctx, application.UpdateElectionInput{
		ElectionID: electionID,
		Title:      req.Title,
		StartsAt:   req.StartsAt,
		EndsAt:     req.EndsAt,
	})
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return mapElection(election), nil
}

func (h Handler) DeleteElectionHandler(ctx context.Context, electionID int64) error {
	return h.Service.DeleteElection(ctx, electionID)
}

func (h Handler) GetElectionHandler(ctx context.Context, electionID int64) (httptransport.ElectionResponse, error) {
	election, err := h.Service.GetElection(ctx, electionID)
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return mapElection(election), nil
}

func (h Handler) ListElectionsHandler(ctx context.Context) (httptransport.ElectionListResponse, error) {
	elections, err := h.Service.ListElections(ctx)
	if err != nil {
		return httptransport.ElectionListResponse{}, err
	}
	items := make([]httptransport.ElectionResponse, 0, len(elections))
	for _, election := range elections {
		items = append(items, mapElection(election))
	}
	return httptransport.ElectionListResponse{Items: items}, nil
}

func (h Handler) CreateListHandler(ctx context.Context, electionID int64, req httptransport.CreateListRequest) (httptransport.ListResponse, error) {
	list, err := h.Service.CreateList(ctx, application.CreateListInput{
		ElectionID: electionID,
		Name:       req.Name,
		LogoURL:    req.LogoURL,
	})
	if err != nil {
		return httptransport.ListResponse{}, err
	}
	return mapList(list), nil
}

func (h Handler) ListsByElectionHandler(ctx context.Context, electionID int64) (httptransport.ListsResponse, error) {
	lists, err := h.Service.ListsByElection(ctx, electionID)
	if err != nil {
		return httptransport.ListsResponse{}, err
	}
	items := make([]httptransport.ListResponse, 0, len(lists))
	for _, list := range lists {
		items = append(items, mapList(list))
	}
	return httptransport.ListsResponse{Items: items}, nil
}

func (h Handler) DeleteListHandler(ctx context.Context, listID int64) error {
	return h.Service.DeleteList(ctx, listID)
}

func (h Handler) RegisterCandidateHandler(ctx context.Context, req httptransport.RegisterCandidateRequest) (httptransport.CandidateResponse, error) {
	candidate, err := h.Service.RegisterCandidate(ctx, application.RegisterCandidateInput{
		Cedula:     req.Cedula,
		ListID:     req.ListID,
		ElectionID: req.ElectionID,
		RoleSought: req.RoleSought,
	})
	if err != nil {
		return httptransport.CandidateResponse{}, err
	}
	return mapCandidate(candidate), nil
}

func (h Handler) EditCandidateHandler(ctx context.Context, candidateID int64, req httptransport.EditCandidateRequest) (httptransport.CandidateResponse, error) {
	candidate, err := h.Service.EditCandidate(ctx, application.EditCandidateInput{
		CandidateID: candidateID,
		ListID:      req.ListID,
		RoleSought:  req.RoleSought,
	})
	if err != nil {
		return httptransport.CandidateResponse{}, err
	}
	return mapCandidate(candidate), nil
}

func (h Handler) RemoveCandidateHandler(ctx context.Context, candidateID int64) error {
	return h.Service.RemoveCandidate(ctx, candidateID)
}

func (h Handler) CandidatesByElectionHandler(ctx context.Context, electionID int64) (httptransport.CandidatesResponse, error) {
	details, err := h.Service.CandidatesByElection(ctx, electionID)
	if err != nil {
		return httptransport.CandidatesResponse{}, err
	}
	items := make([]httptransport.CandidateDetailResponse, 0, len(details))
	for _, detail := range details {
		items = append(items, httptransport.CandidateDetailResponse{
			CandidateResponse: mapCandidate(detail.Candidate),
			FullName:          detail.FullName,
			PhotoURL:          detail.PhotoURL,
			ListName:          detail.ListName,
			ListLogo:          detail.ListLogo,
		})
	}
	return httptransport.CandidatesResponse{Items: items}, nil
}

func mapElection(election entities.Election) httptransport.ElectionResponse {
	return httptransport.ElectionResponse{
		ElectionID: election.ElectionID,
		Title:      election.Title,
		StartsAt:   election.StartsAt,
		EndsAt:     election.EndsAt,
		Status:     string(election.Status),
	}
}

func mapList(list entities.BallotList) httptransport.ListResponse {
	return httptransport.ListResponse{
		ListID:     list.ListID,
		Name:       list.Name,
		LogoURL:    list.LogoURL,
		ElectionID: list.ElectionID,
	}
}

func mapCandidate(candidate entities.Candidate) httptransport.CandidateResponse {
	return httptransport.CandidateResponse{
		CandidateID: candidate.CandidateID,
		Cedula:      candidate.Cedula,
		ListID:      candidate.ListID,
		ElectionID:  candidate.ElectionID,
		RoleSought:  candidate.RoleSought,
	}
}
