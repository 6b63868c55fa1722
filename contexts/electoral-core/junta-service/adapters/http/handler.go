package httpadapter

import (
	"context"
	"log/slog"

	"sufragio/contexts/electoral-core/junta-service/application/commands"
	"sufragio/contexts/electoral-core/junta-service/application/queries"
	"sufragio/contexts/electoral-core/junta-service/domain/entities"
	httptransport "sufragio/contexts/electoral-core/junta-service/transport/http"
)

type Handler struct {
	Commands commands.UseCase
	Queries  queries.UseCase
	Logger   *slog.Logger
}

func (h Handler) CreateBatchHandler(ctx context.Context, req httptransport.CreateBatchRequest) (httptransport.BatchResponse, error) {
	juntas, err := h.Commands.CreateBatch(ctx, commands.CreateBatchCommand{
		PrecinctID: req.PrecinctID,
		Count:      req.Count,
	})
	if err != nil {
		return httptransport.BatchResponse{}, err
	}
	items := make([]httptransport.JuntaResponse, 0, len(juntas))
	for _, junta := range juntas {
		items = append(items, mapJunta(junta))
	}
	return httptransport.BatchResponse{Items: items}, nil
}

func (h Handler) AssignChairHandler(ctx context.Context, juntaID int64, req httptransport.AssignChairRequest) (httptransport.JuntaResponse, error) {
	junta, err := h.Commands.AssignChair(ctx, commands.AssignChairCommand{
		JuntaID:     juntaID,
		VoterCedula: req.VoterCedula,
	})
	if err != nil {
		return httptransport.JuntaResponse{}, err
	}
	return mapJunta(junta), nil
}

func (h Handler) OpenDayHandler(ctx context.Context, juntaID int64) (httptransport.JuntaResponse, error) {
	junta, err := h.Commands.OpenDay(ctx, juntaID)
	if err != nil {
		return httptransport.JuntaResponse{}, err
	}
	return mapJunta(junta), nil
}

func (h Handler) CloseStationHandler(ctx context.Context, juntaID int64) (httptransport.JuntaResponse, error) {
	junta, err := h.Commands.CloseStation(ctx, juntaID)
	if err != nil {
		return httptransport.JuntaResponse{}, err
	}
	return mapJunta(junta), nil
}

func (h Handler) ApproveJuntaHandler(ctx context.Context, juntaID int64) (httptransport.JuntaResponse, error) {
	junta, err := h.Commands.ApproveJunta(ctx, juntaID)
	if err != nil {
		return httptransport.JuntaResponse{}, err
	}
	return mapJunta(junta), nil
}

func (h Handler) RemoveJuntaHandler(ctx context.Context, juntaID int64) error {
	return h.Commands.RemoveJunta(ctx, juntaID)
}

func (h Handler) GetJuntaHandler(ctx context.Context, juntaID int64) (httptransport.JuntaResponse, error) {
	junta, err := h.Queries.GetJunta(ctx, juntaID)
	if err != nil {
		return httptransport.JuntaResponse{}, err
	}
	return mapJunta(junta), nil
}

func (h Handler) ListJuntasHandler(ctx context.Context) (httptransport.JuntasResponse, error) {
	details, err := h.Queries.ListJuntas(ctx)
	if err != nil {
		return httptransport.JuntasResponse{}, err
	}
	return mapDetails(details), nil
}

func (h Handler) JuntasByElectionHandler(ctx context.Context, electionID int64) (httptransport.JuntasResponse, error) {
	details, err := h.Queries.JuntasByElection(ctx, electionID)
	if err != nil {
		return httptransport.JuntasResponse{}, err
	}
	return mapDetails(details), nil
}

func (h Handler) PossibleChairsHandler(ctx context.Context) (httptransport.ChairCandidatesResponse, error) {
	chairs, err := h.Queries.PossibleChairs(ctx)
	if err != nil {
		return httptransport.ChairCandidatesResponse{}, err
	}
	items := make([]httptransport.ChairCandidateResponse, 0, len(chairs))
	for _, chair := range chairs {
		items = append(items, httptransport.ChairCandidateResponse{
			Cedula:   chair.Cedula,
			FullName: chair.FullName,
			Email:    chair.Email,
		})
	}
	return httptransport.ChairCandidatesResponse{Items: items}, nil
}

func (h Handler) CreatePrecinctHandler(ctx context.Context, req httptransport.CreatePrecinctRequest) (httptransport.PrecinctResponse, error) {
	precinct, err := h.Commands.CreatePrecinct(ctx, commands.CreatePrecinctCommand{
		Province: req.Province,
		Canton:   req.Canton,
		Parish:   req.Parish,
	})
	if err != nil {
		return httptransport.PrecinctResponse{}, err
	}
	return mapPrecinct(precinct), nil
}

func (h Handler) ListPrecinctsHandler(ctx context.Context) (httptransport.PrecinctsResponse, error) {
	precincts, err := h.Queries.ListPrecincts(ctx)
	if err != nil {
		return httptransport.PrecinctsResponse{}, err
	}
	items := make([]httptransport.PrecinctResponse, 0, len(precincts))
	for _, precinct := range precincts {
		items = append(items, mapPrecinct(precinct))
	}
	return httptransport.PrecinctsResponse{Items: items}, nil
}

func (h Handler) DeletePrecinctHandler(ctx context.Context, precinctID int64) error {
	return h.Commands.DeletePrecinct(ctx, precinctID)
}

func mapJunta(junta entities.Junta) httptransport.JuntaResponse {
	return httptransport.JuntaResponse{
		JuntaID:     junta.JuntaID,
		MesaNumber:  junta.MesaNumber,
		PrecinctID:  junta.PrecinctID,
		ElectionID:  junta.ElectionID,
		ChairCedula: junta.ChairCedula,
		State:       int(junta.State),
		StateName:   junta.State.String(),
	}
}

func mapDetails(details []entities.JuntaDetail) httptransport.JuntasResponse {
	items := make([]httptransport.JuntaDetailResponse, 0, len(details))
	for _, detail := range details {
		items = append(items, httptransport.JuntaDetailResponse{
			JuntaResponse: mapJunta(detail.Junta),
			ChairName:     detail.ChairName,
			Province:      detail.Province,
			Canton:        detail.Canton,
			Parish:        detail.Parish,
		})
	}
	return httptransport.JuntasResponse{Items: items}
}

func mapPrecinct(precinct entities.Precinct) httptransport.PrecinctResponse {
	return httptransport.PrecinctResponse{
		PrecinctID: precinct.PrecinctID,
		Province:   precinct.Province,
		Canton:     precinct.Canton,
		Parish:     precinct.Parish,
	}
}
