package httpadapter

import (
	"context"
	"log/slog"

	"sufragio/contexts/electoral-core/tally-service/application/queries"
	"sufragio/contexts/electoral-core/tally-service/ports"
	httptransport "sufragio/contexts/electoral-core/tally-service/transport/http"
)

type Handler struct {
	Queries queries.UseCase
	Logger  *slog.Logger
}

func (h Handler) LiveResultsHandler(ctx context.Context, electionID int64) (httptransport.LiveResultsResponse, error) {
	results, err := h.Queries.LiveResults(ctx, electionID)
	if err != nil {
		return httptransport.LiveResultsResponse{}, err
	}
	return httptransport.LiveResultsResponse{ElectionID: electionID, Items: results}, nil
}

func (h Handler) ResultsByJuntaHandler(ctx context.Context, juntaID int64) (httptransport.ListResultsResponse, error) {
	results, err := h.Queries.ResultsByJunta(ctx, juntaID)
	if err != nil {
		return httptransport.ListResultsResponse{}, err
	}
	return httptransport.ListResultsResponse{Items: results}, nil
}

func (h Handler) ResultsByListHandler(ctx context.Context, electionID int64) (httptransport.ListResultsResponse, error) {
	results, err := h.Queries.ResultsByList(ctx, electionID)
	if err != nil {
		return httptransport.ListResultsResponse{}, err
	}
	return httptransport.ListResultsResponse{Items: results}, nil
}

func (h Handler) ResultsByRegionHandler(ctx context.Context, electionID int64, province, canton, parish string) (httptransport.ListResultsResponse, error) {
	results, err := h.Queries.ResultsByRegion(ctx, electionID, ports.RegionFilter{
		Province: province,
		Canton:   canton,
		Parish:   parish,
	})
	if err != nil {
		return httptransport.ListResultsResponse{}, err
	}
	return httptransport.ListResultsResponse{Items: results}, nil
}

func (h Handler) ClosureCheckHandler(ctx context.Context, juntaID int64) (httptransport.ClosureResponse, error) {
	return h.Queries.ValidateClosure(ctx, juntaID)
}
