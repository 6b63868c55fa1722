package http

import "sufragio/contexts/electoral-core/tally-service/domain/entities"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type LiveResultsResponse struct {
	ElectionID int64                      `json:"election_id"`
	Items      []entities.CandidateResult `json:"items"`
}

type ListResultsResponse struct {
	Items []entities.ListResult `json:"items"`
}

type ClosureResponse = entities.ClosureReport
