package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ballotservice "sufragio/contexts/electoral-core/ballot-service"
	electionservice "sufragio/contexts/electoral-core/election-service"
	juntaservice "sufragio/contexts/electoral-core/junta-service"
	tallyservice "sufragio/contexts/electoral-core/tally-service"
	voterregistry "sufragio/contexts/identity-access/voter-registry"
	"sufragio/internal/platform/messaging"
)

func newTestServer() *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := messaging.NewBus(logger)
	return New(
		electionservice.NewInMemoryModule(logger),
		juntaservice.NewInMemoryModule(logger),
		ballotservice.NewInMemoryModule(bus, logger),
		tallyservice.NewInMemoryModule(logger),
		voterregistry.NewInMemoryModule(logger),
		logger,
		":0",
	)
}

func doJSON(t *testing.T, server *Server, method string, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func TestCreateAndGetElection(t *testing.T) {
	server := newTestServer()

	rr := doJSON(t, server, http.MethodPost, "/api/v1/elections", map[string]any{
		"title":     "Eleccion estudiantil 2026",
		"starts_at": time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
		"ends_at":   time.Now().Add(8 * time.Hour).UTC().Format(time.RFC3339),
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	var created struct {
		ElectionID int64  `json:"election_id"`
		Status     string `json:"status"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Status != "CONFIGURACION" {
		t.Fatalf("expected CONFIGURACION before the start time, got %q", created.Status)
	}

	rr = doJSON(t, server, http.MethodGet, fmt.Sprintf("/api/v1/elections/%d", created.ElectionID), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestGetElectionNotFound(t *testing.T) {
	server := newTestServer()
	rr := doJSON(t, server, http.MethodGet, "/api/v1/elections/99", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestGetElectionRejectsBadID(t *testing.T) {
	server := newTestServer()
	rr := doJSON(t, server, http.MethodGet, "/api/v1/elections/abc", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreateElectionRejectsInvalidDateRange(t *testing.T) {
	server := newTestServer()
	rr := doJSON(t, server, http.MethodPost, "/api/v1/elections", map[string]any{
		"title":     "Fechas al reves",
		"starts_at": time.Now().Add(8 * time.Hour).UTC().Format(time.RFC3339),
		"ends_at":   time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestJuntaBatchWithoutActiveElectionConflicts(t *testing.T) {
	server := newTestServer()

	rr := doJSON(t, server, http.MethodPost, "/api/v1/precincts", map[string]any{
		"province": "Pichincha",
		"canton":   "Quito",
		"parish":   "Centro",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var precinct struct {
		PrecinctID int64 `json:"precinct_id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &precinct); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	rr = doJSON(t, server, http.MethodPost, "/api/v1/juntas/batch", map[string]any{
		"precinct_id": precinct.PrecinctID,
		"count":       3,
	})
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 without an active election, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCastVoteUnknownVoterIsNotFound(t *testing.T) {
	server := newTestServer()
	rr := doJSON(t, server, http.MethodPost, "/api/v1/ballots", map[string]any{
		"voter_cedula":     "1712345678",
		"list_id":          1,
		"candidate_cedula": "1799999999",
		"candidate_role":   "Presidente",
	})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreateVoterResponseOmitsPassword(t *testing.T) {
	server := newTestServer()
	rr := doJSON(t, server, http.MethodPost, "/api/v1/voters", map[string]any{
		"cedula":    "1712345678",
		"full_name": "Ana Torres",
		"email":     "ana@example.ec",
		"password":  "super-secret",
		"role_id":   2,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	if bytes.Contains(rr.Body.Bytes(), []byte("password")) ||
		bytes.Contains(rr.Body.Bytes(), []byte("super-secret")) {
		t.Fatalf("voter response leaks credentials: %s", rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodPost, "/api/v1/voters", map[string]any{
		"cedula":    "1712345678",
		"full_name": "Ana Torres",
		"email":     "ana@example.ec",
		"password":  "super-secret",
		"role_id":   2,
	})
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate cedula, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestLiveResultsUnknownElection(t *testing.T) {
	server := newTestServer()
	rr := doJSON(t, server, http.MethodGet, "/api/v1/results/42/live", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRegionResultsRequireProvince(t *testing.T) {
	server := newTestServer()
	server.tally.Store.SetElection(7)

	rr := doJSON(t, server, http.MethodGet, "/api/v1/results/7/region", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without province, got %d body=%s", rr.Code, rr.Body.String())
	}
}
