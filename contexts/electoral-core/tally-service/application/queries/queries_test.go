package queries

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"sufragio/contexts/electoral-core/tally-service/adapters/memory"
	"sufragio/contexts/electoral-core/tally-service/domain/entities"
	domainerrors "sufragio/contexts/electoral-core/tally-service/domain/errors"
	"sufragio/contexts/electoral-core/tally-service/ports"
)

func newSeededStore() *memory.Store {
	store := memory.NewStore()
	store.SetElection(7)
	store.SetProfile("0101010101", "Ana Mera", "https://cdn/ana.png")
	store.SetProfile("0202020202", "Luis Pozo", "")
	store.SetList(1, "Lista Azul", "azul.png")
	store.SetList(2, "Lista Roja", "")
	return store
}

func addVotes(store *memory.Store, cedula string, listID int64, count int) {
	for i := 0; i < count; i++ {
		store.AddVote(memory.VoteRecord{
			ElectionID:      7,
			PrecinctID:      3,
			MesaNumber:      12,
			ListID:          listID,
			CandidateCedula: cedula,
			CandidateRole:   "Presidente",
		})
	}
}

func TestLiveResultsPercentages(t *testing.T) {
	store := newSeededStore()
	// Four ballots: A, A, A, B.
	addVotes(store, "0101010101", 1, 3)
	addVotes(store, "0202020202", 2, 1)

	uc := UseCase{Results: store, Juntas: store, Roll: store, Elections: store}
	results, err := uc.LiveResults(context.Background(), 7)
	if err != nil {
		t.Fatalf("LiveResults: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len = %d", len(results))
	}
	if results[0].CandidateCedula != "0101010101" || results[0].Votes != 3 || results[0].Percentage != 75 {
		t.Fatalf("first = %+v", results[0])
	}
	if results[1].CandidateCedula != "0202020202" || results[1].Votes != 1 || results[1].Percentage != 25 {
		t.Fatalf("second = %+v", results[1])
	}
	if results[0].FullName != "Ana Mera" || results[0].ListName != "Lista Azul" {
		t.Fatalf("enrichment = %+v", results[0])
	}
}

func TestLiveResultsEnrichmentDefaults(t *testing.T) {
	store := newSeededStore()
	// Candidate with no registry record running on an unknown list.
	addVotes(store, "0909090909", 44, 2)

	uc := UseCase{Results: store, Juntas: store, Roll: store, Elections: store}
	results, err := uc.LiveResults(context.Background(), 7)
	if err != nil {
		t.Fatalf("LiveResults: %v", err)
	}
	if results[0].FullName != "Desconocido" {
		t.Fatalf("full name = %q", results[0].FullName)
	}
	if results[0].ListName != "Independiente" {
		t.Fatalf("list name = %q", results[0].ListName)
	}
}

func TestLiveResultsEmptyElection(t *testing.T) {
	store := newSeededStore()
	uc := UseCase{Results: store, Juntas: store, Roll: store, Elections: store}

	results, err := uc.LiveResults(context.Background(), 7)
	if err != nil {
		t.Fatalf("LiveResults: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("len = %d", len(results))
	}

	_, err = uc.LiveResults(context.Background(), 99)
	if !errors.Is(err, domainerrors.ErrElectionNotFound) {
		t.Fatalf("err = %v, want ErrElectionNotFound", err)
	}
}

func TestLiveResultsStableTieOrder(t *testing.T) {
	store := newSeededStore()
	addVotes(store, "0101010101", 1, 2)
	addVotes(store, "0202020202", 2, 2)

	uc := UseCase{Results: store, Juntas: store, Roll: store, Elections: store}
	for i := 0; i < 5; i++ {
		results, err := uc.LiveResults(context.Background(), 7)
		if err != nil {
			t.Fatalf("LiveResults: %v", err)
		}
		if results[0].CandidateCedula != "0101010101" || results[1].CandidateCedula != "0202020202" {
			t.Fatalf("tie order changed on call %d: %+v", i, results)
		}
	}
}

type fakeCache struct {
	mu     sync.Mutex
	data   map[int64][]entities.CandidateResult
	gets   int
	hits   int
	sets   int
	broken bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[int64][]entities.CandidateResult)}
}

func (c *fakeCache) GetLiveResults(_ context.Context, electionID int64) ([]entities.CandidateResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.broken {
		return nil, false, errors.New("redis down")
	}
	results, ok := c.data[electionID]
	if ok {
		c.hits++
	}
	return results, ok, nil
}

func (c *fakeCache) SetLiveResults(_ context.Context, electionID int64, results []entities.CandidateResult, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.broken {
		return errors.New("redis down")
	}
	c.sets++
	c.data[electionID] = results
	return nil
}

func (c *fakeCache) InvalidateLiveResults(_ context.Context, electionID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, electionID)
	return nil
}

func TestLiveResultsUsesCache(t *testing.T) {
	store := newSeededStore()
	addVotes(store, "0101010101", 1, 3)
	cache := newFakeCache()

	uc := UseCase{Results: store, Juntas: store, Roll: store, Elections: store, Cache: cache}
	ctx := context.Background()

	if _, err := uc.LiveResults(ctx, 7); err != nil {
		t.Fatalf("LiveResults: %v", err)
	}
	if _, err := uc.LiveResults(ctx, 7); err != nil {
		t.Fatalf("second LiveResults: %v", err)
	}
	if cache.sets != 1 || cache.hits != 1 {
		t.Fatalf("sets/hits = %d/%d", cache.sets, cache.hits)
	}
}

func TestLiveResultsSurvivesCacheOutage(t *testing.T) {
	store := newSeededStore()
	addVotes(store, "0101010101", 1, 1)
	cache := newFakeCache()
	cache.broken = true

	uc := UseCase{Results: store, Juntas: store, Roll: store, Elections: store, Cache: cache}
	results, err := uc.LiveResults(context.Background(), 7)
	if err != nil {
		t.Fatalf("LiveResults: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len = %d", len(results))
	}
}

func TestResultsByJunta(t *testing.T) {
	store := newSeededStore()
	store.SetJunta(ports.JuntaProjection{JuntaID: 4, MesaNumber: 12, PrecinctID: 3, ElectionID: 7})
	addVotes(store, "0101010101", 1, 2)
	addVotes(store, "0202020202", 2, 1)
	// A ballot from another mesa must not leak in.
	store.AddVote(memory.VoteRecord{ElectionID: 7, PrecinctID: 3, MesaNumber: 99, ListID: 1, CandidateCedula: "0101010101", CandidateRole: "Presidente"})

	uc := UseCase{Results: store, Juntas: store, Roll: store, Elections: store}
	results, err := uc.ResultsByJunta(context.Background(), 4)
	if err != nil {
		t.Fatalf("ResultsByJunta: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len = %d", len(results))
	}
	if results[0].ListID != 1 || results[0].Votes != 2 {
		t.Fatalf("first = %+v", results[0])
	}

	if _, err := uc.ResultsByJunta(context.Background(), 99); !errors.Is(err, domainerrors.ErrJuntaNotFound) {
		t.Fatalf("err = %v, want ErrJuntaNotFound", err)
	}
}

func TestResultsByRegionFilters(t *testing.T) {
	store := newSeededStore()
	store.SetPrecinct(3, "Pichincha", "Quito", "Iñaquito")
	store.SetPrecinct(8, "Guayas", "Guayaquil", "Tarqui")
	addVotes(store, "0101010101", 1, 2)
	store.AddVote(memory.VoteRecord{ElectionID: 7, PrecinctID: 8, MesaNumber: 1, ListID: 2, CandidateCedula: "0202020202", CandidateRole: "Presidente"})

	uc := UseCase{Results: store, Juntas: store, Roll: store, Elections: store}
	ctx := context.Background()

	results, err := uc.ResultsByRegion(ctx, 7, ports.RegionFilter{Province: "Pichincha"})
	if err != nil {
		t.Fatalf("ResultsByRegion: %v", err)
	}
	if len(results) != 1 || results[0].ListID != 1 || results[0].Percentage != 100 {
		t.Fatalf("results = %+v", results)
	}

	if _, err := uc.ResultsByRegion(ctx, 7, ports.RegionFilter{}); !errors.Is(err, domainerrors.ErrInvalidRegion) {
		t.Fatalf("err = %v, want ErrInvalidRegion", err)
	}
}

func TestValidateClosure(t *testing.T) {
	store := newSeededStore()
	store.SetJunta(ports.JuntaProjection{JuntaID: 4, MesaNumber: 12, PrecinctID: 3, ElectionID: 7})
	for i := 0; i < 10; i++ {
		cedula := string(rune('a' + i))
		store.SetRollVoter(cedula, 4, i < 7)
	}

	uc := UseCase{Results: store, Juntas: store, Roll: store, Elections: store}
	report, err := uc.ValidateClosure(context.Background(), 4)
	if err != nil {
		t.Fatalf("ValidateClosure: %v", err)
	}
	want := entities.ClosureReport{JuntaID: 4, TotalRoll: 10, VotesCast: 7, Pending: 3, Matches: false}
	if report != want {
		t.Fatalf("report = %+v, want %+v", report, want)
	}
}
