package events

import (
	"encoding/json"
	"time"
)

// Envelope is the canonical event shape used across sufragio.
// Ballot payloads must stay anonymized: election/precinct/mesa/list/candidate
// only, never a voter identifier.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	SourceService string          `json:"source_service"`
	SchemaVersion int             `json:"schema_version"`
	PartitionKey  string          `json:"partition_key"`
	Data          json.RawMessage `json:"data"`
}
