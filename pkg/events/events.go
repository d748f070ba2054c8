package events

import "github.com/fystack/lotofacil-generator/internal/sampler"

const (
	EventTypeBatch = "batch"
	EventTypeError = "error"
)

// BatchEvent describes one finished generation batch.
type BatchEvent struct {
	BatchID   string         `json:"batch_id"`
	UserID    string         `json:"user_id,omitempty"`
	Preset    string         `json:"preset,omitempty"`
	Window    int            `json:"window"`
	Requested int            `json:"requested"`
	Produced  int            `json:"produced"`
	Attempts  int            `json:"attempts"`
	Games     []sampler.Game `json:"games"`
}
