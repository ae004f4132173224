package event

import "time"

// Context describes the conductor that emitted an event.
type Context struct {
	Conductor   string `json:"conductor"`
	EventType   string `json:"eventType"`
	Order       string `json:"order"`
	TimeTakenMs int    `json:"timeTakenMs"`
}

// Event types emitted by the conductor.
const (
	TypeTick = "tick"
)

// Tick describes one completed tick.
type Tick struct {
	Number    uint64        `json:"number"`
	Order     string        `json:"order"`
	Threads   int           `json:"threads"`
	Workers   int           `json:"workers"`
	StartedAt time.Time     `json:"startedAt"`
	Duration  time.Duration `json:"duration"`
}

type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Data      T                      `json:"data"`
}

func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: time.Now(),
		Data:      data,
	}
}
