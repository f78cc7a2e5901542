// Package session stores per-session conversation history. Redis is the
// primary backend; an in-memory store covers local runs and tests. History
// is capped so a long-lived session cannot grow without bound.
package session

import "context"

// Turn is one conversation turn as stored and replayed to the model.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// MaxTurns is the history cap. Appending beyond it drops the oldest turns.
const MaxTurns = 40

// Store loads and appends conversation history by session id.
type Store interface {
	Load(ctx context.Context, sessionID string) ([]Turn, error)
	Append(ctx context.Context, sessionID string, turns ...Turn) error
	HealthCheck(ctx context.Context) error
}

// capTurns enforces MaxTurns, keeping the most recent turns.
func capTurns(turns []Turn) []Turn {
	if len(turns) > MaxTurns {
		return turns[len(turns)-MaxTurns:]
	}
	return turns
}
