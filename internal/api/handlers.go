// Package api exposes the planning service over HTTP: a JSON request and
// response endpoint, a server-sent-events streaming endpoint, and the
// health and usage probes.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"

	"tripplanner/internal/agent"
	"tripplanner/internal/ratelimit"
	"tripplanner/internal/session"
	"tripplanner/internal/stream"
)

// Planner runs one conversation turn. Implemented by *agent.Agent.
type Planner interface {
	Run(ctx context.Context, userMessage string, history []session.Turn) (*agent.Result, error)
	RunStream(ctx context.Context, userMessage string, history []session.Turn, emit func(stream.Event) error) error
}

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	planner  Planner
	sessions session.Store
	limiter  *ratelimit.Limiter
	log      zerolog.Logger
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(planner Planner, sessions session.Store, limiter *ratelimit.Limiter, log zerolog.Logger) *Handlers {
	return &Handlers{planner: planner, sessions: sessions, limiter: limiter, log: log}
}

type planRequest struct {
	Message   string         `json:"message"`
	SessionID string         `json:"session_id"`
	History   []session.Turn `json:"history"`
}

type planResponse struct {
	Response            string           `json:"response"`
	ReasoningSteps      []agent.ToolCall `json:"reasoning_steps"`
	FollowUpSuggestions []string         `json:"follow_up_suggestions"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	data, err := sonic.Marshal(v)
	if err != nil {
		return
	}
	_, _ = w.Write(data)
}

// Health handles GET /health. It degrades, not fails, when the session
// store is unreachable: planning still works, history just won't stick.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.HealthCheck(r.Context()); err != nil {
		h.log.Error().Err(err).Msg("session store unhealthy")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "sessions": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Usage handles GET /usage.
func (h *Handlers) Usage(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.limiter.Usage())
}

// decodeRequest parses and validates the request body shared by both plan
// endpoints.
func (h *Handlers) decodeRequest(w http.ResponseWriter, r *http.Request) (*planRequest, bool) {
	var req planRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return nil, false
	}
	if req.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message is required"})
		return nil, false
	}
	return &req, true
}

// checkLimit applies the daily and monthly caps, writing the 429 itself.
func (h *Handlers) checkLimit(w http.ResponseWriter) bool {
	if err := h.limiter.Allow(); err != nil {
		var le *ratelimit.LimitError
		if errors.As(err, &le) {
			writeJSON(w, http.StatusTooManyRequests, le)
		} else {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return false
	}
	return true
}

// resolveHistory prefers the stored session over client-supplied history,
// so the client copy only seeds brand-new sessions.
func (h *Handlers) resolveHistory(r *http.Request, req *planRequest) []session.Turn {
	if req.SessionID == "" {
		return req.History
	}
	stored, err := h.sessions.Load(r.Context(), req.SessionID)
	if err != nil {
		h.log.Error().Err(err).Str("session_id", req.SessionID).Msg("loading session")
		return req.History
	}
	if len(stored) == 0 {
		return req.History
	}
	return stored
}

// persistTurn appends the exchange to the session. Failures are logged,
// never surfaced; the response is already composed.
func (h *Handlers) persistTurn(r *http.Request, sessionID, userMessage, cleanResponse string) {
	if sessionID == "" {
		return
	}
	err := h.sessions.Append(r.Context(), sessionID,
		session.Turn{Role: session.RoleUser, Content: userMessage},
		session.Turn{Role: session.RoleAssistant, Content: cleanResponse},
	)
	if err != nil {
		h.log.Error().Err(err).Str("session_id", sessionID).Msg("saving session")
	}
}

// Plan handles POST /plan.
func (h *Handlers) Plan(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}
	if !h.checkLimit(w) {
		return
	}

	history := h.resolveHistory(r, req)

	result, err := h.planner.Run(r.Context(), req.Message, history)
	if err != nil {
		h.log.Error().Err(err).Msg("planning turn failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	clean, suggestions := stream.ExtractSuggestions(result.Response)
	h.persistTurn(r, req.SessionID, req.Message, clean)

	steps := result.Steps
	if steps == nil {
		steps = []agent.ToolCall{}
	}
	writeJSON(w, http.StatusOK, planResponse{
		Response:            clean,
		ReasoningSteps:      steps,
		FollowUpSuggestions: suggestions,
	})
}

// PlanStream handles POST /plan/stream, emitting one SSE data line per
// wire event. A client disconnect aborts the turn without a session write.
func (h *Handlers) PlanStream(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}
	if !h.checkLimit(w) {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "streaming unsupported"})
		return
	}

	history := h.resolveHistory(r, req)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ctx := r.Context()
	var cleanResponse string

	emit := func(ev stream.Event) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if ev.Type == stream.EventDone {
			cleanResponse = ev.CleanResponse
		}
		data, err := sonic.Marshal(ev)
		if err != nil {
			return err
		}
		if _, err := w.Write(append(append([]byte("data: "), data...), '\n', '\n')); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	if err := h.planner.RunStream(ctx, req.Message, history, emit); err != nil {
		h.log.Error().Err(err).Msg("streaming turn failed")
		return
	}

	h.persistTurn(r, req.SessionID, req.Message, cleanResponse)
}
