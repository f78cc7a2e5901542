package stream

import "strings"

// Hidden-reasoning markers some models embed inline in their visible
// output. Content between them is demoted to thinking events.
const (
	ThinkingStart = "<thinking>"
	ThinkingEnd   = "</thinking>"
)

// EventType enumerates the wire event types of the streaming endpoint.
type EventType string

const (
	EventToolStart EventType = "tool_start"
	EventToolEnd   EventType = "tool_end"
	EventToken     EventType = "token"
	EventThinking  EventType = "thinking"
	EventDone      EventType = "done"
	EventError     EventType = "error"
)

// Event is one streaming wire event, serialized as a single JSON object.
type Event struct {
	Type                EventType `json:"type"`
	Tool                string    `json:"tool,omitempty"`
	Input               any       `json:"input,omitempty"`
	Output              any       `json:"output,omitempty"`
	Text                string    `json:"text,omitempty"`
	CleanResponse       string    `json:"clean_response,omitempty"`
	FollowUpSuggestions *[]string `json:"follow_up_suggestions,omitempty"`
	Message             string    `json:"message,omitempty"`
}

// Demux consumes the orchestration loop's event feed and splits it into
// typed wire events, assembling the full visible text for the terminal
// done event along the way.
type Demux struct {
	scanner *Scanner
	visible strings.Builder
}

// NewDemux returns a Demux using the standard thinking markers.
func NewDemux() *Demux {
	return &Demux{scanner: NewScanner(ThinkingStart, ThinkingEnd)}
}

// ToolStart forwards a tool-started event verbatim.
func (d *Demux) ToolStart(tool string) Event {
	return Event{Type: EventToolStart, Tool: tool}
}

// ToolEnd forwards a tool-completed event verbatim.
func (d *Demux) ToolEnd(tool string, input, output any) Event {
	return Event{Type: EventToolEnd, Tool: tool, Input: input, Output: output}
}

// Fragment scans one text fragment into zero or more token and thinking
// events.
func (d *Demux) Fragment(text string) []Event {
	return d.events(d.scanner.Write(text))
}

// Finish flushes pending visible text, extracts the suggestions block from
// the assembled response, and appends the terminal done event.
func (d *Demux) Finish() []Event {
	events := d.events(d.scanner.Flush())
	clean, suggestions := ExtractSuggestions(d.visible.String())
	return append(events, Event{
		Type:                EventDone,
		CleanResponse:       clean,
		FollowUpSuggestions: &suggestions,
	})
}

// Error builds the terminal error event.
func (d *Demux) Error(message string) Event {
	return Event{Type: EventError, Message: message}
}

func (d *Demux) events(segments []Segment) []Event {
	var out []Event
	for _, seg := range segments {
		if seg.Hidden {
			out = append(out, Event{Type: EventThinking, Text: seg.Text})
			continue
		}
		d.visible.WriteString(seg.Text)
		out = append(out, Event{Type: EventToken, Text: seg.Text})
	}
	return out
}
