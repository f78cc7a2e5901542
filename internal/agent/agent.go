// Package agent runs the tool-calling orchestration loop: it alternates
// model passes and tool executions until the decision table lets the model
// compose its answer, then returns (or streams) that answer.
package agent

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"

	"tripplanner/internal/session"
	"tripplanner/internal/stream"
	"tripplanner/internal/tools"
)

// maxPasses bounds model passes per turn. The decision table terminates
// well before this; hitting it means the loop is broken.
const maxPasses = 10

// ToolCall is one executed tool with its decoded input and output, in
// execution order. It feeds both the reasoning-steps audit trail and the
// tool_end stream events.
type ToolCall struct {
	Tool   string         `json:"tool"`
	Input  map[string]any `json:"input"`
	Output any            `json:"output"`
}

// Result is the outcome of a non-streaming run. Response still carries the
// raw suggestions block; callers strip it.
type Result struct {
	Response string
	Steps    []ToolCall
}

// Agent orchestrates one conversation turn at a time. Safe for concurrent
// use; all per-turn state lives on the stack.
type Agent struct {
	model    model.ToolCallingChatModel
	registry *tools.Registry
	log      zerolog.Logger
}

// New binds the registry's tools to the chat model.
func New(ctx context.Context, chatModel model.ToolCallingChatModel, registry *tools.Registry, log zerolog.Logger) (*Agent, error) {
	infos, err := registry.Infos(ctx)
	if err != nil {
		return nil, err
	}
	bound, err := chatModel.WithTools(infos)
	if err != nil {
		return nil, fmt.Errorf("binding tools: %w", err)
	}
	return &Agent{model: bound, registry: registry, log: log}, nil
}

// Run executes one turn and returns the composed response with its audit
// trail of tool calls.
func (a *Agent) Run(ctx context.Context, userMessage string, history []session.Turn) (*Result, error) {
	msgs := seedMessages(userMessage, history)

	var steps []ToolCall
	var resultNames []string

	for pass := 0; pass < maxPasses; pass++ {
		out, err := a.model.Generate(ctx, msgs, toolChoiceOption(Decide(resultNames, userMessage)))
		if err != nil {
			return nil, fmt.Errorf("model pass %d: %w", pass+1, err)
		}
		msgs = append(msgs, out)

		if len(out.ToolCalls) == 0 {
			return &Result{Response: out.Content, Steps: steps}, nil
		}

		for _, call := range out.ToolCalls {
			step, toolMsg := a.execute(ctx, call)
			steps = append(steps, step)
			resultNames = append(resultNames, call.Function.Name)
			msgs = append(msgs, toolMsg)
		}
	}

	return nil, errors.New("orchestration loop did not terminate")
}

// RunStream executes one turn, pushing wire events through emit as they
// happen. An emit error (typically a gone client) aborts the turn. On model
// failure a terminal error event is emitted and the error returned, so the
// caller can skip the session write.
func (a *Agent) RunStream(ctx context.Context, userMessage string, history []session.Turn, emit func(stream.Event) error) error {
	msgs := seedMessages(userMessage, history)
	demux := stream.NewDemux()

	var resultNames []string

	for pass := 0; pass < maxPasses; pass++ {
		if Decide(resultNames, userMessage) == DecisionFree {
			return a.streamFinal(ctx, msgs, demux, emit)
		}

		out, err := a.model.Generate(ctx, msgs, toolChoiceOption(DecisionForce))
		if err != nil {
			_ = emit(demux.Error(err.Error()))
			return fmt.Errorf("model pass %d: %w", pass+1, err)
		}
		msgs = append(msgs, out)

		if len(out.ToolCalls) == 0 {
			// Model answered despite the forced tool choice; treat its text
			// as the final response.
			for _, ev := range demux.Fragment(out.Content) {
				if err := emit(ev); err != nil {
					return err
				}
			}
			return finishStream(demux, emit)
		}

		for _, call := range out.ToolCalls {
			if err := emit(demux.ToolStart(call.Function.Name)); err != nil {
				return err
			}
			step, toolMsg := a.execute(ctx, call)
			resultNames = append(resultNames, call.Function.Name)
			msgs = append(msgs, toolMsg)
			if err := emit(demux.ToolEnd(step.Tool, step.Input, step.Output)); err != nil {
				return err
			}
		}
	}

	err := errors.New("orchestration loop did not terminate")
	_ = emit(demux.Error(err.Error()))
	return err
}

// streamFinal runs the composing pass in streaming mode, feeding fragments
// through the demultiplexer.
func (a *Agent) streamFinal(ctx context.Context, msgs []*schema.Message, demux *stream.Demux, emit func(stream.Event) error) error {
	reader, err := a.model.Stream(ctx, msgs, toolChoiceOption(DecisionFree))
	if err != nil {
		_ = emit(demux.Error(err.Error()))
		return fmt.Errorf("streaming model pass: %w", err)
	}
	defer reader.Close()

	for {
		chunk, err := reader.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			_ = emit(demux.Error(err.Error()))
			return fmt.Errorf("reading model stream: %w", err)
		}
		if len(chunk.ToolCalls) > 0 || chunk.Content == "" {
			continue
		}
		for _, ev := range demux.Fragment(chunk.Content) {
			if err := emit(ev); err != nil {
				return err
			}
		}
	}

	return finishStream(demux, emit)
}

func finishStream(demux *stream.Demux, emit func(stream.Event) error) error {
	for _, ev := range demux.Finish() {
		if err := emit(ev); err != nil {
			return err
		}
	}
	return nil
}

// execute runs one requested tool call and packages the outcome both as an
// audit step and as the tool message fed back to the model.
func (a *Agent) execute(ctx context.Context, call schema.ToolCall) (ToolCall, *schema.Message) {
	name := call.Function.Name
	args := call.Function.Arguments

	a.log.Debug().Str("tool", name).Str("arguments", args).Msg("executing tool")
	output := a.registry.Run(ctx, name, args)

	var input map[string]any
	if err := sonic.Unmarshal([]byte(args), &input); err != nil {
		input = map[string]any{"raw": args}
	}
	var decoded any
	if err := sonic.Unmarshal([]byte(output), &decoded); err != nil {
		decoded = output
	}

	step := ToolCall{Tool: name, Input: input, Output: decoded}
	return step, schema.ToolMessage(output, call.ID, schema.WithToolName(name))
}

// seedMessages assembles the model input: system prompt, stored history,
// then the new user message.
func seedMessages(userMessage string, history []session.Turn) []*schema.Message {
	msgs := make([]*schema.Message, 0, len(history)+2)
	msgs = append(msgs, schema.SystemMessage(systemPrompt))
	for _, turn := range history {
		switch turn.Role {
		case session.RoleUser:
			msgs = append(msgs, schema.UserMessage(turn.Content))
		case session.RoleAssistant:
			msgs = append(msgs, schema.AssistantMessage(turn.Content, nil))
		}
	}
	return append(msgs, schema.UserMessage(userMessage))
}

func toolChoiceOption(d Decision) model.Option {
	if d == DecisionForce {
		return model.WithToolChoice(schema.ToolChoiceForced)
	}
	return model.WithToolChoice(schema.ToolChoiceForbidden)
}
