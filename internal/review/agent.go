package review

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/wardenci/warden/internal/llm"
	"github.com/wardenci/warden/internal/tool"
)

// agentState tracks the per-task conversation state machine.
type agentState int

const (
	stateAwaitingModel agentState = iota
	stateExecutingTools
	stateDone
	stateCancelled
)

// agent drives one task's conversation against the provider and the tool
// registry until the model stops calling tools or the context is cancelled.
// The history is single-writer and append-only.
type agent struct {
	client      llm.Client
	registry    *tool.Registry
	model       string
	temperature *float64
	maxTokens   *int
	history     []llm.Message
	logger      *zap.Logger
}

func newAgent(client llm.Client, registry *tool.Registry, model string, temperature *float64, maxTokens *int, logger *zap.Logger) *agent {
	return &agent{
		client:      client,
		registry:    registry,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		logger:      logger,
	}
}

func (a *agent) append(msg llm.Message) {
	a.history = append(a.history, msg)
}

// run executes the state machine until a terminal state. There is no turn
// ceiling: termination depends on the model responding without tool calls,
// or on cancellation. A provider error is a task failure, not a panic.
func (a *agent) run(ctx context.Context) (agentState, error) {
	state := stateAwaitingModel
	for {
		if ctx.Err() != nil {
			return stateCancelled, nil
		}

		switch state {
		case stateAwaitingModel:
			resp, err := a.client.Complete(ctx, llm.Request{
				Model:       a.model,
				Messages:    a.history,
				ToolDefs:    a.registry.Definitions(),
				Temperature: a.temperature,
				MaxTokens:   a.maxTokens,
			})
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, context.Canceled) {
					return stateCancelled, nil
				}
				return stateDone, err
			}
			a.append(resp.Message)

			if calls := resp.ToolCalls(); len(calls) > 0 {
				state = stateExecutingTools
			} else if resp.Text() != "" {
				return stateDone, nil
			}
			// Empty message with no tool calls: ask again.

		case stateExecutingTools:
			a.executeTools(ctx, a.history[len(a.history)-1].ToolCalls())
			state = stateAwaitingModel
		}
	}
}

// executeTools runs every call from one assistant turn and appends all
// results before the next model call. A missing tool or bad arguments
// become error results visible to the model; they never abort the task.
func (a *agent) executeTools(ctx context.Context, calls []llm.ToolCall) {
	for _, call := range calls {
		a.append(a.executeCall(ctx, call))
	}
}

func (a *agent) executeCall(ctx context.Context, call llm.ToolCall) llm.Message {
	t := a.registry.Get(call.Name)
	if t == nil {
		a.logger.Warn("model called unknown tool", zap.String("tool", call.Name))
		return llm.ToolResultMessage(call.ID, fmt.Sprintf("Unknown tool: %s", call.Name), true)
	}

	a.logger.Debug("invoking tool", zap.String("tool", call.Name))
	result, err := t.Invoke(ctx, call.Arguments)
	if err != nil {
		return llm.ToolResultMessage(call.ID, fmt.Sprintf("Error: %v", err), true)
	}
	return llm.ToolResultMessage(call.ID, result, false)
}
