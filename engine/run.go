package engine

import (
	"context"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/habiliai/searchchat/entity"
	"github.com/habiliai/searchchat/errors"
	"github.com/habiliai/searchchat/tool"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type (
	RunResponse struct {
		Text      string     `json:"text"`
		ToolCalls []ToolCall `json:"tool_calls"`
	}

	ToolCall struct {
		Name      string              `json:"name"`
		Arguments jsoniter.RawMessage `json:"arguments"`
		Result    jsoniter.RawMessage `json:"result"`
	}
)

// Run answers prompt given the preceding transcript, reporting its trace to sink.
func (e *Engine) Run(ctx context.Context, history []entity.Message, prompt string, sink entity.StepSink) (string, error) {
	res, err := e.RunWithResponse(ctx, history, prompt, sink)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

func (e *Engine) RunWithResponse(ctx context.Context, history []entity.Message, prompt string, sink entity.StepSink) (*RunResponse, error) {
	system, err := e.BuildSystemPrompt()
	if err != nil {
		return nil, err
	}
	messages, err := convertToMessages(history)
	if err != nil {
		return nil, err
	}

	var tools []ai.Tool
	if e.toolManager != nil {
		tools = e.toolManager.GetTools()
	}

	ctx = tool.WithEmptyCallDataStore(ctx)
	ctx = tool.WithSink(ctx, sink)

	started := time.Now()
	resp, err := genkit.Generate(
		ctx,
		e.genkit,
		ai.WithModelName(e.opts.Model),
		ai.WithSystem(system),
		ai.WithMessages(messages...),
		ai.WithPrompt(prompt),
		ai.WithTools(lo.Map(tools, func(t ai.Tool, _ int) ai.ToolRef {
			return t
		})...),
		ai.WithStreaming(func(ctx context.Context, chunk *ai.ModelResponseChunk) error {
			if text := chunk.Text(); text != "" {
				sink.Emit(entity.Step{Kind: entity.StepThought, Text: text})
			}
			return nil
		}),
		ai.WithMaxTurns(e.opts.MaxTurns),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to generate response")
	}

	var res RunResponse
	res.Text = strings.TrimSpace(resp.Text())
	if res.Text == "" {
		return nil, errors.WithStack(errors.ErrEmptyAnswer)
	}

	for _, data := range tool.GetCallData(ctx) {
		tc := ToolCall{
			Name: data.Name,
		}

		if v, err := json.Marshal(data.Arguments); err != nil {
			return nil, errors.Wrapf(err, "failed to marshal tool call arguments")
		} else {
			tc.Arguments = v
		}

		if v, err := json.Marshal(data.Result); err != nil {
			return nil, errors.Wrapf(err, "failed to marshal tool call result")
		} else {
			tc.Result = v
		}

		res.ToolCalls = append(res.ToolCalls, tc)
	}

	e.logger.Info("agent run finished",
		"model", e.opts.Model,
		"history_len", len(history),
		"tool_calls", len(res.ToolCalls),
		"elapsed", time.Since(started),
	)

	return &res, nil
}
