package tool

import (
	"context"
	"log/slog"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/habiliai/searchchat/entity"
	"github.com/habiliai/searchchat/errors"
	"github.com/samber/lo"
)

type Manager struct {
	logger   *slog.Logger
	genkit   *genkit.Genkit
	adapters []Adapter
	tools    []ai.Tool
}

// NewManager defines one genkit tool per adapter, in the given order.
func NewManager(g *genkit.Genkit, logger *slog.Logger, adapters ...Adapter) (*Manager, error) {
	m := &Manager{
		logger:   logger,
		genkit:   g,
		adapters: adapters,
	}

	seen := make(map[string]struct{}, len(adapters))
	for _, adapter := range adapters {
		if _, ok := seen[adapter.Name()]; ok {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "tool %s registered twice", adapter.Name())
		}
		seen[adapter.Name()] = struct{}{}

		m.tools = append(m.tools, m.registerLocalTool(adapter))
	}

	return m, nil
}

func (m *Manager) GetTool(name string) ai.Tool {
	if !lo.ContainsBy(m.adapters, func(a Adapter) bool { return a.Name() == name }) {
		return nil
	}
	return genkit.LookupTool(m.genkit, name)
}

func (m *Manager) GetTools() []ai.Tool {
	return m.tools
}

func (m *Manager) Adapters() []Adapter {
	return m.adapters
}

func (m *Manager) registerLocalTool(adapter Adapter) ai.Tool {
	name := adapter.Name()
	return genkit.DefineTool(
		m.genkit,
		name,
		adapter.Description(),
		func(ctx *ai.ToolContext, input Request) (string, error) {
			emit(ctx, entity.Step{Kind: entity.StepAction, Tool: name, Input: input.Query})

			started := time.Now()
			out, err := invoke(ctx, adapter, input.Query)
			if err != nil {
				m.logger.Warn("tool failed", "tool", name, "elapsed", time.Since(started), "err", err)
				emit(ctx, entity.Step{Kind: entity.StepError, Tool: name, Input: input.Query, Text: err.Error()})
				return "", errors.Wrapf(err, "failed to run tool %s", name)
			}

			m.logger.Debug("tool finished", "tool", name, "elapsed", time.Since(started), "output_len", len(out))
			emit(ctx, entity.Step{Kind: entity.StepObservation, Tool: name, Input: input.Query, Text: out})
			appendCallData(ctx, CallData{
				Name:      name,
				Arguments: input,
				Result:    out,
			})
			return out, nil
		},
	)
}

// invoke runs the adapter and turns a panic into an error. Genkit runs each
// tool call on its own goroutine, out of reach of any recover in the caller.
func invoke(ctx context.Context, adapter Adapter, query string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("tool %s panicked: %v", adapter.Name(), r)
		}
	}()
	return adapter.Invoke(ctx, query)
}
