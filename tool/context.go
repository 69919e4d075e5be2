package tool

import (
	"context"
	"slices"
	"sync"

	"github.com/habiliai/searchchat/entity"
)

type (
	CallData struct {
		Name      string `json:"name"`
		Arguments any    `json:"arguments"`
		Result    any    `json:"result"`
	}

	callDataStore struct {
		mtx   sync.Mutex
		calls []CallData
	}

	callDataKey struct{}
	sinkKey     struct{}
)

// WithEmptyCallDataStore returns a context that records every tool call made under it.
func WithEmptyCallDataStore(ctx context.Context) context.Context {
	return context.WithValue(ctx, callDataKey{}, &callDataStore{})
}

func GetCallData(ctx context.Context) []CallData {
	store, ok := ctx.Value(callDataKey{}).(*callDataStore)
	if !ok {
		return nil
	}
	store.mtx.Lock()
	defer store.mtx.Unlock()
	return slices.Clone(store.calls)
}

func appendCallData(ctx context.Context, data CallData) {
	store, ok := ctx.Value(callDataKey{}).(*callDataStore)
	if !ok {
		return
	}
	store.mtx.Lock()
	defer store.mtx.Unlock()
	store.calls = append(store.calls, data)
}

// WithSink attaches the trace sink that tool invocations report to.
func WithSink(ctx context.Context, sink entity.StepSink) context.Context {
	return context.WithValue(ctx, sinkKey{}, sink)
}

func emit(ctx context.Context, step entity.Step) {
	if sink, ok := ctx.Value(sinkKey{}).(entity.StepSink); ok {
		sink.Emit(step)
	}
}
