package tool

import (
	"context"
)

type (
	// Adapter is a single search capability exposed to the agent.
	Adapter interface {
		Name() string
		Description() string
		Invoke(ctx context.Context, query string) (string, error)
	}

	Request struct {
		Query string `json:"query" jsonschema:"required,description=The search query"`
	}
)
