package openaiapi

import (
	"context"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core"
	"github.com/firebase/genkit/go/genkit"
	goopenai "github.com/openai/openai-go"
	"github.com/pkg/errors"
)

func DefineModel(g *genkit.Genkit, client *goopenai.Client, labelPrefix, provider, name string, caps ai.ModelSupports) ai.Model {
	meta := &ai.ModelInfo{
		Label:    labelPrefix + " - " + name,
		Supports: &caps,
	}
	return genkit.DefineModel(
		g,
		provider,
		name,
		meta,
		func(ctx context.Context, req *ai.ModelRequest, cb core.StreamCallback[*ai.ModelResponseChunk]) (*ai.ModelResponse, error) {
			if cb != nil {
				return generateStream(ctx, client, name, req, cb)
			}
			return generate(ctx, client, name, req)
		},
	)
}

func generate(
	ctx context.Context,
	client *goopenai.Client,
	model string,
	input *ai.ModelRequest,
) (*ai.ModelResponse, error) {
	req, err := convertRequest(model, input)
	if err != nil {
		return nil, err
	}

	res, err := client.Chat.Completions.New(ctx, req)
	if err != nil {
		return nil, err
	}

	r, err := translateResponse(res)
	if err != nil {
		return nil, err
	}
	r.Request = input
	return r, nil
}

// generateStream forwards text deltas to cb as they arrive and returns the
// accumulated completion, tool calls included.
func generateStream(
	ctx context.Context,
	client *goopenai.Client,
	model string,
	input *ai.ModelRequest,
	cb core.StreamCallback[*ai.ModelResponseChunk],
) (*ai.ModelResponse, error) {
	req, err := convertRequest(model, input)
	if err != nil {
		return nil, err
	}

	stream := client.Chat.Completions.NewStreaming(ctx, req)
	defer stream.Close()

	acc := goopenai.ChatCompletionAccumulator{}
	for stream.Next() {
		chunk := stream.Current()
		acc.AddChunk(chunk)

		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}
		if err := cb(ctx, &ai.ModelResponseChunk{
			Content: []*ai.Part{ai.NewTextPart(chunk.Choices[0].Delta.Content)},
		}); err != nil {
			return nil, errors.Wrapf(err, "stream callback failed")
		}
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}

	r, err := translateResponse(&acc.ChatCompletion)
	if err != nil {
		return nil, err
	}
	r.Request = input
	return r, nil
}
