package openaiapi

import (
	"encoding/json"

	"github.com/firebase/genkit/go/ai"
	goopenai "github.com/openai/openai-go"
	"github.com/pkg/errors"
)

func translateResponse(resp *goopenai.ChatCompletion) (*ai.ModelResponse, error) {
	if len(resp.Choices) == 0 {
		return nil, errors.New("model returned no choices")
	}

	r := &ai.ModelResponse{}
	translateCandidate(resp.Choices[0], r)

	r.Usage = &ai.GenerationUsage{
		InputTokens:  int(resp.Usage.PromptTokens),
		OutputTokens: int(resp.Usage.CompletionTokens),
		TotalTokens:  int(resp.Usage.TotalTokens),
	}
	r.Custom = resp
	return r, nil
}

func translateCandidate(choice goopenai.ChatCompletionChoice, r *ai.ModelResponse) {
	switch choice.FinishReason {
	case "stop", "tool_calls":
		r.FinishReason = ai.FinishReasonStop
	case "length":
		r.FinishReason = ai.FinishReasonLength
	case "content_filter":
		r.FinishReason = ai.FinishReasonBlocked
	case "function_call":
		r.FinishReason = ai.FinishReasonOther
	default:
		r.FinishReason = ai.FinishReasonUnknown
	}

	m := &ai.Message{
		Role: ai.RoleModel,
	}

	if choice.Message.Content != "" {
		m.Content = append(m.Content, ai.NewTextPart(choice.Message.Content))
	}

	for _, toolCall := range choice.Message.ToolCalls {
		m.Content = append(m.Content, ai.NewToolRequestPart(&ai.ToolRequest{
			Name:  toolCall.Function.Name,
			Input: decodeArguments(toolCall.Function.Arguments),
			Ref:   toolCall.ID,
		}))
	}

	r.Message = m
}

func decodeArguments(arguments string) any {
	input := map[string]any{}
	if arguments == "" {
		return input
	}
	if err := json.Unmarshal([]byte(arguments), &input); err != nil {
		return json.RawMessage(arguments)
	}
	return input
}
