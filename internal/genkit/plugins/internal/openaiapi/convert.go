package openaiapi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"
	goopenai "github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"
)

func convertRequest(model string, input *ai.ModelRequest) (goopenai.ChatCompletionNewParams, error) {
	messages, err := convertMessages(input.Messages)
	if err != nil {
		return goopenai.ChatCompletionNewParams{}, err
	}

	params := goopenai.ChatCompletionNewParams{
		Model:    goopenai.F(shared.ChatModel(model)),
		Messages: goopenai.F(messages),
	}

	if tools := convertTools(input.Tools); len(tools) > 0 {
		params.Tools = goopenai.F(tools)
	}

	if input.Config != nil {
		jsonBytes, err := json.Marshal(input.Config)
		if err != nil {
			return goopenai.ChatCompletionNewParams{}, err
		}
		var c ai.GenerationCommonConfig
		if err := json.Unmarshal(jsonBytes, &c); err == nil {
			if c.MaxOutputTokens != 0 {
				params.MaxTokens = goopenai.Int(int64(c.MaxOutputTokens))
			}
			if len(c.StopSequences) > 0 {
				params.Stop = goopenai.F[goopenai.ChatCompletionNewParamsStopUnion](goopenai.ChatCompletionNewParamsStopArray(c.StopSequences))
			}
			if c.Temperature != 0 {
				params.Temperature = goopenai.Float(c.Temperature)
			}
			if c.TopP != 0 {
				params.TopP = goopenai.Float(c.TopP)
			}
		}
	}

	return params, nil
}

func convertMessages(messages []*ai.Message) ([]goopenai.ChatCompletionMessageParamUnion, error) {
	var msgs []goopenai.ChatCompletionMessageParamUnion

	for _, m := range messages {
		switch m.Role {
		case ai.RoleSystem:
			msgs = append(msgs, goopenai.SystemMessage(joinText(m.Content)))
		case ai.RoleUser:
			parts := make([]goopenai.ChatCompletionContentPartUnionParam, 0, len(m.Content))
			for _, p := range m.Content {
				if !p.IsText() {
					return nil, fmt.Errorf("unsupported part type in a user message: %v", p.Kind)
				}
				parts = append(parts, goopenai.TextPart(p.Text))
			}
			msgs = append(msgs, goopenai.UserMessageParts(parts...))
		case ai.RoleModel:
			toolCalls, err := convertToolCalls(m.Content)
			if err != nil {
				return nil, err
			}
			am := goopenai.ChatCompletionAssistantMessageParam{
				Role: goopenai.F(goopenai.ChatCompletionAssistantMessageParamRoleAssistant),
			}
			if text := joinText(m.Content); text != "" {
				am.Content = goopenai.F([]goopenai.ChatCompletionAssistantMessageParamContentUnion{
					goopenai.TextPart(text),
				})
			}
			if len(toolCalls) > 0 {
				am.ToolCalls = goopenai.F(toolCalls)
			}
			msgs = append(msgs, am)
		case ai.RoleTool:
			for _, p := range m.Content {
				if !p.IsToolResponse() {
					continue
				}
				output, err := toolOutputText(p.ToolResponse.Output)
				if err != nil {
					return nil, err
				}
				msgs = append(msgs, goopenai.ToolMessage(refOrName(p.ToolResponse.Ref, p.ToolResponse.Name), output))
			}
		default:
			return nil, fmt.Errorf("unknown role %s", m.Role)
		}
	}

	return msgs, nil
}

func joinText(parts []*ai.Part) string {
	var sb strings.Builder
	for _, p := range parts {
		if p.IsText() {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}

// toolOutputText passes plain strings through untouched so the model sees
// the tool's text rather than a JSON-quoted string.
func toolOutputText(output any) (string, error) {
	if s, ok := output.(string); ok {
		return s, nil
	}
	b, err := json.Marshal(output)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func refOrName(ref, name string) string {
	if ref != "" {
		return ref
	}
	return name
}

func convertToolCalls(content []*ai.Part) ([]goopenai.ChatCompletionMessageToolCallParam, error) {
	var toolCalls []goopenai.ChatCompletionMessageToolCallParam
	for _, p := range content {
		if !p.IsToolRequest() {
			continue
		}

		// The API requires arguments even when the tool takes none.
		args := "{}"
		if p.ToolRequest.Input != nil {
			b, err := json.Marshal(p.ToolRequest.Input)
			if err != nil {
				return nil, err
			}
			args = string(b)
		}

		toolCalls = append(toolCalls, goopenai.ChatCompletionMessageToolCallParam{
			ID:   goopenai.F(refOrName(p.ToolRequest.Ref, p.ToolRequest.Name)),
			Type: goopenai.F(goopenai.ChatCompletionMessageToolCallTypeFunction),
			Function: goopenai.F(goopenai.ChatCompletionMessageToolCallFunctionParam{
				Name:      goopenai.F(p.ToolRequest.Name),
				Arguments: goopenai.F(args),
			}),
		})
	}
	return toolCalls, nil
}

func convertTools(inTools []*ai.ToolDefinition) []goopenai.ChatCompletionToolParam {
	tools := make([]goopenai.ChatCompletionToolParam, 0, len(inTools))
	for _, t := range inTools {
		tools = append(tools, goopenai.ChatCompletionToolParam{
			Type: goopenai.F(goopenai.ChatCompletionToolTypeFunction),
			Function: goopenai.F(shared.FunctionDefinitionParam{
				Name:        goopenai.F(t.Name),
				Description: goopenai.F(t.Description),
				Parameters:  goopenai.F(shared.FunctionParameters(t.InputSchema)),
				Strict:      goopenai.F(false),
			}),
		})
	}
	return tools
}
