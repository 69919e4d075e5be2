package openaiapi

import (
	"encoding/json"
	"testing"

	"github.com/firebase/genkit/go/ai"
	goopenai "github.com/openai/openai-go"
	"github.com/stretchr/testify/require"
)

func systemText(t *testing.T, msg goopenai.ChatCompletionMessageParamUnion) string {
	sm, ok := msg.(goopenai.ChatCompletionSystemMessageParam)
	require.True(t, ok, "%T", msg)
	require.Len(t, sm.Content.Value, 1)
	return sm.Content.Value[0].Text.Value
}

func userText(t *testing.T, msg goopenai.ChatCompletionMessageParamUnion) string {
	um, ok := msg.(goopenai.ChatCompletionUserMessageParam)
	require.True(t, ok, "%T", msg)
	var text string
	for _, part := range um.Content.Value {
		tp, ok := part.(goopenai.ChatCompletionContentPartTextParam)
		require.True(t, ok, "%T", part)
		text += tp.Text.Value
	}
	return text
}

func assistant(t *testing.T, msg goopenai.ChatCompletionMessageParamUnion) goopenai.ChatCompletionAssistantMessageParam {
	am, ok := msg.(goopenai.ChatCompletionAssistantMessageParam)
	require.True(t, ok, "%T", msg)
	require.Equal(t, goopenai.ChatCompletionAssistantMessageParamRoleAssistant, am.Role.Value)
	return am
}

func TestConvertMessagesText(t *testing.T) {
	msgs, err := convertMessages([]*ai.Message{
		ai.NewSystemTextMessage("be brief"),
		ai.NewUserTextMessage("hi"),
		ai.NewModelTextMessage("how can I help you?"),
		ai.NewUserTextMessage("I am testing"),
	})
	require.NoError(t, err)
	require.Len(t, msgs, 4)

	require.Equal(t, "be brief", systemText(t, msgs[0]))
	require.Equal(t, "hi", userText(t, msgs[1]))

	am := assistant(t, msgs[2])
	require.Len(t, am.Content.Value, 1)
	tp, ok := am.Content.Value[0].(goopenai.ChatCompletionContentPartTextParam)
	require.True(t, ok)
	require.Equal(t, "how can I help you?", tp.Text.Value)
	require.False(t, am.ToolCalls.Present)

	require.Equal(t, "I am testing", userText(t, msgs[3]))
}

func TestConvertMessagesToolRoundTrip(t *testing.T) {
	msgs, err := convertMessages([]*ai.Message{
		{
			Role: ai.RoleModel,
			Content: []*ai.Part{ai.NewToolRequestPart(&ai.ToolRequest{
				Name:  "wikipedia",
				Input: map[string]any{"query": "machine learning"},
				Ref:   "call_1234",
			})},
		},
		{
			Role: ai.RoleTool,
			Content: []*ai.Part{ai.NewToolResponsePart(&ai.ToolResponse{
				Name:   "wikipedia",
				Ref:    "call_1234",
				Output: "Page: Machine learning",
			})},
		},
	})
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	am := assistant(t, msgs[0])
	require.False(t, am.Content.Present, "tool-only turns carry no text content")
	require.Len(t, am.ToolCalls.Value, 1)
	call := am.ToolCalls.Value[0]
	require.Equal(t, "call_1234", call.ID.Value)
	require.Equal(t, goopenai.ChatCompletionMessageToolCallTypeFunction, call.Type.Value)
	require.Equal(t, "wikipedia", call.Function.Value.Name.Value)
	require.JSONEq(t, `{"query":"machine learning"}`, call.Function.Value.Arguments.Value)

	tm, ok := msgs[1].(goopenai.ChatCompletionToolMessageParam)
	require.True(t, ok, "%T", msgs[1])
	require.Equal(t, "call_1234", tm.ToolCallID.Value)
	require.Len(t, tm.Content.Value, 1)
	require.Equal(t, "Page: Machine learning", tm.Content.Value[0].Text.Value, "string outputs are not JSON-quoted")
}

func TestConvertMessagesToolRequestWithoutInput(t *testing.T) {
	msgs, err := convertMessages([]*ai.Message{
		{
			Role:    ai.RoleModel,
			Content: []*ai.Part{ai.NewToolRequestPart(&ai.ToolRequest{Name: "search"})},
		},
	})
	require.NoError(t, err)
	call := assistant(t, msgs[0]).ToolCalls.Value[0]
	require.Equal(t, "search", call.ID.Value)
	require.Equal(t, "{}", call.Function.Value.Arguments.Value)
}

func TestConvertMessagesRejectsUnknownRole(t *testing.T) {
	_, err := convertMessages([]*ai.Message{{Role: "narrator", Content: []*ai.Part{ai.NewTextPart("x")}}})
	require.Error(t, err)
}

func TestConvertTools(t *testing.T) {
	tools := convertTools([]*ai.ToolDefinition{
		{
			Name:        "arxiv",
			Description: "search papers",
			InputSchema: map[string]any{"type": "object"},
		},
	})
	require.Len(t, tools, 1)
	require.Equal(t, goopenai.ChatCompletionToolTypeFunction, tools[0].Type.Value)
	fn := tools[0].Function.Value
	require.Equal(t, "arxiv", fn.Name.Value)
	require.Equal(t, "search papers", fn.Description.Value)
	require.Equal(t, "object", fn.Parameters.Value["type"])
}

func TestConvertRequestWireFormat(t *testing.T) {
	params, err := convertRequest("llama3-8b-8192", &ai.ModelRequest{
		Messages: []*ai.Message{
			ai.NewSystemTextMessage("be brief"),
			ai.NewUserTextMessage("What is machine learning?"),
		},
		Tools: []*ai.ToolDefinition{
			{Name: "wikipedia", Description: "search wikipedia", InputSchema: map[string]any{"type": "object"}},
		},
		Config: &ai.GenerationCommonConfig{MaxOutputTokens: 256, Temperature: 0.5},
	})
	require.NoError(t, err)

	body, err := json.Marshal(params)
	require.NoError(t, err)

	var wire struct {
		Model       string  `json:"model"`
		MaxTokens   int     `json:"max_tokens"`
		Temperature float64 `json:"temperature"`
		Messages    []struct {
			Role    string `json:"role"`
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"messages"`
		Tools []struct {
			Type     string `json:"type"`
			Function struct {
				Name string `json:"name"`
			} `json:"function"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(body, &wire), string(body))

	require.Equal(t, "llama3-8b-8192", wire.Model)
	require.Equal(t, 256, wire.MaxTokens)
	require.Equal(t, 0.5, wire.Temperature)
	require.Len(t, wire.Messages, 2)
	require.Equal(t, "system", wire.Messages[0].Role)
	require.Equal(t, "user", wire.Messages[1].Role)
	require.Equal(t, "What is machine learning?", wire.Messages[1].Content[0].Text)
	require.Len(t, wire.Tools, 1)
	require.Equal(t, "function", wire.Tools[0].Type)
	require.Equal(t, "wikipedia", wire.Tools[0].Function.Name)
}

func TestConvertRequestWithoutTools(t *testing.T) {
	params, err := convertRequest("llama3-8b-8192", &ai.ModelRequest{
		Messages: []*ai.Message{ai.NewUserTextMessage("hi")},
	})
	require.NoError(t, err)
	require.False(t, params.Tools.Present)
	require.Equal(t, "llama3-8b-8192", params.Model.Value)
}

func TestTranslateCandidateToolCalls(t *testing.T) {
	var r ai.ModelResponse
	translateCandidate(goopenai.ChatCompletionChoice{
		FinishReason: "tool_calls",
		Message: goopenai.ChatCompletionMessage{
			ToolCalls: []goopenai.ChatCompletionMessageToolCall{
				{
					ID: "call_1",
					Function: goopenai.ChatCompletionMessageToolCallFunction{
						Name:      "arxiv",
						Arguments: `{"query":"transformers"}`,
					},
				},
			},
		},
	}, &r)

	require.Equal(t, ai.FinishReasonStop, r.FinishReason)
	require.Len(t, r.Message.Content, 1)
	req := r.Message.Content[0].ToolRequest
	require.NotNil(t, req)
	require.Equal(t, "arxiv", req.Name)
	require.Equal(t, "call_1", req.Ref)
	require.Equal(t, map[string]any{"query": "transformers"}, req.Input)
}

func TestTranslateCandidateText(t *testing.T) {
	var r ai.ModelResponse
	translateCandidate(goopenai.ChatCompletionChoice{
		FinishReason: "length",
		Message:      goopenai.ChatCompletionMessage{Content: "Machine learning is..."},
	}, &r)

	require.Equal(t, ai.FinishReasonLength, r.FinishReason)
	require.Equal(t, "Machine learning is...", r.Text())
}

func TestDecodeArgumentsKeepsInvalidJSON(t *testing.T) {
	require.Equal(t, map[string]any{}, decodeArguments(""))
	require.Equal(t, json.RawMessage(`not json`), decodeArguments("not json"))
}
