package engine

import (
	_ "embed"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/firebase/genkit/go/ai"
	"github.com/habiliai/searchchat/entity"
	"github.com/habiliai/searchchat/errors"
)

var (
	//go:embed data/instructions/system.md.tmpl
	systemInst     string
	systemInstTmpl = template.Must(template.New("system").Funcs(funcMap()).Parse(systemInst))
)

type (
	AvailableTool struct {
		Name        string
		Description string
	}

	SystemPromptValues struct {
		Name        string
		Instruction string
		Tools       []AvailableTool
	}
)

func funcMap() template.FuncMap {
	return sprig.TxtFuncMap()
}

func (e *Engine) BuildSystemPrompt() (string, error) {
	values := SystemPromptValues{
		Name:        e.opts.Name,
		Instruction: e.opts.Instruction,
	}
	if e.toolManager != nil {
		for _, adapter := range e.toolManager.Adapters() {
			values.Tools = append(values.Tools, AvailableTool{
				Name:        adapter.Name(),
				Description: adapter.Description(),
			})
		}
	}

	var buf strings.Builder
	if err := systemInstTmpl.Execute(&buf, values); err != nil {
		return "", errors.Wrapf(err, "failed to render system instructions")
	}
	return buf.String(), nil
}

// convertToMessages maps the transcript onto genkit roles. Messages with an
// unknown role are rejected.
func convertToMessages(history []entity.Message) ([]*ai.Message, error) {
	messages := make([]*ai.Message, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case entity.RoleUser:
			messages = append(messages, ai.NewUserTextMessage(msg.Content))
		case entity.RoleAssistant:
			messages = append(messages, ai.NewModelTextMessage(msg.Content))
		default:
			return nil, errors.Wrapf(errors.ErrInvalidRequest, "unknown message role %q", msg.Role)
		}
	}
	return messages, nil
}
