package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/habiliai/searchchat/chat"
	"github.com/habiliai/searchchat/entity"
	"github.com/habiliai/searchchat/errors"
	"github.com/habiliai/searchchat/internal/stringutils"
	"github.com/spf13/cobra"
)

func newChatCmd(flags *rootFlags) *cobra.Command {
	params := &struct {
		APIKey string
	}{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the agent in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(flags)
			if err != nil {
				return err
			}

			session := app.NewSession()
			apiKey := params.APIKey
			if apiKey == "" {
				apiKey = os.Getenv("GROQ_API_KEY")
			}
			session.SetCredential(apiKey)

			return runREPL(cmd, app.Service(), session)
		},
	}

	cmd.Flags().StringVar(&params.APIKey, "api-key", "", "Groq API key (defaults to $GROQ_API_KEY)")

	return cmd
}

func runREPL(cmd *cobra.Command, service *chat.Service, session *chat.Session) error {
	out := cmd.OutOrStdout()
	for _, msg := range session.Messages() {
		fmt.Fprintf(out, "%s: %s\n", msg.Role, msg.Content)
	}
	if !session.HasCredential() {
		return errors.Wrapf(errors.ErrMissingCredential, "set --api-key or GROQ_API_KEY")
	}

	sink := &terminalSink{w: out}
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		prompt := scanner.Text()
		if strings.TrimSpace(prompt) == "" {
			continue
		}

		res, err := service.Submit(cmd.Context(), session, prompt, sink)
		var agentErr *chat.AgentError
		switch {
		case err == nil:
			fmt.Fprintf(out, "\n%s: %s\n", entity.RoleAssistant, res.Answer)
		case errors.As(err, &agentErr):
			fmt.Fprintf(out, "\n%s\n%s\n", agentErr.Message, agentErr.Detail())
		default:
			return err
		}
		if cmd.Context().Err() != nil {
			return nil
		}
	}
}

type terminalSink struct {
	w       io.Writer
	mtx     sync.Mutex
	thought bool
}

func (t *terminalSink) Message(entity.Message) {}

func (t *terminalSink) Step(step entity.Step) {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	if step.Kind == entity.StepThought {
		if !t.thought {
			fmt.Fprint(t.w, "  | ")
			t.thought = true
		}
		fmt.Fprint(t.w, strings.ReplaceAll(step.Text, "\n", "\n  | "))
		return
	}
	if t.thought {
		fmt.Fprintln(t.w)
		t.thought = false
	}

	switch step.Kind {
	case entity.StepAction:
		fmt.Fprintf(t.w, "  > %s(%q)\n", step.Tool, step.Input)
	case entity.StepObservation:
		fmt.Fprintf(t.w, "  < %s\n", oneLine(step.Text, 160))
	case entity.StepError:
		fmt.Fprintf(t.w, "  ! %s: %s\n", step.Tool, step.Text)
	}
}

func oneLine(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if cut := stringutils.Truncate(s, max); cut != s {
		return cut + "..."
	}
	return s
}
