package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/habiliai/searchchat/entity"
	"github.com/habiliai/searchchat/errors"
)

const GenericErrorMessage = "An error occurred. Please check your keys and try again."

type (
	// Agent produces an answer for prompt. history holds every message that
	// precedes prompt in the conversation.
	Agent interface {
		Run(ctx context.Context, history []entity.Message, prompt string, sink entity.StepSink) (string, error)
	}

	// AgentFactory builds an agent bound to the given credential.
	AgentFactory func(ctx context.Context, apiKey string) (Agent, error)

	// Sink observes one submission as it progresses. Step may be called
	// from several goroutines while the agent runs.
	Sink interface {
		Message(msg entity.Message)
		Step(step entity.Step)
	}

	Result struct {
		Answer string
	}

	// AgentError reports a failed agent invocation. Message is safe to show
	// as is; Cause carries the raw failure.
	AgentError struct {
		Message string
		Cause   error
	}

	Service struct {
		logger  *slog.Logger
		factory AgentFactory
	}
)

func (e *AgentError) Error() string {
	return fmt.Sprintf("%s %v", e.Message, e.Cause)
}

func (e *AgentError) Unwrap() error {
	return e.Cause
}

// Detail is the raw error text shown below the generic message.
func (e *AgentError) Detail() string {
	if e.Cause == nil {
		return ""
	}
	return e.Cause.Error()
}

func NewService(factory AgentFactory, logger *slog.Logger) *Service {
	return &Service{
		logger:  logger,
		factory: factory,
	}
}

// Submit runs one turn of the conversation. The user message is appended
// before the agent runs; the assistant message only when it succeeds.
func (s *Service) Submit(ctx context.Context, session *Session, prompt string, sink Sink) (*Result, error) {
	if sink == nil {
		sink = NopSink{}
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, errors.WithStack(errors.ErrEmptyPrompt)
	}
	if !session.HasCredential() {
		return nil, errors.WithStack(errors.ErrMissingCredential)
	}

	history := session.state.All()
	userMsg := entity.NewUserMessage(prompt)
	session.state.Append(userMsg)
	sink.Message(userMsg)

	logger := s.logger.With("session", session)
	logger.Info("prompt submitted", "prompt_len", len(prompt))

	started := time.Now()
	answer, err := s.run(ctx, session.Credential(), history, prompt, sink)
	if err != nil {
		logger.Warn("agent failed", "elapsed", time.Since(started), "err", err)
		return nil, &AgentError{
			Message: GenericErrorMessage,
			Cause:   err,
		}
	}

	assistantMsg := entity.NewAssistantMessage(answer)
	session.state.Append(assistantMsg)
	sink.Message(assistantMsg)
	logger.Info("answer appended", "answer_len", len(answer), "elapsed", time.Since(started))

	return &Result{Answer: answer}, nil
}

func (s *Service) run(ctx context.Context, apiKey string, history []entity.Message, prompt string, sink Sink) (answer string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("agent panicked: %v", r)
		}
	}()

	agent, err := s.factory(ctx, apiKey)
	if err != nil {
		return "", errors.Wrapf(err, "failed to create agent")
	}

	return agent.Run(ctx, history, prompt, sink.Step)
}

type NopSink struct{}

func (NopSink) Message(entity.Message) {}
func (NopSink) Step(entity.Step)       {}
