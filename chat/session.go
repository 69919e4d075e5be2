// Package chat implements the credential gate and the submission cycle of a
// single chat session.
package chat

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/habiliai/searchchat/conversation"
	"github.com/habiliai/searchchat/entity"
)

// Session is owned by one connection. It is not safe for concurrent use.
type Session struct {
	ID string

	credential string
	state      *conversation.State
}

func NewSession(greeting string) *Session {
	return &Session{
		ID:    uuid.NewString(),
		state: conversation.New(greeting),
	}
}

// SetCredential replaces the session's Groq API key. The value is not validated.
func (s *Session) SetCredential(credential string) {
	s.credential = credential
}

func (s *Session) Credential() string {
	return s.credential
}

func (s *Session) HasCredential() bool {
	return s.credential != ""
}

func (s *Session) Messages() []entity.Message {
	return s.state.All()
}

func (s *Session) State() *conversation.State {
	return s.state
}

// LogValue keeps the credential out of logs.
func (s *Session) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", s.ID),
		slog.Bool("has_credential", s.HasCredential()),
		slog.Int("messages", s.state.Len()),
	)
}

var _ slog.LogValuer = (*Session)(nil)
