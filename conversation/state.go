// Package conversation holds the session-scoped chat transcript.
package conversation

import (
	"slices"

	"github.com/habiliai/searchchat/entity"
)

// State is an append-only, ordered list of messages. It has a single writer
// per session and performs no locking of its own.
type State struct {
	messages []entity.Message
}

// New returns a state seeded with one assistant greeting.
func New(greeting string) *State {
	return &State{
		messages: []entity.Message{entity.NewAssistantMessage(greeting)},
	}
}

func (s *State) Append(msg entity.Message) {
	s.messages = append(s.messages, msg)
}

// All returns a copy of every message in insertion order.
func (s *State) All() []entity.Message {
	return slices.Clone(s.messages)
}

func (s *State) Len() int {
	return len(s.messages)
}

// Last returns the most recent message. The state is never empty.
func (s *State) Last() entity.Message {
	return s.messages[len(s.messages)-1]
}
