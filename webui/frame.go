package webui

import (
	"github.com/habiliai/searchchat/entity"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type FrameType string

const (
	// client -> server
	FrameCredential FrameType = "credential"
	FramePrompt     FrameType = "prompt"

	// server -> client
	FrameHistory            FrameType = "history"
	FrameCredentialRequired FrameType = "credential_required"
	FrameCredentialOK       FrameType = "credential_ok"
	FrameMessage            FrameType = "message"
	FrameStep               FrameType = "step"
	FrameAnswer             FrameType = "answer"
	FrameError              FrameType = "error"
	FrameDone               FrameType = "done"
)

const CredentialWarning = "Please enter your Groq API Key to proceed."

type (
	ClientFrame struct {
		Type  FrameType `json:"type"`
		Value string    `json:"value,omitempty"`
		Text  string    `json:"text,omitempty"`
	}

	ServerFrame struct {
		Type     FrameType        `json:"type"`
		Text     string           `json:"text,omitempty"`
		Detail   string           `json:"detail,omitempty"`
		Message  *entity.Message  `json:"message,omitempty"`
		Messages []entity.Message `json:"messages,omitempty"`
		Step     *entity.Step     `json:"step,omitempty"`
	}
)
