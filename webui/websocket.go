package webui

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/habiliai/searchchat/chat"
	"github.com/habiliai/searchchat/errors"
)

const maxFrameSize = 64 << 10

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type chatHandler struct {
	logger   *slog.Logger
	service  *chat.Service
	greeting string
}

// ServeHTTP runs one chat session for the lifetime of the connection. Frames
// are handled one at a time, so the session has a single writer.
func (h *chatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rawConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	conn := &SafeConn{Conn: rawConn}
	defer conn.Close()
	conn.SetReadLimit(maxFrameSize)

	session := chat.NewSession(h.greeting)
	logger := h.logger.With("session", session.ID)
	logger.Info("session opened", "remote", r.RemoteAddr)
	defer logger.Info("session closed")

	if err := h.greet(conn, session); err != nil {
		logger.Warn("failed to send history", "err", err)
		return
	}

	for {
		frame, err := conn.ReadFrame()
		switch {
		case errors.Is(err, errors.ErrInvalidRequest):
			if err := conn.WriteFrame(ServerFrame{Type: FrameError, Text: "Invalid request.", Detail: err.Error()}); err != nil {
				return
			}
			continue
		case err != nil:
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read failed", "err", err)
			}
			return
		}

		if err := h.handleFrame(r.Context(), conn, session, frame, logger); err != nil {
			logger.Warn("websocket write failed", "err", err)
			return
		}
	}
}

func (h *chatHandler) greet(conn *SafeConn, session *chat.Session) error {
	if err := conn.WriteFrame(ServerFrame{Type: FrameHistory, Messages: session.Messages()}); err != nil {
		return err
	}
	return conn.WriteFrame(ServerFrame{Type: FrameCredentialRequired, Text: CredentialWarning})
}

func (h *chatHandler) handleFrame(ctx context.Context, conn *SafeConn, session *chat.Session, frame ClientFrame, logger *slog.Logger) error {
	switch frame.Type {
	case FrameCredential:
		session.SetCredential(frame.Value)
		if !session.HasCredential() {
			return conn.WriteFrame(ServerFrame{Type: FrameCredentialRequired, Text: CredentialWarning})
		}
		return conn.WriteFrame(ServerFrame{Type: FrameCredentialOK})
	case FramePrompt:
		return h.submit(ctx, conn, session, frame.Text, logger)
	default:
		return conn.WriteFrame(ServerFrame{Type: FrameError, Text: "Invalid request.", Detail: "unknown frame type " + string(frame.Type)})
	}
}

func (h *chatHandler) submit(ctx context.Context, conn *SafeConn, session *chat.Session, prompt string, logger *slog.Logger) error {
	sink := &frameSink{
		conn: conn,
		onError: func(err error) {
			logger.Debug("dropped frame", "err", err)
		},
	}

	res, err := h.service.Submit(ctx, session, prompt, sink)
	var agentErr *chat.AgentError
	switch {
	case err == nil:
		if err := conn.WriteFrame(ServerFrame{Type: FrameAnswer, Text: res.Answer}); err != nil {
			return err
		}
	case errors.Is(err, errors.ErrEmptyPrompt):
	case errors.Is(err, errors.ErrMissingCredential):
		if err := conn.WriteFrame(ServerFrame{Type: FrameCredentialRequired, Text: CredentialWarning}); err != nil {
			return err
		}
	case errors.As(err, &agentErr):
		if err := conn.WriteFrame(ServerFrame{Type: FrameError, Text: agentErr.Message, Detail: agentErr.Detail()}); err != nil {
			return err
		}
	default:
		if err := conn.WriteFrame(ServerFrame{Type: FrameError, Text: chat.GenericErrorMessage, Detail: err.Error()}); err != nil {
			return err
		}
	}

	return conn.WriteFrame(ServerFrame{Type: FrameDone})
}
