package webui

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/habiliai/searchchat/entity"
	"github.com/habiliai/searchchat/errors"
)

const writeWait = 10 * time.Second

// SafeConn serialises writes; tool calls may report steps concurrently.
type SafeConn struct {
	*websocket.Conn
	mu sync.Mutex
}

func (sc *SafeConn) WriteFrame(frame ServerFrame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s frame", frame.Type)
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	if err := sc.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(sc.Conn.WriteMessage(websocket.TextMessage, data))
}

func (sc *SafeConn) ReadFrame() (ClientFrame, error) {
	var frame ClientFrame
	_, data, err := sc.Conn.ReadMessage()
	if err != nil {
		return frame, err
	}
	if err := json.Unmarshal(data, &frame); err != nil {
		return frame, errors.Wrapf(errors.ErrInvalidRequest, "malformed frame: %v", err)
	}
	return frame, nil
}

// frameSink relays one submission's progress to the browser.
type frameSink struct {
	conn    *SafeConn
	onError func(error)
}

func (s *frameSink) Message(msg entity.Message) {
	s.write(ServerFrame{Type: FrameMessage, Message: &msg})
}

func (s *frameSink) Step(step entity.Step) {
	s.write(ServerFrame{Type: FrameStep, Step: &step})
}

func (s *frameSink) write(frame ServerFrame) {
	if err := s.conn.WriteFrame(frame); err != nil && s.onError != nil {
		s.onError(err)
	}
}
