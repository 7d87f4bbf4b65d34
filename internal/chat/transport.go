package chat

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-stomp/stomp/v3"
	"github.com/gorilla/websocket"
)

// Publish destinations and the broadcast topic of the chat backend.
const (
	DestAddUser     = "/app/chat.addUser"
	DestSendMessage = "/app/chat.sendMessage"
	TopicPublic     = "/topic/public"
)

const heartbeatInterval = 4 * time.Second

// Frame is one inbound broadcast frame, or a terminal subscription
// error.
type Frame struct {
	Err  error
	Body []byte
}

// Conn is an established chat connection.
type Conn interface {
	// Publish sends a JSON body to a destination.
	Publish(destination string, body []byte) error
	// Subscribe starts consuming a topic. The channel closes when the
	// connection dies.
	Subscribe(destination string) (<-chan Frame, error)
	Close() error
}

// Dialer establishes chat connections. The session redials through it
// on every reconnect attempt.
type Dialer interface {
	Dial(ctx context.Context) (Conn, error)
}

// StompDialer dials a websocket URL and speaks STOMP over it, with
// symmetric heartbeats.
type StompDialer struct {
	URL string
}

// Dial connects the websocket and performs the STOMP handshake.
func (d StompDialer) Dial(ctx context.Context) (Conn, error) {
	wsConn, _, err := websocket.DefaultDialer.DialContext(ctx, d.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial failed: %w", err)
	}

	stompConn, err := stomp.Connect(
		&wsStream{conn: wsConn},
		stomp.ConnOpt.HeartBeat(heartbeatInterval, heartbeatInterval),
	)
	if err != nil {
		_ = wsConn.Close()
		return nil, fmt.Errorf("stomp connect failed: %w", err)
	}

	return &stompChatConn{ws: wsConn, stomp: stompConn}, nil
}

type stompChatConn struct {
	ws    *websocket.Conn
	stomp *stomp.Conn
}

func (c *stompChatConn) Publish(destination string, body []byte) error {
	return c.stomp.Send(destination, "application/json", body)
}

func (c *stompChatConn) Subscribe(destination string) (<-chan Frame, error) {
	sub, err := c.stomp.Subscribe(destination, stomp.AckAuto)
	if err != nil {
		return nil, fmt.Errorf("subscribe failed: %w", err)
	}

	frames := make(chan Frame)
	go func() {
		defer close(frames)
		for msg := range sub.C {
			if msg.Err != nil {
				frames <- Frame{Err: msg.Err}
				return
			}
			frames <- Frame{Body: msg.Body}
		}
	}()
	return frames, nil
}

func (c *stompChatConn) Close() error {
	if err := c.stomp.Disconnect(); err != nil {
		return c.ws.Close()
	}
	return c.ws.Close()
}

// wsStream adapts a websocket connection to the io.ReadWriteCloser the
// STOMP library expects, reading across message boundaries.
type wsStream struct {
	conn   *websocket.Conn
	reader io.Reader
}

func (w *wsStream) Read(p []byte) (int, error) {
	for {
		if w.reader == nil {
			_, r, err := w.conn.NextReader()
			if err != nil {
				return 0, err
			}
			w.reader = r
		}
		n, err := w.reader.Read(p)
		if err == io.EOF {
			w.reader = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (w *wsStream) Write(p []byte) (int, error) {
	if err := w.conn.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *wsStream) Close() error {
	return w.conn.Close()
}
