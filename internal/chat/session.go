package chat

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/haemic/bloodflow/internal/common"
	"github.com/haemic/bloodflow/internal/geo"
)

// Status is the observable connection state of a session.
type Status int

const (
	// StatusDisconnected means no connection exists and none is being
	// attempted.
	StatusDisconnected Status = iota
	// StatusConnecting means a dial or handshake is in progress.
	StatusConnecting
	// StatusConnected means the session is subscribed and live.
	StatusConnected
)

// String implements fmt.Stringer for status lines.
func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

const (
	defaultReconnectDelay = 5 * time.Second
	defaultTypingTimeout  = 3 * time.Second
)

// ReverseGeocoder turns coordinates into a place name.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, latitude, longitude float64) (geo.Place, error)
}

// Options configures a chat session.
type Options struct {
	// Username is the sender name attached to every outbound message.
	Username string
	// Locator resolves coordinates for location-aware messages. nil
	// means geolocation is unavailable.
	Locator geo.Locator
	// Geocoder resolves city/state from coordinates. nil skips the
	// place lookup.
	Geocoder ReverseGeocoder
	// ReconnectDelay overrides the fixed redial delay. Zero selects
	// the default of five seconds.
	ReconnectDelay time.Duration
	// TypingTimeout overrides how long a typing indicator lingers.
	// Zero selects the default of three seconds.
	TypingTimeout time.Duration
}

// Session is a persistent chat connection. It redials forever while
// running, classifies inbound payloads, and degrades location lookups
// rather than blocking a send on them.
type Session struct {
	dialer   Dialer
	locator  geo.Locator
	geocoder ReverseGeocoder
	notify   func()
	now      func() time.Time

	username       string
	reconnectDelay time.Duration
	typingTimeout  time.Duration

	mu        sync.Mutex
	conn      Conn
	status    Status
	messages  []Message
	typing    bool
	typingSeq int
}

// NewSession creates a session that dials through the given dialer. It
// does not connect until Run is called.
func NewSession(dialer Dialer, opts Options) *Session {
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = defaultReconnectDelay
	}
	if opts.TypingTimeout <= 0 {
		opts.TypingTimeout = defaultTypingTimeout
	}
	return &Session{
		dialer:         dialer,
		locator:        opts.Locator,
		geocoder:       opts.Geocoder,
		username:       opts.Username,
		reconnectDelay: opts.ReconnectDelay,
		typingTimeout:  opts.TypingTimeout,
		now:            time.Now,
	}
}

// SetNotify registers a callback invoked after every visible change
// (new message, status transition, typing indicator). Must be called
// before Run.
func (s *Session) SetNotify(fn func()) {
	s.notify = fn
}

// Status returns the current connection state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Messages returns a snapshot of the log.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Typing reports whether the remote side is typing.
func (s *Session) Typing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typing
}

// Run connects and keeps the session alive until ctx is cancelled,
// redialing after every failure or drop with a fixed delay. It blocks;
// callers run it in a goroutine.
func (s *Session) Run(ctx context.Context) {
	defer s.setStatus(StatusDisconnected)

	for {
		if ctx.Err() != nil {
			return
		}
		s.setStatus(StatusConnecting)

		if err := s.connectOnce(ctx); err != nil {
			slog.Debug("chat connection failed", "error", err)
			s.appendSystem("Connection failed. Retrying...")
		}
		s.setStatus(StatusDisconnected)

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.reconnectDelay):
		}
	}
}

// connectOnce dials, joins, subscribes, and consumes frames until the
// connection drops or ctx is cancelled.
func (s *Session) connectOnce(ctx context.Context) error {
	conn, err := s.dialer.Dial(ctx)
	if err != nil {
		return err
	}
	defer func() {
		s.mu.Lock()
		s.conn = nil
		s.mu.Unlock()
		_ = conn.Close()
	}()

	join, _ := json.Marshal(Envelope{Sender: s.username, Type: TypeJoin})
	if err := conn.Publish(DestAddUser, join); err != nil {
		return err
	}

	frames, err := conn.Subscribe(TopicPublic)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	s.setStatus(StatusConnected)
	s.appendSystem("Connected to chat.")

	for {
		select {
		case <-ctx.Done():
			return nil
		case frame, ok := <-frames:
			if !ok {
				s.appendSystem("Connection lost.")
				return nil
			}
			if frame.Err != nil {
				slog.Debug("chat subscription error", "error", frame.Err)
				s.appendSystem("Connection lost.")
				return nil
			}
			s.handleFrame(frame.Body)
		}
	}
}

// Send publishes a message. Location-aware messages resolve coordinates
// and a place name first, degrading step by step when either lookup
// fails; a send is never blocked or failed by location machinery.
// Transport errors land in the log as system messages.
func (s *Session) Send(ctx context.Context, text string) {
	env := Envelope{
		Content: text,
		Sender:  s.username,
		Type:    TypeMessage,
	}

	if NeedsLocation(text) {
		s.attachLocation(ctx, &env)
	}

	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		slog.Debug("chat message dropped", "error", common.ErrNotConnected)
		s.appendSystem("Not connected. Message not sent.")
		return
	}

	body, _ := json.Marshal(env)
	if err := conn.Publish(DestSendMessage, body); err != nil {
		slog.Debug("chat publish failed", "error", err)
		s.appendSystem("Failed to send message.")
	}
}

// attachLocation fills coordinates and, when possible, the place name.
// A locator failure leaves the envelope untouched and logs one system
// diagnostic; a geocoder failure sends coordinates without a place.
func (s *Session) attachLocation(ctx context.Context, env *Envelope) {
	if s.locator == nil {
		s.appendSystem("Location unavailable. Sending without it.")
		return
	}
	pos, err := s.locator.Locate(ctx)
	if err != nil {
		slog.Debug("geolocation failed", "error", err)
		s.appendSystem("Location unavailable. Sending without it.")
		return
	}
	env.Latitude = &pos.Latitude
	env.Longitude = &pos.Longitude

	if s.geocoder == nil {
		return
	}
	place, err := s.geocoder.Reverse(ctx, pos.Latitude, pos.Longitude)
	if err != nil {
		slog.Debug("reverse geocoding failed", "error", err)
		return
	}
	env.City = place.City
	env.State = place.State
}

func (s *Session) handleFrame(body []byte) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		slog.Debug("undecodable chat frame", "error", err)
		return
	}

	if env.Type == TypeTyping {
		s.setTyping()
		return
	}

	msg := Message{
		Timestamp: s.now(),
		Sender:    env.Sender,
		Type:      env.Type,
		Payload:   Classify(env),
	}

	s.mu.Lock()
	s.typing = false
	s.typingSeq++
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
	s.changed()
}

// setTyping raises the typing indicator and arms a timer to clear it.
// A newer typing frame or a real message supersedes the timer.
func (s *Session) setTyping() {
	s.mu.Lock()
	s.typing = true
	s.typingSeq++
	seq := s.typingSeq
	s.mu.Unlock()
	s.changed()

	time.AfterFunc(s.typingTimeout, func() {
		s.mu.Lock()
		if s.typingSeq != seq {
			s.mu.Unlock()
			return
		}
		s.typing = false
		s.mu.Unlock()
		s.changed()
	})
}

func (s *Session) setStatus(status Status) {
	s.mu.Lock()
	if s.status == status {
		s.mu.Unlock()
		return
	}
	s.status = status
	s.mu.Unlock()
	s.changed()
}

func (s *Session) appendSystem(text string) {
	s.mu.Lock()
	s.messages = append(s.messages, Message{
		Timestamp: s.now(),
		System:    true,
		Payload:   Payload{Kind: KindPlainText, Text: text},
	})
	s.mu.Unlock()
	s.changed()
}

func (s *Session) changed() {
	if s.notify != nil {
		s.notify()
	}
}
