package assist

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Role identifies the author of a log entry.
type Role string

const (
	// RoleUser marks messages typed (or spoken) by the user.
	RoleUser Role = "user"
	// RoleAssistant marks replies from the assistant backend.
	RoleAssistant Role = "assistant"
)

// Message is one entry in the session's append-only log.
type Message struct {
	Timestamp time.Time
	Role      Role
	Text      string
}

// FallbackReply is appended when the assistant request fails.
const FallbackReply = "Sorry, I couldn't process your request. Please try again."

// Asker is the backend dependency of a session.
type Asker interface {
	Ask(ctx context.Context, message string) (string, error)
}

// Speaker voices assistant replies where the environment supports it.
// Speaking is strictly best-effort; failures never touch the log.
type Speaker interface {
	Speak(text string) error
}

// Session holds an ordered message log and a processing flag. One
// backend request per Send; no retry.
type Session struct {
	client   Asker
	speaker  Speaker
	now      func() time.Time
	messages []Message
	subs     map[int]func()
	nextSub  int
	mu       sync.Mutex
	busy     bool
}

// NewSession creates a session over the given backend. speaker may be
// nil when speech synthesis is unavailable.
func NewSession(client Asker, speaker Speaker) *Session {
	return &Session{
		client:  client,
		speaker: speaker,
		now:     time.Now,
	}
}

// Subscribe registers a callback invoked after every log or processing
// change. The returned function cancels the subscription.
func (s *Session) Subscribe(fn func()) func() {
	s.mu.Lock()
	if s.subs == nil {
		s.subs = make(map[int]func())
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Session) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Messages returns a snapshot of the log.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Processing reports whether a send is in flight.
func (s *Session) Processing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Send appends the user's message, asks the backend, and appends either
// the reply or the fixed fallback. The processing flag clears on both
// paths.
func (s *Session) Send(ctx context.Context, text string) {
	s.mu.Lock()
	s.messages = append(s.messages, Message{Role: RoleUser, Text: text, Timestamp: s.now()})
	s.busy = true
	s.mu.Unlock()
	s.notify()

	reply, err := s.client.Ask(ctx, text)
	if err != nil {
		slog.Warn("assistant request failed", "error", err)
		reply = FallbackReply
	}

	s.mu.Lock()
	s.messages = append(s.messages, Message{Role: RoleAssistant, Text: reply, Timestamp: s.now()})
	s.busy = false
	s.mu.Unlock()
	s.notify()

	if err == nil && s.speaker != nil {
		if speakErr := s.speaker.Speak(reply); speakErr != nil {
			slog.Debug("speech synthesis failed", "error", speakErr)
		}
	}
}
