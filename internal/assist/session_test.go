package assist

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAsker struct {
	reply string
	err   error
	calls int
}

func (f *fakeAsker) Ask(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.reply, f.err
}

type fakeSpeaker struct {
	spoken []string
	err    error
}

func (f *fakeSpeaker) Speak(text string) error {
	f.spoken = append(f.spoken, text)
	return f.err
}

func TestSession_SendAppendsBothEntries(t *testing.T) {
	asker := &fakeAsker{reply: "Apollo Blood Center has 32 units of A+."}
	s := NewSession(asker, nil)

	s.Send(context.Background(), "where can I find A+ blood?")

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, "where can I find A+ blood?", msgs[0].Text)
	assert.Equal(t, RoleAssistant, msgs[1].Role)
	assert.Equal(t, asker.reply, msgs[1].Text)
	assert.False(t, s.Processing())
}

func TestSession_FailureAppendsOneFallbackAndClearsProcessing(t *testing.T) {
	asker := &fakeAsker{err: errors.New("backend down")}
	s := NewSession(asker, nil)

	s.Send(context.Background(), "hello")

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, FallbackReply, msgs[1].Text)
	assert.False(t, s.Processing(), "processing must clear on failure")
	assert.Equal(t, 1, asker.calls, "no retry")
}

func TestSession_SpeakerFailureDoesNotTouchLog(t *testing.T) {
	asker := &fakeAsker{reply: "reply"}
	speaker := &fakeSpeaker{err: errors.New("no audio device")}
	s := NewSession(asker, speaker)

	s.Send(context.Background(), "hi")

	require.Len(t, s.Messages(), 2)
	assert.Equal(t, []string{"reply"}, speaker.spoken)
}

func TestSession_NoSpeechOnFallback(t *testing.T) {
	asker := &fakeAsker{err: errors.New("boom")}
	speaker := &fakeSpeaker{}
	s := NewSession(asker, speaker)

	s.Send(context.Background(), "hi")

	assert.Empty(t, speaker.spoken)
}

func TestClient_Ask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/voice-chat", r.URL.Path)
		_, _ = w.Write([]byte(`{"response": "O+ is available at Red Cross."}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	reply, err := client.Ask(context.Background(), "any O+ nearby?")
	require.NoError(t, err)
	assert.Equal(t, "O+ is available at Red Cross.", reply)
}

func TestClient_AskErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "Failed to process your request"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Ask(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to process your request")
}
