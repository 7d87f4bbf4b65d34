package tui

// Store refresh messages. The stores mutate themselves inside the
// command; these just tell the model to re-snapshot.
type statesLoadedMsg struct{}

type districtsLoadedMsg struct{}

type stocksLoadedMsg struct{}

// chatEventMsg is pushed into the program whenever the chat session
// changes (new message, status transition, typing indicator).
type chatEventMsg struct{}

// chatSentMsg reports a completed outbound send.
type chatSentMsg struct{}
