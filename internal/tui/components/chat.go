package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/haemic/bloodflow/internal/chat"
	"github.com/haemic/bloodflow/internal/tui/themes"
)

// ChatSendMsg is sent when the user submits a chat message.
type ChatSendMsg struct {
	Text string
}

// ChatViewModel renders the persistent chat session: the message log,
// the connection status, a typing indicator, and an input line.
type ChatViewModel struct {
	theme    themes.Theme
	messages []chat.Message
	status   chat.Status
	input    textinput.Model
	width    int
	height   int
	typing   bool
}

// NewChatView creates an empty chat view.
func NewChatView(theme themes.Theme) ChatViewModel {
	input := textinput.New()
	input.Placeholder = "Ask about blood availability..."
	input.CharLimit = 200

	return ChatViewModel{
		theme:  theme,
		input:  input,
		width:  80,
		height: 24,
	}
}

// SetSession replaces the rendered snapshot of the session.
func (m *ChatViewModel) SetSession(messages []chat.Message, status chat.Status, typing bool) {
	m.messages = messages
	m.status = status
	m.typing = typing
}

// Focus prepares the input line for typing.
func (m *ChatViewModel) Focus() tea.Cmd {
	m.input.Focus()
	return textinput.Blink
}

// Blur releases input focus.
func (m *ChatViewModel) Blur() {
	m.input.Blur()
}

// Update handles messages.
func (m ChatViewModel) Update(msg tea.Msg) (ChatViewModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if keyMsg.String() == "enter" {
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		m.input.SetValue("")
		return m, func() tea.Msg { return ChatSendMsg{Text: text} }
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat panel.
func (m ChatViewModel) View() string {
	sections := []string{
		m.renderStatus(),
		m.renderLog(),
	}
	if m.typing {
		sections = append(sections, m.theme.StatusPending.Render("assistant is typing..."))
	}
	sections = append(sections, m.input.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ChatViewModel) renderStatus() string {
	style := m.theme.StatusError
	switch m.status {
	case chat.StatusConnected:
		style = m.theme.StatusSuccess
	case chat.StatusConnecting:
		style = m.theme.StatusPending
	}
	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		m.theme.Title.Render("Chat "),
		style.Render("● "+m.status.String()),
	)
}

// renderLog shows as many trailing messages as fit the viewport.
func (m ChatViewModel) renderLog() string {
	budget := m.logHeight()

	var blocks []string
	used := 0
	for i := len(m.messages) - 1; i >= 0 && used < budget; i-- {
		block := m.renderMessage(m.messages[i])
		used += lipgloss.Height(block)
		blocks = append([]string{block}, blocks...)
	}

	if len(blocks) == 0 {
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Render("No messages yet.")
	}
	return strings.Join(blocks, "\n")
}

func (m ChatViewModel) renderMessage(msg chat.Message) string {
	if msg.System {
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Italic(true).
			Render("· " + msg.Payload.Text)
	}

	sender := msg.Sender
	if sender == "" {
		sender = "assistant"
	}
	head := m.theme.Bold.Render(sender) + " " +
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(msg.Timestamp.Format("15:04"))

	return lipgloss.JoinVertical(lipgloss.Left, head, m.renderPayload(msg.Payload))
}

func (m ChatViewModel) renderPayload(p chat.Payload) string {
	switch p.Kind {
	case chat.KindPlainText:
		return m.theme.Normal.Render(wrapText(p.Text, m.width-2))

	case chat.KindStateList:
		rows := make([]string, 0, len(p.States))
		for _, s := range p.States {
			rows = append(rows, fmt.Sprintf("%-6s %s", s.StateID, s.StateName))
		}
		return m.theme.Normal.Render(strings.Join(rows, "\n"))

	case chat.KindDistrictList:
		rows := make([]string, 0, len(p.Districts))
		for _, d := range p.Districts {
			rows = append(rows, fmt.Sprintf("%-6s %s", d.DistrictID, d.DistrictName))
		}
		return m.theme.Normal.Render(strings.Join(rows, "\n"))

	case chat.KindStockTable:
		rows := make([]string, 0, len(p.Stocks))
		for _, s := range p.Stocks {
			rows = append(rows, fmt.Sprintf("%-30s %4d units", truncate(s.BloodBankName, 30), s.TotalUnits()))
		}
		return m.theme.Normal.Render(strings.Join(rows, "\n"))

	case chat.KindBankList, chat.KindGenericTable:
		return m.renderTable(p.Table)

	default:
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Render(p.Raw)
	}
}

func (m ChatViewModel) renderTable(t chat.Table) string {
	if len(t.Columns) == 0 {
		return ""
	}

	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = len(col)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = min(len(cell), 28)
			}
		}
	}

	var b strings.Builder
	for i, col := range t.Columns {
		b.WriteString(m.theme.Bold.Render(pad(col, widths[i])))
		if i < len(t.Columns)-1 {
			b.WriteString("  ")
		}
	}
	for _, row := range t.Rows {
		b.WriteString("\n")
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			b.WriteString(pad(truncate(cell, 28), widths[i]))
			if i < len(row)-1 {
				b.WriteString("  ")
			}
		}
	}
	return b.String()
}

func (m ChatViewModel) logHeight() int {
	// Status, typing line, and input take four lines of chrome.
	return max(3, m.height-4)
}

// Resize updates the component size.
func (m *ChatViewModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(20, width-4)
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func wrapText(s string, width int) string {
	if width < 10 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return s
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
