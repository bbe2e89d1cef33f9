package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	chatModel "github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/model/chat"
	speechModel "github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/model/speech"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/service/chat"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/service/speech"
)

const (
	timeLayout = "15:04"

	markerIdle    = "▶"
	markerLoading = "…"
	markerPlaying = "■"
	markerCursor  = "›"
	markerMic     = "🎤"
)

func (m Model) View() string {
	if !m.ready {
		return m.catalog.Text(chat.NoticeTitle) + "\n"
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.catalog.Text(chat.NoticeTitle)))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render(m.catalog.Text(chat.NoticeSubtitle)))
	b.WriteString("\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	b.WriteString(m.statusLine())
	b.WriteString("\n")

	b.WriteString(m.styles.Input.Render(m.input.View()))
	b.WriteString("\n")

	b.WriteString(m.styles.Footer.Render(m.catalog.Text(chat.NoticeDisclaimer) + "  ·  enter send · ctrl+r mic · ctrl+t listen · ctrl+p/ctrl+n select"))

	return b.String()
}

func (m Model) statusLine() string {
	switch {
	case m.recState == speechModel.RecorderRecording:
		elapsed := 0
		if m.recorder != nil {
			elapsed = m.recorder.Elapsed()
		}
		return m.styles.Recording.Render("● REC " + speech.FormatClock(elapsed))
	case m.busy:
		return m.spinner.View() + m.styles.Meta.Render(" …")
	case m.starting:
		return m.styles.Meta.Render(markerMic + " …")
	case m.notice != "":
		return m.styles.Notice.Render(m.notice)
	}
	return ""
}

func (m Model) renderHistory() string {
	msgs := m.shell.Store().Messages()
	if len(msgs) == 0 {
		return m.styles.Empty.Width(m.width).Render(m.catalog.Text(chat.NoticeEmpty))
	}

	blocks := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		blocks = append(blocks, m.renderMessage(msg))
	}
	return strings.Join(blocks, "\n\n")
}

func (m Model) renderMessage(msg chatModel.Message) string {
	width := bubbleWidth(m.width)
	stamp := msg.Timestamp.Format(timeLayout)

	if msg.FromUser() {
		text := msg.Text
		if msg.IsAudioMessage {
			text = markerMic + " " + text
		}
		bubble := m.styles.UserBubble.MaxWidth(width).Render(wrap(text, width-2))
		meta := m.styles.Meta.Render(stamp)
		block := lipgloss.JoinVertical(lipgloss.Right, bubble, meta)
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, block)
	}

	body := m.renderMarkdown(msg.Text, width)
	bubble := m.styles.BotBubble.Render(body)

	meta := []string{stamp}
	if msg.Category != "" {
		meta = append(meta, m.styles.Category.Render("#"+msg.Category))
	}
	if m.synthesizer != nil && m.player != nil {
		meta = append(meta, m.playMarker(msg.ID))
	}

	line := m.styles.Meta.Render(strings.Join(meta, " "))
	if msg.ID == m.selected {
		line = m.styles.Selected.Render(markerCursor) + " " + line
	}
	return lipgloss.JoinVertical(lipgloss.Left, bubble, line)
}

func (m Model) playMarker(id string) string {
	pb, ok := m.playbacks[id]
	if !ok {
		return markerIdle
	}
	switch pb.State() {
	case speech.PlaybackLoading:
		return markerLoading
	case speech.PlaybackPlaying:
		return markerPlaying
	default:
		return markerIdle
	}
}

func (m Model) renderMarkdown(text string, width int) string {
	if m.renderer == nil {
		return wrap(text, width-2)
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		m.logger.Debugw("markdown render failed", "error", err)
		return wrap(text, width-2)
	}
	return strings.Trim(out, "\n")
}

// bubbleWidth caps a message bubble at three quarters of the screen.
func bubbleWidth(screen int) int {
	w := screen * 3 / 4
	if w < 20 {
		w = 20
	}
	return w
}

func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

