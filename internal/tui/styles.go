package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	colorBotBg   = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#1F2937"}
	colorDanger  = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}
)

// Styles groups the lipgloss styles used by the chat view.
type Styles struct {
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	UserBubble lipgloss.Style
	BotBubble  lipgloss.Style
	Selected   lipgloss.Style
	Meta       lipgloss.Style
	Category   lipgloss.Style
	Notice     lipgloss.Style
	Recording  lipgloss.Style
	Input      lipgloss.Style
	Footer     lipgloss.Style
	Empty      lipgloss.Style
}

// DefaultStyles returns the chat palette.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Subtitle: lipgloss.NewStyle().Foreground(colorMuted),
		UserBubble: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).
			Padding(0, 1),
		BotBubble: lipgloss.NewStyle().
			Background(colorBotBg).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Meta:     lipgloss.NewStyle().Foreground(colorMuted),
		Category: lipgloss.NewStyle().Foreground(colorAccent).Italic(true),
		Notice:   lipgloss.NewStyle().Foreground(colorDanger),
		Recording: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorDanger),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary),
		Footer: lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
		Empty:  lipgloss.NewStyle().Foreground(colorMuted).Align(lipgloss.Center),
	}
}
