// Package tui renders the chat shell in the terminal.
//
// The conversation lives in a chat.Shell; this package only turns key
// presses into shell, recorder and playback calls and redraws when their
// goroutines report back through the event channel.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	chatModel "github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/model/chat"
	speechModel "github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/model/speech"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/service/chat"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/service/speech"
)

const (
	minInputLines = 1
	maxInputLines = 5

	headerHeight = 2
	statusHeight = 1
	footerHeight = 1
	inputChrome  = 2

	eventBuffer = 64
)

// Recorder is the microphone control. speech.Recorder satisfies it.
type Recorder interface {
	Start(ctx context.Context, onComplete func(speechModel.Recording)) error
	Stop()
	IsRecording() bool
	Elapsed() int
}

// Options wires the model's collaborators. Recorder, Synthesizer and
// Player are optional; the matching controls stay inert without them.
type Options struct {
	Assistant    chat.Assistant
	Catalog      chat.Catalog
	Recorder     Recorder
	Synthesizer  speech.Synthesizer
	Player       speech.Player
	Logger       *zap.SugaredLogger
	TickInterval time.Duration
}

type (
	appendedMsg struct {
		message chatModel.Message
	}

	submitDoneMsg struct {
		err error
	}

	recordStartedMsg struct {
		err error
	}

	recordingDoneMsg struct {
		recording speechModel.Recording
	}

	recordTickMsg struct{}

	playbackMsg struct {
		id    string
		state speech.PlaybackState
	}
)

// Model is the bubbletea model for the chat screen.
type Model struct {
	shell       *chat.Shell
	catalog     chat.Catalog
	recorder    Recorder
	synthesizer speech.Synthesizer
	player      speech.Player
	logger      *zap.SugaredLogger

	playbacks    map[string]*speech.Playback
	events       chan tea.Msg
	tickInterval time.Duration

	input    textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	styles   Styles

	width    int
	height   int
	ready    bool
	busy     bool
	recState speechModel.RecorderStatus
	starting bool
	notice   string
	selected string
}

// New builds the chat model and the shell behind it. The shell starts
// with the localized welcome message.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	tick := opts.TickInterval
	if tick <= 0 {
		tick = time.Second
	}

	m := Model{
		catalog:      opts.Catalog,
		recorder:     opts.Recorder,
		synthesizer:  opts.Synthesizer,
		player:       opts.Player,
		logger:       logger,
		playbacks:    make(map[string]*speech.Playback),
		events:       make(chan tea.Msg, eventBuffer),
		tickInterval: tick,
		styles:       DefaultStyles(),
		recState:     speechModel.RecorderIdle,
	}

	events := m.events
	m.shell = chat.NewShell(nil, opts.Assistant, opts.Catalog, logger.Named("shell"),
		chat.WithAppendHandler(func(msg chatModel.Message) {
			events <- appendedMsg{message: msg}
		}),
	)

	ta := textarea.New()
	ta.Placeholder = opts.Catalog.Text(chat.NoticeInputPlaceholder)
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(minInputLines)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))
	ta.Cursor.SetMode(cursor.CursorStatic)
	ta.Focus()
	m.input = ta

	m.spinner = spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(m.styles.Meta),
	)

	m.viewport = viewport.New(0, 0)
	m.selectLatestBot()
	return m
}

// Shell exposes the conversation behind the view.
func (m Model) Shell() *chat.Shell {
	return m.shell
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		m.renderer, _ = glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(bubbleWidth(msg.Width)),
		)
		m.layout()
		m.refresh(true)
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case appendedMsg:
		if msg.message.Sender == chatModel.SenderBot {
			m.selected = msg.message.ID
		}
		m.refresh(true)
		return m, nil

	case submitDoneMsg:
		m.busy = false
		m.recState = speechModel.RecorderIdle
		if msg.err != nil {
			m.logger.Debugw("submission rejected", "error", msg.err)
		}
		m.input.Focus()
		return m, nil

	case recordStartedMsg:
		m.starting = false
		if msg.err != nil {
			if !errors.Is(msg.err, speech.ErrAlreadyRecording) {
				m.notice = m.catalog.Text(chat.NoticeMicrophone)
			}
			return m, nil
		}
		m.notice = ""
		// the session may already have ended and been handled
		if !m.recorder.IsRecording() {
			return m, nil
		}
		m.recState = speechModel.RecorderRecording
		return m, m.tick()

	case recordTickMsg:
		if m.recState != speechModel.RecorderRecording {
			return m, nil
		}
		return m, m.tick()

	case recordingDoneMsg:
		return m.handleRecording(msg.recording)

	case playbackMsg:
		m.refresh(false)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.shutdown()
		return m, tea.Quit

	case "enter":
		return m.submitText()

	case "ctrl+r":
		return m.toggleRecording()

	case "ctrl+t":
		m.toggleSpeech()
		return m, nil

	case "ctrl+p":
		m.moveSelection(-1)
		return m, nil

	case "ctrl+n":
		m.moveSelection(1)
		return m, nil

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.inputLocked() {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.layout()
	return m, cmd
}

// inputLocked reports whether typing and sending are disabled.
func (m Model) inputLocked() bool {
	return m.busy || m.recState != speechModel.RecorderIdle || m.starting
}

func (m Model) submitText() (tea.Model, tea.Cmd) {
	if m.inputLocked() {
		return m, nil
	}

	text := m.input.Value()
	if isBlank(text) {
		return m, nil
	}

	m.input.Reset()
	m.input.Blur()
	m.busy = true
	m.layout()

	shell := m.shell
	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			_, err := shell.SubmitText(context.Background(), text)
			return submitDoneMsg{err: err}
		},
	)
}

func (m Model) toggleRecording() (tea.Model, tea.Cmd) {
	if m.recorder == nil {
		m.notice = m.catalog.Text(chat.NoticeMicrophone)
		return m, nil
	}

	live := m.recorder.IsRecording()

	switch {
	case m.recState != speechModel.RecorderIdle && !m.busy && !m.starting && !live:
		// no session is left to deliver a recording
		m.recState = speechModel.RecorderIdle
		return m, nil
	case m.recState == speechModel.RecorderRecording:
		m.recState = speechModel.RecorderProcessing
		recorder := m.recorder
		return m, func() tea.Msg {
			recorder.Stop()
			return nil
		}
	case m.busy || m.starting || m.recState != speechModel.RecorderIdle:
		return m, nil
	}

	m.starting = true
	recorder := m.recorder
	events := m.events
	return m, func() tea.Msg {
		err := recorder.Start(context.Background(), func(rec speechModel.Recording) {
			events <- recordingDoneMsg{recording: rec}
		})
		return recordStartedMsg{err: err}
	}
}

func (m Model) handleRecording(rec speechModel.Recording) (tea.Model, tea.Cmd) {
	m.starting = false
	if rec.Empty() {
		m.logger.Infow("discarding empty recording", "duration", rec.Duration)
		m.recState = speechModel.RecorderIdle
		return m, nil
	}
	if m.busy {
		m.logger.Warnw("recording finished while a request is outstanding", "bytes", len(rec.Data))
		m.recState = speechModel.RecorderIdle
		return m, nil
	}

	m.busy = true
	m.recState = speechModel.RecorderProcessing
	m.input.Blur()

	shell := m.shell
	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			_, err := shell.SubmitVoice(context.Background(), rec)
			return submitDoneMsg{err: err}
		},
	)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.tickInterval, func(time.Time) tea.Msg {
		return recordTickMsg{}
	})
}

// toggleSpeech plays or stops the selected bot message. Each message owns
// its own playback control.
func (m *Model) toggleSpeech() {
	if m.synthesizer == nil || m.player == nil || m.selected == "" {
		return
	}

	msg, err := m.shell.Store().Get(m.selected)
	if err != nil || msg.Sender != chatModel.SenderBot {
		return
	}

	pb, ok := m.playbacks[msg.ID]
	if !ok {
		id := msg.ID
		events := m.events
		pb = speech.NewPlayback(m.synthesizer, m.player, m.logger.Named("playback"), func(state speech.PlaybackState) {
			events <- playbackMsg{id: id, state: state}
		})
		m.playbacks[id] = pb
	}

	pb.Toggle(context.Background(), msg.Text)
	m.refresh(false)
}

// moveSelection steps through bot messages, which are the only ones with a
// playback control.
func (m *Model) moveSelection(delta int) {
	msgs := m.shell.Store().Messages()

	var bots []string
	current := -1
	for _, msg := range msgs {
		if msg.Sender != chatModel.SenderBot {
			continue
		}
		if msg.ID == m.selected {
			current = len(bots)
		}
		bots = append(bots, msg.ID)
	}
	if len(bots) == 0 {
		return
	}

	next := current + delta
	if current == -1 {
		next = len(bots) - 1
	}
	if next < 0 {
		next = 0
	}
	if next >= len(bots) {
		next = len(bots) - 1
	}

	m.selected = bots[next]
	m.refresh(false)
}

func (m *Model) selectLatestBot() {
	msgs := m.shell.Store().Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Sender == chatModel.SenderBot {
			m.selected = msgs[i].ID
			return
		}
	}
}

// layout sizes the input to its content and gives the rest to the
// message list.
func (m *Model) layout() {
	lines := m.input.LineCount()
	if lines < minInputLines {
		lines = minInputLines
	}
	if lines > maxInputLines {
		lines = maxInputLines
	}
	m.input.SetHeight(lines)

	if !m.ready {
		return
	}

	m.input.SetWidth(max(m.width-inputChrome, 1))

	height := m.height - headerHeight - statusHeight - footerHeight - lines - inputChrome
	m.viewport.Width = m.width
	m.viewport.Height = max(height, 1)
}

func (m *Model) refresh(bottom bool) {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderHistory())
	if bottom {
		m.viewport.GotoBottom()
	}
}

func (m Model) shutdown() {
	if m.recorder != nil && m.recorder.IsRecording() {
		m.recorder.Stop()
	}
	for _, pb := range m.playbacks {
		pb.Stop()
	}
}

// Run starts the program and forwards background events into it until
// it exits.
func Run(m Model, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(m, opts...)

	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			select {
			case msg := <-m.events:
				p.Send(msg)
			case <-done:
				return
			}
		}
	}()

	_, err := p.Run()
	return err
}
