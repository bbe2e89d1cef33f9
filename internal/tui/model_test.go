package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/audio"
	chatModel "github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/model/chat"
	speechModel "github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/model/speech"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/service/chat"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/service/speech"
)

type stubAssistant struct {
	text  *chatModel.BotResponse
	voice *chatModel.BotResponse
}

func (a *stubAssistant) AskText(context.Context, string) (*chatModel.BotResponse, error) {
	return a.text, nil
}

func (a *stubAssistant) AskVoice(context.Context, speechModel.Recording) (*chatModel.BotResponse, error) {
	return a.voice, nil
}

type fakeRecorder struct {
	mu         sync.Mutex
	startErr   error
	endOnStart bool
	recording  speechModel.Recording
	onComplete func(speechModel.Recording)
	stops      int
}

func (r *fakeRecorder) Start(_ context.Context, onComplete func(speechModel.Recording)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.startErr != nil {
		return r.startErr
	}
	if r.endOnStart {
		onComplete(r.recording)
		return nil
	}
	r.onComplete = onComplete
	return nil
}

func (r *fakeRecorder) Stop() {
	r.mu.Lock()
	done := r.onComplete
	r.onComplete = nil
	r.stops++
	r.mu.Unlock()

	if done != nil {
		done(r.recording)
	}
}

func (r *fakeRecorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.onComplete != nil
}

func (r *fakeRecorder) Elapsed() int {
	return 3
}

type fakeSynth struct{}

func (fakeSynth) GetTTS(context.Context, string) (string, error) {
	return "49443303", nil
}

type blockingPlayer struct {
	started chan struct{}
}

func (p *blockingPlayer) Play(ctx context.Context, _ *audio.Clip) error {
	p.started <- struct{}{}
	<-ctx.Done()
	return ctx.Err()
}

func newModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Assistant == nil {
		opts.Assistant = &stubAssistant{text: &chatModel.BotResponse{Answer: "Dhaka", Category: "geography"}}
	}
	opts.Catalog = chat.NewCatalog("en")
	opts.TickInterval = 10 * time.Millisecond

	m := New(opts)
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// run executes cmd and any batched commands, returning the produced messages.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func apply(t *testing.T, m Model, msgs []tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		m = update(t, m, msg)
	}
	return m
}

func nextEvent(t *testing.T, m Model) tea.Msg {
	t.Helper()
	select {
	case msg := <-m.events:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewSeedsWelcome(t *testing.T) {
	m := newModel(t, Options{})

	msgs := m.Shell().Store().Messages()
	if len(msgs) != 1 || msgs[0].Text != chat.NewCatalog("en").Text(chat.NoticeWelcome) {
		t.Fatalf("expected welcome message, got %+v", msgs)
	}
	if m.selected != msgs[0].ID {
		t.Fatal("welcome message should be selected")
	}
}

func TestEnterSubmitsText(t *testing.T) {
	m := newModel(t, Options{})
	m.input.SetValue("What is the capital?")

	m, cmd := updateCmd(t, m, keyMsg(tea.KeyEnter))
	if !m.busy {
		t.Fatal("model should be busy while waiting")
	}
	if m.input.Value() != "" {
		t.Fatalf("input should be cleared, got %q", m.input.Value())
	}

	m = apply(t, m, run(cmd))
	m = apply(t, m, []tea.Msg{nextEvent(t, m), nextEvent(t, m)})

	if m.busy {
		t.Fatal("model should be idle after the reply")
	}
	msgs := m.Shell().Store().Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected welcome, question and answer, got %d", len(msgs))
	}
	if msgs[2].Text != "Dhaka" || m.selected != msgs[2].ID {
		t.Fatalf("latest answer should be selected: %+v", msgs[2])
	}
	if !strings.Contains(m.View(), "What is the capital?") {
		t.Fatal("view should show the question")
	}
}

func TestEnterIgnoresBlankAndBusy(t *testing.T) {
	m := newModel(t, Options{})

	m.input.SetValue("   ")
	m, cmd := updateCmd(t, m, keyMsg(tea.KeyEnter))
	if cmd != nil || m.busy {
		t.Fatal("blank input must not be sent")
	}

	m.busy = true
	m.input.SetValue("hello")
	m, cmd = updateCmd(t, m, keyMsg(tea.KeyEnter))
	if cmd != nil || m.input.Value() != "hello" {
		t.Fatal("input must be locked while busy")
	}
}

func TestInputGrowsWithNewlines(t *testing.T) {
	m := newModel(t, Options{})

	m = update(t, m, runes("a"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	m = update(t, m, runes("b"))
	if m.input.Height() != 2 {
		t.Fatalf("expected 2 input lines, got %d", m.input.Height())
	}
	if m.busy {
		t.Fatal("alt+enter must not send")
	}

	for i := 0; i < 6; i++ {
		m = update(t, m, keyMsg(tea.KeyCtrlJ))
	}
	if m.input.Height() != maxInputLines {
		t.Fatalf("expected input capped at %d lines, got %d", maxInputLines, m.input.Height())
	}
}

func TestRecordingFlow(t *testing.T) {
	recorder := &fakeRecorder{recording: speechModel.Recording{Data: []byte{1, 2}, Format: speechModel.FormatPCM}}
	assistant := &stubAssistant{voice: &chatModel.BotResponse{Answer: "ঢাকা", Question: "রাজধানী কোথায়?"}}
	m := newModel(t, Options{Assistant: assistant, Recorder: recorder})

	m, cmd := updateCmd(t, m, keyMsg(tea.KeyCtrlR))
	if !m.starting {
		t.Fatal("recorder should be starting")
	}
	m, cmd = updateCmd(t, m, run(cmd)[0])
	if m.recState != speechModel.RecorderRecording || cmd == nil {
		t.Fatalf("expected recording with a tick, got %s", m.recState)
	}
	if !strings.Contains(m.View(), "REC 0:03") {
		t.Fatal("view should show the elapsed time")
	}

	m.input.SetValue("typed")
	if next, _ := updateCmd(t, m, keyMsg(tea.KeyEnter)); next.busy {
		t.Fatal("text must not be sent while recording")
	}

	m, cmd = updateCmd(t, m, keyMsg(tea.KeyCtrlR))
	if m.recState != speechModel.RecorderProcessing {
		t.Fatalf("expected processing, got %s", m.recState)
	}
	run(cmd)

	m, cmd = updateCmd(t, m, nextEvent(t, m))
	if !m.busy {
		t.Fatal("finished recording should be submitted")
	}
	m = apply(t, m, run(cmd))
	m = apply(t, m, []tea.Msg{nextEvent(t, m), nextEvent(t, m)})

	msgs := m.Shell().Store().Messages()
	if len(msgs) != 3 || !msgs[1].IsAudioMessage || msgs[1].Text != "রাজধানী কোথায়?" {
		t.Fatalf("unexpected conversation: %+v", msgs)
	}
	if m.busy || m.recState != speechModel.RecorderIdle {
		t.Fatal("model should be idle after the voice reply")
	}
}

func TestEmptyRecordingIsDiscarded(t *testing.T) {
	m := newModel(t, Options{Recorder: &fakeRecorder{}})
	m.recState = speechModel.RecorderProcessing

	m, cmd := updateCmd(t, m, recordingDoneMsg{})
	if cmd != nil || m.busy || m.recState != speechModel.RecorderIdle {
		t.Fatal("empty recording must not be sent")
	}
}

func TestRecordingEndingBeforeStartReportUnlocksInput(t *testing.T) {
	m := newModel(t, Options{Recorder: &fakeRecorder{endOnStart: true}})

	m, cmd := updateCmd(t, m, keyMsg(tea.KeyCtrlR))
	started := run(cmd)

	m = update(t, m, nextEvent(t, m))
	m = apply(t, m, started)

	if m.recState != speechModel.RecorderIdle || m.starting {
		t.Fatalf("expected idle after the session ended, got %s starting=%t", m.recState, m.starting)
	}
	if m.inputLocked() {
		t.Fatal("input must be usable again")
	}
}

func TestToggleRecordingWithoutSessionReturnsToIdle(t *testing.T) {
	m := newModel(t, Options{Recorder: &fakeRecorder{}})

	for _, state := range []speechModel.RecorderStatus{speechModel.RecorderRecording, speechModel.RecorderProcessing} {
		m.recState = state
		next, cmd := updateCmd(t, m, keyMsg(tea.KeyCtrlR))
		if cmd != nil || next.recState != speechModel.RecorderIdle {
			t.Fatalf("%s without a session should fall back to idle, got %s", state, next.recState)
		}
	}
}

func TestMicrophoneFailureShowsNotice(t *testing.T) {
	want := chat.NewCatalog("en").Text(chat.NoticeMicrophone)

	m := newModel(t, Options{Recorder: &fakeRecorder{startErr: speech.ErrPermissionDenied}})
	m, cmd := updateCmd(t, m, keyMsg(tea.KeyCtrlR))
	m = apply(t, m, run(cmd))
	if m.notice != want || m.recState != speechModel.RecorderIdle {
		t.Fatalf("expected microphone notice, got %q", m.notice)
	}

	m = newModel(t, Options{})
	m = update(t, m, keyMsg(tea.KeyCtrlR))
	if m.notice != want {
		t.Fatal("missing recorder should show the microphone notice")
	}
}

func TestToggleSpeechOnSelectedMessage(t *testing.T) {
	player := &blockingPlayer{started: make(chan struct{}, 1)}
	m := newModel(t, Options{Synthesizer: fakeSynth{}, Player: player})

	id := m.selected
	m = update(t, m, keyMsg(tea.KeyCtrlT))

	select {
	case <-player.started:
	case <-time.After(2 * time.Second):
		t.Fatal("playback did not start")
	}
	if m.playMarker(id) != markerPlaying {
		t.Fatalf("expected playing marker, got %s", m.playMarker(id))
	}

	m = update(t, m, keyMsg(tea.KeyCtrlT))
	if m.playMarker(id) != markerIdle {
		t.Fatal("second toggle should stop playback")
	}

	update(t, m, keyMsg(tea.KeyEsc))
}

func TestSelectionMovesBetweenBotMessages(t *testing.T) {
	m := newModel(t, Options{})
	store := m.Shell().Store()
	store.Append("q", chatModel.SenderUser, "")
	second := store.Append("a", chatModel.SenderBot, "")
	welcome := store.Messages()[0]

	m.selected = second.ID
	m = update(t, m, keyMsg(tea.KeyCtrlP))
	if m.selected != welcome.ID {
		t.Fatal("ctrl+p should select the previous bot message")
	}
	m = update(t, m, keyMsg(tea.KeyCtrlP))
	if m.selected != welcome.ID {
		t.Fatal("selection should stop at the first message")
	}
	m = update(t, m, keyMsg(tea.KeyCtrlN))
	if m.selected != second.ID {
		t.Fatal("ctrl+n should select the next bot message")
	}
}

func TestQuitStopsRecording(t *testing.T) {
	recorder := &fakeRecorder{}
	m := newModel(t, Options{Recorder: recorder})
	recorder.Start(context.Background(), func(speechModel.Recording) {})

	_, cmd := updateCmd(t, m, keyMsg(tea.KeyCtrlC))
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c should quit")
	}
	if recorder.stops != 1 {
		t.Fatalf("expected recorder to be stopped, got %d stops", recorder.stops)
	}
}
