package speech

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/audio"
)

// PlaybackState is the per-bubble audio control state.
type PlaybackState string

const (
	PlaybackIdle    PlaybackState = "idle"
	PlaybackLoading PlaybackState = "loading"
	PlaybackPlaying PlaybackState = "playing"
)

// Synthesizer fetches hex-encoded speech for text.
type Synthesizer interface {
	GetTTS(ctx context.Context, text string) (string, error)
}

// Playback drives the speaker control of one bot message. Audio is
// fetched on every play; nothing is cached between plays.
type Playback struct {
	tts      Synthesizer
	player   Player
	logger   *zap.SugaredLogger
	onChange func(PlaybackState)

	mu         sync.Mutex
	state      PlaybackState
	generation int
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// NewPlayback wires a control. onChange, if set, receives every state
// transition from whichever goroutine caused it.
func NewPlayback(tts Synthesizer, player Player, logger *zap.SugaredLogger, onChange func(PlaybackState)) *Playback {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Playback{
		tts:      tts,
		player:   player,
		logger:   logger,
		onChange: onChange,
		state:    PlaybackIdle,
	}
}

// State returns the current control state.
func (p *Playback) State() PlaybackState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Toggle starts playback of text when idle and stops it when playing.
// While audio is loading the control is disabled and Toggle is ignored.
// Stopping rewinds: the next Toggle plays from the beginning.
func (p *Playback) Toggle(ctx context.Context, text string) PlaybackState {
	p.mu.Lock()

	switch p.state {
	case PlaybackLoading:
		p.mu.Unlock()
		return PlaybackLoading
	case PlaybackPlaying:
		p.generation++
		if p.cancel != nil {
			p.cancel()
			p.cancel = nil
		}
		p.state = PlaybackIdle
		p.mu.Unlock()
		p.notify(PlaybackIdle)
		return PlaybackIdle
	}

	p.generation++
	gen := p.generation
	playCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.state = PlaybackLoading
	p.wg.Add(1)
	p.mu.Unlock()

	p.notify(PlaybackLoading)
	go p.run(playCtx, gen, text)
	return PlaybackLoading
}

// Stop cancels any in-flight load or playback and waits for it to end.
func (p *Playback) Stop() {
	p.mu.Lock()
	p.generation++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	changed := p.state != PlaybackIdle
	p.state = PlaybackIdle
	p.mu.Unlock()

	if changed {
		p.notify(PlaybackIdle)
	}
	p.wg.Wait()
}

func (p *Playback) run(ctx context.Context, gen int, text string) {
	defer p.wg.Done()

	payload, err := p.tts.GetTTS(ctx, text)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			p.logger.Warnw("tts request failed", "error", err)
		}
		p.finish(gen)
		return
	}

	clip := audio.DecodeHex(payload)
	if clip == nil {
		// undecodable audio leaves the control idle without an error
		p.finish(gen)
		return
	}
	defer clip.Release()

	if !p.transition(gen, PlaybackPlaying) {
		return
	}

	if err := p.player.Play(ctx, clip); err != nil && !errors.Is(err, context.Canceled) {
		p.logger.Warnw("audio playback failed", "error", err, "bytes", clip.Len())
	}
	p.finish(gen)
}

func (p *Playback) transition(gen int, state PlaybackState) bool {
	p.mu.Lock()
	if p.generation != gen {
		p.mu.Unlock()
		return false
	}
	p.state = state
	p.mu.Unlock()

	p.notify(state)
	return true
}

func (p *Playback) finish(gen int) {
	p.mu.Lock()
	if p.generation != gen {
		p.mu.Unlock()
		return
	}
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.state = PlaybackIdle
	p.mu.Unlock()

	p.notify(PlaybackIdle)
}

func (p *Playback) notify(state PlaybackState) {
	if p.onChange != nil {
		p.onChange(state)
	}
}
