package speech

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/audio"
)

type stubSynth struct {
	payload string
	err     error
	calls   atomic.Int32
}

func (s *stubSynth) GetTTS(context.Context, string) (string, error) {
	s.calls.Add(1)
	return s.payload, s.err
}

type blockingPlayer struct {
	mu      sync.Mutex
	clips   []*audio.Clip
	active  atomic.Int32
	maxSeen atomic.Int32
	started chan struct{}
}

func newBlockingPlayer() *blockingPlayer {
	return &blockingPlayer{started: make(chan struct{}, 4)}
}

func (p *blockingPlayer) Play(ctx context.Context, clip *audio.Clip) error {
	n := p.active.Add(1)
	defer p.active.Add(-1)
	if n > p.maxSeen.Load() {
		p.maxSeen.Store(n)
	}

	p.mu.Lock()
	p.clips = append(p.clips, clip)
	p.mu.Unlock()

	p.started <- struct{}{}
	<-ctx.Done()
	return ctx.Err()
}

type stateRecorder struct {
	mu     sync.Mutex
	states []PlaybackState
	ch     chan PlaybackState
}

func newStateRecorder() *stateRecorder {
	return &stateRecorder{ch: make(chan PlaybackState, 16)}
}

func (r *stateRecorder) record(s PlaybackState) {
	r.mu.Lock()
	r.states = append(r.states, s)
	r.mu.Unlock()
	r.ch <- s
}

func (r *stateRecorder) waitFor(t *testing.T, want PlaybackState) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case s := <-r.ch:
			if s == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for state %s", want)
		}
	}
}

func TestPlaybackToggleStopsInsteadOfOverlapping(t *testing.T) {
	synth := &stubSynth{payload: "4944330300"}
	player := newBlockingPlayer()
	states := newStateRecorder()
	pb := NewPlayback(synth, player, nil, states.record)

	if got := pb.Toggle(context.Background(), "উত্তর"); got != PlaybackLoading {
		t.Fatalf("expected loading, got %s", got)
	}
	states.waitFor(t, PlaybackPlaying)
	<-player.started

	if got := pb.Toggle(context.Background(), "উত্তর"); got != PlaybackIdle {
		t.Fatalf("second toggle should stop playback, got %s", got)
	}
	pb.Stop()

	if player.maxSeen.Load() != 1 {
		t.Fatalf("expected a single concurrent playback, saw %d", player.maxSeen.Load())
	}
	if synth.calls.Load() != 1 {
		t.Fatalf("expected one tts request, got %d", synth.calls.Load())
	}

	player.mu.Lock()
	clip := player.clips[0]
	player.mu.Unlock()
	if !clip.Released() {
		t.Fatal("clip should be released after playback ends")
	}
	if pb.State() != PlaybackIdle {
		t.Fatalf("expected idle, got %s", pb.State())
	}
}

func TestPlaybackReplayFetchesAgain(t *testing.T) {
	synth := &stubSynth{payload: "ffee"}
	player := newBlockingPlayer()
	states := newStateRecorder()
	pb := NewPlayback(synth, player, nil, states.record)

	for i := 0; i < 2; i++ {
		pb.Toggle(context.Background(), "text")
		states.waitFor(t, PlaybackPlaying)
		<-player.started
		pb.Toggle(context.Background(), "text")
	}
	pb.Stop()

	if synth.calls.Load() != 2 {
		t.Fatalf("audio must not be cached between plays, calls=%d", synth.calls.Load())
	}
}

func TestPlaybackIgnoresToggleWhileLoading(t *testing.T) {
	release := make(chan struct{})
	synth := &gatedSynth{release: release, payload: "aa"}
	pb := NewPlayback(synth, newBlockingPlayer(), nil, nil)

	pb.Toggle(context.Background(), "text")
	if got := pb.Toggle(context.Background(), "text"); got != PlaybackLoading {
		t.Fatalf("expected toggle to be ignored while loading, got %s", got)
	}
	close(release)
	pb.Stop()
}

type gatedSynth struct {
	release chan struct{}
	payload string
}

func (s *gatedSynth) GetTTS(ctx context.Context, _ string) (string, error) {
	select {
	case <-s.release:
		return s.payload, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func TestPlaybackFailuresReturnToIdle(t *testing.T) {
	cases := map[string]*stubSynth{
		"undecodable": {payload: "zz"},
		"request":     {err: errors.New("tts down")},
	}

	for name, synth := range cases {
		t.Run(name, func(t *testing.T) {
			player := newBlockingPlayer()
			states := newStateRecorder()
			pb := NewPlayback(synth, player, nil, states.record)

			pb.Toggle(context.Background(), "text")
			states.waitFor(t, PlaybackIdle)
			pb.Stop()

			if player.active.Load() != 0 || len(player.clips) != 0 {
				t.Fatal("player must not be invoked")
			}
			for _, s := range states.states {
				if s == PlaybackPlaying {
					t.Fatal("control must not enter playing state")
				}
			}
		})
	}
}
