package speech

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/audio"
	speechModel "github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/model/speech"
)

var (
	ErrPermissionDenied  = errors.New("microphone permission denied")
	ErrDeviceUnavailable = errors.New("microphone unavailable")
	ErrAlreadyRecording  = errors.New("recording already in progress")
)

// Source opens the platform microphone.
type Source interface {
	Open(ctx context.Context) (Stream, error)
}

// Stream delivers captured fragments in arrival order. Close must release
// the device and eventually close the Fragments channel.
type Stream interface {
	Fragments() <-chan []byte
	Format() string
	Close() error
}

// Recorder runs at most one capture session at a time.
type Recorder struct {
	source       Source
	format       audio.PCMFormat
	logger       *zap.SugaredLogger
	tickInterval time.Duration
	onTick       func(seconds int)

	mu       sync.Mutex
	starting bool
	current  *captureSession
}

// RecorderOption customizes a Recorder.
type RecorderOption func(*Recorder)

// WithTickInterval changes the elapsed counter resolution. Tests use it.
func WithTickInterval(d time.Duration) RecorderOption {
	return func(r *Recorder) {
		if d > 0 {
			r.tickInterval = d
		}
	}
}

// WithTickHandler is called from the capture goroutine on every tick.
func WithTickHandler(fn func(seconds int)) RecorderOption {
	return func(r *Recorder) {
		r.onTick = fn
	}
}

type captureSession struct {
	stream     Stream
	startedAt  time.Time
	elapsed    atomic.Int64
	onComplete func(speechModel.Recording)
	done       chan struct{}

	// owned by the collector goroutine until done is closed
	chunks [][]byte
	size   int
}

// NewRecorder builds a recorder reading from source. format describes the
// PCM layout the source produces.
func NewRecorder(source Source, format audio.PCMFormat, logger *zap.SugaredLogger, opts ...RecorderOption) *Recorder {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	r := &Recorder{
		source:       source,
		format:       format,
		logger:       logger,
		tickInterval: time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start opens the microphone and begins accumulating fragments. onComplete
// receives the merged recording exactly once, after Stop or when the
// device ends the stream. On failure no session is created.
func (r *Recorder) Start(ctx context.Context, onComplete func(speechModel.Recording)) error {
	r.mu.Lock()
	if r.starting || r.current != nil {
		r.mu.Unlock()
		return ErrAlreadyRecording
	}
	r.starting = true
	r.mu.Unlock()

	stream, err := r.source.Open(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.starting = false

	if err != nil {
		if !errors.Is(err, ErrPermissionDenied) && !errors.Is(err, ErrDeviceUnavailable) {
			err = fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
		}
		r.logger.Warnw("microphone access failed", "error", err)
		return err
	}

	session := &captureSession{
		stream:     stream,
		startedAt:  time.Now(),
		onComplete: onComplete,
		done:       make(chan struct{}),
	}
	r.current = session

	go r.collect(session)

	r.logger.Debugw("recording started", "format", stream.Format())
	return nil
}

// Stop finalizes the active session and waits until its completion
// callback has run. Without an active session it does nothing.
func (r *Recorder) Stop() {
	r.mu.Lock()
	session := r.current
	r.mu.Unlock()

	if session == nil {
		return
	}

	if err := session.stream.Close(); err != nil {
		r.logger.Warnw("close microphone stream", "error", err)
	}
	<-session.done
}

// IsRecording reports whether a session is active.
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current != nil
}

// Elapsed returns the whole seconds counted by the active session, or 0.
func (r *Recorder) Elapsed() int {
	r.mu.Lock()
	session := r.current
	r.mu.Unlock()

	if session == nil {
		return 0
	}
	return int(session.elapsed.Load())
}

func (r *Recorder) collect(s *captureSession) {
	ticker := time.NewTicker(r.tickInterval)
	defer ticker.Stop()

	fragments := s.stream.Fragments()
	for fragments != nil {
		select {
		case chunk, ok := <-fragments:
			if !ok {
				fragments = nil
				continue
			}
			if len(chunk) == 0 {
				continue
			}
			s.chunks = append(s.chunks, append([]byte(nil), chunk...))
			s.size += len(chunk)
		case <-ticker.C:
			seconds := s.elapsed.Add(1)
			if r.onTick != nil {
				r.onTick(int(seconds))
			}
		}
	}

	r.finish(s)
}

func (r *Recorder) finish(s *captureSession) {
	defer close(s.done)

	r.mu.Lock()
	if r.current == s {
		r.current = nil
	}
	r.mu.Unlock()

	data := make([]byte, 0, s.size)
	for _, chunk := range s.chunks {
		data = append(data, chunk...)
	}
	fragments := len(s.chunks)
	s.chunks = nil

	rec := speechModel.Recording{
		Data:       data,
		Format:     s.stream.Format(),
		SampleRate: r.format.SampleRate,
		Channels:   r.format.Channels,
		BitDepth:   r.format.BitDepth,
		Fragments:  fragments,
	}
	if rec.Format == speechModel.FormatPCM {
		rec.Duration = r.format.Duration(len(data))
	} else {
		rec.Duration = time.Since(s.startedAt)
	}

	r.logger.Debugw("recording finished", "bytes", len(data), "elapsed", s.elapsed.Load())

	if s.onComplete != nil {
		s.onComplete(rec)
	}
}

// FormatClock renders seconds as m:ss for the recording indicator.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
