package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	speechModel "github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/model/speech"
)

const (
	defaultChunkSize  = 3200
	defaultProbeDelay = 500 * time.Millisecond
	stopGrace         = 2 * time.Second
	maxStderr         = 2 << 10
)

// CommandSource captures audio by running a recorder program that writes
// raw audio to stdout, such as arecord or sox.
type CommandSource struct {
	Command   []string
	Format    string
	ChunkSize int
	// ProbeDelay bounds how long Open waits to see whether the program dies
	// before producing audio.
	ProbeDelay time.Duration
}

// NewCommandSource returns a source producing raw PCM from command.
func NewCommandSource(command []string) *CommandSource {
	return &CommandSource{
		Command:    command,
		Format:     speechModel.FormatPCM,
		ChunkSize:  defaultChunkSize,
		ProbeDelay: defaultProbeDelay,
	}
}

// Open starts the recorder program. If it exits before producing any audio
// the failure is reported here instead of as an empty recording.
func (s *CommandSource) Open(ctx context.Context) (Stream, error) {
	if len(s.Command) == 0 {
		return nil, fmt.Errorf("%w: no capture command configured", ErrDeviceUnavailable)
	}

	chunkSize := s.ChunkSize
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	probe := s.ProbeDelay
	if probe <= 0 {
		probe = defaultProbeDelay
	}
	format := s.Format
	if format == "" {
		format = speechModel.FormatPCM
	}

	cmd := exec.CommandContext(ctx, s.Command[0], s.Command[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	stderr := &limitedBuffer{limit: maxStderr}
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return nil, classifyStartError(err)
	}

	stream := &commandStream{
		cmd:       cmd,
		format:    format,
		fragments: make(chan []byte, 16),
		first:     make(chan struct{}),
		closing:   make(chan struct{}),
		done:      make(chan struct{}),
	}
	go stream.readLoop(stdout, chunkSize)

	select {
	case <-stream.first:
		return stream, nil
	case <-stream.done:
		if stream.produced {
			return stream, nil
		}
		return nil, classifyExit(stream.waitErr, stderr.String())
	case <-time.After(probe):
		return stream, nil
	case <-ctx.Done():
		stream.Close()
		return nil, ctx.Err()
	}
}

type commandStream struct {
	cmd       *exec.Cmd
	format    string
	fragments chan []byte

	firstOnce sync.Once
	first     chan struct{}
	closeOnce sync.Once
	closing   chan struct{}
	done      chan struct{}

	// written by readLoop before done is closed
	produced bool
	waitErr  error
}

func (s *commandStream) Fragments() <-chan []byte { return s.fragments }

func (s *commandStream) Format() string { return s.format }

func (s *commandStream) readLoop(r io.Reader, chunkSize int) {
	defer close(s.done)

	for {
		buf := make([]byte, chunkSize)
		n, err := r.Read(buf)
		if n > 0 {
			s.produced = true
			s.firstOnce.Do(func() { close(s.first) })
			select {
			case s.fragments <- buf[:n]:
			case <-s.closing:
			}
		}
		if err != nil {
			break
		}
	}

	close(s.fragments)
	s.waitErr = s.cmd.Wait()
}

// Close interrupts the recorder so it can flush, and kills it if it does
// not exit within the grace period.
func (s *commandStream) Close() error {
	s.closeOnce.Do(func() {
		if s.cmd.Process == nil {
			close(s.closing)
			return
		}
		if err := s.cmd.Process.Signal(os.Interrupt); err != nil {
			s.cmd.Process.Kill()
		}

		select {
		case <-s.done:
		case <-time.After(stopGrace):
			s.cmd.Process.Kill()
		}
		close(s.closing)
	})
	<-s.done
	return nil
}

func classifyStartError(err error) error {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	default:
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
}

func classifyExit(err error, stderr string) error {
	detail := strings.TrimSpace(stderr)
	if detail == "" && err != nil {
		detail = err.Error()
	}
	if detail == "" {
		detail = "capture program exited without audio"
	}

	lower := strings.ToLower(detail)
	if strings.Contains(lower, "permission denied") || strings.Contains(lower, "not permitted") {
		return fmt.Errorf("%w: %s", ErrPermissionDenied, detail)
	}
	return fmt.Errorf("%w: %s", ErrDeviceUnavailable, detail)
}

type limitedBuffer struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	limit int
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if room := b.limit - b.buf.Len(); room > 0 {
		if len(p) > room {
			b.buf.Write(p[:room])
		} else {
			b.buf.Write(p)
		}
	}
	return len(p), nil
}

func (b *limitedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
