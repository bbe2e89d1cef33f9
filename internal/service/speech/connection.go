package speech

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	speechModel "github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/model/speech"
)

// SocketOptions tunes the microphone bridge connection.
type SocketOptions struct {
	HandshakeTimeout time.Duration
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	PingInterval     time.Duration
	Buffer           int
}

// DefaultSocketOptions returns the bridge defaults.
func DefaultSocketOptions() SocketOptions {
	return SocketOptions{
		HandshakeTimeout: 10 * time.Second,
		ReadTimeout:      30 * time.Second,
		WriteTimeout:     5 * time.Second,
		PingInterval:     10 * time.Second,
		Buffer:           32,
	}
}

// WebSocketSource captures audio from a microphone bridge that streams
// binary frames over a websocket. Text frames are ignored.
type WebSocketSource struct {
	URL     string
	Header  http.Header
	Format  string
	Options SocketOptions
}

// NewWebSocketSource returns a source for url producing raw PCM.
func NewWebSocketSource(url string) *WebSocketSource {
	return &WebSocketSource{
		URL:     url,
		Format:  speechModel.FormatPCM,
		Options: DefaultSocketOptions(),
	}
}

// Open dials the bridge. A 401 or 403 handshake maps to
// ErrPermissionDenied; any other dial failure to ErrDeviceUnavailable.
func (s *WebSocketSource) Open(ctx context.Context) (Stream, error) {
	if s.URL == "" {
		return nil, fmt.Errorf("%w: no bridge url configured", ErrDeviceUnavailable)
	}

	opts := s.Options
	if opts.Buffer <= 0 {
		opts = DefaultSocketOptions()
	}

	dialer := &websocket.Dialer{HandshakeTimeout: opts.HandshakeTimeout}
	conn, resp, err := dialer.DialContext(ctx, s.URL, s.Header)
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return nil, fmt.Errorf("%w: bridge returned %d", ErrPermissionDenied, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	format := s.Format
	if format == "" {
		format = speechModel.FormatPCM
	}

	stream := &socketStream{
		conn:      conn,
		format:    format,
		opts:      opts,
		fragments: make(chan []byte, opts.Buffer),
		closing:   make(chan struct{}),
		done:      make(chan struct{}),
	}

	if opts.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(opts.ReadTimeout))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(opts.ReadTimeout))
			return nil
		})
	}

	go stream.readLoop()
	if opts.PingInterval > 0 {
		go stream.pingLoop()
	}

	return stream, nil
}

type socketStream struct {
	conn      *websocket.Conn
	format    string
	opts      SocketOptions
	fragments chan []byte

	writeMu   sync.Mutex
	closeOnce sync.Once
	closing   chan struct{}
	done      chan struct{}
}

func (s *socketStream) Fragments() <-chan []byte { return s.fragments }

func (s *socketStream) Format() string { return s.format }

func (s *socketStream) readLoop() {
	defer close(s.done)
	defer close(s.fragments)

	for {
		msgType, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		if s.opts.ReadTimeout > 0 {
			s.conn.SetReadDeadline(time.Now().Add(s.opts.ReadTimeout))
		}
		if msgType != websocket.BinaryMessage || len(data) == 0 {
			continue
		}

		select {
		case s.fragments <- data:
		case <-s.closing:
			return
		}
	}
}

func (s *socketStream) pingLoop() {
	ticker := time.NewTicker(s.opts.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if err := s.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *socketStream) write(msgType int, data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.opts.WriteTimeout > 0 {
		s.conn.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout))
	}
	return s.conn.WriteMessage(msgType, data)
}

// Close asks the bridge to stop, then tears the connection down once the
// read loop has drained or the write timeout passes.
func (s *socketStream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "recording stopped")
		if werr := s.write(websocket.CloseMessage, msg); werr != nil && !errors.Is(werr, websocket.ErrCloseSent) {
			err = werr
		}

		wait := s.opts.WriteTimeout
		if wait <= 0 {
			wait = time.Second
		}
		select {
		case <-s.done:
		case <-time.After(wait):
		}

		close(s.closing)
		if cerr := s.conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
		<-s.done
	})
	return err
}
