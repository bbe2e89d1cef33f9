package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/model/chat"
	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/model/speech"
)

// BaseURL is the assistant service address. It is not read from the
// environment; override it at build time:
//
//	go build -ldflags "-X github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/service/backend.BaseURL=http://host:8000"
var BaseURL = "http://127.0.0.1:8000"

const (
	voiceFieldName = "file"
	voiceFileName  = "recording.wav"
	voiceMIMEType  = "audio/wav"

	maxErrorBody = 4 << 10
)

type httpDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client wraps the three assistant endpoints. It holds no per-request state.
type Client struct {
	baseURL string
	client  httpDoer
	logger  *zap.SugaredLogger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient swaps the transport, mainly for tests.
func WithHTTPClient(doer httpDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.client = doer
		}
	}
}

// NewClient returns a client for baseURL. No timeout is set beyond the
// transport defaults and failed requests are never retried.
func NewClient(baseURL string, logger *zap.SugaredLogger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewDefaultClient returns a client for the build-time BaseURL.
func NewDefaultClient(logger *zap.SugaredLogger, opts ...Option) *Client {
	return NewClient(BaseURL, logger, opts...)
}

// AskText posts the question as a query parameter with an empty body.
func (c *Client) AskText(ctx context.Context, question string) (*chat.BotResponse, error) {
	const op = "ask_text"

	params := url.Values{}
	params.Set("question", question)
	endpoint := c.baseURL + "/ask_text?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	var resp chat.BotResponse
	if err := c.do(req, op, &resp); err != nil {
		c.logger.Errorw("api error", "op", op, "error", err)
		return nil, err
	}
	return &resp, nil
}

// AskVoice uploads a recording as the multipart field "file", always
// labelled recording.wav. PCM recordings are wrapped in a WAV header first;
// any other encoding goes out as captured.
func (c *Client) AskVoice(ctx context.Context, rec speech.Recording) (*chat.BotResponse, error) {
	const op = "ask_voice"

	payload, err := rec.WAV()
	if err != nil {
		c.logger.Warnw("sending non-wav recording under wav label", "format", rec.Format, "bytes", len(rec.Data))
		payload = rec.Data
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, voiceFieldName, voiceFileName))
	header.Set("Content-Type", voiceMIMEType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create %s form part: %w", op, err)
	}
	if _, err := part.Write(payload); err != nil {
		return nil, fmt.Errorf("write %s form part: %w", op, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close %s form: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ask_voice", body)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	var resp chat.BotResponse
	if err := c.do(req, op, &resp); err != nil {
		c.logger.Errorw("api error", "op", op, "error", err)
		return nil, err
	}
	return &resp, nil
}

// GetTTS requests synthesized speech and returns the hex-encoded audio.
func (c *Client) GetTTS(ctx context.Context, text string) (string, error) {
	const op = "tts"

	buf, err := json.Marshal(speech.TTSRequest{Text: text})
	if err != nil {
		return "", fmt.Errorf("marshal %s payload: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tts", bytes.NewReader(buf))
	if err != nil {
		return "", fmt.Errorf("create %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp speech.TTSResponse
	if err := c.do(req, op, &resp); err != nil {
		c.logger.Errorw("api error", "op", op, "error", err)
		return "", err
	}
	return resp.Audio, nil
}

func (c *Client) do(req *http.Request, op string, out interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return networkError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return serverError(op, resp.StatusCode, errorDetail(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return serverError(op, resp.StatusCode, "decode response: "+err.Error())
	}
	return nil
}

// errorDetail pulls a message out of common error envelopes.
func errorDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var envelope struct {
		Error  string          `json:"error"`
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		var detail string
		if json.Unmarshal(envelope.Detail, &detail) == nil && detail != "" {
			return detail
		}
	}

	return strings.TrimSpace(string(body))
}
