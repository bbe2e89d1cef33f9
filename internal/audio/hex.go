package audio

import (
	"regexp"
	"strconv"
	"sync"
)

// ClipMIMEType is the content type attached to decoded TTS audio.
const ClipMIMEType = "audio/mpeg"

var hexPair = regexp.MustCompile(`(?i)[0-9a-f]{2}`)

// Clip is a decoded, playable audio buffer. Callers own it until Release.
type Clip struct {
	mu       sync.Mutex
	data     []byte
	mimeType string
	released bool
}

// DecodeHex converts a hex-encoded audio payload into a Clip.
// Characters outside two-digit hex groups are skipped. It returns nil when
// the payload holds no hex pair at all.
func DecodeHex(payload string) *Clip {
	if payload == "" {
		return nil
	}

	pairs := hexPair.FindAllString(payload, -1)
	if len(pairs) == 0 {
		return nil
	}

	data := make([]byte, len(pairs))
	for i, pair := range pairs {
		// the pattern guarantees two hex digits
		value, _ := strconv.ParseUint(pair, 16, 8)
		data[i] = byte(value)
	}

	return &Clip{data: data, mimeType: ClipMIMEType}
}

// Bytes returns the clip payload, or nil once released.
func (c *Clip) Bytes() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return nil
	}
	return c.data
}

// Len reports the payload size in bytes.
func (c *Clip) Len() int {
	return len(c.Bytes())
}

// MIMEType returns the content type the clip is tagged with.
func (c *Clip) MIMEType() string {
	return c.mimeType
}

// Release drops the underlying buffer. Safe to call more than once.
func (c *Clip) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = nil
	c.released = true
}

// Released reports whether Release has been called.
func (c *Clip) Released() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.released
}
