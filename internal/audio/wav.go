package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"
)

const wavHeaderSize = 44

var ErrInvalidWAV = errors.New("invalid wav data")

// PCMFormat describes interleaved little-endian linear PCM.
type PCMFormat struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// DefaultPCMFormat matches what the capture command records: 16 kHz mono PCM16.
func DefaultPCMFormat() PCMFormat {
	return PCMFormat{SampleRate: 16000, Channels: 1, BitDepth: 16}
}

// Validate checks the format can be written into a WAV header.
func (f PCMFormat) Validate() error {
	if f.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", f.SampleRate)
	}
	if f.Channels <= 0 {
		return fmt.Errorf("channels must be positive, got %d", f.Channels)
	}
	if f.BitDepth != 8 && f.BitDepth != 16 && f.BitDepth != 24 && f.BitDepth != 32 {
		return fmt.Errorf("unsupported bit depth: %d", f.BitDepth)
	}
	return nil
}

// BlockAlign is the size of one frame across all channels.
func (f PCMFormat) BlockAlign() int {
	return f.Channels * f.BitDepth / 8
}

// ByteRate is the number of PCM bytes per second.
func (f PCMFormat) ByteRate() int {
	return f.SampleRate * f.BlockAlign()
}

// Duration returns the playing time of n PCM bytes.
func (f PCMFormat) Duration(n int) time.Duration {
	rate := f.ByteRate()
	if rate <= 0 || n <= 0 {
		return 0
	}
	return time.Duration(int64(n) * int64(time.Second) / int64(rate))
}

// wavHeader is the canonical 44-byte RIFF/WAVE header for PCM data.
type wavHeader struct {
	ChunkID       [4]byte
	ChunkSize     uint32
	Format        [4]byte
	Subchunk1ID   [4]byte
	Subchunk1Size uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Subchunk2ID   [4]byte
	Subchunk2Size uint32
}

// WAVInfo summarizes a parsed WAV header.
type WAVInfo struct {
	Format   PCMFormat
	DataSize int
	Duration time.Duration
}

// EncodeWAV wraps raw PCM bytes into a RIFF/WAVE container.
func EncodeWAV(pcm []byte, format PCMFormat) ([]byte, error) {
	if len(pcm) == 0 {
		return nil, fmt.Errorf("cannot encode empty pcm data")
	}
	if err := format.Validate(); err != nil {
		return nil, err
	}

	dataSize := uint32(len(pcm))
	header := wavHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   uint16(format.Channels),
		SampleRate:    uint32(format.SampleRate),
		ByteRate:      uint32(format.ByteRate()),
		BlockAlign:    uint16(format.BlockAlign()),
		BitsPerSample: uint16(format.BitDepth),
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}

	buf := bytes.NewBuffer(make([]byte, 0, wavHeaderSize+len(pcm)))
	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		return nil, fmt.Errorf("write wav header: %w", err)
	}
	buf.Write(pcm)

	return buf.Bytes(), nil
}

// IsWAV reports whether data starts with a RIFF/WAVE signature.
func IsWAV(data []byte) bool {
	return len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE"
}

// ParseWAV reads the header of a PCM WAV file.
func ParseWAV(data []byte) (WAVInfo, error) {
	if len(data) < wavHeaderSize {
		return WAVInfo{}, fmt.Errorf("%w: need at least %d bytes, got %d", ErrInvalidWAV, wavHeaderSize, len(data))
	}

	var header wavHeader
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &header); err != nil {
		return WAVInfo{}, fmt.Errorf("%w: %v", ErrInvalidWAV, err)
	}

	switch {
	case string(header.ChunkID[:]) != "RIFF":
		return WAVInfo{}, fmt.Errorf("%w: missing RIFF header", ErrInvalidWAV)
	case string(header.Format[:]) != "WAVE":
		return WAVInfo{}, fmt.Errorf("%w: missing WAVE format", ErrInvalidWAV)
	case string(header.Subchunk1ID[:]) != "fmt ":
		return WAVInfo{}, fmt.Errorf("%w: missing fmt chunk", ErrInvalidWAV)
	case string(header.Subchunk2ID[:]) != "data":
		return WAVInfo{}, fmt.Errorf("%w: missing data chunk", ErrInvalidWAV)
	case header.AudioFormat != 1:
		return WAVInfo{}, fmt.Errorf("%w: unsupported audio format %d", ErrInvalidWAV, header.AudioFormat)
	}

	format := PCMFormat{
		SampleRate: int(header.SampleRate),
		Channels:   int(header.NumChannels),
		BitDepth:   int(header.BitsPerSample),
	}
	if err := format.Validate(); err != nil {
		return WAVInfo{}, fmt.Errorf("%w: %v", ErrInvalidWAV, err)
	}

	dataSize := int(header.Subchunk2Size)
	if available := len(data) - wavHeaderSize; dataSize > available {
		dataSize = available
	}

	return WAVInfo{
		Format:   format,
		DataSize: dataSize,
		Duration: format.Duration(dataSize),
	}, nil
}

// Tone renders a mono PCM16 sine wave.
func Tone(sampleRate int, frequency float64, duration time.Duration) []byte {
	if sampleRate <= 0 || duration <= 0 {
		return nil
	}

	numSamples := int(float64(sampleRate) * duration.Seconds())
	out := make([]byte, numSamples*2)
	for i := 0; i < numSamples; i++ {
		t := float64(i) / float64(sampleRate)
		sample := int16(16383.0 * math.Sin(2*math.Pi*frequency*t))
		binary.LittleEndian.PutUint16(out[i*2:], uint16(sample))
	}
	return out
}
