package pcm

import (
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"time"
)

// DefaultSampleRate is the CD-quality sample rate used unless a format says otherwise.
const DefaultSampleRate = 44100

// SupportedDepths is the closed set of bit depths a Format may use.
var SupportedDepths = []int{8, 16}

// Common formats.
var (
	// L8Mono44K represents unsigned 8-bit, rate=44100, channels=1
	L8Mono44K = Format{SampleRate: DefaultSampleRate, Channels: 1, Depth: 8}
	// L8Stereo44K represents unsigned 8-bit, rate=44100, channels=2
	L8Stereo44K = Format{SampleRate: DefaultSampleRate, Channels: 2, Depth: 8}
	// L16Mono44K represents audio/L16; rate=44100; channels=1
	L16Mono44K = Format{SampleRate: DefaultSampleRate, Channels: 1, Depth: 16}
	// L16Stereo44K represents audio/L16; rate=44100; channels=2
	L16Stereo44K = Format{SampleRate: DefaultSampleRate, Channels: 2, Depth: 16}
)

// Sentinel errors returned by Format.Validate.
var (
	ErrUnsupportedDepth    = errors.New("pcm: unsupported bits per sample")
	ErrUnsupportedChannels = errors.New("pcm: unsupported channel count")
	ErrInvalidSampleRate   = errors.New("pcm: invalid sample rate")
)

// Chunk is a chunk of audio data.
type Chunk interface {
	Len() int64
	Format() Format
	WriteTo(w io.Writer) (int64, error)
}

// Format represents an audio format configuration.
type Format struct {
	// SampleRate is the number of frames per second in Hz.
	SampleRate int `json:"sample_rate" yaml:"sample_rate"`

	// Channels is 1 (mono) or 2 (stereo).
	Channels int `json:"channels" yaml:"channels"`

	// Depth is the bit depth of one sample, 8 or 16.
	Depth int `json:"bits" yaml:"bits"`
}

// Validate reports whether the format can be synthesized and encoded.
// Errors wrap ErrUnsupportedDepth, ErrUnsupportedChannels or
// ErrInvalidSampleRate.
func (f Format) Validate() error {
	if !slices.Contains(SupportedDepths, f.Depth) {
		return fmt.Errorf("%w: %d (supported: %v)", ErrUnsupportedDepth, f.Depth, SupportedDepths)
	}
	if f.Channels != 1 && f.Channels != 2 {
		return fmt.Errorf("%w: %d", ErrUnsupportedChannels, f.Channels)
	}
	if f.SampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, f.SampleRate)
	}
	// The header stores the byte rate in 32 bits.
	if uint64(f.SampleRate) > math.MaxUint32/uint64(f.BlockAlign()) {
		return fmt.Errorf("%w: %d overflows the %d-byte frame byte rate", ErrInvalidSampleRate, f.SampleRate, f.BlockAlign())
	}
	return nil
}

// SampleBytes returns the size of a single-channel sample in bytes.
func (f Format) SampleBytes() int {
	return f.Depth / 8
}

// BlockAlign returns the number of bytes in one frame across all channels.
func (f Format) BlockAlign() int {
	return f.Channels * f.SampleBytes()
}

// Samples returns the number of frames in the given number of bytes.
func (f Format) Samples(bytes int64) int64 {
	return bytes * 8 / int64(f.Channels) / int64(f.Depth)
}

// BytesInSeconds returns the number of bytes in a whole number of seconds.
func (f Format) BytesInSeconds(seconds uint32) uint64 {
	return uint64(seconds) * uint64(f.SampleRate) * uint64(f.BlockAlign())
}

// Duration returns the duration of the given number of bytes.
func (f Format) Duration(bytes int64) time.Duration {
	return time.Duration(f.Samples(bytes)) * time.Second / time.Duration(f.SampleRate)
}

// BytesRate returns the byte rate of the audio data.
func (f Format) BytesRate() int {
	return f.SampleRate * f.BlockAlign()
}

// DataChunk returns a chunk of audio data.
func (f Format) DataChunk(data []byte) Chunk {
	return &DataChunk{
		Data: data,
		fmt:  f,
	}
}

// String returns a human-readable string representation of the format.
func (f Format) String() string {
	kind := "L16"
	if f.Depth == 8 {
		kind = "U8"
	} else if f.Depth != 16 {
		kind = fmt.Sprintf("L%d", f.Depth)
	}
	return fmt.Sprintf("audio/%s; rate=%d; channels=%d", kind, f.SampleRate, f.Channels)
}

// DataChunk is a chunk of audio data.
type DataChunk struct {
	Data []byte
	fmt  Format
}

// Len returns the length of the audio data in bytes.
func (c *DataChunk) Len() int64 {
	return int64(len(c.Data))
}

// Format returns the audio format of this chunk.
func (c *DataChunk) Format() Format {
	return c.fmt
}

// WriteTo writes the audio data to the writer.
func (c *DataChunk) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(c.Data)
	return int64(n), err
}
