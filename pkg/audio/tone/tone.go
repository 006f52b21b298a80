package tone

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/haivivi/tonegen/pkg/audio/pcm"
)

// DefaultFrequency is the base tone in Hz (A3).
const DefaultFrequency = 220.0

// DefaultOffset is the right-channel frequency difference in Hz.
const DefaultOffset = 2.0

// MaxDataBytes is the largest sample buffer whose WAVE file still fits
// the 32-bit RIFF size field (36 bytes of header precede the data).
const MaxDataBytes = math.MaxUint32 - 36

// ErrTooLarge is returned when the requested duration does not fit a
// single WAVE file.
var ErrTooLarge = errors.New("tone: sample data exceeds 32-bit RIFF size")

// Spec describes the tone to render.
type Spec struct {
	// Format is the PCM layout of the output buffer.
	Format pcm.Format `json:"format" yaml:"format"`

	// Frequency is the left (or mono) channel frequency in Hz.
	Frequency float64 `json:"frequency" yaml:"frequency"`

	// Offset is added to Frequency for the right channel.
	// Ignored for mono formats.
	Offset float64 `json:"offset" yaml:"offset"`
}

// Validate checks the format and that seconds of audio fit in one file.
func (s Spec) Validate(seconds uint32) error {
	if err := s.Format.Validate(); err != nil {
		return err
	}
	if n := s.Format.BytesInSeconds(seconds); n > MaxDataBytes {
		return fmt.Errorf("%w: %d bytes for %ds of %v", ErrTooLarge, n, seconds, s.Format)
	}
	return nil
}

// Synthesize renders seconds of the tone described by spec. The returned
// buffer holds frames in time order; within a frame the left (mono)
// sample comes first. Its length is always
// seconds × SampleRate × Channels × Depth/8.
func Synthesize(seconds uint32, spec Spec) ([]byte, error) {
	if err := spec.Validate(seconds); err != nil {
		return nil, err
	}

	f := spec.Format
	frames := int(seconds) * f.SampleRate
	data := make([]byte, 0, int(f.BytesInSeconds(seconds)))
	right := spec.Frequency + spec.Offset

	for t := range frames {
		data = appendSample(data, f.SampleBytes(), Sine(spec.Frequency, t, f.SampleRate))
		if f.Channels == 2 {
			data = appendSample(data, f.SampleBytes(), Sine(right, t, f.SampleRate))
		}
	}
	return data, nil
}

// Sine returns sin(2π × freq × t / sampleRate).
func Sine(freq float64, t int, sampleRate int) float64 {
	return math.Sin(2 * math.Pi * freq * float64(t) / float64(sampleRate))
}

// appendSample quantizes v into a sample of width bytes. The width has
// already been validated.
func appendSample(dst []byte, width int, v float64) []byte {
	if width == 1 {
		return append(dst, Quantize8(v))
	}
	return binary.LittleEndian.AppendUint16(dst, uint16(Quantize16(v)))
}

// Quantize8 maps v in [-1, 1] to unsigned 8-bit PCM, truncating.
func Quantize8(v float64) uint8 {
	return uint8(math.Floor(255 * (0.5*v + 0.5)))
}

// Quantize16 maps v in [-1, 1] onto [math.MinInt16, math.MaxInt16] with
// an affine transform and truncates toward zero.
func Quantize16(v float64) int16 {
	const (
		inMin, inMax   = -1.0, 1.0
		outMin, outMax = float64(math.MinInt16), float64(math.MaxInt16)
	)
	slope := (outMax - outMin) / (inMax - inMin)
	return int16(outMin + slope*(v-inMin))
}
