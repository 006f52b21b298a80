package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/haivivi/tonegen/pkg/audio/pcm"
)

const (
	// HeaderSize is the size of the canonical PCM WAVE header.
	HeaderSize = 44

	// fmtChunkSize is the PCM "fmt " sub-chunk body size.
	fmtChunkSize = 16

	// riffSizeBase is the RIFF chunk size excluding sample data:
	// "WAVE" (4) + fmt chunk (8+16) + data chunk descriptor (8).
	riffSizeBase = 4 + (8 + fmtChunkSize) + 8

	// FormatPCM is the WAVE audio format tag for integer PCM.
	FormatPCM = 1
)

var (
	riffID = [4]byte{'R', 'I', 'F', 'F'}
	waveID = [4]byte{'W', 'A', 'V', 'E'}
	fmtID  = [4]byte{'f', 'm', 't', ' '}
	dataID = [4]byte{'d', 'a', 't', 'a'}
)

// ErrInvalidHeader is returned by ParseHeader for bytes that are not a
// canonical PCM WAVE header.
var ErrInvalidHeader = errors.New("wav: invalid header")

// Header is the decoded form of the 44-byte header.
type Header struct {
	ChunkSize     uint32 `json:"chunk_size" yaml:"chunk_size"`
	AudioFormat   uint16 `json:"audio_format" yaml:"audio_format"`
	Channels      uint16 `json:"channels" yaml:"channels"`
	SampleRate    uint32 `json:"sample_rate" yaml:"sample_rate"`
	ByteRate      uint32 `json:"byte_rate" yaml:"byte_rate"`
	BlockAlign    uint16 `json:"block_align" yaml:"block_align"`
	BitsPerSample uint16 `json:"bits_per_sample" yaml:"bits_per_sample"`
	DataSize      uint32 `json:"data_size" yaml:"data_size"`
}

// Format returns the PCM layout described by the header.
func (h Header) Format() pcm.Format {
	return pcm.Format{
		SampleRate: int(h.SampleRate),
		Channels:   int(h.Channels),
		Depth:      int(h.BitsPerSample),
	}
}

// Option customizes header encoding.
type Option func(*encodeOptions)

type encodeOptions struct {
	riffSizeOrder binary.ByteOrder
}

// WithNativeRIFFSize writes the RIFF chunk size in host byte order.
// On little-endian hosts this is identical to the default.
func WithNativeRIFFSize() Option {
	return func(o *encodeOptions) {
		o.riffSizeOrder = binary.NativeEndian
	}
}

// NewHeader computes the header fields for dataLen bytes of samples.
func NewHeader(f pcm.Format, dataLen uint32) Header {
	return Header{
		ChunkSize:     riffSizeBase + dataLen,
		AudioFormat:   FormatPCM,
		Channels:      uint16(f.Channels),
		SampleRate:    uint32(f.SampleRate),
		ByteRate:      uint32(f.BytesRate()),
		BlockAlign:    uint16(f.BlockAlign()),
		BitsPerSample: uint16(f.Depth),
		DataSize:      dataLen,
	}
}

// EncodeHeader returns the 44-byte header for dataLen bytes of samples in
// format f.
func EncodeHeader(f pcm.Format, dataLen uint32, opts ...Option) [HeaderSize]byte {
	return NewHeader(f, dataLen).Encode(opts...)
}

// Encode serializes the header.
func (h Header) Encode(opts ...Option) [HeaderSize]byte {
	o := encodeOptions{riffSizeOrder: binary.LittleEndian}
	for _, opt := range opts {
		opt(&o)
	}

	le := binary.LittleEndian
	var b [HeaderSize]byte
	copy(b[0:4], riffID[:])
	o.riffSizeOrder.PutUint32(b[4:8], h.ChunkSize)
	copy(b[8:12], waveID[:])

	copy(b[12:16], fmtID[:])
	le.PutUint32(b[16:20], fmtChunkSize)
	le.PutUint16(b[20:22], h.AudioFormat)
	le.PutUint16(b[22:24], h.Channels)
	le.PutUint32(b[24:28], h.SampleRate)
	le.PutUint32(b[28:32], h.ByteRate)
	le.PutUint16(b[32:34], h.BlockAlign)
	le.PutUint16(b[34:36], h.BitsPerSample)

	copy(b[36:40], dataID[:])
	le.PutUint32(b[40:44], h.DataSize)
	return b
}

// ParseHeader decodes a canonical PCM WAVE header. Only the first
// HeaderSize bytes of b are examined. The chunk size field is read as
// little-endian.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes, want %d", ErrInvalidHeader, len(b), HeaderSize)
	}
	for _, tag := range []struct {
		off  int
		want [4]byte
	}{{0, riffID}, {8, waveID}, {12, fmtID}, {36, dataID}} {
		if !bytes.Equal(b[tag.off:tag.off+4], tag.want[:]) {
			return Header{}, fmt.Errorf("%w: expected %q at offset %d, got %q",
				ErrInvalidHeader, tag.want[:], tag.off, b[tag.off:tag.off+4])
		}
	}

	le := binary.LittleEndian
	if n := le.Uint32(b[16:20]); n != fmtChunkSize {
		return Header{}, fmt.Errorf("%w: fmt chunk size %d, want %d", ErrInvalidHeader, n, fmtChunkSize)
	}
	h := Header{
		ChunkSize:     le.Uint32(b[4:8]),
		AudioFormat:   le.Uint16(b[20:22]),
		Channels:      le.Uint16(b[22:24]),
		SampleRate:    le.Uint32(b[24:28]),
		ByteRate:      le.Uint32(b[28:32]),
		BlockAlign:    le.Uint16(b[32:34]),
		BitsPerSample: le.Uint16(b[34:36]),
		DataSize:      le.Uint32(b[40:44]),
	}
	if h.AudioFormat != FormatPCM {
		return Header{}, fmt.Errorf("%w: audio format %d is not PCM", ErrInvalidHeader, h.AudioFormat)
	}
	if h.Channels == 0 || h.SampleRate == 0 || h.BitsPerSample == 0 || h.BitsPerSample%8 != 0 {
		return Header{}, fmt.Errorf("%w: %d channels, %d Hz, %d bits",
			ErrInvalidHeader, h.Channels, h.SampleRate, h.BitsPerSample)
	}
	if want := uint16(h.Format().BlockAlign()); h.BlockAlign != want {
		return Header{}, fmt.Errorf("%w: block align %d, want %d", ErrInvalidHeader, h.BlockAlign, want)
	}
	if want := h.SampleRate * uint32(h.BlockAlign); h.ByteRate != want {
		return Header{}, fmt.Errorf("%w: byte rate %d, want %d", ErrInvalidHeader, h.ByteRate, want)
	}
	return h, nil
}

// ReadHeader reads and parses the header from r.
func ReadHeader(r io.Reader) (Header, error) {
	var b [HeaderSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return Header{}, fmt.Errorf("%w: short read: %v", ErrInvalidHeader, err)
		}
		return Header{}, err
	}
	return ParseHeader(b[:])
}
