package wav

import (
	"fmt"
	"io"

	"github.com/haivivi/tonegen/pkg/audio/pcm"
)

// File is a complete WAVE file: the header followed by its samples.
type File struct {
	Header  [HeaderSize]byte
	Samples pcm.Chunk
}

// NewFile builds the header for samples. The caller must ensure
// samples.Len() fits in 32 bits.
func NewFile(samples pcm.Chunk, opts ...Option) *File {
	return &File{
		Header:  EncodeHeader(samples.Format(), uint32(samples.Len()), opts...),
		Samples: samples,
	}
}

// Len returns the total file size in bytes.
func (f *File) Len() int64 {
	return HeaderSize + f.Samples.Len()
}

// WriteTo writes the header, then the samples.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.Header[:])
	if err != nil {
		return int64(n), fmt.Errorf("write header: %w", err)
	}
	m, err := f.Samples.WriteTo(w)
	if err != nil {
		return int64(n) + m, fmt.Errorf("write samples: %w", err)
	}
	return int64(n) + m, nil
}
