// Package generator renders test-tone WAVE files end to end: it validates
// the request, synthesizes the samples, builds the header and hands the
// complete file to a storage backend in a single all-or-nothing write.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/haivivi/tonegen/pkg/audio/pcm"
	"github.com/haivivi/tonegen/pkg/audio/tone"
	"github.com/haivivi/tonegen/pkg/audio/wav"
	"github.com/haivivi/tonegen/pkg/history"
	"github.com/haivivi/tonegen/pkg/storage"
)

// Error classes. Returned errors match one of these with errors.Is, and
// also match the underlying cause.
var (
	// ErrConfig marks a request that cannot be rendered (for example an
	// unsupported bit depth). Nothing is written.
	ErrConfig = errors.New("generator: invalid configuration")

	// ErrStorage marks a failure to create or write the output. No partial
	// file is left at the target path.
	ErrStorage = errors.New("generator: storage failure")
)

// DefaultSeconds is the default tone length.
const DefaultSeconds = 30

// DefaultOutput is the default output path.
const DefaultOutput = "out.wav"

// Job describes one file to render.
type Job struct {
	// Output is the path inside the store.
	Output string

	// Seconds is the tone length.
	Seconds uint32

	// Tone is the format, frequency and channel offset.
	Tone tone.Spec

	// NativeRIFFSize writes the RIFF chunk size in host byte order.
	NativeRIFFSize bool
}

// DefaultJob returns a 30 second, 16-bit stereo, 220 Hz job with a 2 Hz
// right-channel offset written to out.wav.
func DefaultJob() Job {
	return Job{
		Output:  DefaultOutput,
		Seconds: DefaultSeconds,
		Tone: tone.Spec{
			Format:    pcm.L16Stereo44K,
			Frequency: tone.DefaultFrequency,
			Offset:    tone.DefaultOffset,
		},
	}
}

// Result reports what was written.
type Result struct {
	ID         string        `json:"id,omitempty" yaml:"id,omitempty"`
	Path       string        `json:"path" yaml:"path"`
	Location   string        `json:"location" yaml:"location"`
	Format     string        `json:"format" yaml:"format"`
	Seconds    uint32        `json:"seconds" yaml:"seconds"`
	Frequency  float64       `json:"frequency" yaml:"frequency"`
	Offset     float64       `json:"offset" yaml:"offset"`
	HeaderSize int           `json:"header_bytes" yaml:"header_bytes"`
	DataSize   int64         `json:"data_bytes" yaml:"data_bytes"`
	FileSize   int64         `json:"file_bytes" yaml:"file_bytes"`
	Elapsed    time.Duration `json:"-" yaml:"-"`

	// ElapsedSeconds is Elapsed for display.
	ElapsedSeconds float64 `json:"elapsed_seconds" yaml:"elapsed_seconds"`
}

// Recorder stores a record of each successful generation.
type Recorder interface {
	Add(ctx context.Context, rec *history.Record) error
}

// Generator renders jobs into a FileStore.
type Generator struct {
	store   storage.FileStore
	backend string
	rec     Recorder
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithRecorder records each written file. Recording failures are logged
// and do not fail the generation.
func WithRecorder(r Recorder) Option {
	return func(g *Generator) {
		g.rec = r
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

// WithBackend names the storage backend in history records.
func WithBackend(name string) Option {
	return func(g *Generator) {
		g.backend = name
	}
}

// New returns a Generator that writes to store.
func New(store storage.FileStore, opts ...Option) *Generator {
	g := &Generator{
		store:   store,
		backend: "local",
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// Generate renders job and writes header and samples to job.Output.
func (g *Generator) Generate(ctx context.Context, job Job) (*Result, error) {
	start := g.now()
	if job.Output == "" {
		return nil, fmt.Errorf("%w: output path is empty", ErrConfig)
	}

	g.logger.Debug("generating tone",
		"output", job.Output,
		"format", job.Tone.Format.String(),
		"frequency", job.Tone.Frequency,
		"offset", job.Tone.Offset,
		"seconds", job.Seconds,
	)

	samples, err := tone.Synthesize(job.Seconds, job.Tone)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	var opts []wav.Option
	if job.NativeRIFFSize {
		opts = append(opts, wav.WithNativeRIFFSize())
	}
	file := wav.NewFile(job.Tone.Format.DataChunk(samples), opts...)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n, err := storage.Put(ctx, g.store, job.Output, file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	res := &Result{
		Path:       job.Output,
		Location:   g.store.Location(job.Output),
		Format:     job.Tone.Format.String(),
		Seconds:    job.Seconds,
		Frequency:  job.Tone.Frequency,
		Offset:     job.Tone.Offset,
		HeaderSize: wav.HeaderSize,
		DataSize:   int64(len(samples)),
		FileSize:   n,
		Elapsed:    g.now().Sub(start),
	}
	res.ElapsedSeconds = res.Elapsed.Seconds()
	g.logger.Info("tone written",
		"location", res.Location,
		"bytes", res.FileSize,
		"elapsed", fmt.Sprintf("%.3fs", res.Elapsed.Seconds()),
	)

	if g.rec != nil {
		rec := &history.Record{
			Path:       res.Path,
			Location:   res.Location,
			Backend:    g.backend,
			Seconds:    job.Seconds,
			Frequency:  job.Tone.Frequency,
			Offset:     job.Tone.Offset,
			Channels:   job.Tone.Format.Channels,
			Bits:       job.Tone.Format.Depth,
			SampleRate: job.Tone.Format.SampleRate,
			DataBytes:  res.DataSize,
			Elapsed:    res.Elapsed,
		}
		if err := g.rec.Add(ctx, rec); err != nil {
			g.logger.Warn("failed to record history", "error", err)
		} else {
			res.ID = rec.ID
		}
	}
	return res, nil
}
