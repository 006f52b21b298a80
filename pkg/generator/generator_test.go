package generator

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/haivivi/tonegen/pkg/audio/pcm"
	"github.com/haivivi/tonegen/pkg/audio/wav"
	"github.com/haivivi/tonegen/pkg/history"
	"github.com/haivivi/tonegen/pkg/storage"
)

func newLocal(t *testing.T) (*storage.Local, string) {
	t.Helper()
	dir := t.TempDir()
	l, err := storage.NewLocal(dir)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	return l, dir
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGenerateDefault(t *testing.T) {
	store, dir := newLocal(t)
	g := New(store, WithLogger(quietLogger()))

	job := DefaultJob()
	job.Seconds = 1
	res, err := g.Generate(context.Background(), job)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "out.wav"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) != 44+176400 {
		t.Fatalf("file size = %d, want %d", len(data), 44+176400)
	}
	if res.FileSize != int64(len(data)) {
		t.Errorf("FileSize = %d, want %d", res.FileSize, len(data))
	}
	if res.DataSize != 176400 {
		t.Errorf("DataSize = %d, want 176400", res.DataSize)
	}

	h, err := wav.ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if h.Format() != pcm.L16Stereo44K {
		t.Errorf("format = %v, want %v", h.Format(), pcm.L16Stereo44K)
	}
	if h.ChunkSize != 36+176400 {
		t.Errorf("ChunkSize = %d", h.ChunkSize)
	}
	if res.Location != filepath.Join(dir, "out.wav") {
		t.Errorf("Location = %q", res.Location)
	}
}

func TestGenerateMono8(t *testing.T) {
	store, dir := newLocal(t)
	g := New(store, WithLogger(quietLogger()))

	job := DefaultJob()
	job.Output = "mono.wav"
	job.Seconds = 1
	job.Tone.Format = pcm.L8Mono44K
	if _, err := g.Generate(context.Background(), job); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "mono.wav"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) != 44+44100 {
		t.Fatalf("file size = %d, want %d", len(data), 44+44100)
	}
	if data[44] != 127 {
		t.Errorf("first sample = %d, want 127", data[44])
	}
}

func TestGenerateRejectsUnsupportedDepth(t *testing.T) {
	store, dir := newLocal(t)
	g := New(store, WithLogger(quietLogger()))

	job := DefaultJob()
	job.Seconds = 1
	job.Tone.Format.Depth = 12
	_, err := g.Generate(context.Background(), job)
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("err = %v, want ErrConfig", err)
	}
	if !errors.Is(err, pcm.ErrUnsupportedDepth) {
		t.Errorf("err = %v, want ErrUnsupportedDepth", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out.wav")); !os.IsNotExist(err) {
		t.Errorf("output exists after config error: %v", err)
	}
}

func TestGenerateRejectsOversizedSampleRate(t *testing.T) {
	tests := []struct {
		name   string
		format pcm.Format
	}{
		{"byte rate wraps", pcm.Format{SampleRate: 1 << 31, Channels: 2, Depth: 16}},
		{"rate wraps", pcm.Format{SampleRate: 1<<32 + 44100, Channels: 2, Depth: 16}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, dir := newLocal(t)
			g := New(store, WithLogger(quietLogger()))

			job := DefaultJob()
			job.Seconds = 0
			job.Tone.Format = tt.format
			_, err := g.Generate(context.Background(), job)
			if !errors.Is(err, ErrConfig) {
				t.Fatalf("err = %v, want ErrConfig", err)
			}
			if !errors.Is(err, pcm.ErrInvalidSampleRate) {
				t.Errorf("err = %v, want ErrInvalidSampleRate", err)
			}
			if _, err := os.Stat(filepath.Join(dir, "out.wav")); !os.IsNotExist(err) {
				t.Errorf("output exists after config error: %v", err)
			}
		})
	}
}

func TestGenerateEmptyOutput(t *testing.T) {
	store, _ := newLocal(t)
	g := New(store, WithLogger(quietLogger()))

	job := DefaultJob()
	job.Output = ""
	if _, err := g.Generate(context.Background(), job); !errors.Is(err, ErrConfig) {
		t.Fatalf("err = %v, want ErrConfig", err)
	}
}

func TestGenerateZeroSeconds(t *testing.T) {
	store, dir := newLocal(t)
	g := New(store, WithLogger(quietLogger()))

	job := DefaultJob()
	job.Seconds = 0
	res, err := g.Generate(context.Background(), job)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.FileSize != wav.HeaderSize {
		t.Errorf("FileSize = %d, want %d", res.FileSize, wav.HeaderSize)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "out.wav"))
	h, err := wav.ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if h.ChunkSize != 36 || h.DataSize != 0 {
		t.Errorf("header = %+v", h)
	}
}

func TestGenerateNativeRIFFSize(t *testing.T) {
	store, dir := newLocal(t)
	g := New(store, WithLogger(quietLogger()))

	job := DefaultJob()
	job.Seconds = 1
	job.NativeRIFFSize = true
	if _, err := g.Generate(context.Background(), job); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "out.wav"))
	want := wav.EncodeHeader(pcm.L16Stereo44K, 176400, wav.WithNativeRIFFSize())
	if !bytes.Equal(data[:wav.HeaderSize], want[:]) {
		t.Errorf("header = % x, want % x", data[:wav.HeaderSize], want[:])
	}
}

func TestGenerateRecordsHistory(t *testing.T) {
	store, _ := newLocal(t)
	hist := history.NewMemory()
	defer hist.Close()

	g := New(store, WithLogger(quietLogger()), WithRecorder(hist), WithBackend("local"))
	job := DefaultJob()
	job.Seconds = 1
	res, err := g.Generate(context.Background(), job)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.ID == "" {
		t.Fatal("result has no history ID")
	}

	rec, err := hist.Get(context.Background(), res.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Bits != 16 || rec.Channels != 2 || rec.SampleRate != 44100 {
		t.Errorf("record format = %d/%d/%d", rec.Bits, rec.Channels, rec.SampleRate)
	}
	if rec.Backend != "local" || rec.Path != "out.wav" {
		t.Errorf("record = %+v", rec)
	}
	if rec.DataBytes != 176400 {
		t.Errorf("DataBytes = %d", rec.DataBytes)
	}
}

type failingRecorder struct{}

func (failingRecorder) Add(context.Context, *history.Record) error {
	return errors.New("disk full")
}

func TestGenerateHistoryFailureIsNotFatal(t *testing.T) {
	store, dir := newLocal(t)
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	g := New(store, WithLogger(logger), WithRecorder(failingRecorder{}))
	job := DefaultJob()
	job.Seconds = 1
	res, err := g.Generate(context.Background(), job)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.ID != "" {
		t.Errorf("ID = %q, want empty", res.ID)
	}
	if _, err := os.Stat(filepath.Join(dir, "out.wav")); err != nil {
		t.Errorf("output missing: %v", err)
	}
	if !bytes.Contains(logs.Bytes(), []byte("failed to record history")) {
		t.Errorf("warning not logged: %s", logs.String())
	}
}

// brokenStore accepts Create but fails every write.
type brokenStore struct {
	storage.FileStore
	aborted bool
}

func (s *brokenStore) Create(context.Context, string) (storage.Writer, error) {
	return &brokenWriter{s: s}, nil
}

func (s *brokenStore) Location(path string) string { return "broken://" + path }

type brokenWriter struct{ s *brokenStore }

func (w *brokenWriter) Write([]byte) (int, error) { return 0, errors.New("device unplugged") }
func (w *brokenWriter) Commit() error             { return errors.New("commit after failure") }
func (w *brokenWriter) Abort(error) error {
	w.s.aborted = true
	return nil
}

func TestGenerateStorageFailure(t *testing.T) {
	store := &brokenStore{}
	g := New(store, WithLogger(quietLogger()))

	job := DefaultJob()
	job.Seconds = 1
	_, err := g.Generate(context.Background(), job)
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("err = %v, want ErrStorage", err)
	}
	if !store.aborted {
		t.Error("staged write was not aborted")
	}
}

func TestGenerateUnwritableDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	store, err := storage.NewLocal(dir)
	if err != nil {
		t.Fatal(err)
	}
	g := New(store, WithLogger(quietLogger()))

	job := DefaultJob()
	job.Seconds = 1
	job.Output = "file/out.wav"
	if _, err := g.Generate(context.Background(), job); !errors.Is(err, ErrStorage) {
		t.Fatalf("err = %v, want ErrStorage", err)
	}
}

func TestGenerateCanceled(t *testing.T) {
	store, dir := newLocal(t)
	g := New(store, WithLogger(quietLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	job := DefaultJob()
	job.Seconds = 1
	if _, err := g.Generate(ctx, job); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out.wav")); !os.IsNotExist(err) {
		t.Errorf("output exists after cancel: %v", err)
	}
}
