package pcm

import (
	"bytes"
	"errors"
	"math"
	"testing"
	"time"
)

func TestFormatValidate(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		wantErr error
	}{
		{"8-bit mono", L8Mono44K, nil},
		{"16-bit stereo", L16Stereo44K, nil},
		{"12-bit", Format{SampleRate: 44100, Channels: 2, Depth: 12}, ErrUnsupportedDepth},
		{"24-bit", Format{SampleRate: 44100, Channels: 1, Depth: 24}, ErrUnsupportedDepth},
		{"zero channels", Format{SampleRate: 44100, Channels: 0, Depth: 16}, ErrUnsupportedChannels},
		{"three channels", Format{SampleRate: 44100, Channels: 3, Depth: 16}, ErrUnsupportedChannels},
		{"zero rate", Format{SampleRate: 0, Channels: 1, Depth: 8}, ErrInvalidSampleRate},
		{"byte rate overflow", Format{SampleRate: 1 << 31, Channels: 2, Depth: 16}, ErrInvalidSampleRate},
		{"rate above 32 bits", Format{SampleRate: 1<<32 + 44100, Channels: 1, Depth: 8}, ErrInvalidSampleRate},
		{"largest 8-bit mono rate", Format{SampleRate: math.MaxUint32, Channels: 1, Depth: 8}, nil},
		{"largest 16-bit stereo rate", Format{SampleRate: math.MaxUint32 / 4, Channels: 2, Depth: 16}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.format.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFormatSizes(t *testing.T) {
	tests := []struct {
		format     Format
		blockAlign int
		bytesRate  int
	}{
		{L8Mono44K, 1, 44100},
		{L8Stereo44K, 2, 88200},
		{L16Mono44K, 2, 88200},
		{L16Stereo44K, 4, 176400},
	}

	for _, tt := range tests {
		if got := tt.format.BlockAlign(); got != tt.blockAlign {
			t.Errorf("%v BlockAlign() = %d, want %d", tt.format, got, tt.blockAlign)
		}
		if got := tt.format.BytesRate(); got != tt.bytesRate {
			t.Errorf("%v BytesRate() = %d, want %d", tt.format, got, tt.bytesRate)
		}
		if got := tt.format.BytesInSeconds(3); got != uint64(3*tt.bytesRate) {
			t.Errorf("%v BytesInSeconds(3) = %d, want %d", tt.format, got, 3*tt.bytesRate)
		}
		if got := tt.format.SampleBytes() * tt.format.Channels; got != tt.blockAlign {
			t.Errorf("%v SampleBytes() × Channels = %d, want %d", tt.format, got, tt.blockAlign)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	f := L16Stereo44K
	if got := f.Duration(176400 * 2); got != 2*time.Second {
		t.Errorf("Duration = %v, want 2s", got)
	}
	if got := f.Samples(176400); got != 44100 {
		t.Errorf("Samples = %d, want 44100", got)
	}
}

func TestFormatString(t *testing.T) {
	if got, want := L16Stereo44K.String(), "audio/L16; rate=44100; channels=2"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := L8Mono44K.String(), "audio/U8; rate=44100; channels=1"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestDataChunk(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	c := L16Mono44K.DataChunk(data)
	if c.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", c.Len())
	}
	if c.Format() != L16Mono44K {
		t.Fatalf("Format() = %v", c.Format())
	}
	var buf bytes.Buffer
	n, err := c.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 || !bytes.Equal(buf.Bytes(), data) {
		t.Fatalf("WriteTo wrote %d bytes %v", n, buf.Bytes())
	}
}
