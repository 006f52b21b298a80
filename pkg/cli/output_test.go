package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type outputRecord struct {
	ID        string  `json:"id" yaml:"id"`
	Path      string  `json:"path" yaml:"path"`
	Frequency float64 `json:"frequency" yaml:"frequency"`
	Bytes     int64   `json:"bytes" yaml:"bytes"`
}

func TestOutput_JSON(t *testing.T) {
	var buf bytes.Buffer

	data := map[string]any{
		"name":  "test",
		"value": 123,
	}

	err := Output(data, OutputOptions{
		Format: FormatJSON,
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("Output error: %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if result["name"] != "test" {
		t.Errorf("name = %v, want %q", result["name"], "test")
	}
	if !strings.Contains(buf.String(), "\n  \"name\"") {
		t.Errorf("expected default two-space indent, got: %s", buf.String())
	}
}

func TestOutput_YAML(t *testing.T) {
	var buf bytes.Buffer

	err := Output(outputRecord{ID: "r1", Path: "out.wav", Frequency: 220}, OutputOptions{
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("Output error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"id: r1", "path: out.wav", "frequency: 220"} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
}

func TestOutput_TableList(t *testing.T) {
	var buf bytes.Buffer

	records := []outputRecord{
		{ID: "r1", Path: "a.wav", Frequency: 220, Bytes: 1764044},
		{ID: "r2", Path: "b.wav", Frequency: 440.5, Bytes: 44},
	}
	err := Output(records, OutputOptions{
		Format:  FormatTable,
		Writer:  &buf,
		Columns: []string{"id", "path", "bytes"},
	})
	if err != nil {
		t.Fatalf("Output error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"ID", "PATH", "BYTES", "r1", "b.wav", "1764044"} {
		if !strings.Contains(output, want) {
			t.Errorf("table should contain %q, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, "FREQUENCY") {
		t.Errorf("table should only show selected columns, got:\n%s", output)
	}
}

func TestOutput_TableObject(t *testing.T) {
	var buf bytes.Buffer

	err := Output(outputRecord{ID: "r1", Path: "out.wav", Frequency: 222}, OutputOptions{
		Format: FormatTable,
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("Output error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"KEY", "VALUE", "frequency", "222", "out.wav"} {
		if !strings.Contains(output, want) {
			t.Errorf("table should contain %q, got:\n%s", want, output)
		}
	}
}

func TestOutput_TableCells(t *testing.T) {
	records := []outputRecord{
		{ID: "r1", Path: "a.wav", Bytes: 5292044},
		{ID: "r2", Path: "b.wav", Bytes: 44},
	}
	cells := map[string]CellFunc{"bytes": BytesCell}

	var list bytes.Buffer
	err := Output(records, OutputOptions{
		Format:  FormatTable,
		Writer:  &list,
		Columns: []string{"id", "bytes"},
		Cells:   cells,
	})
	if err != nil {
		t.Fatalf("Output error: %v", err)
	}
	for _, want := range []string{"5.05 MB", "44 B"} {
		if !strings.Contains(list.String(), want) {
			t.Errorf("table should contain %q, got:\n%s", want, list.String())
		}
	}
	if strings.Contains(list.String(), "5292044") {
		t.Errorf("raw byte count should be formatted, got:\n%s", list.String())
	}

	var obj bytes.Buffer
	if err := Output(records[0], OutputOptions{Format: FormatTable, Writer: &obj, Cells: cells}); err != nil {
		t.Fatalf("Output error: %v", err)
	}
	if !strings.Contains(obj.String(), "5.05 MB") {
		t.Errorf("object table should format bytes, got:\n%s", obj.String())
	}

	var js bytes.Buffer
	if err := Output(records[0], OutputOptions{Format: FormatJSON, Writer: &js, Cells: cells}); err != nil {
		t.Fatalf("Output error: %v", err)
	}
	if !strings.Contains(js.String(), "5292044") {
		t.Errorf("JSON should keep raw values, got: %s", js.String())
	}
}

func TestOutput_TableEmpty(t *testing.T) {
	var buf bytes.Buffer

	if err := Output([]outputRecord{}, OutputOptions{Format: FormatTable, Writer: &buf}); err != nil {
		t.Fatalf("Output error: %v", err)
	}
	if !strings.Contains(buf.String(), "(empty)") {
		t.Errorf("got %q, want (empty)", buf.String())
	}
}

func TestOutput_Query(t *testing.T) {
	records := []outputRecord{
		{ID: "r1", Path: "a.wav", Frequency: 220},
		{ID: "r2", Path: "b.wav", Frequency: 440},
	}

	tests := []struct {
		name  string
		query string
		fmt   OutputFormat
		want  string
	}{
		{"single string raw", ".[0].path", FormatRaw, "a.wav\n"},
		{"number json", ".[1].frequency", FormatJSON, "440\n"},
		{"number raw", ".[1].frequency", FormatRaw, "440\n"},
		{"stream json", ".[].id", FormatJSON, "[\n  \"r1\",\n  \"r2\"\n]\n"},
		{"filter", "map(select(.frequency > 300)) | length", FormatRaw, "1\n"},
		{"empty", "empty", FormatRaw, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Output(records, OutputOptions{Format: tt.fmt, Writer: &buf, Query: tt.query})
			if err != nil {
				t.Fatalf("Output error: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestOutput_QueryErrors(t *testing.T) {
	var buf bytes.Buffer

	if err := Output(map[string]any{"a": 1}, OutputOptions{Writer: &buf, Query: ".["}); err == nil {
		t.Error("expected parse error")
	}
	if err := Output(map[string]any{"a": 1}, OutputOptions{Writer: &buf, Query: `error("boom")`}); err == nil {
		t.Error("expected runtime error")
	}
}

func TestOutput_Raw(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"bytes", []byte("RIFF"), "RIFF"},
		{"string", "hello", "hello\n"},
		{"nil", nil, ""},
		{"map", map[string]any{"a": 1}, "{\n  \"a\": 1\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Output(tt.in, OutputOptions{Format: FormatRaw, Writer: &buf}); err != nil {
				t.Fatalf("Output error: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestOutput_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Output("x", OutputOptions{Format: "xml", Writer: &buf})
	if err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestOutput_ToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	if err := Output(map[string]any{"k": "v"}, OutputOptions{Format: FormatJSON, File: path}); err != nil {
		t.Fatalf("Output error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if !strings.Contains(string(data), `"k": "v"`) {
		t.Errorf("file content = %s", data)
	}
}
