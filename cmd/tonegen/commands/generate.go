package commands

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/haivivi/tonegen/pkg/audio/pcm"
	"github.com/haivivi/tonegen/pkg/cli"
	"github.com/haivivi/tonegen/pkg/generator"
)

// GenerateRequest is the file form of the generate flags, loaded with -f.
// Omitted fields keep the context or built-in defaults.
type GenerateRequest struct {
	Output         string   `json:"output,omitempty" yaml:"output,omitempty" jsonschema:"output path, relative to the storage root"`
	Bits           int      `json:"bits,omitempty" yaml:"bits,omitempty" jsonschema:"bits per sample: 8 or 16"`
	Difference     *float64 `json:"difference,omitempty" yaml:"difference,omitempty" jsonschema:"right channel frequency offset in Hz"`
	Length         *uint32  `json:"length,omitempty" yaml:"length,omitempty" jsonschema:"duration in whole seconds"`
	Frequency      *float64 `json:"frequency,omitempty" yaml:"frequency,omitempty" jsonschema:"base frequency in Hz"`
	Channels       int      `json:"channels,omitempty" yaml:"channels,omitempty" jsonschema:"channel count: 1 or 2"`
	SampleRate     int      `json:"sample_rate,omitempty" yaml:"sample_rate,omitempty" jsonschema:"frames per second"`
	NativeRIFFSize *bool    `json:"native_riff_size,omitempty" yaml:"native_riff_size,omitempty" jsonschema:"write the RIFF chunk size in host byte order"`
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render a sine test tone to a WAVE file",
	Long: `Render a sine test tone to an uncompressed PCM WAVE file.

Values are taken from, in increasing priority: built-in defaults (16-bit
stereo, 44100 Hz, 220 Hz, 2 Hz difference, 30 s, out.wav), the selected
context, the -f request file, and explicitly set flags.

Examples:
  tonegen generate
  tonegen generate -o mono.wav --channels 1 -b 8 -l 1
  tonegen generate -d 3 -l 5
  tonegen generate -f tone.yaml --frequency 440
  tonegen generate --format json -q .location`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.SetNormalizeFunc(generateFlagAliases)
	f.StringP("output", "o", generator.DefaultOutput, "output file")
	f.IntP("bits", "b", 16, "bits per sample (8 or 16), alias --bitrate")
	f.Float64P("difference", "d", 2.0, "right channel frequency offset in Hz")
	f.Uint32P("length", "l", generator.DefaultSeconds, "duration in seconds")
	f.Float64("frequency", 220.0, "base frequency in Hz")
	f.Int("channels", 2, "channel count (1 or 2)")
	f.Int("sample-rate", pcm.DefaultSampleRate, "sample rate in Hz")
	f.Bool("native-riff-size", false, "write the RIFF chunk size in host byte order")
	f.StringP("file", "f", "", "request file (YAML or JSON, - for stdin)")
	f.Bool("no-history", false, "do not record this run in history")
}

// generateFlagAliases maps the legacy --bitrate name onto --bits.
func generateFlagAliases(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "bitrate" {
		name = "bits"
	}
	return pflag.NormalizedName(name)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, err := getContext()
	if err != nil {
		return err
	}

	job := generator.DefaultJob()
	if ctx != nil {
		applyToneDefaults(&job, ctx.Tone)
	}
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		var req GenerateRequest
		if err := cli.LoadRequest(path, &req); err != nil {
			return fmt.Errorf("load request: %w", err)
		}
		applyRequest(&job, &req)
	}
	applyFlags(cmd, &job)

	if err := checkBits(job.Tone.Format.Depth); err != nil {
		return err
	}

	store, kind, err := openStore(ctx)
	if err != nil {
		return err
	}

	opts := []generator.Option{
		generator.WithLogger(slog.Default()),
		generator.WithBackend(kind),
	}
	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		hist, err := openHistory()
		if err != nil {
			slog.Warn("history disabled", "error", err)
		} else {
			defer hist.Close()
			opts = append(opts, generator.WithRecorder(hist))
		}
	}

	res, err := generator.New(store, opts...).Generate(cmd.Context(), job)
	if err != nil {
		return err
	}
	return outputResult(res)
}

// checkBits rejects depths outside the supported set before any work.
// The error is classed like the generator's own validation errors.
func checkBits(bits int) error {
	if !slices.Contains(pcm.SupportedDepths, bits) {
		return fmt.Errorf("%w: %w: %d (supported: %v)",
			generator.ErrConfig, pcm.ErrUnsupportedDepth, bits, pcm.SupportedDepths)
	}
	return nil
}

func applyToneDefaults(job *generator.Job, d *cli.ToneDefaults) {
	if d == nil {
		return
	}
	if d.Bits != 0 {
		job.Tone.Format.Depth = d.Bits
	}
	if d.Channels != 0 {
		job.Tone.Format.Channels = d.Channels
	}
	if d.SampleRate != 0 {
		job.Tone.Format.SampleRate = d.SampleRate
	}
	if d.Frequency != nil {
		job.Tone.Frequency = *d.Frequency
	}
	if d.Difference != nil {
		job.Tone.Offset = *d.Difference
	}
	if d.Seconds != nil {
		job.Seconds = *d.Seconds
	}
	if d.Output != "" {
		job.Output = d.Output
	}
	if d.NativeRIFFSize {
		job.NativeRIFFSize = true
	}
}

func applyRequest(job *generator.Job, r *GenerateRequest) {
	if r.Output != "" {
		job.Output = r.Output
	}
	if r.Bits != 0 {
		job.Tone.Format.Depth = r.Bits
	}
	if r.Channels != 0 {
		job.Tone.Format.Channels = r.Channels
	}
	if r.SampleRate != 0 {
		job.Tone.Format.SampleRate = r.SampleRate
	}
	if r.Frequency != nil {
		job.Tone.Frequency = *r.Frequency
	}
	if r.Difference != nil {
		job.Tone.Offset = *r.Difference
	}
	if r.Length != nil {
		job.Seconds = *r.Length
	}
	if r.NativeRIFFSize != nil {
		job.NativeRIFFSize = *r.NativeRIFFSize
	}
}

// applyFlags copies only the flags the user set, so they override the
// context and request file but the flag defaults do not.
func applyFlags(cmd *cobra.Command, job *generator.Job) {
	f := cmd.Flags()
	if f.Changed("output") {
		job.Output, _ = f.GetString("output")
	}
	if f.Changed("bits") {
		job.Tone.Format.Depth, _ = f.GetInt("bits")
	}
	if f.Changed("difference") {
		job.Tone.Offset, _ = f.GetFloat64("difference")
	}
	if f.Changed("length") {
		job.Seconds, _ = f.GetUint32("length")
	}
	if f.Changed("frequency") {
		job.Tone.Frequency, _ = f.GetFloat64("frequency")
	}
	if f.Changed("channels") {
		job.Tone.Format.Channels, _ = f.GetInt("channels")
	}
	if f.Changed("sample-rate") {
		job.Tone.Format.SampleRate, _ = f.GetInt("sample-rate")
	}
	if f.Changed("native-riff-size") {
		job.NativeRIFFSize, _ = f.GetBool("native-riff-size")
	}
}
