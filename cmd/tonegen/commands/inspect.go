package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haivivi/tonegen/pkg/audio/wav"
)

// InspectResult is the output of the inspect command.
type InspectResult struct {
	Location  string     `json:"location" yaml:"location"`
	Format    string     `json:"format" yaml:"format"`
	Seconds   float64    `json:"seconds" yaml:"seconds"`
	DataBytes int64      `json:"data_bytes" yaml:"data_bytes"`
	FileBytes int64      `json:"file_bytes" yaml:"file_bytes"`
	Header    wav.Header `json:"header" yaml:"header"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <path>",
	Short: "Show the header of a WAVE file",
	Long: `Read and validate the 44-byte header of a PCM WAVE file.

The path is resolved against the storage of the selected context, so
S3 objects can be inspected the same way as local files. Sample data is
not read.

Examples:
  tonegen inspect out.wav
  tonegen -c cloud inspect tones/a440.wav --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}
		store, _, err := openStore(ctx)
		if err != nil {
			return err
		}

		path := args[0]
		r, err := store.Read(cmd.Context(), path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer r.Close()

		h, err := wav.ReadHeader(r)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		f := h.Format()
		return outputResult(&InspectResult{
			Location:  store.Location(path),
			Format:    f.String(),
			Seconds:   f.Duration(int64(h.DataSize)).Seconds(),
			DataBytes: int64(h.DataSize),
			FileBytes: wav.HeaderSize + int64(h.DataSize),
			Header:    h,
		})
	},
}
