package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haivivi/tonegen/pkg/cli"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long: `Manage tonegen configuration.

Configuration is stored in ~/.tonegen/config.yaml.
Multiple contexts can be defined for different tone presets or output targets.`,
}

var configAddContextCmd = &cobra.Command{
	Use:   "add-context <name>",
	Short: "Add or replace a context",
	Long: `Add a context with default tone parameters and an output target.

Examples:
  tonegen config add-context lab --bits 8 --channels 1 --dir ./tones
  tonegen config add-context cloud --storage s3 --bucket my-tones --prefix lab \
    --region us-west-2
  tonegen config add-context minio --storage s3 --bucket tones \
    --endpoint http://localhost:9000 --path-style \
    --access-key minioadmin --secret-key minioadmin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}

		name := args[0]
		ctx := &cli.Context{Name: name}
		if tone := toneDefaultsFromFlags(cmd); tone != nil {
			ctx.Tone = tone
		}
		if sc := storageFromFlags(cmd); sc != nil {
			ctx.Storage = sc
		}

		if err := cfg.AddContext(name, ctx); err != nil {
			return err
		}
		cli.PrintSuccess("Context '%s' added successfully", name)
		return nil
	},
}

var configDeleteContextCmd = &cobra.Command{
	Use:   "delete-context <name>",
	Short: "Delete a context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		if err := cfg.DeleteContext(args[0]); err != nil {
			return err
		}
		cli.PrintSuccess("Context '%s' deleted", args[0])
		return nil
	},
}

var configUseContextCmd = &cobra.Command{
	Use:   "use-context <name>",
	Short: "Set the default context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		if err := cfg.UseContext(args[0]); err != nil {
			return err
		}
		cli.PrintSuccess("Switched to context '%s'", args[0])
		return nil
	},
}

var configGetContextCmd = &cobra.Command{
	Use:   "get-context [name]",
	Short: "Show a context (default: the current one)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		name := cfg.CurrentContext
		if len(args) == 1 {
			name = args[0]
		}
		if name == "" {
			fmt.Println("No current context set")
			return nil
		}
		ctx, err := cfg.GetContext(name)
		if err != nil {
			return err
		}
		return outputResult(ctx.Redacted())
	},
}

var configListContextsCmd = &cobra.Command{
	Use:   "list-contexts",
	Short: "List all contexts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		names := cfg.ListContexts()
		if len(names) == 0 {
			fmt.Println("No contexts configured")
			return nil
		}
		for _, name := range names {
			marker := "  "
			if name == cfg.CurrentContext {
				marker = "* "
			}
			fmt.Printf("%s%s\n", marker, name)
		}
		return nil
	},
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "View full configuration (secrets masked)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		return outputResult(cfg.Redacted())
	},
}

func toneDefaultsFromFlags(cmd *cobra.Command) *cli.ToneDefaults {
	f := cmd.Flags()
	var d cli.ToneDefaults
	set := false
	if f.Changed("bits") {
		d.Bits, _ = f.GetInt("bits")
		set = true
	}
	if f.Changed("channels") {
		d.Channels, _ = f.GetInt("channels")
		set = true
	}
	if f.Changed("sample-rate") {
		d.SampleRate, _ = f.GetInt("sample-rate")
		set = true
	}
	if f.Changed("frequency") {
		v, _ := f.GetFloat64("frequency")
		d.Frequency = &v
		set = true
	}
	if f.Changed("difference") {
		v, _ := f.GetFloat64("difference")
		d.Difference = &v
		set = true
	}
	if f.Changed("length") {
		v, _ := f.GetUint32("length")
		d.Seconds = &v
		set = true
	}
	if f.Changed("output") {
		d.Output, _ = f.GetString("output")
		set = true
	}
	if f.Changed("native-riff-size") {
		d.NativeRIFFSize, _ = f.GetBool("native-riff-size")
		set = true
	}
	if !set {
		return nil
	}
	return &d
}

func storageFromFlags(cmd *cobra.Command) *cli.StorageConfig {
	f := cmd.Flags()
	var sc cli.StorageConfig
	sc.Kind, _ = f.GetString("storage")
	sc.Dir, _ = f.GetString("dir")
	sc.Bucket, _ = f.GetString("bucket")
	sc.Prefix, _ = f.GetString("prefix")
	sc.Region, _ = f.GetString("region")
	sc.Endpoint, _ = f.GetString("endpoint")
	sc.AccessKey, _ = f.GetString("access-key")
	sc.SecretKey, _ = f.GetString("secret-key")
	sc.PathStyle, _ = f.GetBool("path-style")
	if sc == (cli.StorageConfig{}) {
		return nil
	}
	return &sc
}

func init() {
	f := configAddContextCmd.Flags()
	// tone defaults
	f.Int("bits", 0, "default bits per sample (8 or 16)")
	f.Int("channels", 0, "default channel count (1 or 2)")
	f.Int("sample-rate", 0, "default sample rate in Hz")
	f.Float64("frequency", 0, "default base frequency in Hz")
	f.Float64("difference", 0, "default right channel offset in Hz")
	f.Uint32("length", 0, "default duration in seconds")
	f.String("output", "", "default output path")
	f.Bool("native-riff-size", false, "write the RIFF chunk size in host byte order")
	// storage
	f.String("storage", "", "storage kind: local or s3 (default local)")
	f.String("dir", "", "output directory (local)")
	f.String("bucket", "", "bucket name (s3)")
	f.String("prefix", "", "object key prefix (s3)")
	f.String("region", "", "region (s3, default $AWS_REGION or us-east-1)")
	f.String("endpoint", "", "custom endpoint for S3-compatible services")
	f.String("access-key", "", "access key (default $AWS_ACCESS_KEY_ID)")
	f.String("secret-key", "", "secret key (default $AWS_SECRET_ACCESS_KEY)")
	f.Bool("path-style", false, "use path-style addressing (s3)")

	configCmd.AddCommand(configAddContextCmd)
	configCmd.AddCommand(configDeleteContextCmd)
	configCmd.AddCommand(configUseContextCmd)
	configCmd.AddCommand(configGetContextCmd)
	configCmd.AddCommand(configListContextsCmd)
	configCmd.AddCommand(configViewCmd)
}
