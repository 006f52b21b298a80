package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

const (
	// DefaultBaseDir is the base configuration directory name
	DefaultBaseDir = ".tonegen"
	// DefaultConfigFile is the default configuration filename
	DefaultConfigFile = "config.yaml"
)

// Storage kinds.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config represents the tonegen configuration file
type Config struct {
	// CurrentContext is the name of the currently active context
	CurrentContext string `yaml:"current_context,omitempty" json:"current_context,omitempty"`

	// Contexts is a map of context name to context configuration
	Contexts map[string]*Context `yaml:"contexts,omitempty" json:"contexts,omitempty"`

	// configPath is the path to the config file
	configPath string
}

// Context is a named set of tone defaults and an output target.
type Context struct {
	// Name is the context name
	Name string `yaml:"name" json:"name"`

	// Tone holds default generation parameters (optional)
	Tone *ToneDefaults `yaml:"tone,omitempty" json:"tone,omitempty"`

	// Storage selects where files are written (optional, default local cwd)
	Storage *StorageConfig `yaml:"storage,omitempty" json:"storage,omitempty"`
}

// ToneDefaults overrides the built-in generation defaults. Zero or nil
// fields are left at the built-in value.
type ToneDefaults struct {
	Bits           int      `yaml:"bits,omitempty" json:"bits,omitempty"`
	Channels       int      `yaml:"channels,omitempty" json:"channels,omitempty"`
	SampleRate     int      `yaml:"sample_rate,omitempty" json:"sample_rate,omitempty"`
	Frequency      *float64 `yaml:"frequency,omitempty" json:"frequency,omitempty"`
	Difference     *float64 `yaml:"difference,omitempty" json:"difference,omitempty"`
	Seconds        *uint32  `yaml:"seconds,omitempty" json:"seconds,omitempty"`
	Output         string   `yaml:"output,omitempty" json:"output,omitempty"`
	NativeRIFFSize bool     `yaml:"native_riff_size,omitempty" json:"native_riff_size,omitempty"`
}

// StorageConfig describes an output target.
type StorageConfig struct {
	// Kind is "local" (default) or "s3"
	Kind string `yaml:"kind,omitempty" json:"kind,omitempty"`

	// Dir is the local output directory (local only, default ".")
	Dir string `yaml:"dir,omitempty" json:"dir,omitempty"`

	// Bucket and Prefix locate objects (s3 only)
	Bucket string `yaml:"bucket,omitempty" json:"bucket,omitempty"`
	Prefix string `yaml:"prefix,omitempty" json:"prefix,omitempty"`

	// Region, Endpoint and credentials configure the S3 client.
	// Empty values fall back to the AWS_* environment variables.
	Region    string `yaml:"region,omitempty" json:"region,omitempty"`
	Endpoint  string `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	AccessKey string `yaml:"access_key,omitempty" json:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty" json:"secret_key,omitempty"`
	PathStyle bool   `yaml:"path_style,omitempty" json:"path_style,omitempty"`
}

// KindOrDefault returns Kind, or StorageLocal if unset.
func (s *StorageConfig) KindOrDefault() string {
	if s == nil || s.Kind == "" {
		return StorageLocal
	}
	return s.Kind
}

// Validate checks the storage kind and its required fields.
func (s *StorageConfig) Validate() error {
	switch s.KindOrDefault() {
	case StorageLocal:
		return nil
	case StorageS3:
		if s.Bucket == "" {
			return fmt.Errorf("s3 storage requires a bucket")
		}
		return nil
	default:
		return fmt.Errorf("unknown storage kind %q (want %s or %s)", s.Kind, StorageLocal, StorageS3)
	}
}

// LoadConfigWithPath loads configuration from customPath, or from
// ~/.tonegen/config.yaml when it is empty.
func LoadConfigWithPath(customPath string) (*Config, error) {
	configPath := customPath
	if configPath == "" {
		paths, err := NewPaths()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = paths.ConfigFile()
	}

	// Ensure config directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := &Config{
		Contexts:   make(map[string]*Context),
		configPath: configPath,
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Contexts == nil {
		cfg.Contexts = make(map[string]*Context)
	}
	for name, ctx := range cfg.Contexts {
		if ctx == nil {
			ctx = &Context{}
			cfg.Contexts[name] = ctx
		}
		ctx.Name = name
	}
	cfg.configPath = configPath

	return cfg, nil
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 0600: contexts may hold S3 secret keys
	if err := os.WriteFile(c.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Path returns the config file path
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the config directory path
func (c *Config) Dir() string {
	return filepath.Dir(c.configPath)
}

// HistoryDir returns the history database directory next to the config file
func (c *Config) HistoryDir() string {
	return filepath.Join(c.Dir(), "history")
}

// AddContext adds or replaces a context
func (c *Config) AddContext(name string, ctx *Context) error {
	if name == "" {
		return fmt.Errorf("context name is required")
	}
	if ctx.Storage != nil {
		if err := ctx.Storage.Validate(); err != nil {
			return err
		}
	}
	ctx.Name = name
	c.Contexts[name] = ctx
	return c.Save()
}

// DeleteContext removes a context
func (c *Config) DeleteContext(name string) error {
	if _, ok := c.Contexts[name]; !ok {
		return fmt.Errorf("context %q not found", name)
	}
	delete(c.Contexts, name)
	if c.CurrentContext == name {
		c.CurrentContext = ""
	}
	return c.Save()
}

// UseContext sets the current context
func (c *Config) UseContext(name string) error {
	if _, ok := c.Contexts[name]; !ok {
		return fmt.Errorf("context %q not found", name)
	}
	c.CurrentContext = name
	return c.Save()
}

// GetContext returns a specific context
func (c *Config) GetContext(name string) (*Context, error) {
	ctx, ok := c.Contexts[name]
	if !ok {
		return nil, fmt.Errorf("context %q not found", name)
	}
	return ctx, nil
}

// GetCurrentContext returns the current context
func (c *Config) GetCurrentContext() (*Context, error) {
	if c.CurrentContext == "" {
		return nil, fmt.Errorf("no current context set")
	}
	return c.GetContext(c.CurrentContext)
}

// ResolveContext returns the context by name, the current context if name
// is empty, or nil when neither is set. Unlike API-backed tools, tonegen
// runs fine without any context.
func (c *Config) ResolveContext(name string) (*Context, error) {
	if name == "" {
		if c.CurrentContext == "" {
			return nil, nil
		}
		return c.GetCurrentContext()
	}
	return c.GetContext(name)
}

// ListContexts returns all context names, sorted
func (c *Config) ListContexts() []string {
	names := make([]string, 0, len(c.Contexts))
	for name := range c.Contexts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Redacted returns a copy of the config with secrets masked, for display.
func (c *Config) Redacted() *Config {
	out := &Config{
		CurrentContext: c.CurrentContext,
		Contexts:       make(map[string]*Context, len(c.Contexts)),
		configPath:     c.configPath,
	}
	for name, ctx := range c.Contexts {
		out.Contexts[name] = ctx.Redacted()
	}
	return out
}

// Redacted returns a copy of the context with secrets masked.
func (ctx *Context) Redacted() *Context {
	cp := *ctx
	if ctx.Storage != nil {
		s := *ctx.Storage
		s.SecretKey = MaskSecret(s.SecretKey)
		cp.Storage = &s
	}
	return &cp
}

// MaskSecret masks a secret for display
func MaskSecret(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
