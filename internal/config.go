package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Comment styles for rendered highlight groups.
const (
	CommentStyleNone = "none"
	CommentStyleHTML = "html"
	CommentStyleMD   = "md"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Vault    VaultConfig       `yaml:"vault"`
	Device   DeviceConfig      `yaml:"device"`
	Template TemplateConfig    `yaml:"template"`
	Stats    StatsConfig       `yaml:"stats"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Vault.Validate(); err != nil {
		return err
	}
	if err := c.Device.Validate(); err != nil {
		return err
	}
	return c.Template.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds the preview server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns the preview server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// VaultConfig holds the path to the Markdown vault directory and the
// subfolder that receives highlight notes.
type VaultConfig struct {
	Path   string `yaml:"path"`
	Folder string `yaml:"folder"`
}

// Validate validates the vault configuration.
func (c *VaultConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// DeviceConfig locates the mounted reader and tunes the export watcher.
type DeviceConfig struct {
	MountPoint string `yaml:"mount_point"`
	DebounceMS int    `yaml:"debounce_ms"`
}

// Debounce returns the watcher quiet period.
func (c *DeviceConfig) Debounce() time.Duration {
	if c.DebounceMS <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Validate validates the device configuration.
func (c *DeviceConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MountPoint, validation.Required),
		validation.Field(&c.DebounceMS, validation.Min(0)),
	)
}

// TemplateConfig selects the highlight template and rendering policy.
//
// CommentStyle controls the provenance marker emitted above each
// rendered group:
//   - "none": no marker.
//   - "html" (default): an HTML comment, invisible in rendered Markdown.
//   - "md": an Obsidian-style %% comment.
type TemplateConfig struct {
	Path            string `yaml:"path"`
	CommentStyle    string `yaml:"comment_style"`
	MaxHighlightGap int    `yaml:"max_highlight_gap"`
	CacheSize       int    `yaml:"cache_size"`
}

// Validate validates the template configuration.
func (c *TemplateConfig) Validate() error {
	// Normalise empty comment style for backward compatibility.
	if c.CommentStyle == "" {
		c.CommentStyle = CommentStyleHTML
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.CommentStyle, validation.Required,
			validation.In(CommentStyleNone, CommentStyleHTML, CommentStyleMD)),
		validation.Field(&c.MaxHighlightGap, validation.Min(0)),
		validation.Field(&c.CacheSize, validation.Min(0)),
	)
}

// StatsConfig holds the path to the reader's statistics database. An
// empty path disables statistics enrichment.
type StatsConfig struct {
	Path string `yaml:"path"`
}

// Enabled returns true when a statistics database is configured.
func (c *StatsConfig) Enabled() bool {
	return c.Path != ""
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8181,
			},
		},
		Vault: VaultConfig{
			Path:   "./vault",
			Folder: "highlights",
		},
		Device: DeviceConfig{
			MountPoint: "/media/koreader",
			DebounceMS: 2000,
		},
		Template: TemplateConfig{
			Path:            "./template.md",
			CommentStyle:    CommentStyleHTML,
			MaxHighlightGap: 1,
			CacheSize:       64,
		},
	}
}
