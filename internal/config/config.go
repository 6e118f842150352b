package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"rainfolio.dev/internal/animator"
	"rainfolio.dev/internal/logging"
	"rainfolio.dev/internal/models"
	"rainfolio.dev/internal/session"
	"rainfolio.dev/internal/viewport"
)

// EnvPrefix marks environment overrides. A double underscore separates
// nested keys: RAINFOLIO_HTTP__PORT sets http.port.
const EnvPrefix = "RAINFOLIO_"

// Config holds all application configuration
type Config struct {
	App        AppConfig        `koanf:"app"`
	HTTP       HTTPConfig       `koanf:"http"`
	Content    ContentConfig    `koanf:"content"`
	Rain       RainConfig       `koanf:"rain"`
	Typewriter TypewriterConfig `koanf:"typewriter"`
	Viewport   ViewportConfig   `koanf:"viewport"`
	Session    SessionConfig    `koanf:"session"`
	// Sections are the navigable section ids in page order
	Sections []string `koanf:"sections"`
}

// AppConfig holds process-level settings
type AppConfig struct {
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	AllowedOrigins  []string      `koanf:"allowed_origins"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Address returns the HTTP listen address
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ContentConfig locates the content documents
type ContentConfig struct {
	Dir   string `koanf:"dir"`
	Watch bool   `koanf:"watch"`
}

// RainConfig tunes the background animation
type RainConfig struct {
	CellSize      int           `koanf:"cell_size"`
	FPS           int           `koanf:"fps"`
	FadeAlpha     float64       `koanf:"fade_alpha"`
	ResetChance   float64       `koanf:"reset_chance"`
	Baseline      int           `koanf:"baseline"`
	Glyphs        string        `koanf:"glyphs"`
	Seed          uint64        `koanf:"seed"`
	FrameInterval time.Duration `koanf:"frame_interval"`
}

// TypewriterConfig tunes the hero greeting
type TypewriterConfig struct {
	Interval time.Duration `koanf:"interval"`
}

// ViewportConfig tunes the fade-in and active-section observers
type ViewportConfig struct {
	FadeThreshold float64 `koanf:"fade_threshold"`
	BandTop       float64 `koanf:"band_top"`
	BandBottom    float64 `koanf:"band_bottom"`
}

// SessionConfig bounds what one page may send and queue
type SessionConfig struct {
	OutboxSize  int     `koanf:"outbox_size"`
	MaxViewport int     `koanf:"max_viewport"`
	MaxDocument float64 `koanf:"max_document"`
	MaxSections int     `koanf:"max_sections"`
	MaxText     int     `koanf:"max_text"`
}

// Default returns a Config with the stock values
func Default() *Config {
	rain := animator.DefaultOptions()
	vp := viewport.DefaultOptions(nil)
	sess := session.DefaultOptions()
	return &Config{
		App: AppConfig{
			LogLevel:  "info",
			LogFormat: logging.FormatJSON,
		},
		HTTP: HTTPConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Content: ContentConfig{
			Dir:   "data",
			Watch: true,
		},
		Rain: RainConfig{
			CellSize:      rain.CellSize,
			FPS:           rain.FPS,
			FadeAlpha:     rain.FadeAlpha,
			ResetChance:   rain.ResetChance,
			Baseline:      rain.Baseline,
			FrameInterval: time.Second / 60,
		},
		Typewriter: TypewriterConfig{
			Interval: 100 * time.Millisecond,
		},
		Viewport: ViewportConfig{
			FadeThreshold: vp.FadeThreshold,
			BandTop:       vp.Band.Top,
			BandBottom:    vp.Band.Bottom,
		},
		Session: SessionConfig{
			OutboxSize:  sess.OutboxSize,
			MaxViewport: sess.Limits.MaxViewport,
			MaxDocument: sess.Limits.MaxDocument,
			MaxSections: sess.Limits.MaxSections,
			MaxText:     sess.Limits.MaxText,
		},
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// list defaults are applied after unmarshalling so a configured list
	// replaces them instead of merging into them
	if len(cfg.Sections) == 0 {
		cfg.Sections = models.SectionNames(models.Sections)
	}
	if len(cfg.HTTP.AllowedOrigins) == 0 {
		cfg.HTTP.AllowedOrigins = []string{"*"}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration contains usable values
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := c.HTTP.Validate(); err != nil {
		return fmt.Errorf("http: %w", err)
	}
	if err := validation.ValidateStruct(&c.Content,
		validation.Field(&c.Content.Dir, validation.Required),
	); err != nil {
		return fmt.Errorf("content: %w", err)
	}
	if err := c.Rain.Validate(); err != nil {
		return fmt.Errorf("rain: %w", err)
	}
	if err := validation.ValidateStruct(&c.Typewriter,
		validation.Field(&c.Typewriter.Interval, validation.Required, validation.Min(time.Millisecond)),
	); err != nil {
		return fmt.Errorf("typewriter: %w", err)
	}
	if err := c.Viewport.Validate(); err != nil {
		return fmt.Errorf("viewport: %w", err)
	}
	if err := c.Session.Validate(); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	return validation.Validate(c.Sections,
		validation.Required,
		validation.Each(validation.Required),
	)
}

// Validate validates the application configuration
func (c *AppConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.Required,
			validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.LogFormat, validation.In(logging.FormatJSON, logging.FormatConsole)),
	)
}

// Validate validates the HTTP configuration
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.ShutdownTimeout, validation.Min(time.Duration(0))),
	)
}

// Validate validates the animation tuning
func (c *RainConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.CellSize, validation.Required, validation.Min(4), validation.Max(128)),
		validation.Field(&c.FPS, validation.Required, validation.Min(1), validation.Max(120)),
		validation.Field(&c.FadeAlpha, validation.Required, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.ResetChance, validation.Required, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.Baseline, validation.Required, validation.Min(1)),
		validation.Field(&c.FrameInterval, validation.Required, validation.Min(time.Millisecond)),
	)
}

// Validate validates the observer tuning
func (c *ViewportConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.FadeThreshold, validation.Required, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.BandTop, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.BandBottom, validation.Min(0.0), validation.Max(1.0)),
	); err != nil {
		return err
	}
	if c.BandTop+c.BandBottom >= 1 {
		return fmt.Errorf("band_top + band_bottom must leave part of the viewport, got %.2f", c.BandTop+c.BandBottom)
	}
	return nil
}

// Validate validates the session bounds
func (c *SessionConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.OutboxSize, validation.Required, validation.Min(1)),
		validation.Field(&c.MaxViewport, validation.Required, validation.Min(1), validation.Max(65536)),
		validation.Field(&c.MaxDocument, validation.Required, validation.Min(1.0)),
		validation.Field(&c.MaxSections, validation.Required, validation.Min(1)),
		validation.Field(&c.MaxText, validation.Required, validation.Min(1)),
	)
}

// AnimatorOptions converts the rain settings
func (c *Config) AnimatorOptions() animator.Options {
	opts := animator.Options{
		CellSize:    c.Rain.CellSize,
		FPS:         c.Rain.FPS,
		FadeAlpha:   c.Rain.FadeAlpha,
		ResetChance: c.Rain.ResetChance,
		Baseline:    c.Rain.Baseline,
		Seed:        c.Rain.Seed,
	}
	if c.Rain.Glyphs != "" {
		opts.Glyphs = []rune(c.Rain.Glyphs)
	}
	return opts
}

// ViewportOptions converts the observer settings
func (c *Config) ViewportOptions() viewport.Options {
	return viewport.Options{
		Sections:      c.Sections,
		FadeThreshold: c.Viewport.FadeThreshold,
		Band:          viewport.Margin{Top: c.Viewport.BandTop, Bottom: c.Viewport.BandBottom},
	}
}

// SessionOptions collects everything a view session needs
func (c *Config) SessionOptions() session.Options {
	opts := session.DefaultOptions()
	opts.Rain = c.AnimatorOptions()
	opts.FrameInterval = c.Rain.FrameInterval
	opts.TypeInterval = c.Typewriter.Interval
	opts.Viewport = c.ViewportOptions()
	opts.OutboxSize = c.Session.OutboxSize
	opts.Limits = session.Limits{
		MaxViewport: c.Session.MaxViewport,
		MaxDocument: c.Session.MaxDocument,
		MaxSections: c.Session.MaxSections,
		MaxText:     c.Session.MaxText,
	}
	return opts
}
