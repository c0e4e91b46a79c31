package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// FileName is the config file name inside <gitdir>/gl.
const FileName = "config.yaml"

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the gl configuration of one repository.
type Config struct {
	Lock     Lock     `koanf:"lock"`
	Snapshot Snapshot `koanf:"snapshot"`
	Log      Log      `koanf:"log"`
	Color    string   `koanf:"color"`
}

// Lock configures the repository lock.
type Lock struct {
	// Timeout is how long to wait for another gl operation. Zero fails fast.
	Timeout time.Duration `koanf:"timeout"`
}

// Snapshot configures what a switch saves.
type Snapshot struct {
	SaveUntracked bool `koanf:"save_untracked"`
	// SaveIgnored makes switches keep ignored files with their branch
	// unless --move-ignored is given.
	SaveIgnored bool `koanf:"save_ignored"`
}

// Log configures the debug log file.
type Log struct {
	File string `koanf:"file"`
}

// envKeys maps GL_* variables (without the prefix, lower case) to config keys.
var envKeys = map[string]string{
	"lock_timeout":            "lock.timeout",
	"snapshot_save_untracked": "snapshot.save_untracked",
	"snapshot_save_ignored":   "snapshot.save_ignored",
	"log_file":                "log.file",
	"color":                   "color",
}

func defaults() map[string]any {
	return map[string]any{
		"lock.timeout":            "0s",
		"snapshot.save_untracked": true,
		"snapshot.save_ignored":   false,
		"log.file":                "",
		"color":                   ColorAuto,
	}
}

// Path returns the config file location for a git directory.
func Path(gitDir string) string {
	return filepath.Join(gitDir, "gl", FileName)
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg, err := unmarshal(newKoanf())
	if err != nil {
		panic(fmt.Sprintf("invalid default config: %v", err))
	}
	return cfg
}

// Load reads configuration from the given YAML file path and environment variables.
// Missing file is not an error; defaults are used.
// Priority: environment variables > file > defaults.
func Load(path string) (*Config, error) {
	k := newKoanf()

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("GL_", ".", func(s string) string {
		return envKeys[strings.ToLower(strings.TrimPrefix(s, "GL_"))]
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env config: %w", err)
	}

	return unmarshal(k)
}

// LoadFromReader reads configuration from YAML without applying the
// environment. Useful for testing.
func LoadFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	k := newKoanf()
	if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return unmarshal(k)
}

func newKoanf() *koanf.Koanf {
	k := koanf.New(".")
	// confmap.Provider wraps an in-memory map and never fails.
	_ = k.Load(confmap.Provider(defaults(), "."), nil)
	return k
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Lock.Timeout < 0 {
		return fmt.Errorf("lock.timeout must not be negative: %s", c.Lock.Timeout)
	}
	c.Color = strings.ToLower(strings.TrimSpace(c.Color))
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be one of auto, always, never: %q", c.Color)
	}
	return nil
}
