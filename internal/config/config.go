package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file
const (
	EnvToken   = "MIMIC_TELEGRAM_TOKEN"
	EnvDebug   = "MIMIC_DEBUG"
	EnvLogFile = "MIMIC_LOG_FILE"
)

// TelegramConfig holds Telegram-specific settings
type TelegramConfig struct {
	Token string `yaml:"token"` // Bot token from @BotFather
}

// SpamConfig limits how often one user can run commands
type SpamConfig struct {
	Cooldown time.Duration `yaml:"cooldown"` // minimum time between two messages of a user
}

// FilesConfig holds limits for documents sent to the bot
type FilesConfig struct {
	MaxSizeMB int64 `yaml:"max_size_mb"`
}

// MaxBytes is the file size limit in bytes.
func (f FilesConfig) MaxBytes() int64 {
	return f.MaxSizeMB << 20
}

// ShortenerConfig points the shorten command at a URL shortener
type ShortenerConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// CommandsConfig tunes individual commands
type CommandsConfig struct {
	StickerID string `yaml:"sticker_id"` // sticker sent by yippee
	// StickerReplies maps the unique id of a received sticker to the sticker
	// sent back. Other stickers get an info reply.
	StickerReplies map[string]string `yaml:"sticker_replies"`
}

// Config holds the mimic configuration
type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Allowlist []int64         `yaml:"allowlist"` // Telegram user IDs allowed to use the bot, empty allows everyone
	Spam      SpamConfig      `yaml:"spam"`
	Files     FilesConfig     `yaml:"files"`
	Shortener ShortenerConfig `yaml:"shortener"`
	Commands  CommandsConfig  `yaml:"commands"`
	Timeout   time.Duration   `yaml:"timeout"`  // per message
	LogFile   string          `yaml:"log_file"` // path to log file
	Debug     bool            `yaml:"debug"`    // enable debug logging
}

// Default returns the configuration used when a setting is not given.
func Default() *Config {
	return &Config{
		Spam:      SpamConfig{Cooldown: time.Second},
		Files:     FilesConfig{MaxSizeMB: 10},
		Shortener: ShortenerConfig{Endpoint: "https://tinyurl.com/api-create.php"},
		Timeout:   30 * time.Second,
	}
}

// LoadDotEnv loads variables from .env files into the environment. A
// missing file is not an error; existing variables are never overwritten.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// Load reads and parses the config file from the given path. An empty path
// skips the file, leaving defaults and environment overrides. The result
// always has a Telegram token.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}

	if cfg.Telegram.Token == "" {
		return nil, fmt.Errorf("telegram.token is required (or set %s)", EnvToken)
	}
	return cfg, nil
}

// Read is Load without requiring a token, for running commands locally.
func Read(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if token := os.Getenv(EnvToken); token != "" {
		c.Telegram.Token = token
	}
	if logFile := os.Getenv(EnvLogFile); logFile != "" {
		c.LogFile = logFile
	}
	if debug := os.Getenv(EnvDebug); debug != "" {
		v, err := strconv.ParseBool(debug)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvDebug, err)
		}
		c.Debug = v
	}
	return nil
}

func (c *Config) validate() error {
	if c.Spam.Cooldown < 0 {
		return fmt.Errorf("spam.cooldown cannot be negative")
	}
	if c.Files.MaxSizeMB <= 0 {
		return fmt.Errorf("files.max_size_mb must be positive")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// IsAllowed checks if the given Telegram user ID may use the bot
func (c *Config) IsAllowed(userID int64) bool {
	if len(c.Allowlist) == 0 {
		return true
	}
	return slices.Contains(c.Allowlist, userID)
}
