// Package config loads the bot's settings from the environment, an optional
// .env file and an optional YAML file.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const appName = "focusbot"

// Store backends
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendBolt  = "bolt"
)

const (
	keyDiscordToken         = "discord.token"
	keyDiscordApplicationID = "discord.application_id"
	keyDiscordGuildID       = "discord.guild_id"
	keyStoreBackend         = "store.backend"
	keyStoreDataDir         = "store.data_dir"
	keyStoreBoltPath        = "store.bolt_path"
	keyRedisAddr            = "redis.addr"
	keyRedisPassword        = "redis.password"
	keyRedisDB              = "redis.db"
	keyQuotesAPIURL         = "quotes.api_url"
	keyQuotesTimeout        = "quotes.timeout"
	keyQuotesListenAddr     = "quotes.listen_addr"
	keyQuotesPhrasesFile    = "quotes.phrases_file"
	keyRefreshInterval      = "pomodoro.refresh_interval"
	keyInteractionWindow    = "pomodoro.interaction_window"
	keyCommandReward        = "rewards.command_reward"
	keyCompletionBonus      = "rewards.completion_bonus"
	keyCompletionsPerBonus  = "rewards.completions_per_bonus"
	keyLeaderboardSize      = "rewards.leaderboard_size"
	keyLogLevel             = "log.level"
	keyLogFile              = "log.file"
	keyLogPretty            = "log.pretty"
)

// Config is the complete application configuration
type Config struct {
	Discord  DiscordConfig  `mapstructure:"discord"`
	Store    StoreConfig    `mapstructure:"store"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Quotes   QuotesConfig   `mapstructure:"quotes"`
	Pomodoro PomodoroConfig `mapstructure:"pomodoro"`
	Rewards  RewardsConfig  `mapstructure:"rewards"`
	Log      LogConfig      `mapstructure:"log"`
}

// DiscordConfig holds the bot credentials
type DiscordConfig struct {
	Token         string `mapstructure:"token"`
	ApplicationID string `mapstructure:"application_id"`
	GuildID       string `mapstructure:"guild_id"`
}

// StoreConfig selects where documents are persisted
type StoreConfig struct {
	Backend  string `mapstructure:"backend"`
	DataDir  string `mapstructure:"data_dir"`
	BoltPath string `mapstructure:"bolt_path"`
}

// RedisConfig is used by the redis store backend
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// QuotesConfig covers both the quote client and the quote API
type QuotesConfig struct {
	APIURL      string        `mapstructure:"api_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	ListenAddr  string        `mapstructure:"listen_addr"`
	PhrasesFile string        `mapstructure:"phrases_file"`
}

// PomodoroConfig holds the session timers
type PomodoroConfig struct {
	RefreshInterval   time.Duration `mapstructure:"refresh_interval"`
	InteractionWindow time.Duration `mapstructure:"interaction_window"`
}

// RewardsConfig holds the point rules
type RewardsConfig struct {
	CommandReward       int `mapstructure:"command_reward"`
	CompletionBonus     int `mapstructure:"completion_bonus"`
	CompletionsPerBonus int `mapstructure:"completions_per_bonus"`
	LeaderboardSize     int `mapstructure:"leaderboard_size"`
}

// LogConfig configures the global logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	File   string `mapstructure:"file"`
	Pretty bool   `mapstructure:"pretty"`
}

// Load reads configuration. envFile is loaded into the environment first
// without overriding variables that are already set; a missing default
// .env is ignored. configFile is an optional YAML file.
func Load(configFile, envFile string) (*Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindAliases(v); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", configFile)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}

	if cfg.Store.BoltPath == "" {
		cfg.Store.BoltPath = filepath.Join(cfg.Store.DataDir, appName+".db")
	}
	cfg.Store.Backend = strings.ToLower(strings.TrimSpace(cfg.Store.Backend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks settings every command needs
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendRedis, BackendBolt:
	default:
		return errors.Errorf("unknown store backend %q", c.Store.Backend)
	}

	if c.Pomodoro.RefreshInterval <= 0 {
		return errors.New("pomodoro refresh interval must be positive")
	}

	if c.Pomodoro.InteractionWindow <= 0 {
		return errors.New("pomodoro interaction window must be positive")
	}

	if c.Rewards.CompletionsPerBonus <= 0 {
		return errors.New("completions per bonus must be positive")
	}

	if c.Rewards.LeaderboardSize <= 0 {
		return errors.New("leaderboard size must be positive")
	}

	return nil
}

// ValidateBot checks the settings needed to connect to Discord
func (c *Config) ValidateBot() error {
	if c.Discord.Token == "" {
		return errors.New("DISCORD_TOKEN is required")
	}
	return nil
}

func loadEnvFile(envFile string) error {
	if envFile == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		envFile = ".env"
	}

	if err := godotenv.Load(envFile); err != nil {
		return errors.Wrapf(err, "failed to load env file %s", envFile)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyDiscordToken, "")
	v.SetDefault(keyDiscordApplicationID, "")
	v.SetDefault(keyDiscordGuildID, "")
	v.SetDefault(keyStoreBackend, BackendFile)
	v.SetDefault(keyStoreDataDir, filepath.Join(xdg.DataHome, appName))
	v.SetDefault(keyStoreBoltPath, "")
	v.SetDefault(keyRedisAddr, "localhost:6379")
	v.SetDefault(keyRedisPassword, "")
	v.SetDefault(keyRedisDB, 0)
	v.SetDefault(keyQuotesAPIURL, "http://127.0.0.1:8000/frases")
	v.SetDefault(keyQuotesTimeout, 5*time.Second)
	v.SetDefault(keyQuotesListenAddr, "127.0.0.1:8000")
	v.SetDefault(keyQuotesPhrasesFile, "")
	v.SetDefault(keyRefreshInterval, 30*time.Second)
	v.SetDefault(keyInteractionWindow, 24*time.Hour)
	v.SetDefault(keyCommandReward, 50)
	v.SetDefault(keyCompletionBonus, 50)
	v.SetDefault(keyCompletionsPerBonus, 2)
	v.SetDefault(keyLeaderboardSize, 5)
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFile, "")
	v.SetDefault(keyLogPretty, false)
}

// bindAliases maps the variable names the bot has always used onto keys
// whose names differ from the automatic mapping.
func bindAliases(v *viper.Viper) error {
	aliases := map[string][]string{
		keyDiscordApplicationID: {"APPLICATION_ID", "CLIENT_ID", "DISCORD_APPLICATION_ID"},
		keyDiscordGuildID:       {"GUILD_ID", "DISCORD_GUILD_ID"},
		keyQuotesAPIURL:         {"QUOTE_API_URL", "QUOTES_API_URL"},
	}

	for key, envs := range aliases {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return errors.Wrapf(err, "failed to bind %s", key)
		}
	}
	return nil
}
