package honorbot

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
	"github.com/honorguild/honorbot/honorbot/database"
	"github.com/honorguild/honorbot/internal/domain/honor"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix namespaces every environment override, e.g. HONORBOT_TOKEN or
// HONORBOT_DB_PASSWORD.
const EnvPrefix = "HONORBOT_"

// LoadConfig reads the TOML file at path, then applies .env and process
// environment overrides and fills defaults.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err = cfg.applyEnv(); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

type Config struct {
	Log       LogConfig         `toml:"log"`
	Bot       BotConfig         `toml:"bot"`
	DB        database.DBConfig `toml:"db"`
	Honor     HonorConfig       `toml:"honor"`
	Profanity ProfanityConfig   `toml:"profanity"`
	Spaces    SpacesConfig      `toml:"spaces"`
	Archive   ArchiveConfig     `toml:"archive"`
}

type LogConfig struct {
	Level slog.Level `toml:"level"`
	Color bool       `toml:"color"`
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds"`
	Token     string         `toml:"token" env:"TOKEN"`
	// Activity is shown as the bot's listening status.
	Activity string `toml:"activity"`
}

type TierConfig struct {
	Threshold int64  `toml:"threshold"`
	Name      string `toml:"name"`
	Symbol    string `toml:"symbol"`
	Color     int    `toml:"color"`
}

type RewardConfig struct {
	Threshold int64  `toml:"threshold"`
	Role      string `toml:"role"`
}

type PrizeConfig struct {
	Reward int64 `toml:"reward"`
	Weight int   `toml:"weight"`
}

// AwardsConfig uses pointers so each omitted amount keeps its default.
type AwardsConfig struct {
	Thanks           *int64 `toml:"thanks"`
	Bless            *int64 `toml:"bless"`
	HelpConfirmed    *int64 `toml:"help_confirmed"`
	ProfanityPenalty *int64 `toml:"profanity_penalty"`
	DailyBonus       *int64 `toml:"daily_bonus"`
	DailyBonusMax    *int64 `toml:"daily_bonus_max"`
}

type HonorConfig struct {
	Tiers       []TierConfig   `toml:"tiers"`
	Rewards     []RewardConfig `toml:"rewards"`
	Awards      AwardsConfig   `toml:"awards"`
	Lootbox     []PrizeConfig  `toml:"lootbox"`
	HistorySize int            `toml:"history_size"`
}

type ProfanityConfig struct {
	Enabled   bool     `toml:"enabled"`
	RemoteURL string   `toml:"remote_url"`
	TimeoutMS int      `toml:"timeout_ms"`
	CacheSize int      `toml:"cache_size"`
	SeedWords []string `toml:"seed_words"`
}

type SpacesConfig struct {
	Key      string `toml:"key" env:"KEY"`
	Secret   string `toml:"secret" env:"SECRET"`
	Region   string `toml:"region" env:"REGION"`
	Endpoint string `toml:"endpoint" env:"ENDPOINT"`
}

type ArchiveConfig struct {
	Bucket        string `toml:"bucket" env:"BUCKET"`
	Prefix        string `toml:"prefix"`
	IntervalHours int    `toml:"interval_hours"`
}

// applyEnv overrides only the sections that carry secrets or deployment
// specifics. Variables that are unset leave the file values alone.
func (c *Config) applyEnv() error {
	sections := []struct {
		prefix string
		target any
	}{
		{EnvPrefix, &c.Bot},
		{EnvPrefix + "DB_", &c.DB},
		{EnvPrefix + "SPACES_", &c.Spaces},
		{EnvPrefix + "ARCHIVE_", &c.Archive},
	}
	for _, s := range sections {
		if err := env.ParseWithOptions(s.target, env.Options{Prefix: s.prefix}); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.DB.Driver == "" {
		c.DB.Driver = database.DriverPostgres
	}
	if c.DB.Driver == database.DriverPostgres && c.DB.Port == 0 {
		c.DB.Port = 5432
	}
	if c.Bot.Activity == "" {
		c.Bot.Activity = "for good deeds"
	}
	if c.Profanity.TimeoutMS <= 0 {
		c.Profanity.TimeoutMS = 3000
	}
	if c.Profanity.CacheSize <= 0 {
		c.Profanity.CacheSize = 1024
	}
	if c.Spaces.Region == "" {
		c.Spaces.Region = "nyc3"
	}
	if c.Spaces.Endpoint == "" {
		c.Spaces.Endpoint = fmt.Sprintf("https://%s.digitaloceanspaces.com", c.Spaces.Region)
	}
	if c.Archive.Prefix == "" {
		c.Archive.Prefix = "honor-ledger"
	}
	if c.Archive.IntervalHours <= 0 {
		c.Archive.IntervalHours = 24
	}
}

func (c ProfanityConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

func (c ArchiveConfig) Enabled() bool {
	return c.Bucket != ""
}

func (c ArchiveConfig) Interval() time.Duration {
	return time.Duration(c.IntervalHours) * time.Hour
}

// Settings converts the [honor] section. Anything left out falls back to the
// honor package defaults.
func (c HonorConfig) Settings() honor.Settings {
	s := honor.Settings{HistorySize: c.HistorySize}

	for _, t := range c.Tiers {
		s.Tiers = append(s.Tiers, honor.Tier{Threshold: t.Threshold, Name: t.Name, Symbol: t.Symbol, Color: t.Color})
	}
	for _, r := range c.Rewards {
		s.Rewards = append(s.Rewards, honor.RewardRole{Threshold: r.Threshold, Role: r.Role})
	}
	for _, p := range c.Lootbox {
		s.Lootbox = append(s.Lootbox, honor.LootboxPrize{Reward: p.Reward, Weight: p.Weight})
	}

	awards := honor.DefaultAwards()
	override := func(dst *int64, src *int64) {
		if src != nil {
			*dst = *src
		}
	}
	override(&awards.Thanks, c.Awards.Thanks)
	override(&awards.Bless, c.Awards.Bless)
	override(&awards.HelpConfirmed, c.Awards.HelpConfirmed)
	override(&awards.ProfanityPenalty, c.Awards.ProfanityPenalty)
	override(&awards.DailyBonus, c.Awards.DailyBonus)
	override(&awards.DailyBonusMax, c.Awards.DailyBonusMax)
	s.Awards = &awards

	return s
}
