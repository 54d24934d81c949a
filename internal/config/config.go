package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all server configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	JWT    JWTConfig    `yaml:"jwt"`
	Redis  RedisConfig  `yaml:"redis"`
	Game   GameConfig   `yaml:"game"`
	Data   DataConfig   `yaml:"data"`
}

// ServerConfig holds server-specific settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// JWTConfig holds JWT authentication settings
type JWTConfig struct {
	Issuer        string `yaml:"issuer"`
	Secret        string `yaml:"secret"`
	RevokedPrefix string `yaml:"revoked_prefix"`
	ExpiryHours   int    `yaml:"expiry_hours"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Address   string `yaml:"address"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

// GameConfig holds game balance settings
type GameConfig struct {
	GrowthRate        float64 `yaml:"growth_rate"`
	StartingGold      int     `yaml:"starting_gold"`
	StartingRows      int     `yaml:"starting_rows"`
	StartingCols      int     `yaml:"starting_cols"`
	UpgradeMultiplier float64 `yaml:"upgrade_multiplier"`
	InstantHarvestKey string  `yaml:"instant_harvest_key"`
	AutosaveSeconds   int     `yaml:"autosave_seconds"`
	RestockPollSecs   int     `yaml:"restock_poll_seconds"`
}

// DataConfig points at the YAML data files the game loads on startup
type DataConfig struct {
	Items      string `yaml:"items"`
	Stocklists string `yaml:"stocklists"`
	Stores     string `yaml:"stores"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults if not provided
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.JWT.ExpiryHours == 0 {
		cfg.JWT.ExpiryHours = 24
	}
	if cfg.JWT.RevokedPrefix == "" {
		cfg.JWT.RevokedPrefix = "revoked:"
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = "localhost:6379"
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "gardensim"
	}
	if cfg.Game.GrowthRate == 0 {
		cfg.Game.GrowthRate = 1
	}
	if cfg.Game.StartingGold == 0 {
		cfg.Game.StartingGold = 500
	}
	if cfg.Game.StartingRows == 0 {
		cfg.Game.StartingRows = 5
	}
	if cfg.Game.StartingCols == 0 {
		cfg.Game.StartingCols = 5
	}
	if cfg.Game.UpgradeMultiplier == 0 {
		cfg.Game.UpgradeMultiplier = 1
	}
	if cfg.Game.AutosaveSeconds == 0 {
		cfg.Game.AutosaveSeconds = 60
	}
	if cfg.Game.RestockPollSecs == 0 {
		cfg.Game.RestockPollSecs = 30
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: jwt.secret must be set")
	}

	return &cfg, nil
}
