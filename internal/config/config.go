package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Configuration constants
const (
	// Logging Configuration
	LogLevel  = "LOG_LEVEL"
	LogFormat = "LOG_FORMAT"

	// Bootstrap Admin Configuration
	AdminUsername = "ADMIN_USERNAME"
	AdminSecret   = "ADMIN_SECRET"

	// Auction Configuration
	BidRounds = "BID_ROUNDS"
)

// Config holds all application configuration
type Config struct {
	Logging LoggingConfig
	Admin   AdminConfig
	Auction AuctionConfig
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// AdminConfig holds the bootstrap admin credentials
type AdminConfig struct {
	Username string
	Secret   string
}

// AuctionConfig holds auction tuning
type AuctionConfig struct {
	// BidRounds is the number of bid rounds every new carpet starts with.
	BidRounds int
}

// LoadConfig loads configuration from environment variables and .envrc file
func LoadConfig() (*Config, error) {
	// Set up Viper
	viper.SetConfigName(".envrc")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("../config")

	// Enable environment variable reading
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	setDefaults()

	// Read config file (optional, will use env vars if file doesn't exist)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, but that's okay - we'll use environment variables
	}

	config := &Config{
		Logging: LoggingConfig{
			Level:  viper.GetString(LogLevel),
			Format: viper.GetString(LogFormat),
		},
		Admin: AdminConfig{
			Username: viper.GetString(AdminUsername),
			Secret:   viper.GetString(AdminSecret),
		},
		Auction: AuctionConfig{
			BidRounds: viper.GetInt(BidRounds),
		},
	}

	return config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault(LogLevel, "info")
	viper.SetDefault(LogFormat, "console")
	viper.SetDefault(AdminUsername, "admin")
	viper.SetDefault(AdminSecret, "admin")
	viper.SetDefault(BidRounds, 7)
}
