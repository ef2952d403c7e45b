package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "console", cfg.Logging.Format)
	require.Equal(t, "admin", cfg.Admin.Username)
	require.Equal(t, "admin", cfg.Admin.Secret)
	require.Equal(t, 7, cfg.Auction.BidRounds)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv(BidRounds, "3")
	t.Setenv(LogLevel, "debug")
	t.Setenv(AdminUsername, "keeper")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, 3, cfg.Auction.BidRounds)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, "keeper", cfg.Admin.Username)
}
