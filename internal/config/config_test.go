package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "memory", cfg.Cache.Backend)
	require.Equal(t, 24, cfg.Cache.TTLHours)
	require.Equal(t, 3000, cfg.Pacing.MinDelayMs)
	require.Equal(t, 7000, cfg.Pacing.MaxDelayMs)
	require.Equal(t, 15, cfg.Scrape.MaxTeamMembers)
	require.True(t, cfg.Logging.Development)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	base := func() Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Cache.Backend = "dynamo" },
			wantErr: "cache.backend",
		},
		{
			name:    "redis backend needs url",
			mutate:  func(c *Config) { c.Cache.Backend = "redis" },
			wantErr: "cache.redis_url",
		},
		{
			name:    "zero ttl",
			mutate:  func(c *Config) { c.Cache.TTLHours = 0 },
			wantErr: "cache.ttl_hours",
		},
		{
			name:    "inverted pacing range",
			mutate:  func(c *Config) { c.Pacing.MaxDelayMs = c.Pacing.MinDelayMs - 1 },
			wantErr: "pacing",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := base()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("does-not-exist.yaml")
	require.ErrorContains(t, err, "read config")
}
