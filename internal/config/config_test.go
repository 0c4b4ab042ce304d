package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureFlagsRequireLiteralTrue(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"TRUE", false},
		{"True", false},
		{"1", false},
		{"yes", false},
		{"", false},
	}

	for _, tc := range cases {
		t.Run("value "+tc.value, func(t *testing.T) {
			t.Setenv("ENABLE_GUEST_MODE", tc.value)
			t.Setenv("ENABLE_REGISTRATION", tc.value)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.Features.GuestMode)
			assert.Equal(t, tc.want, cfg.Features.Registration)
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "chat-service", cfg.App.Name)
	assert.Equal(t, EnvDevelopment, cfg.App.Env)
	assert.True(t, cfg.App.IsDevelopment())
	assert.Equal(t, "0.0.0.0:3000", cfg.App.Addr())
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, 30*24*60, cfg.Auth.SessionTTLMinutes)
}

func TestEnvKindHelpers(t *testing.T) {
	assert.True(t, AppConfig{Env: EnvTest}.IsTest())
	assert.False(t, AppConfig{Env: EnvProduction}.IsDevelopment())
	assert.False(t, AppConfig{Env: EnvProduction}.IsTest())
}
