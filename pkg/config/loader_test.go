package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielBingham/communities-notify/pkg/config"
)

type testConfig struct {
	Host string `env:"TEST_CONFIG_HOST" envDefault:"localhost"`
	Port int    `env:"TEST_CONFIG_PORT" envDefault:"5432"`
}

type requiredConfig struct {
	Token string `env:"TEST_CONFIG_MISSING_TOKEN,required"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("TEST_ENV_VALUE", "custom")

	type envConfig struct {
		Value string `env:"TEST_ENV_VALUE"`
	}

	var cfg envConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "custom", cfg.Value)
}

func TestLoad_CachedAcrossCalls(t *testing.T) {
	var first testConfig
	require.NoError(t, config.Load(&first))

	// Changing the environment after the first load must not change the
	// cached value other callers observe.
	t.Setenv("TEST_CONFIG_HOST", "elsewhere")

	var second testConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, first, second)
}

func TestLoad_MissingRequired(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_NilPointer(t *testing.T) {
	err := config.Load[testConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}
