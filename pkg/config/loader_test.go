package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescoach/authkit/pkg/config"
)

type serverConfig struct {
	Addr    string        `env:"TEST_SERVER_ADDR" envDefault:":8080"`
	Timeout time.Duration `env:"TEST_SERVER_TIMEOUT" envDefault:"15s"`
}

type requiredConfig struct {
	Token string `env:"TEST_REQUIRED_TOKEN,required"`
}

func TestLoadDefaults(t *testing.T) {
	var cfg serverConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TEST_ENV_ADDR", ":9090")

	type envConfig struct {
		Addr string `env:"TEST_ENV_ADDR" envDefault:":8080"`
	}

	var cfg envConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, ":9090", cfg.Addr)
}

func TestLoadCachesPerType(t *testing.T) {
	t.Setenv("TEST_CACHE_ADDR", ":1111")

	type cachedConfig struct {
		Addr string `env:"TEST_CACHE_ADDR" envDefault:":8080"`
	}

	var first cachedConfig
	require.NoError(t, config.Load(&first))
	require.Equal(t, ":1111", first.Addr)

	// The cached parse survives later environment changes.
	t.Setenv("TEST_CACHE_ADDR", ":2222")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, ":1111", second.Addr)
}

func TestLoadMissingRequired(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoadNilPointer(t *testing.T) {
	var cfg *serverConfig
	err := config.Load(cfg)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}
