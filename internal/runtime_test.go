package internal

import (
	"bytes"
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/mohitk58/apnadera-frontend/internal/configs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *configs.AppConfig {
	cfg := &configs.AppConfig{AppName: "apnadera-test"}
	cfg.ApiClient.BaseURL = "http://127.0.0.1:1"
	cfg.ApiClient.PageSize = 12
	cfg.Cache.Backend = "memory"
	cfg.Support.Email = "support@apnadera.com"
	cfg.Support.Name = "ApnaDera Support"
	cfg.StdoutLogger.Level = "info"
	return cfg
}

func TestNewRuntime_MemoryBackend(t *testing.T) {
	var logs bytes.Buffer
	rt, err := NewRuntime(context.Background(), testConfig(), RuntimeOptions{LogWriter: &logs, LogLevel: "debug"})
	require.NoError(t, err)
	defer rt.Close()

	assert.NotNil(t, rt.UseCases.ListProperties)
	assert.NotNil(t, rt.UseCases.Auth)
	assert.Equal(t, "support@apnadera.com", rt.Support.Email)
	assert.Nil(t, rt.redisClient)
	assert.Contains(t, logs.String(), "Query cache initialized")
}

func TestNewRuntime_RedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.Cache.Backend = "redis"
	cfg.Cache.RedisAddr = mr.Addr()

	rt, err := NewRuntime(context.Background(), cfg, RuntimeOptions{LogWriter: &bytes.Buffer{}})
	require.NoError(t, err)
	defer rt.Close()

	assert.NotNil(t, rt.redisClient)
}

func TestNewRuntime_UnknownBackend(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.Backend = "memcached"

	_, err := NewRuntime(context.Background(), cfg, RuntimeOptions{LogWriter: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown cache backend")
}
