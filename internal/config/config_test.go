package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
app:
  env: prod
server:
  addr: ":9090"
storage:
  driver: postgres
  dsn: postgres://localhost/auth
cache:
  kind: redis
  redis:
    addr: localhost:6379
    db: 2
token:
  access_ttl: 30m
seed:
  clients:
    - id: cli1
      secret: s3cret
      grant_types: [password, refresh_token]
  users:
    - id: u1
      username: jdoe
      password: hunter2
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeTemp(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.App.Env)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "redis", cfg.Cache.Kind)
	assert.Equal(t, 2, cfg.Cache.Redis.DB)
	assert.Equal(t, 30*time.Minute, cfg.AccessTTL())

	require.Len(t, cfg.Seed.Clients, 1)
	assert.Equal(t, []string{"password", "refresh_token"}, cfg.Seed.Clients[0].GrantTypes)
	require.Len(t, cfg.Seed.Users, 1)
	assert.Equal(t, "jdoe", cfg.Seed.Users[0].Username)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeTemp(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.App.Env)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "memory", cfg.Cache.Kind)
	assert.Equal(t, time.Hour, cfg.AccessTTL())
	assert.Equal(t, 10*time.Minute, cfg.CodeTTL())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":7070")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("TOKEN_ACCESS_TTL", "15m")

	cfg, err := Load(writeTemp(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL())
}
