package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "recipe-recommender", cfg.App.Name)
	assert.Equal(t, 5, cfg.Pipeline.TopN)
	assert.Equal(t, 5, cfg.Pipeline.MinViable)
	assert.Equal(t, 5*time.Second, cfg.Pipeline.FetchTimeout)
	assert.Equal(t, 3*time.Second, cfg.Pipeline.EventTimeout)
	assert.Equal(t, 25, cfg.Safety.ConditionPenalty)
	assert.Equal(t, 1.2, cfg.Adapter.PortionThreshold)
	assert.Equal(t, 15, cfg.Ranking.GoalBonus)
	assert.NotEmpty(t, cfg.SafetyRules, "built-in condition rules are used when none are configured")
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("EVENTS_BACKEND", EventsJournal)
	t.Setenv("APP_PIPELINE_TOP_N", "3")
	t.Setenv("APP_SAFETY_CONDITION_PENALTY", "30")
	t.Setenv("DATABASE_DSN", "file:test.db")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, EventsJournal, cfg.Events.Backend)
	assert.Equal(t, 3, cfg.Pipeline.TopN)
	assert.Equal(t, 30, cfg.Safety.ConditionPenalty)
	assert.Equal(t, "file:test.db", cfg.Database.DSN)
}

func TestLoadConfigSeedsOnlyInDevelopment(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Database.Seed)

	t.Setenv("APP_ENV", "production")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.App.Env)
	assert.False(t, cfg.Database.Seed)

	t.Setenv("APP_DATABASE_SEED", "true")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Database.Seed)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "mysql")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestLoadConfigReadsSafetyRulesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
safety_rules:
  - name: gout
    aliases: ["hyperuricemia"]
    max_protein_g: 30
    watch_ingredients: ["anchovies", "liver"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("APP_CONFIG_FILE", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Len(t, cfg.SafetyRules, 1)
	assert.Equal(t, "gout", cfg.SafetyRules[0].Name)
	assert.Equal(t, []string{"hyperuricemia"}, cfg.SafetyRules[0].Aliases)
	assert.Equal(t, 30.0, cfg.SafetyRules[0].MaxProteinG)
	assert.Equal(t, []string{"anchovies", "liver"}, cfg.SafetyRules[0].WatchIngredients)
}

func TestValidateConfig(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080},
			Database: DatabaseConfig{Driver: DriverSQLite, DSN: "file::memory:"},
			Cache:    CacheConfig{Enabled: true, Backend: CacheMemory, MaxSize: 10, TTL: time.Minute, CleanupInterval: time.Minute},
			Events:   EventsConfig{Backend: EventsDatabase, Workers: 1, QueueSize: 10},
			Pipeline: PipelineConfig{TopN: 5, MinViable: 5, CandidateLimit: 50, FetchTimeout: time.Second, EventTimeout: time.Second},
		}
	}

	require.NoError(t, validateConfig(base()))

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing port", func(c *Config) { c.Server.Port = 0 }},
		{"unknown cache backend", func(c *Config) { c.Cache.Backend = "memcached" }},
		{"zero cache ttl", func(c *Config) { c.Cache.TTL = 0 }},
		{"unknown events backend", func(c *Config) { c.Events.Backend = "kafka" }},
		{"no event workers", func(c *Config) { c.Events.Workers = 0 }},
		{"candidate limit below top n", func(c *Config) { c.Pipeline.CandidateLimit = 2 }},
		{"zero fetch timeout", func(c *Config) { c.Pipeline.FetchTimeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			assert.Error(t, validateConfig(c))
		})
	}

	disabled := base()
	disabled.Cache = CacheConfig{Enabled: false}
	assert.NoError(t, validateConfig(disabled), "cache settings are ignored when the cache is off")
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "sk-o...cdef", maskAPIKey("sk-or-v1-1234567890abcdef"))
}
