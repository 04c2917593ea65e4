package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("MATCH_THRESHOLD", "")
	t.Setenv("NOTIFIER", "AMQP")
	t.Setenv("RABBITMQ_URL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.MatchThreshold, "invalid ints fall back to the default")
	assert.Equal(t, 80, cfg.ProfileCompleteThreshold)
	assert.Equal(t, 6, cfg.RecommendationLimit)
	assert.Equal(t, NotifierLog, cfg.Notifier, "amqp without a broker url degrades to log")
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("MATCH_THRESHOLD", "45")
	t.Setenv("AUDIT_LOG_TO_DB", "false")
	t.Setenv("SUPABASE_URL", "https://example.supabase.co/")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 45, cfg.MatchThreshold)
	assert.False(t, cfg.AuditLogToDB)
	assert.Equal(t, "https://example.supabase.co", cfg.SupabaseUrl)
}
