package bootstrap

import (
	"context"
	"testing"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/config"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/cache"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/calendar"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorsConfig(t *testing.T) {
	cfg := &config.Config{}

	cfg.Server.CORSOrigins = "*"
	c := corsConfig(cfg)
	assert.True(t, c.AllowAllOrigins)
	assert.Empty(t, c.AllowOrigins)
	assert.False(t, c.AllowCredentials)

	cfg.Server.CORSOrigins = "https://app.pwioi.club, http://localhost:3000"
	c = corsConfig(cfg)
	assert.False(t, c.AllowAllOrigins)
	assert.Equal(t, []string{"https://app.pwioi.club", "http://localhost:3000"}, c.AllowOrigins)
	assert.True(t, c.AllowCredentials)
	assert.Contains(t, c.ExposeHeaders, "X-Request-ID")
}

func TestSetupCache_Disabled(t *testing.T) {
	cfg := &config.Config{}
	c, closeFn := SetupCache(context.Background(), cfg, zerolog.Nop())
	defer closeFn()
	assert.IsType(t, cache.Nop{}, c)
}

func TestSetupCalendar_Disabled(t *testing.T) {
	cfg := &config.Config{}
	client, err := SetupCalendar(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, calendar.Noop{}, client)
}
