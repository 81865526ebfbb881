package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/recipehub/internal/server/config"
)

func memoryConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.StorageBackend = config.StorageMemory
	c.HTTPAddr = "127.0.0.1:0"
	c.GRPCAddr = "127.0.0.1:0"
	c.HashCost = 4
	c.HashWorkers = 1
	c.LogLevel = "error"
	return c
}

func TestNewApp_Memory(t *testing.T) {
	app, err := NewApp(context.Background(), memoryConfig())
	require.NoError(t, err)
	assert.NotNil(t, app.authService)
	assert.NotNil(t, app.recipeService)
	require.NoError(t, app.close())
}

func TestNewApp_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
	}{
		{name: "bad log backend", modify: func(c *config.Config) { c.LogBackend = "zap" }},
		{name: "bad storage", modify: func(c *config.Config) { c.StorageBackend = "mongo" }},
		{name: "bad hash cost", modify: func(c *config.Config) { c.HashCost = 99 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := memoryConfig()
			tt.modify(c)
			_, err := NewApp(context.Background(), c)
			require.Error(t, err)
		})
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	app, err := NewApp(context.Background(), memoryConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
}

func TestRun_FailsOnBadAddress(t *testing.T) {
	c := memoryConfig()
	c.HTTPAddr = "127.0.0.1:99999"

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)

	select {
	case err := <-runAsync(app):
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not fail on bad address")
	}
}

func runAsync(app *App) <-chan error {
	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()
	return done
}
