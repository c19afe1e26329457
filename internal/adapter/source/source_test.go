package source

import (
	"testing"
	"time"

	"github.com/mmcdole/moodreel/internal/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientFromConfig(t *testing.T) {
	_, err := NewClientFromConfig(nil, nil)
	require.Error(t, err)

	cfg := adapter.DefaultConfig()
	_, err = NewClientFromConfig(cfg, nil)
	require.Error(t, err, "missing api key")

	cfg.TMDB.APIKey = "key"
	client, err := NewClientFromConfig(cfg, adapter.NullLogger())
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestClientOptions(t *testing.T) {
	cfg := adapter.DefaultConfig()
	cfg.TMDB.ImageWidth = "original"
	cfg.TMDB.Timeout = 3 * time.Second

	opts := ClientOptions(cfg, nil)
	assert.Equal(t, "original", opts.ImageWidth)
	assert.Equal(t, 3*time.Second, opts.Timeout)
	assert.Equal(t, cfg.TMDB.BaseURL, opts.BaseURL)
}
