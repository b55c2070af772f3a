package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/charter/internal/config"
)

func TestNewLogger_Formats(t *testing.T) {
	for _, cfg := range []config.LoggingConfig{
		{Level: "info", Format: "json"},
		{Level: "debug", Format: "console"},
		{Level: "warn", Format: "json"},
	} {
		logger, err := NewLogger(cfg)
		require.NoError(t, err, "format %s level %s", cfg.Format, cfg.Level)
		assert.NotNil(t, logger)
	}
}

func TestNewLogger_Rejections(t *testing.T) {
	_, err := NewLogger(config.LoggingConfig{Level: "trace", Format: "json"})
	assert.Error(t, err)

	_, err = NewLogger(config.LoggingConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
}
