package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger("test-logger", "warn")
	assert.NotNil(t, logger.SugaredLogger)
	assert.False(t, logger.Desugar().Core().Enabled(-1))

	logger = NewLogger("test-logger", "not-a-level")
	assert.True(t, logger.Desugar().Core().Enabled(0))
}

func TestWithStage(t *testing.T) {
	logger := NewNopLogger().WithStage("features")
	assert.NotNil(t, logger.SugaredLogger)
}
