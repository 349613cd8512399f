package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	t.Setenv(EnvVar, "")

	quiet, err := New(false)
	require.NoError(t, err)
	assert.False(t, quiet.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, quiet.Desugar().Core().Enabled(zapcore.WarnLevel))

	verbose, err := New(true)
	require.NoError(t, err)
	assert.True(t, verbose.Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestNewDev(t *testing.T) {
	t.Setenv(EnvVar, "dev")
	l, err := New(true)
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	l, err := New(false)
	require.NoError(t, err)
	ctx := WithContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}
