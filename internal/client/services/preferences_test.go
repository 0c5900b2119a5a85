package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferences_LastSync(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()
	p := NewPreferences(e.meta)

	_, ok, err := p.LastSync(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	at := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	p.now = func() time.Time { return at }
	require.NoError(t, p.UpdateLastSync(ctx))

	got, ok, err := p.LastSync(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, at, got)
}

func TestPreferences_CorruptValue(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()
	require.NoError(t, e.meta.Set(ctx, keyLastSync, []byte("yesterday")))

	_, ok, err := NewPreferences(e.meta).LastSync(ctx)
	assert.Error(t, err)
	assert.False(t, ok)
}
