package token

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_IssueParse(t *testing.T) {
	ctx := context.Background()
	m := New("secret", "svgicon", time.Hour)

	tok, claims, err := m.Issue(ctx, "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, claims.JTI)

	parsed, err := m.Parse(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", parsed.Subject)
	assert.Equal(t, claims.JTI, parsed.JTI)
	assert.WithinDuration(t, claims.ExpiresAt, parsed.ExpiresAt, time.Second)
}

func TestManager_RejectsForeignToken(t *testing.T) {
	ctx := context.Background()
	tok, _, err := New("other", "svgicon", time.Hour).Issue(ctx, "admin")
	require.NoError(t, err)

	_, err = New("secret", "svgicon", time.Hour).Parse(ctx, tok)
	assert.Error(t, err)

	tok, _, err = New("secret", "someone-else", time.Hour).Issue(ctx, "admin")
	require.NoError(t, err)
	_, err = New("secret", "svgicon", time.Hour).Parse(ctx, tok)
	assert.Error(t, err)
}

func TestManager_Expired(t *testing.T) {
	ctx := context.Background()
	m := New("secret", "svgicon", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, _, err := m.Issue(ctx, "admin")
	require.NoError(t, err)

	_, err = New("secret", "svgicon", time.Minute).Parse(ctx, tok)
	assert.Error(t, err)
}
