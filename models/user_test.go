package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func token(id string, ttl time.Duration, createdAgo time.Duration) RefreshToken {
	now := time.Now()
	return RefreshToken{
		TokenID:   id,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now.Add(-createdAgo),
	}
}

func TestRotateRefreshTokensCapsAtFive(t *testing.T) {
	now := time.Now()

	var tokens []RefreshToken
	for i := 0; i < 8; i++ {
		fresh := token(fmt.Sprintf("t%d", i), time.Hour, 0)
		tokens = RotateRefreshTokens(tokens, fresh, now)
		assert.LessOrEqual(t, len(tokens), MaxRefreshTokens)
	}

	require.Len(t, tokens, MaxRefreshTokens)
	// The oldest three sessions were evicted.
	assert.Equal(t, "t3", tokens[0].TokenID)
	assert.Equal(t, "t7", tokens[MaxRefreshTokens-1].TokenID)
	assert.False(t, HasRefreshToken(tokens, "t0", now))
	assert.True(t, HasRefreshToken(tokens, "t7", now))
}

func TestRotateRefreshTokensDropsExpired(t *testing.T) {
	now := time.Now()
	tokens := []RefreshToken{
		token("live", time.Hour, 0),
		token("dead", -time.Minute, time.Hour),
	}

	tokens = RotateRefreshTokens(tokens, token("fresh", time.Hour, 0), now)

	require.Len(t, tokens, 2)
	assert.True(t, HasRefreshToken(tokens, "live", now))
	assert.True(t, HasRefreshToken(tokens, "fresh", now))
	assert.False(t, HasRefreshToken(tokens, "dead", now))
}

func TestRemoveRefreshToken(t *testing.T) {
	now := time.Now()
	tokens := []RefreshToken{
		token("a", time.Hour, 0),
		token("b", time.Hour, 0),
		token("expired", -time.Minute, time.Hour),
	}

	tokens = RemoveRefreshToken(tokens, "a", now)

	require.Len(t, tokens, 1)
	assert.Equal(t, "b", tokens[0].TokenID)
}

func TestHasRefreshTokenRejectsExpired(t *testing.T) {
	now := time.Now()
	tokens := []RefreshToken{token("old", -time.Second, time.Hour)}

	assert.False(t, HasRefreshToken(tokens, "old", now))
	assert.False(t, HasRefreshToken(tokens, "missing", now))
}

func TestRemoveAddress(t *testing.T) {
	home := Address{ID: primitive.NewObjectID(), Line: "home", IsDefault: true}
	office := Address{ID: primitive.NewObjectID(), Line: "office"}

	remaining, found := RemoveAddress([]Address{home, office}, home.ID)
	require.True(t, found)
	require.Len(t, remaining, 1)
	assert.Equal(t, office.ID, remaining[0].ID)
	// Deleting the default promotes the next address.
	assert.True(t, remaining[0].IsDefault)

	remaining, found = RemoveAddress([]Address{home, office}, primitive.NewObjectID())
	assert.False(t, found)
	assert.Len(t, remaining, 2)

	remaining, found = RemoveAddress(nil, home.ID)
	assert.False(t, found)
	assert.Empty(t, remaining)
}

func TestDefaultAddress(t *testing.T) {
	user := User{}
	_, ok := user.DefaultAddress()
	assert.False(t, ok)

	user.Addresses = []Address{
		{Line: "first"},
		{Line: "chosen", IsDefault: true},
	}
	addr, ok := user.DefaultAddress()
	require.True(t, ok)
	assert.Equal(t, "chosen", addr.Line)

	// Without an explicit default the first address wins.
	user.Addresses[1].IsDefault = false
	addr, ok = user.DefaultAddress()
	require.True(t, ok)
	assert.Equal(t, "first", addr.Line)
}
