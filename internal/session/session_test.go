package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AlexG0311/sportzone/pkg/sportzone"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolder_Lifecycle(t *testing.T) {
	ctx := context.Background()
	h := NewHolder(nil)

	// Empty at start
	assert.False(t, h.IsAuthenticated())
	_, err := h.RequireUser()
	assert.True(t, errors.Is(err, ErrNotAuthenticated))

	// Populated on login
	require.NoError(t, h.Set(ctx, &sportzone.User{ID: 3, Email: "ana@example.com"}))
	u, err := h.RequireUser()
	require.NoError(t, err)
	assert.Equal(t, 3, u.ID)

	// Cleared on logout
	require.NoError(t, h.Clear(ctx))
	assert.False(t, h.IsAuthenticated())
}

func TestHolder_UserReturnsCopy(t *testing.T) {
	h := NewHolder(nil)
	require.NoError(t, h.Set(context.Background(), &sportzone.User{ID: 3, Email: "ana@example.com"}))

	u := h.User()
	u.ID = 99
	assert.Equal(t, 3, h.User().ID)
}

func TestHolder_SetRejectsMissingID(t *testing.T) {
	h := NewHolder(nil)
	assert.Error(t, h.Set(context.Background(), &sportzone.User{Email: "ana@example.com"}))
	assert.Error(t, h.Set(context.Background(), nil))
	assert.False(t, h.IsAuthenticated())
}

func TestHolder_RestoreWithoutSessionIsEmpty(t *testing.T) {
	h := NewHolder(NewMemoryStore())
	require.NoError(t, h.Restore(context.Background()))
	assert.False(t, h.IsAuthenticated())
}

func TestRedisStore(t *testing.T) {
	setup := func(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
		mr := miniredis.RunT(t)
		store, err := NewRedisStore(&redis.Options{Addr: mr.Addr()}, "default", time.Hour)
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })
		return mr, store
	}

	t.Run("session survives a new holder", func(t *testing.T) {
		ctx := context.Background()
		_, store := setup(t)

		first := NewHolder(store)
		require.NoError(t, first.Set(ctx, &sportzone.User{ID: 5, Email: "luis@example.com", Name: "Luis"}))

		second := NewHolder(store)
		require.NoError(t, second.Restore(ctx))
		u, err := second.RequireUser()
		require.NoError(t, err)
		assert.Equal(t, "Luis", u.Name)
	})

	t.Run("logout removes the key", func(t *testing.T) {
		ctx := context.Background()
		mr, store := setup(t)

		h := NewHolder(store)
		require.NoError(t, h.Set(ctx, &sportzone.User{ID: 5, Email: "luis@example.com"}))
		assert.True(t, mr.Exists(Key("default")))

		require.NoError(t, h.Clear(ctx))
		assert.False(t, mr.Exists(Key("default")))

		fresh := NewHolder(store)
		require.NoError(t, fresh.Restore(ctx))
		assert.False(t, fresh.IsAuthenticated())
	})

	t.Run("ttl expires the session", func(t *testing.T) {
		ctx := context.Background()
		mr, store := setup(t)

		require.NoError(t, store.Save(ctx, &sportzone.User{ID: 5}))
		mr.FastForward(2 * time.Hour)

		_, err := store.Load(ctx)
		assert.True(t, errors.Is(err, ErrNoSession))
	})

	t.Run("corrupt payload is reported", func(t *testing.T) {
		ctx := context.Background()
		mr, store := setup(t)

		require.NoError(t, mr.Set(Key("default"), "{not json"))
		h := NewHolder(store)
		assert.Error(t, h.Restore(ctx))
	})

	t.Run("empty profile rejected", func(t *testing.T) {
		_, err := NewRedisStore(&redis.Options{Addr: "localhost:0"}, "", 0)
		assert.Error(t, err)
	})
}
