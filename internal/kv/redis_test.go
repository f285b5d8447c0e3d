package kv

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = c.Close() })
	return NewRedisRepository(c, ""), mr
}

func TestRedis_SetGetUsesPrefix(t *testing.T) {
	r, mr := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "taskhub_tasks", []byte(`[]`)))

	raw, err := mr.Get("taskhub:taskhub_tasks")
	require.NoError(t, err)
	assert.Equal(t, `[]`, raw)

	v, err := r.Get(ctx, "taskhub_tasks")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), v)
}

func TestRedis_GetAbsent(t *testing.T) {
	r, _ := setupRedis(t)

	v, err := r.Get(context.Background(), "taskhub_session")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestRedis_SetManyListClearIgnoreForeignKeys(t *testing.T) {
	r, mr := setupRedis(t)
	ctx := context.Background()
	require.NoError(t, mr.Set("other:key", "untouched"))

	require.NoError(t, r.SetMany(ctx, map[string][]byte{
		"taskhub_users":    []byte("u"),
		"taskhub_profiles": []byte("p"),
	}))
	require.NoError(t, r.SetMany(ctx, nil))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{
		"taskhub_users":    []byte("u"),
		"taskhub_profiles": []byte("p"),
	}, m)

	require.NoError(t, r.Clear(ctx))
	m, err = r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)

	raw, err := mr.Get("other:key")
	require.NoError(t, err)
	assert.Equal(t, "untouched", raw)
}

func TestRedis_Delete(t *testing.T) {
	r, mr := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "taskhub_session", []byte("{}")))
	require.NoError(t, r.Delete(ctx, "taskhub_session"))
	require.NoError(t, r.Delete(ctx, "taskhub_session"))
	assert.False(t, mr.Exists("taskhub:taskhub_session"))
}

func TestRedis_ErrorsAreWrapped(t *testing.T) {
	r, mr := setupRedis(t)
	mr.Close()
	ctx := context.Background()

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get kv[k]")
	require.ErrorContains(t, r.Set(ctx, "k", nil), "failed to set kv[k]")
	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list kv")
}
