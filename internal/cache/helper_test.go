package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func useTestRedis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	InitRedis(mr.Addr())
	t.Cleanup(func() { client = nil })
}

func TestAside_FetchesOnMissAndCaches(t *testing.T) {
	useTestRedis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedThing) func() error {
		return func() error {
			fetches++
			dest.Name = "events"
			dest.Count = 3
			return nil
		}
	}

	var first cachedThing
	require.NoError(t, Aside(ctx, "thing:1", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "events", first.Name)

	var second cachedThing
	require.NoError(t, Aside(ctx, "thing:1", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, fetches, "second read should be served from cache")
	assert.Equal(t, first, second)
}

func TestAside_FetchErrorPropagates(t *testing.T) {
	useTestRedis(t)

	var dest cachedThing
	err := Aside(context.Background(), "thing:2", &dest, time.Minute, func() error {
		return errors.New("store unavailable")
	})
	assert.Error(t, err)
}

func TestAside_NilClientFallsThrough(t *testing.T) {
	client = nil

	fetched := false
	var dest cachedThing
	require.NoError(t, Aside(context.Background(), "thing:3", &dest, time.Minute, func() error {
		fetched = true
		return nil
	}))
	assert.True(t, fetched)
}

func TestInvalidate_RemovesKey(t *testing.T) {
	useTestRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostKey(9), cachedThing{Name: "x"}, time.Minute))
	InvalidatePost(ctx, 9)

	var dest cachedThing
	found, err := GetJSON(ctx, PostKey(9), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}
