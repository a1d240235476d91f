package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	qt "github.com/frankban/quicktest"
	"github.com/redis/go-redis/v9"
)

func newMiniRedis(c *qt.C) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(c)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c.Cleanup(func() { client.Close() })
	return mr, client
}

func testCacheRoundTrip(c *qt.C, cache CacheInterface) {
	ctx := context.Background()

	var miss SessionData
	c.Assert(errors.Is(cache.Get(ctx, "nope", &miss), ErrCacheMiss), qt.IsTrue)

	in := SessionData{UserID: "u1", RoleID: "r1", ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second)}
	c.Assert(cache.Set(ctx, "k", in, time.Minute), qt.IsNil)

	var out SessionData
	c.Assert(cache.Get(ctx, "k", &out), qt.IsNil)
	c.Assert(out, qt.DeepEquals, in)

	c.Assert(cache.Delete(ctx, "k"), qt.IsNil)
	c.Assert(errors.Is(cache.Get(ctx, "k", &out), ErrCacheMiss), qt.IsTrue)
}

func TestCacheService_RoundTrip(t *testing.T) {
	c := qt.New(t)
	testCacheRoundTrip(c, NewCacheService(time.Minute, time.Minute))
}

func TestRedisCacheService_RoundTrip(t *testing.T) {
	c := qt.New(t)
	_, client := newMiniRedis(c)
	testCacheRoundTrip(c, NewRedisCacheService(client))
}

func TestRedisCacheService_Expires(t *testing.T) {
	c := qt.New(t)
	mr, client := newMiniRedis(c)
	cache := NewRedisCacheService(client)
	ctx := context.Background()

	c.Assert(cache.Set(ctx, "k", "v", time.Minute), qt.IsNil)
	c.Assert(mr.TTL("k"), qt.Equals, time.Minute)

	mr.FastForward(2 * time.Minute)
	var s string
	c.Assert(errors.Is(cache.Get(ctx, "k", &s), ErrCacheMiss), qt.IsTrue)
}

func TestGetOrSet_LoadsOnce(t *testing.T) {
	c := qt.New(t)
	cache := NewCacheService(time.Minute, time.Minute)
	ctx := context.Background()

	calls := 0
	loader := func() (int, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		v, err := GetOrSet(ctx, cache, "answer", time.Minute, loader)
		c.Assert(err, qt.IsNil)
		c.Assert(v, qt.Equals, 42)
	}
	c.Assert(calls, qt.Equals, 1)
}

func TestSessionCache(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	sc := NewSessionCache(NewCacheService(time.Minute, time.Minute), time.Minute)

	c.Assert(sc.Get(ctx, "u1", "tok"), qt.IsNil)

	data := &SessionData{SessionID: "s1", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}
	c.Assert(sc.Remember(ctx, "tok", data), qt.IsNil)

	got := sc.Get(ctx, "u1", "tok")
	c.Assert(got, qt.IsNotNil)
	c.Assert(got.SessionID, qt.Equals, "s1")
	c.Assert(sc.Get(ctx, "u1", "other"), qt.IsNil)

	c.Assert(sc.Forget(ctx, "u1", "tok"), qt.IsNil)
	c.Assert(sc.Get(ctx, "u1", "tok"), qt.IsNil)
}
