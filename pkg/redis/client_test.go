package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeCmdable struct {
	counts  map[string]int64
	expires map[string]time.Duration
	values  map[string]any
}

func newFakeCmdable() *fakeCmdable {
	return &fakeCmdable{
		counts:  map[string]int64{},
		expires: map[string]time.Duration{},
		values:  map[string]any{},
	}
}

func (f *fakeCmdable) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("PONG")
	return cmd
}

func (f *fakeCmdable) SetNX(ctx context.Context, key string, value any, ttl time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx)
	if _, taken := f.values[key]; taken {
		cmd.SetVal(false)
		return cmd
	}
	f.values[key] = value
	cmd.SetVal(true)
	return cmd
}

func (f *fakeCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	cmd.SetErr(redis.Nil)
	return cmd
}

func (f *fakeCmdable) Incr(ctx context.Context, key string) *redis.IntCmd {
	f.counts[key]++
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(f.counts[key])
	return cmd
}

func (f *fakeCmdable) Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	f.expires[key] = ttl
	cmd := redis.NewBoolCmd(ctx)
	cmd.SetVal(true)
	return cmd
}

func (f *fakeCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(int64(len(keys)))
	return cmd
}

func TestIncrWithTTLSetsExpiryOnFirstIncrement(t *testing.T) {
	fake := newFakeCmdable()
	client := &Client{store: fake}
	ctx := context.Background()

	count, err := client.IncrWithTTL(ctx, "nd:rate_limit:test", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected first increment to return 1, got %d", count)
	}
	if fake.expires["nd:rate_limit:test"] != time.Minute {
		t.Fatalf("expected TTL applied on first increment")
	}

	count, err = client.IncrWithTTL(ctx, "nd:rate_limit:test", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected second increment to return 2, got %d", count)
	}
}

func TestSetNXOnlyFirstWriterWins(t *testing.T) {
	fake := newFakeCmdable()
	client := &Client{store: fake}
	ctx := context.Background()

	ok, err := client.SetNX(ctx, "nd:idempotency:a", "first", time.Minute)
	if err != nil || !ok {
		t.Fatalf("expected first SetNX to win, ok=%v err=%v", ok, err)
	}
	ok, err = client.SetNX(ctx, "nd:idempotency:a", "second", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected second SetNX to lose")
	}
}

func TestBuildKeySkipsEmptyParts(t *testing.T) {
	client := &Client{}
	if got := client.RateLimitKey("login"); got != "nd:rate_limit:login" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := client.CounterKey(""); got != "nd:counter" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := client.IdempotencyKey("user|POST|/x", "k1"); got != "nd:idempotency:user|POST|/x:k1" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestPingWithoutStoreFails(t *testing.T) {
	client := &Client{}
	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected error when store is nil")
	}
}
