package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mickytroxxy/bluegrass/pkg/config"
)

type fakeStore struct {
	values map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]string{}}
}

func (f *fakeStore) Ping(ctx context.Context) *goredis.StatusCmd {
	return goredis.NewStatusResult("PONG", nil)
}

func (f *fakeStore) Set(ctx context.Context, key string, value any, _ time.Duration) *goredis.StatusCmd {
	switch v := value.(type) {
	case string:
		f.values[key] = v
	case []byte:
		f.values[key] = string(v)
	}
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeStore) Get(ctx context.Context, key string) *goredis.StringCmd {
	value, ok := f.values[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(value, nil)
}

func (f *fakeStore) Del(ctx context.Context, keys ...string) *goredis.IntCmd {
	deleted := int64(0)
	for _, key := range keys {
		if _, ok := f.values[key]; ok {
			delete(f.values, key)
			deleted++
		}
	}
	return goredis.NewIntResult(deleted, nil)
}

func TestClientSetGetDel(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newFakeStore()}

	key := client.StateKey("root")
	if key != "bluegrass:state:root" {
		t.Fatalf("unexpected state key %q", key)
	}

	if err := client.Set(ctx, key, []byte(`{"v":1}`), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, err := client.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != `{"v":1}` {
		t.Fatalf("unexpected value %q", value)
	}

	if err := client.Del(ctx, key); err != nil {
		t.Fatalf("Del: %v", err)
	}
	_, err = client.Get(ctx, key)
	if !IsNil(err) {
		t.Fatalf("expected nil sentinel got %v", err)
	}
}

func TestIsNil(t *testing.T) {
	if IsNil(nil) {
		t.Fatal("nil error is not the missing-key sentinel")
	}
	if !IsNil(goredis.Nil) {
		t.Fatal("redis.Nil must be detected")
	}
}

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error without url or address")
	}
}

func TestOptionsFromConfigAddress(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{
		Address:      "localhost:6379",
		Password:     "secret",
		DB:           2,
		PoolSize:     5,
		MinIdleConns: 1,
		DialTimeout:  time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("optionsFromConfig: %v", err)
	}
	if opts.Addr != "localhost:6379" || opts.Password != "secret" || opts.DB != 2 {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if opts.PoolSize != 5 || opts.MinIdleConns != 1 {
		t.Fatalf("pool options not applied: %+v", opts)
	}
}

func TestOptionsFromConfigURL(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://:pw@localhost:6390/3"})
	if err != nil {
		t.Fatalf("optionsFromConfig: %v", err)
	}
	if opts.Addr != "localhost:6390" || opts.DB != 3 {
		t.Fatalf("unexpected options from url: %+v", opts)
	}
}
