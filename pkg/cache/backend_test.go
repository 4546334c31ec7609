package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// exerciseBackend runs the behaviour every remote backend must share.
func exerciseBackend(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()
	key := "chartlayout-test:" + time.Now().Format(time.RFC3339Nano)

	if _, hit, err := c.Get(ctx, key); hit || err != nil {
		t.Fatalf("Get(missing) = %v, %v", hit, err)
	}
	if err := c.Set(ctx, key, []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "payload" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Set(ctx, key, []byte("updated"), time.Minute); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if data, _, _ := c.Get(ctx, key); string(data) != "updated" {
		t.Errorf("overwrite = %q", data)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("key should be gone after Delete")
	}
}

func TestRedisCache(t *testing.T) {
	url := os.Getenv("CHARTLAYOUT_TEST_REDIS")
	if url == "" {
		t.Skip("CHARTLAYOUT_TEST_REDIS not set")
	}
	c, err := NewRedisCache(context.Background(), url)
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()
	exerciseBackend(t, c)
}

func TestMongoCache(t *testing.T) {
	uri := os.Getenv("CHARTLAYOUT_TEST_MONGO")
	if uri == "" {
		t.Skip("CHARTLAYOUT_TEST_MONGO not set")
	}
	c, err := NewMongoCache(context.Background(), uri, "chartlayout_test")
	if err != nil {
		t.Fatalf("NewMongoCache: %v", err)
	}
	defer c.Close()
	exerciseBackend(t, c)
}

func TestRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not a url"); err == nil {
		t.Error("expected error for invalid url")
	}
}
