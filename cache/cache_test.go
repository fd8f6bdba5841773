package cache_test

import (
	"testing"

	"github.com/warp/credit-engine/cache"
)

func TestMemory_SetGet(t *testing.T) {
	c := cache.NewMemory()

	if _, ok := c.Get("missing"); ok {
		t.Error("unexpected hit for missing key")
	}

	if err := c.Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok := c.Get("k")
	if !ok || got != "v" {
		t.Errorf("Get(k) = (%q, %v), want (v, true)", got, ok)
	}
}

func TestKey_DeterministicAndPayloadSensitive(t *testing.T) {
	a := cache.Key("schedule", []byte(`{"principal":1000000}`))
	b := cache.Key("schedule", []byte(`{"principal":1000000}`))
	c := cache.Key("schedule", []byte(`{"principal":2000000}`))

	if a != b {
		t.Errorf("same payload produced different keys: %s vs %s", a, b)
	}
	if a == c {
		t.Error("different payloads produced the same key")
	}
	if d := cache.Key("plans", []byte(`{"principal":1000000}`)); d == a {
		t.Error("different prefixes produced the same key")
	}
}
