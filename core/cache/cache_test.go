package cache

import (
	"fmt"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time { return f.t }

func TestGetInstance(t *testing.T) {
	inst := GetInstance()
	if inst == nil {
		t.Fatal("GetInstance returned nil")
	}
	if GetInstance() != inst {
		t.Error("GetInstance should return same instance")
	}
}

func TestSet_Get(t *testing.T) {
	c := NewCache()
	c.Set("k", "val", 0, nil)
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("Get: want true")
	}
	if got != "val" {
		t.Errorf("Get = %v, want val", got)
	}
}

func TestGet_Missing(t *testing.T) {
	c := NewCache()
	if _, ok := c.Get("nonexistent-key-xyz"); ok {
		t.Error("Get missing key: want false")
	}
}

func TestSet_TTLExpires(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	c := NewCacheWithClock(clk.now)
	c.Set("k", 1, time.Minute, nil)

	clk.t = clk.t.Add(59 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("key expired too early")
	}
	clk.t = clk.t.Add(2 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Error("key should have expired")
	}
}

func TestTouch_ExtendsTTL(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	c := NewCacheWithClock(clk.now)
	c.Set("k", 1, time.Minute, nil)
	clk.t = clk.t.Add(50 * time.Second)
	if !c.Touch("k", time.Minute) {
		t.Fatal("Touch live key: want true")
	}
	clk.t = clk.t.Add(50 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Error("touched key should still be live")
	}
	if c.Touch("missing", time.Minute) {
		t.Error("Touch missing key: want false")
	}
}

func TestGetOrDefault(t *testing.T) {
	c := NewCache()
	if got := c.GetOrDefault("k", "default"); got != "default" {
		t.Errorf("GetOrDefault missing = %v, want default", got)
	}
	c.Set("k", "stored", 0, nil)
	if got := c.GetOrDefault("k", "default"); got != "stored" {
		t.Errorf("GetOrDefault found = %v, want stored", got)
	}
}

func TestSetN_GetN_DeleteN(t *testing.T) {
	c := NewCache()
	c.SetN([]interface{}{"a", 2}, "composite-val", 0, nil)
	got, ok := c.GetN("a", 2)
	if !ok || got != "composite-val" {
		t.Errorf("GetN = %v, %v; want composite-val, true", got, ok)
	}
	c.DeleteN("a", 2)
	if _, ok := c.GetN("a", 2); ok {
		t.Error("DeleteN: key should be gone")
	}
}

func TestTagKey_GetKeysByTag_DeleteByTag(t *testing.T) {
	c := NewCache()
	c.Set("k1", "v1", 0, []string{"t1"})
	c.Set("k2", "v2", 0, []string{"t1"})
	c.Set("k3", "v3", 0, []string{"t2"})

	if keys := c.GetKeysByTag("t1"); len(keys) != 2 {
		t.Errorf("GetKeysByTag = %d keys, want 2", len(keys))
	}

	c.DeleteByTag("t1")
	if _, ok := c.Get("k1"); ok {
		t.Error("DeleteByTag: k1 should be gone")
	}
	if _, ok := c.Get("k2"); ok {
		t.Error("DeleteByTag: k2 should be gone")
	}
	if _, ok := c.Get("k3"); !ok {
		t.Error("DeleteByTag: k3 has another tag and should survive")
	}
}

func TestDelete_RemovesFromTagIndex(t *testing.T) {
	c := NewCache()
	c.Set("k", "v", 0, []string{"t"})
	c.Delete("k")
	if keys := c.GetKeysByTag("t"); len(keys) != 0 {
		t.Errorf("GetKeysByTag after Delete = %d keys, want 0", len(keys))
	}
}

func TestIterateFilter_SkipsExpired(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	c := NewCacheWithClock(clk.now)
	c.Set("if1", 10, 0, nil)
	c.Set("if2", 20, time.Second, nil)
	c.Set("if3", 30, 0, nil)
	clk.t = clk.t.Add(time.Minute)

	results := c.IterateFilter(func(key, value interface{}) bool { return true })
	if len(results) != 2 {
		t.Errorf("IterateFilter = %v, want 2 live values", results)
	}
}

func TestPurge(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	c := NewCacheWithClock(clk.now)
	c.Set("a", 1, time.Second, nil)
	c.Set("b", 2, time.Second, nil)
	c.Set("c", 3, 0, nil)
	clk.t = clk.t.Add(time.Minute)

	if n := c.Purge(); n != 2 {
		t.Errorf("Purge = %d, want 2", n)
	}
	if c.Len() != 1 {
		t.Errorf("Len after purge = %d, want 1", c.Len())
	}
}

func TestPurge_DropsEmptyTags(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	c := NewCacheWithClock(clk.now)
	for i := 0; i < 1000; i++ {
		c.Set(i, i, time.Second, []string{fmt.Sprintf("session:%d", i)})
	}
	c.Set("kept", 1, 0, []string{"shared", "session:kept"})
	clk.t = clk.t.Add(time.Minute)

	if n := c.Purge(); n != 1000 {
		t.Errorf("Purge = %d, want 1000", n)
	}
	if n := c.TagCount(); n != 2 {
		t.Errorf("TagCount after purge = %d, want 2", n)
	}

	c.DeleteByTag("shared")
	if n := c.TagCount(); n != 0 {
		t.Errorf("TagCount after DeleteByTag = %d, want 0", n)
	}
}

func TestPurgeKeys(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	c := NewCacheWithClock(clk.now)
	c.Set("old", 1, time.Second, nil)
	c.Set("live", 2, 0, nil)
	clk.t = clk.t.Add(time.Minute)

	keys := c.PurgeKeys()
	if len(keys) != 1 || keys[0] != "old" {
		t.Errorf("PurgeKeys = %v, want [old]", keys)
	}
}
