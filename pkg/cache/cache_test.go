package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestSetGetAndExpire(t *testing.T) {
	c := New(0)
	key := Key("unit", "expire")

	if _, ok := c.Get(key); ok {
		t.Fatalf("expected no value initially")
	}

	c.Set(key, "hello", 50*time.Millisecond)
	if v, ok := c.Get(key); !ok || v.(string) != "hello" {
		t.Fatalf("expected value 'hello', got %v ok=%v", v, ok)
	}

	time.Sleep(80 * time.Millisecond)
	if _, ok := c.Get(key); ok {
		t.Fatalf("expected expired value to be gone")
	}
}

func TestDelete(t *testing.T) {
	c := New(0)
	key := Key("unit", "delete")
	c.Set(key, 42, time.Minute)
	if v, ok := c.Get(key); !ok || v.(int) != 42 {
		t.Fatalf("expected 42 present before delete, got %v ok=%v", v, ok)
	}
	c.Delete(key)
	if _, ok := c.Get(key); ok {
		t.Fatalf("expected deleted value to be absent")
	}
}

func TestLRUEviction(t *testing.T) {
	c := New(3)
	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("k%d", i), i, 0)
	}
	// touch k0 so k1 becomes the LRU entry
	if _, ok := c.Get("k0"); !ok {
		t.Fatalf("expected k0 present")
	}
	c.Set("k3", 3, 0)
	if c.Len() != 3 {
		t.Fatalf("expected capacity 3, got %d", c.Len())
	}
	if _, ok := c.Get("k1"); ok {
		t.Fatalf("expected k1 to be evicted")
	}
	if _, ok := c.Get("k0"); !ok {
		t.Fatalf("expected recently used k0 to survive")
	}
}

func TestConcurrentGetSetSameKey(t *testing.T) {
	c := New(8)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				c.Set("shared", n*1000+j, time.Millisecond)
				if v, ok := c.Get("shared"); ok {
					if _, isInt := v.(int); !isInt {
						t.Errorf("unexpected value type %T", v)
						return
					}
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestKeyStability(t *testing.T) {
	k1 := Key("a", "b", "c")
	k2 := Key("a", "b", "c")
	if k1 != k2 {
		t.Fatalf("expected same inputs to yield same key")
	}
	k3 := Key("a", "b", "d")
	if k1 == k3 {
		t.Fatalf("expected different inputs to yield different key")
	}
}
