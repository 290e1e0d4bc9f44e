package groq

import "testing"

func TestNewKeyPool_Empty(t *testing.T) {
	if _, err := NewKeyPool(nil); err == nil {
		t.Error("expected error for no keys")
	}
	if _, err := NewKeyPool([]string{"", ""}); err == nil {
		t.Error("expected error for only blank keys")
	}
}

func TestKeyPool_Rotation(t *testing.T) {
	pool, err := NewKeyPool([]string{"k1", "", "k2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pool.Len() != 2 {
		t.Fatalf("expected 2 usable keys, got %d", pool.Len())
	}

	want := []string{"k1", "k2", "k1", "k2"}
	for i, w := range want {
		if got := pool.Next(); got != w {
			t.Errorf("call %d: expected %q, got %q", i, w, got)
		}
	}
}

func TestKeyPool_SingleKey(t *testing.T) {
	pool, err := NewKeyPool([]string{"only"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pool.Next() != "only" || pool.Next() != "only" {
		t.Error("expected single key to repeat")
	}
}
