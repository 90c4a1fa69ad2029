package ratelimit

import "testing"

func TestAllowWithinBurst(t *testing.T) {
	l := New(1, 3)
	for i := 0; i < 3; i++ {
		if !l.Allow("src") {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if l.Allow("src") {
		t.Fatalf("burst exhausted, expected denial")
	}
}

func TestKeysIndependent(t *testing.T) {
	l := New(1, 1)
	if !l.Allow("a") {
		t.Fatalf("first a should pass")
	}
	if !l.Allow("b") {
		t.Fatalf("b has its own bucket")
	}
	if l.Allow("a") {
		t.Fatalf("a should be exhausted")
	}
}
