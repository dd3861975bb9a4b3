package otp

import (
	"testing"
	"time"
)

func TestGenerate_Range(t *testing.T) {
	g := NewGenerator()
	for i := 0; i < 100; i++ {
		code, err := g.Generate(time.Minute)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if code.Value < 0 || code.Value > 999999 {
			t.Fatalf("code out of range: %d", code.Value)
		}
	}
}

func TestGenerate_Expiry(t *testing.T) {
	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	g := &Generator{now: func() time.Time { return fixed }}

	code, err := g.Generate(5 * time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !code.ExpiresAt.Equal(fixed.Add(5 * time.Minute)) {
		t.Fatalf("unexpected expiry: %s", code.ExpiresAt)
	}
}

func TestString_ZeroPadded(t *testing.T) {
	if got := (Code{Value: 42}).String(); got != "000042" {
		t.Fatalf("expected 000042, got %q", got)
	}
	if got := (Code{Value: 987654}).String(); got != "987654" {
		t.Fatalf("expected 987654, got %q", got)
	}
}
