package guild

import "testing"

func TestRNG_SameSeedSameSequence(t *testing.T) {
	a := NewRNG(1337)
	b := NewRNG(1337)
	for i := 0; i < 1000; i++ {
		va, vb := a.NextInt(1_000_000), b.NextInt(1_000_000)
		if va != vb {
			t.Fatalf("draw %d: %d vs %d", i, va, vb)
		}
	}
	if a.Draws() != 1000 || b.Draws() != 1000 {
		t.Fatalf("draws = %d / %d, want 1000", a.Draws(), b.Draws())
	}
}

func TestRNG_EveryMethodConsumesOneDraw(t *testing.T) {
	r := NewRNG(7)
	r.NextInt(10)
	r.NextLong(10)
	r.NextBool()
	r.NextFloat()
	if r.Draws() != 4 {
		t.Fatalf("draws = %d, want 4", r.Draws())
	}
}

func TestRNG_SeedChangesSequence(t *testing.T) {
	a := NewRNG(1)
	b := NewRNG(2)
	same := true
	for i := 0; i < 16; i++ {
		if a.NextInt(1_000_000) != b.NextInt(1_000_000) {
			same = false
		}
	}
	if same {
		t.Fatal("seeds 1 and 2 produced identical 16-draw prefixes")
	}
}

func TestRNG_Bounds(t *testing.T) {
	r := NewRNG(99)
	for i := 0; i < 500; i++ {
		if v := r.NextInt(7); v < 0 || v >= 7 {
			t.Fatalf("NextInt(7) = %d", v)
		}
		if v := r.NextLong(3); v < 0 || v >= 3 {
			t.Fatalf("NextLong(3) = %d", v)
		}
		if f := r.NextFloat(); f < 0 || f >= 1 {
			t.Fatalf("NextFloat = %v", f)
		}
	}
}

func TestRNG_ResumeMatchesAdvancedGenerator(t *testing.T) {
	fresh := NewRNG(42)
	for i := 0; i < 17; i++ {
		fresh.NextInt(100)
	}
	resumed := ResumeRNG(42, fresh.Draws())
	for i := 0; i < 16; i++ {
		if a, b := fresh.NextInt(100), resumed.NextInt(100); a != b {
			t.Fatalf("draw %d: %d vs %d", i, a, b)
		}
	}
	if fresh.Draws() != resumed.Draws() {
		t.Fatalf("draw counters diverged: %d vs %d", fresh.Draws(), resumed.Draws())
	}
}

func TestRNG_NonPositiveBoundPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NextInt(0) did not panic")
		}
	}()
	NewRNG(1).NextInt(0)
}
