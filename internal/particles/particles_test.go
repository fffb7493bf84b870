package particles

import (
	"math/rand"
	"testing"
)

func TestParticleLivesExactlyItsLifetime(t *testing.T) {
	tests := []int{1, 5, 40}

	for _, life := range tests {
		s := New(rand.New(rand.NewSource(1)))
		s.Burst(0, 0, "#ffffff", 3, 8, life)

		for step := 1; step < life; step++ {
			s.Step()
			if s.Len() != 3 {
				t.Fatalf("life=%d: after %d steps expected 3 particles, got %d", life, step, s.Len())
			}
		}
		s.Step()
		if s.Len() != 0 {
			t.Errorf("life=%d: particles should be purged on step %d", life, life)
		}
	}
}

func TestLifeDecreasesMonotonically(t *testing.T) {
	s := New(rand.New(rand.NewSource(7)))
	s.Burst(10, 10, "#ff0000", BurstCount, BurstBaseSpeed, BurstLife)

	prev := s.Snapshot()
	for s.Len() > 0 {
		s.Step()
		for i, p := range s.Snapshot() {
			if p.Life >= prev[i].Life {
				t.Fatalf("life did not decrease: %d -> %d", prev[i].Life, p.Life)
			}
		}
		prev = s.Snapshot()
	}
}

func TestBurstVelocityBounds(t *testing.T) {
	s := New(rand.New(rand.NewSource(3)))
	s.Burst(50, 60, "#00ff00", 200, 8, 10)

	for _, p := range s.Snapshot() {
		if p.X != 50 || p.Y != 60 {
			t.Fatalf("particle spawned at (%v, %v)", p.X, p.Y)
		}
		if p.VX < -4 || p.VX >= 4 || p.VY < -4 || p.VY >= 4 {
			t.Fatalf("velocity out of range: (%v, %v)", p.VX, p.VY)
		}
		if p.Alpha() != 1 {
			t.Fatalf("fresh particle alpha = %v", p.Alpha())
		}
	}
}

func TestStepIntegratesVelocity(t *testing.T) {
	s := New(rand.New(rand.NewSource(9)))
	s.Burst(0, 0, "#fff", 1, 8, 10)
	before := s.Snapshot()[0]

	s.Step()
	after := s.Snapshot()[0]
	if after.X != before.VX || after.Y != before.VY {
		t.Errorf("position = (%v, %v), expected (%v, %v)", after.X, after.Y, before.VX, before.VY)
	}
}

func TestRescale(t *testing.T) {
	s := New(rand.New(rand.NewSource(5)))
	s.Burst(100, 200, "#fff", 2, 8, 10)
	before := s.Snapshot()

	s.Rescale(0.5)
	for i, p := range s.Snapshot() {
		if p.X != before[i].X*0.5 || p.VY != before[i].VY*0.5 {
			t.Errorf("particle %d not rescaled: %+v", i, p)
		}
	}
}

func TestDeterministicBursts(t *testing.T) {
	a := New(rand.New(rand.NewSource(42)))
	b := New(rand.New(rand.NewSource(42)))
	a.Burst(0, 0, "#fff", 12, 8, 40)
	b.Burst(0, 0, "#fff", 12, 8, 40)

	pa, pb := a.Snapshot(), b.Snapshot()
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("same seed produced different particle %d", i)
		}
	}
}
