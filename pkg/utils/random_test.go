package utils

import (
	"math/rand"
	"testing"
)

func TestStringToSeed(t *testing.T) {
	if StringToSeed("north-sea") != StringToSeed("north-sea") {
		t.Error("seed must be deterministic")
	}
	if StringToSeed("north-sea") == StringToSeed("south-sea") {
		t.Error("different names should give different seeds")
	}
}

func TestRandRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		if v := RandRange(rng, 2, 4); v < 2 || v > 4 {
			t.Fatalf("RandRange(2,4) = %d", v)
		}
	}
	if v := RandRange(rng, 5, 5); v != 5 {
		t.Errorf("degenerate range = %d", v)
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == "" || a == b {
		t.Errorf("ids %q %q", a, b)
	}
}
