package bot

import (
	"testing"

	"github.com/danielpatrickdp/adaptive-rps/internal/move"
	"github.com/danielpatrickdp/adaptive-rps/internal/predictor"
)

func TestByNameUnknown(t *testing.T) {
	if _, err := ByName("lizard", nil); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) != 5 {
		t.Fatalf("expected 5 strategies, got %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}

func TestCycle(t *testing.T) {
	s, _ := ByName("cycle", nil)
	want := []move.Move{move.Rock, move.Paper, move.Scissors, move.Rock}
	for i, w := range want {
		if got := s.Next(0, false); got != w {
			t.Fatalf("step %d: got %s want %s", i, got, w)
		}
	}
}

func TestBeatLast(t *testing.T) {
	s, _ := ByName("beat-last", nil)
	if got := s.Next(0, false); got != move.Paper {
		t.Fatalf("expected opening paper, got %s", got)
	}
	if got := s.Next(move.Rock, true); got != move.Paper {
		t.Fatalf("expected paper to beat rock, got %s", got)
	}
	if got := s.Next(move.Paper, true); got != move.Scissors {
		t.Fatalf("expected scissors to beat paper, got %s", got)
	}
}

func TestCopyLast(t *testing.T) {
	s, _ := ByName("copy-last", nil)
	if got := s.Next(0, false); got != move.Scissors {
		t.Fatalf("expected opening scissors, got %s", got)
	}
	if got := s.Next(move.Rock, true); got != move.Rock {
		t.Fatalf("expected copy of rock, got %s", got)
	}
}

func TestRandomStaysInRange(t *testing.T) {
	s, _ := ByName("random", predictor.SeededSource(3))
	seen := map[move.Move]bool{}
	for i := 0; i < 100; i++ {
		m := s.Next(0, false)
		if !m.Valid() {
			t.Fatalf("invalid move %d", m)
		}
		seen[m] = true
	}
	if len(seen) != move.Count {
		t.Fatalf("expected all moves over 100 draws, saw %v", seen)
	}
}

func TestFreshInstances(t *testing.T) {
	a, _ := ByName("cycle", nil)
	b, _ := ByName("cycle", nil)
	a.Next(0, false)
	if got := b.Next(0, false); got != move.Rock {
		t.Fatalf("strategies must not share state, got %s", got)
	}
}
