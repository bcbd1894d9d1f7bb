package universe

import "testing"

func TestNewAndLookup(t *testing.T) {
	u := New([]string{"AAPL", "MSFT", "GOOG"})

	if u.Size() != 3 {
		t.Fatalf("size = %d, want 3", u.Size())
	}
	if got := u.Symbol(1); got != "MSFT" {
		t.Fatalf("Symbol(1) = %q, want MSFT", got)
	}
	if got := u.Symbol(99); got != "" {
		t.Fatalf("Symbol(99) = %q, want empty", got)
	}

	id, ok := u.IndexOf("GOOG")
	if !ok || id != 2 {
		t.Fatalf("IndexOf(GOOG) = (%d, %v), want (2, true)", id, ok)
	}

	if _, ok := u.IndexOf("TSLA"); ok {
		t.Fatalf("IndexOf(TSLA) should not be found")
	}
}

func TestSetReplacesContents(t *testing.T) {
	u := New([]string{"A", "B"})
	u.Set([]string{"X", "Y", "Z"})

	if u.Size() != 3 {
		t.Fatalf("size = %d, want 3", u.Size())
	}
	if _, ok := u.IndexOf("A"); ok {
		t.Fatalf("old symbol A should no longer be found")
	}
}

func TestSetCopiesInput(t *testing.T) {
	src := []string{"A", "B"}
	u := New(src)
	src[0] = "mutated"

	if got := u.Symbol(0); got != "A" {
		t.Fatalf("Universe should have copied input, got %q", got)
	}
}

func TestDefaultUniverse(t *testing.T) {
	SetDefault([]string{"SPY"})
	if Default().Size() != 1 {
		t.Fatalf("default universe size = %d, want 1", Default().Size())
	}
}
