package source

import "testing"

func TestTextRangeContains(t *testing.T) {
	r := NewTextRange(2, 5)

	cases := []struct {
		offset    uint32
		contains  bool
		inclusive bool
	}{
		{1, false, false},
		{2, true, true},
		{4, true, true},
		{5, false, true},
		{6, false, false},
	}
	for _, tc := range cases {
		if got := r.Contains(tc.offset); got != tc.contains {
			t.Fatalf("Contains(%d) = %v, want %v", tc.offset, got, tc.contains)
		}
		if got := r.ContainsInclusive(tc.offset); got != tc.inclusive {
			t.Fatalf("ContainsInclusive(%d) = %v, want %v", tc.offset, got, tc.inclusive)
		}
	}
}

func TestTextRangeCover(t *testing.T) {
	r := NewTextRange(4, 6).Cover(NewTextRange(1, 5))
	if r.Start != 1 || r.End != 6 {
		t.Fatalf("unexpected cover result: %s", r)
	}
}

func TestNewTextRangeNormalizes(t *testing.T) {
	r := NewTextRange(7, 3)
	if r.Start != 3 || r.End != 7 {
		t.Fatalf("expected normalized bounds, got %s", r)
	}
}

func TestLineIndexPosition(t *testing.T) {
	ix := NewLineIndex("let a = 1;\nlet b = 2;\n")

	line, col := ix.Position(0)
	if line != 1 || col != 1 {
		t.Fatalf("offset 0: got %d:%d", line, col)
	}
	line, col = ix.Position(11)
	if line != 2 || col != 1 {
		t.Fatalf("offset 11: got %d:%d", line, col)
	}
	line, col = ix.Position(15)
	if line != 2 || col != 5 {
		t.Fatalf("offset 15: got %d:%d", line, col)
	}
}
