package hir

import (
	"bytes"
	"testing"
)

func TestArenaInsertGetRemove(t *testing.T) {
	var a arena[Symbol, string]

	k1 := a.Insert("one")
	k2 := a.Insert("two")
	if a.Len() != 2 {
		t.Fatalf("len = %d", a.Len())
	}
	if got := a.Get(k1); got == nil || *got != "one" {
		t.Fatalf("get k1 = %v", got)
	}

	v, ok := a.Remove(k1)
	if !ok || v != "one" {
		t.Fatalf("remove = %q, %v", v, ok)
	}
	if a.Get(k1) != nil {
		t.Fatalf("stale key still resolves")
	}
	if got := a.Get(k2); got == nil || *got != "two" {
		t.Fatalf("unrelated key disturbed by removal")
	}
}

func TestArenaGenerationPreventsAliasing(t *testing.T) {
	var a arena[Symbol, int]

	old := a.Insert(1)
	a.Remove(old)
	fresh := a.Insert(2)

	// The freed slot is reused under a new generation.
	if key(old).index() != key(fresh).index() {
		t.Fatalf("slot not reused: %v vs %v", old, fresh)
	}
	if old == fresh {
		t.Fatalf("generation not bumped")
	}
	if a.Get(old) != nil {
		t.Fatalf("old key aliases the new occupant")
	}
	if got := a.Get(fresh); got == nil || *got != 2 {
		t.Fatalf("fresh key broken")
	}
}

func TestArenaNullKeyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Get on the null key must panic")
		}
	}()
	var a arena[Symbol, int]
	a.Get(0)
}

func TestArenaKeysSafeDuringMutation(t *testing.T) {
	var a arena[Symbol, int]
	for i := 0; i < 8; i++ {
		a.Insert(i)
	}
	for _, k := range a.Keys() {
		a.Remove(k)
	}
	if a.Len() != 0 {
		t.Fatalf("len after removing all = %d", a.Len())
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	h := New()
	buildScript(t, h, "file:///ws/a.qll", `
fn add(a, b) { a }

let x = add(1, 2);
`)

	var buf bytes.Buffer
	if err := h.EncodeSnapshot(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	snap, err := DecodeSnapshot(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Schema != snapshotSchemaVersion {
		t.Fatalf("schema = %d", snap.Schema)
	}
	if len(snap.Symbols) != h.SymbolCount() {
		t.Fatalf("snapshot has %d symbols, graph has %d", len(snap.Symbols), h.SymbolCount())
	}
	if len(snap.Sources) != 2 { // the script and the virtual source
		t.Fatalf("snapshot has %d sources", len(snap.Sources))
	}

	foundFn := false
	for _, s := range snap.Symbols {
		if s.Kind == "fn" && s.Name == "add" {
			foundFn = true
		}
	}
	if !foundFn {
		t.Fatalf("fn add missing from snapshot")
	}
}
