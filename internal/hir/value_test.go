package hir

import "testing"

func TestValueRendering(t *testing.T) {
	cases := []struct {
		value Value
		want  string
	}{
		{IntValue(42), "42"},
		{FloatValue(2.5), "2.5"},
		{BoolValue(true), "true"},
		{StringValue("hi"), `"hi"`},
		{CharValue('q'), "'q'"},
		{Value{}, "?"},
	}
	for _, tc := range cases {
		if got := tc.value.Render(); got != tc.want {
			t.Fatalf("render of kind %d: got %q, want %q", tc.value.Kind, got, tc.want)
		}
	}
}
