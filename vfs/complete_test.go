package vfs

import "testing"

func TestComplete(t *testing.T) {
	tests := []struct {
		name    string
		names   []string
		partial string
		want    string
		ok      bool
	}{
		{name: "shortest extension wins", names: []string{"abc", "ab", "abcd"}, partial: "a", want: "b", ok: true},
		{name: "exact match has no suggestion", names: []string{"ab"}, partial: "ab", want: "", ok: false},
		{name: "exact match skipped for longer", names: []string{"ab", "abc"}, partial: "ab", want: "c", ok: true},
		{name: "empty input", names: []string{"abc"}, partial: "", want: "", ok: false},
		{name: "no candidates", names: []string{"xyz"}, partial: "a", want: "", ok: false},
		{name: "empty directory", names: nil, partial: "a", want: "", ok: false},
		{name: "case sensitive", names: []string{"Apple"}, partial: "a", want: "", ok: false},
		{name: "equal length keeps given order", names: []string{"bx", "by"}, partial: "b", want: "x", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Complete(tt.names, tt.partial)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Complete(%v, %q) = (%q, %v), expected (%q, %v)", tt.names, tt.partial, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestDir_Complete(t *testing.T) {
	root := NewDir()
	root.Mkdir("projects")
	root.Create("proposal", "")
	root.Create("pro", "")

	// "pro" itself is skipped; of the two 8-letter names the lexically
	// first is chosen.
	got, ok := root.Complete("pro")
	if !ok || got != "jects" {
		t.Errorf("Expected (jects, true), got (%q, %v)", got, ok)
	}

	got, ok = root.Complete("propo")
	if !ok || got != "sal" {
		t.Errorf("Expected (sal, true), got (%q, %v)", got, ok)
	}
}
