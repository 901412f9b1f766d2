package positions

import "testing"

func TestRegistry_InfoTracksLineAndColumn(t *testing.T) {
	r := NewRegistry()
	r.OpenSourceFile("a.syn")

	input := "ab\ncd\n"
	for i := 0; i < len(input); i++ {
		r.Step(input[i])
	}

	// Position 0 ('a') is line 1, column 1.
	info := r.Info(0)
	if info.Line != 1 || info.Column != 1 {
		t.Fatalf("expected 1:1, got %d:%d", info.Line, info.Column)
	}

	// Position 3 ('c', first byte of the second line) is line 2, column 1.
	info = r.Info(3)
	if info.Line != 2 || info.Column != 1 {
		t.Fatalf("expected 2:1, got %d:%d", info.Line, info.Column)
	}
	if info.LineText != "cd" {
		t.Fatalf("expected line text %q, got %q", "cd", info.LineText)
	}
	if info.File != "a.syn" {
		t.Fatalf("expected file %q, got %q", "a.syn", info.File)
	}
}

func TestRegistry_OpenSourceFileTracksBoundary(t *testing.T) {
	r := NewRegistry()
	r.OpenSourceFile("first.syn")
	for _, c := range []byte("xy") {
		r.Step(c)
	}
	r.OpenSourceFile("second.syn")
	for _, c := range []byte("z") {
		r.Step(c)
	}

	if got := r.Info(0).File; got != "first.syn" {
		t.Fatalf("expected first.syn, got %q", got)
	}
	if got := r.Info(2).File; got != "second.syn" {
		t.Fatalf("expected second.syn, got %q", got)
	}
}

func TestRegistry_CurrentPosition(t *testing.T) {
	r := NewRegistry()
	r.OpenSourceFile("a.syn")
	if r.CurrentPosition() != 0 {
		t.Fatalf("expected 0, got %d", r.CurrentPosition())
	}
	r.Step('a')
	r.Step('b')
	if r.CurrentPosition() != 2 {
		t.Fatalf("expected 2, got %d", r.CurrentPosition())
	}
}

func TestInfo_String(t *testing.T) {
	info := Info{File: "a.syn", Line: 3, Column: 5}
	if got, want := info.String(), "a.syn:3:5"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
