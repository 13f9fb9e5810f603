package svgpath

import (
	"errors"
	"reflect"
	"testing"
)

func TestInterpret(t *testing.T) {
	for _, tt := range []struct {
		data string
		want Path
	}{
		{
			"M10 10 L20 20 Z",
			Path{MoveTo{10, 10}, LineTo{20, 20}, Close{}},
		},
		{
			// implicit linetos after the first pair
			"M0 0 10 10 20 0 Z",
			Path{MoveTo{0, 0}, LineTo{10, 10}, LineTo{20, 0}, Close{}},
		},
		{
			// comma separators and negative numbers
			"M-5,-5 L5,-5",
			Path{MoveTo{-5, -5}, LineTo{5, -5}},
		},
		{
			"M0 0 C10 0 20 10 20 20",
			Path{MoveTo{0, 0}, CurveTo{10, 0, 20, 10, 20, 20}},
		},
		{
			// relative curve offsets from the pre-curve point
			"m10 10 c5 0 10 5 10 10",
			Path{MoveTo{10, 10}, CurveTo{15, 10, 20, 15, 20, 20}},
		},
		{
			// exponents
			"M1e1 1E1 L2e1 2e1",
			Path{MoveTo{10, 10}, LineTo{20, 20}},
		},
		{
			// numbers before any command are skipped
			"10 10 M0 0 L1 1",
			Path{MoveTo{0, 0}, LineTo{1, 1}},
		},
		{
			"", nil,
		},
		{
			// unrecognized characters are dropped
			"M10 10 Q99 99 L20 20",
			Path{MoveTo{10, 10}, LineTo{99, 99}, LineTo{20, 20}},
		},
	} {
		got, err := Interpret(tt.data)
		if err != nil {
			t.Fatalf("Interpret(%q): %v", tt.data, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Interpret(%q) = %v, want %v", tt.data, got, tt.want)
		}
	}
}

func TestRelativeEqualsAbsolute(t *testing.T) {
	rel, err := Interpret("m5 5 l5 0 l0 5 z")
	if err != nil {
		t.Fatal(err)
	}
	abs, err := Interpret("M5 5 L10 5 L10 10 Z")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(rel, abs) {
		t.Errorf("relative %v != absolute %v", rel, abs)
	}
}

func TestCloseResetsCurrentPoint(t *testing.T) {
	// the relative move after z is offset from the subpath start (5,5),
	// not from the last lineto (10,10)
	got, err := Interpret("m5 5 l5 5 z m1 1 l1 0")
	if err != nil {
		t.Fatal(err)
	}
	want := Path{MoveTo{5, 5}, LineTo{10, 10}, Close{}, MoveTo{6, 6}, LineTo{7, 6}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTrailingCloseEmitted(t *testing.T) {
	got, err := Interpret("M0 0 L1 1 Z")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) == 0 {
		t.Fatal("empty path")
	}
	if _, ok := got[len(got)-1].(Close); !ok {
		t.Errorf("last operation = %v, want Close", got[len(got)-1])
	}
}

func TestMalformedPath(t *testing.T) {
	var malformed MalformedPathError
	for _, data := range []string{
		"M10",               // move needs a pair
		"M10 10 L20",        // lineto needs a pair
		"M0 0 C1 1 2 2",     // curve needs three pairs
		"M10 10 L20 L30 30", // command letter where a coordinate belongs
	} {
		_, err := Interpret(data)
		if !errors.As(err, &malformed) {
			t.Errorf("Interpret(%q): expected MalformedPathError, got %v", data, err)
		}
	}
}

func TestToSVGPath(t *testing.T) {
	p := Path{MoveTo{10, 10}, LineTo{20, 20}, CurveTo{1, 2, 3, 4, 5, 6}, Close{}}
	want := "M10,10 L20,20 C1,2,3,4,5,6 Z"
	if got := p.ToSVGPath(); got != want {
		t.Errorf("ToSVGPath() = %q, want %q", got, want)
	}
}
