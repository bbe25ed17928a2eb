package halftone

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// spike returns a 3x3 grid with 9 in the center and 0 elsewhere.
func spike() Grid {
	return Grid{Cols: 3, Rows: 3, Cells: []float64{
		0, 0, 0,
		0, 9, 0,
		0, 0, 0,
	}}
}

func TestBoxBlur(t *testing.T) {
	got := BoxBlur(spike())
	want := Grid{Cols: 3, Rows: 3, Cells: []float64{
		9.0 / 4, 9.0 / 6, 9.0 / 4,
		9.0 / 6, 1, 9.0 / 6,
		9.0 / 4, 9.0 / 6, 9.0 / 4,
	}}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("BoxBlur() mismatch (-want +got):\n%s", diff)
	}
}

func TestSmoothZeroIsIdentity(t *testing.T) {
	g := spike()
	for _, s := range []float64{0, -1} {
		if diff := cmp.Diff(spike(), Smooth(g, s)); diff != "" {
			t.Errorf("Smooth(%v) changed the grid (-want +got):\n%s", s, diff)
		}
	}
}

func TestSmoothOnePassEqualsBoxBlur(t *testing.T) {
	if diff := cmp.Diff(BoxBlur(spike()), Smooth(spike(), 1)); diff != "" {
		t.Errorf("Smooth(1) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(BoxBlur(BoxBlur(spike())), Smooth(spike(), 2)); diff != "" {
		t.Errorf("Smooth(2) mismatch (-want +got):\n%s", diff)
	}
}

func TestSmoothFractional(t *testing.T) {
	g := spike()
	got := Smooth(g, 1.5)
	// center: 0.5*9 + 0.5*1, corner: 0.5*0 + 0.5*2.25
	if diff := cmp.Diff(5.0, got.At(1, 1), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("center mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(1.125, got.At(0, 0), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("corner mismatch (-want +got):\n%s", diff)
	}

	// Below one pass the blurred grid is the original itself.
	if diff := cmp.Diff(spike(), Smooth(g, 0.5)); diff != "" {
		t.Errorf("Smooth(0.5) mismatch (-want +got):\n%s", diff)
	}
}

func TestSmoothLeavesInputUntouched(t *testing.T) {
	g := spike()
	Smooth(g, 2.7)
	if diff := cmp.Diff(spike(), g); diff != "" {
		t.Errorf("Smooth mutated its input (-want +got):\n%s", diff)
	}
}

func TestBoxBlurSingleCell(t *testing.T) {
	g := Grid{Cols: 1, Rows: 1, Cells: []float64{42}}
	if got := BoxBlur(g).At(0, 0); got != 42 {
		t.Errorf("BoxBlur(single) = %v, want 42", got)
	}
}
