package winblit

import (
	"slices"
	"testing"

	"github.com/gogpu/winblit/blit"
	"github.com/gogpu/winblit/format"
	"github.com/gogpu/winblit/window"
)

func TestRandomRanges(t *testing.T) {
	src := NewRandom(42)
	sizes := [][2]int{{1, 1}, {2, 1}, {1, 3}, {720, 1600}, {33, 17}}

	for _, sz := range sizes {
		w, h := sz[0], sz[1]
		for range 200 {
			r, c := src.Next(w, h, format.RGB565, 2)
			if len(c) != 2 {
				t.Fatalf("color length %d, want 2", len(c))
			}
			if err := blit.Validate(r, w, h); err != nil {
				t.Fatalf("%dx%d: %v", w, h, err)
			}
			if r.Top >= max(h/2, 1) || r.Left >= max(w/2, 1) {
				t.Fatalf("%dx%d: origin %v past the center", w, h, r)
			}
			if r.Bottom < max(h/2, 1) || r.Right < max(w/2, 1) {
				t.Fatalf("%dx%d: %v ends before the center", w, h, r)
			}
			if r.Bottom > max(h-1, 1) || r.Right > max(w-1, 1) {
				t.Fatalf("%dx%d: %v reaches the last row or column", w, h, r)
			}
		}
	}
}

func TestRandomDeterministic(t *testing.T) {
	a, b := NewRandom(9), NewRandom(9)
	for range 10 {
		ra, ca := a.Next(100, 50, format.RGBA8888, 4)
		rb, cb := b.Next(100, 50, format.RGBA8888, 4)
		if ra != rb || !slices.Equal(ca, cb) {
			t.Fatalf("same seed diverged: %v %v vs %v %v", ra, ca, rb, cb)
		}
	}
}

func TestRandomEmptyWindow(t *testing.T) {
	r, _ := NewRandom(1).Next(0, 0, format.S8, 1)
	if !r.Empty() {
		t.Errorf("rect for 0x0 window = %v, want empty", r)
	}
}

func TestRandomBottomReachesCenter(t *testing.T) {
	src := NewRandom(7)
	var atCenter bool
	for range 500 {
		r, _ := src.Next(4, 4, format.S8, 1)
		if r.Bottom == 2 {
			atCenter = true
			break
		}
	}
	if !atCenter {
		t.Error("Bottom never equaled h/2 in 500 draws on a 4x4 window")
	}
}

func TestFixed(t *testing.T) {
	c := blit.Color{1, 2, 3}
	r, got := Fixed{Full: true, Color: c}.Next(7, 5, format.RGB888, 3)
	if r != window.Full(7, 5) || !slices.Equal(got, c) {
		t.Errorf("full Fixed = %v %v", r, got)
	}
	if r, _ := (Fixed{Color: c}).Next(7, 5, format.RGB888, 3); !r.Empty() {
		t.Errorf("zero-rect Fixed = %v, want empty", r)
	}

	want := window.Rect{Top: 1, Left: 2, Bottom: 3, Right: 4}
	if r, _ := (Fixed{Rect: want, Color: c}).Next(7, 5, format.RGB888, 3); r != want {
		t.Errorf("Fixed rect = %v, want %v", r, want)
	}
}

func TestSourceFunc(t *testing.T) {
	var gotW, gotH, gotBpp int
	fn := SourceFunc(func(width, height int, _ format.PixelFormat, bpp int) (window.Rect, blit.Color) {
		gotW, gotH, gotBpp = width, height, bpp
		return window.Rect{}, nil
	})
	fn.Next(3, 4, format.RGB565, 2)
	if gotW != 3 || gotH != 4 || gotBpp != 2 {
		t.Errorf("SourceFunc got %d %d %d", gotW, gotH, gotBpp)
	}
}
