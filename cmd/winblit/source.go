package main

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/gogpu/winblit"
	"github.com/gogpu/winblit/blit"
	"github.com/gogpu/winblit/format"
	"github.com/gogpu/winblit/window"
)

// newSource returns a Fixed source when -rect or -color is set and a
// seeded Random source otherwise. A -color without -rect fills the whole
// window.
func newSource(cfg config, f format.PixelFormat) (winblit.Source, error) {
	if cfg.rect == "" && cfg.color == "" {
		seed := cfg.seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		winblit.Logger().Debug("random rectangles", "seed", seed)
		return winblit.NewRandom(seed), nil
	}

	src := winblit.Fixed{Full: cfg.rect == ""}
	if cfg.rect != "" {
		r, err := parseRect(cfg.rect)
		if err != nil {
			return nil, err
		}
		src.Rect = r
	}

	cs := cfg.color
	if cs == "" {
		cs = "#ff0000"
	}
	c, err := parseColor(cs, f)
	if err != nil {
		return nil, err
	}
	src.Color = c
	return src, nil
}

// parseRect parses "top,left,bottom,right".
func parseRect(s string) (window.Rect, error) {
	v, err := parseInts(s, 4)
	if err != nil {
		return window.Rect{}, fmt.Errorf("rect %q: %w", s, err)
	}
	return window.Rect{Top: v[0], Left: v[1], Bottom: v[2], Right: v[3]}, nil
}

// parseColor accepts #rrggbb or #rrggbbaa, packed for f, or raw
// comma-separated bytes written verbatim.
func parseColor(s string, f format.PixelFormat) (blit.Color, error) {
	if hexs, ok := strings.CutPrefix(s, "#"); ok {
		b, err := hex.DecodeString(hexs)
		if err != nil || (len(b) != 3 && len(b) != 4) {
			return nil, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
		}
		c := color.RGBA{b[0], b[1], b[2], 0xFF}
		if len(b) == 4 {
			c.A = b[3]
		}
		px, err := format.Encode(f, c)
		if err != nil {
			return nil, err
		}
		return px, nil
	}

	bpp, err := format.BytesPerPixel(f)
	if err != nil {
		return nil, err
	}
	v, err := parseInts(s, bpp)
	if err != nil {
		return nil, fmt.Errorf("color %q: %w", s, err)
	}
	c := make(blit.Color, bpp)
	for i, n := range v {
		if n < 0 || n > 255 {
			return nil, fmt.Errorf("color %q: byte %d out of range", s, n)
		}
		c[i] = byte(n)
	}
	return c, nil
}

func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma-separated values, got %d", n, len(parts))
	}
	v := make([]int, n)
	for i, p := range parts {
		x, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		v[i] = x
	}
	return v, nil
}
