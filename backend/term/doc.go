// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package term provides a window backend that draws posted frames into a
// terminal with tcell.
//
// Each terminal cell shows two pixels stacked vertically as an upper half
// block: the foreground color is the top pixel and the background color is
// the bottom one. Frames larger or smaller than the cell grid are scaled to
// fit with x/image/draw.
//
// Importing the package registers the "term" backend. Run handles terminal
// events and returns on Escape, q or Ctrl-C.
package term
