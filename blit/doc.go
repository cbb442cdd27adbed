// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package blit writes a solid color into a rectangle of a locked window
// buffer.
//
// Addressing is row-major with the buffer's stride, not its width:
//
//	offset(x, y) = (y*stride + x) * bpp
//
// Every write goes through a slice whose length is Stride*Height*bpp, and
// each row segment is checked against it before it is written, so a bad
// rectangle fails with an error instead of touching memory outside the
// buffer. Callers clamp or validate rectangles against the window geometry
// first (Clamp, Validate).
package blit
