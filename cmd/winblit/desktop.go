//go:build !nodesktop

package main

// Built without the nodesktop tag, the desktop backend is selectable and
// preferred when a display is available.
import _ "github.com/gogpu/winblit/backend/desktop"
