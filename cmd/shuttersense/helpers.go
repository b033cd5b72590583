package main

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/fabrice-guiot/shuttersense-sub002/internal/report"
)

// newRenderer picks table styling based on whether stdout is a terminal.
func newRenderer() report.Renderer {
	fd := os.Stdout.Fd()
	interactive := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return report.Renderer{Plain: !interactive}
}
