// Package main provides the entry point for wipboard.
//
// wipboard is a terminal Kanban board with per-column WIP limits. Tasks move
// with the arrow keys or by dragging them with the mouse. This Bubble Tea
// implementation uses The Elm Architecture (TEA) for state management.
//
// Usage:
//
//	wipboard [--board name|path] [--config file] [--no-mouse] [--read-only]
//	wipboard show | validate | boards
package main

import "github.com/riordanpawley/wipboard/internal/cli"

func main() {
	cli.Execute()
}
