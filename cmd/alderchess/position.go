package main

import (
	"strings"

	"github.com/lgbarn/alderchess-go/internal/chess"
)

// formatGrid lists the squares set in g.
func formatGrid(g chess.Grid) string {
	coords := g.Coords()
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
