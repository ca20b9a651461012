package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/alderchess-go/internal/chess"
	"github.com/lgbarn/alderchess-go/internal/engine"
)

// Status names the state of the side to move: "promotion pending",
// "checkmate", "stalemate", "check" or "in progress".
func Status(b *engine.BoardState) string {
	turn := b.Turn()
	switch {
	case b.PromotionPending():
		return "promotion pending"
	case b.IsCheckmate(turn):
		return "checkmate"
	case b.IsStalemate(turn):
		return "stalemate"
	case b.IsInCheck(turn):
		return "check"
	}
	return "in progress"
}

// FormatMoves joins moves in coordinate notation.
func FormatMoves(moves []chess.Move) string {
	return strings.Join(moveStrings(moves), " ")
}

func moveStrings(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}

// writeText writes the board diagram followed by a summary of the position.
func writeText(w io.Writer, b *engine.BoardState) error {
	var sb strings.Builder
	sb.WriteString(b.String())
	fmt.Fprintf(&sb, "FEN:    %s\n", b.FEN())
	fmt.Fprintf(&sb, "Turn:   %s\n", b.Turn())
	fmt.Fprintf(&sb, "Status: %s\n", Status(b))
	if c, ok := b.PendingPromotion(); ok {
		fmt.Fprintf(&sb, "Promote: %s\n", c)
	}
	fmt.Fprintf(&sb, "Moves:  %d\n", len(b.LegalMoves(b.Turn())))
	_, err := io.WriteString(w, sb.String())
	return err
}
