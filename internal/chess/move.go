package chess

import (
	"fmt"
	"strings"
)

// Move is a source/destination pair plus the promotion choice, if any.
type Move struct {
	From    Coord
	To      Coord
	Promote Piece
}

// String returns the move in coordinate form, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promote != NoPiece {
		s += strings.ToLower(string(m.Promote.Letter()))
	}
	return s
}

// ParseMove parses coordinate notation ("e2e4", "e2-e4", "e7e8q").
func ParseMove(s string) (Move, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "-", "")
	if len(s) != 4 && len(s) != 5 {
		return Move{}, &MoveSyntaxError{Text: s}
	}
	from, err := ParseCoord(s[0:2])
	if err != nil {
		return Move{}, &MoveSyntaxError{Text: s}
	}
	to, err := ParseCoord(s[2:4])
	if err != nil {
		return Move{}, &MoveSyntaxError{Text: s}
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		m.Promote = PieceFromLetter(s[4])
		if !m.Promote.IsPromotionChoice() {
			return Move{}, &MoveSyntaxError{Text: s}
		}
	}
	return m, nil
}

// MoveSyntaxError reports text that is not a coordinate move.
type MoveSyntaxError struct {
	Text string
}

func (e *MoveSyntaxError) Error() string {
	return fmt.Sprintf("invalid move text %q", e.Text)
}
