// Package errors provides sentinel errors and error types for the chess engine
// and its collaborators. It defines common error conditions and structured
// error types that preserve context while allowing error inspection with
// errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrNotSelectable indicates a square that the player cannot pick up.
	ErrNotSelectable = errors.New("square not selectable")

	// ErrNoPromotionPending indicates a promotion choice with no pawn waiting.
	ErrNoPromotionPending = errors.New("no promotion pending")

	// ErrPromotionPending indicates an operation blocked by an unresolved promotion.
	ErrPromotionPending = errors.New("promotion pending")

	// ErrInvalidPromotion indicates a piece a pawn may not promote to.
	ErrInvalidPromotion = errors.New("invalid promotion piece")

	// ErrGameOver indicates a move attempted after checkmate or stalemate.
	ErrGameOver = errors.New("game over")

	// ErrPersistence is the parent of every save/load failure.
	ErrPersistence = errors.New("persistence failure")

	// ErrBadHeader indicates a save blob without the expected magic.
	ErrBadHeader = fmt.Errorf("bad header: %w", ErrPersistence)

	// ErrTruncated indicates a save blob shorter than the fixed layout.
	ErrTruncated = fmt.Errorf("truncated save: %w", ErrPersistence)

	// ErrCorruptSquare indicates a turn or square byte outside its range.
	ErrCorruptSquare = fmt.Errorf("corrupt save data: %w", ErrPersistence)

	// ErrSaveRefused indicates a save attempted in a state that must not be persisted.
	ErrSaveRefused = fmt.Errorf("save refused: %w", ErrPersistence)

	// ErrSlotNotFound indicates a load from a slot that was never written.
	ErrSlotNotFound = fmt.Errorf("save slot not found: %w", ErrPersistence)

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrSessionNotFound indicates an unknown session ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidSuite indicates a malformed perft suite line.
	ErrInvalidSuite = errors.New("invalid perft suite")
)

// MoveError wraps errors with move context, including the squares involved
// and the player attempting the move. It implements the error interface
// and supports unwrapping via errors.Is() and errors.As().
type MoveError struct {
	Err    error  // The underlying error
	From   string // Source square, algebraic (if applicable)
	To     string // Destination square, algebraic (if applicable)
	Player string // The player making the move (if known)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Player != "" {
		parts = append(parts, e.Player)
	}

	switch {
	case e.From != "" && e.To != "":
		parts = append(parts, fmt.Sprintf("%s-%s", e.From, e.To))
	case e.From != "":
		parts = append(parts, e.From)
	case e.To != "":
		parts = append(parts, e.To)
	}

	context := strings.Join(parts, " ")
	if context == "" {
		if e.Err != nil {
			return e.Err.Error()
		}
		return "move error"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing error with position context.
// It's used for FEN and save-slot name parsing.
type ParseError struct {
	Err      error  // The underlying error
	Input    string // The text being parsed
	Field    string // Which part of the input failed
	Expected string // What was expected (for syntax errors)
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapPersistence marks err as a persistence failure so that
// errors.Is(err, ErrPersistence) holds, and adds context.
func WrapPersistence(err error, context string) error {
	if err == nil {
		return nil
	}
	return Wrap(errors.Join(ErrPersistence, err), context)
}
