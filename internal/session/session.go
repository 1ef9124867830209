// Package session ties the formula automaton, the evaluator and the
// history store into a single-writer editing session.
//
// One keystroke is fully processed (dispatch, mutate, re-evaluate,
// commit) before the next is accepted. The session is the mutual
// exclusion boundary required by any future multi-threaded host: all
// state lives here and is touched only through Press.
package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/tally/internal/formula"
	"github.com/roach88/tally/internal/history"
	"github.com/roach88/tally/internal/token"
)

// Session is one live calculator. It implements rpn.Env via
// LastAnswer.
type Session struct {
	formula *formula.Formula
	store   *history.Store
	last    float64
	logger  *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger routes keystroke traces to the given logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// New creates a session over the given history store. The most recent
// stored answer seeds the Ans symbol.
func New(ctx context.Context, store *history.Store, opts ...Option) (*Session, error) {
	last, err := store.LastAnswer(ctx)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	s := &Session{
		formula: formula.New(),
		store:   store,
		last:    last,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Formula returns the live formula.
func (s *Session) Formula() *formula.Formula { return s.formula }

// LastAnswer implements rpn.Env: the most recent committed answer, or
// 0 when history is empty.
func (s *Session) LastAnswer() float64 { return s.last }

// Preview returns the live-preview value for the current state.
func (s *Session) Preview() float64 {
	return s.formula.Preview(s)
}

// Display returns the plain text rendering of the formula.
func (s *Session) Display() string {
	return s.formula.String()
}

// AllClear empties the formula. History is untouched.
func (s *Session) AllClear() {
	s.formula.Clear()
}

// Press processes one keystroke. It reports whether the keystroke was
// accepted; a rejected keystroke leaves every piece of state exactly
// as it was. The error is non-nil only for unknown keys and history
// storage failures.
//
// Accepting the equals key commits the completed formula: a deep
// snapshot and the final answer are pushed to history, and the answer
// becomes the value of Ans.
func (s *Session) Press(ctx context.Context, key rune) (bool, error) {
	accepted, err := s.press(ctx, key)
	if err != nil {
		return accepted, err
	}
	s.logger.Debug("keystroke",
		"key", string(key),
		"accepted", accepted,
		"formula", s.formula.String(),
	)
	return accepted, nil
}

func (s *Session) press(ctx context.Context, key rune) (bool, error) {
	switch {
	case key >= '0' && key <= '9', key == '.':
		return s.formula.PressDigit(byte(key)), nil
	}

	switch key {
	case '+':
		return s.formula.PressBinary(token.OpAdd), nil
	case '-':
		return s.formula.PressBinary(token.OpSub), nil
	case '*', '×':
		return s.formula.PressBinary(token.OpMul), nil
	case '/', '÷':
		return s.formula.PressBinary(token.OpDiv), nil
	case '^':
		return s.formula.PressBinary(token.OpPow), nil
	case 'E':
		return s.formula.PressBinary(token.OpExp), nil
	case 'r':
		return s.formula.PressUnary(token.OpInv), nil
	case 's':
		return s.formula.PressUnary(token.OpSqrt), nil
	case 'n':
		return s.formula.PressUnary(token.OpNeg), nil
	case 'a':
		return s.formula.PressSymbol(token.SymAns), nil
	case '(':
		return s.formula.PressOpen(), nil
	case ')':
		return s.formula.PressClose(), nil
	case '<':
		return s.formula.Backspace(), nil
	case 'C':
		s.formula.Clear()
		return true, nil
	case '=':
		return s.pressEquals(ctx)
	default:
		return false, fmt.Errorf("unknown key %q", key)
	}
}

func (s *Session) pressEquals(ctx context.Context) (bool, error) {
	if !s.formula.PressEquals() {
		return false, nil
	}

	answer := s.formula.Preview(s)
	id, err := s.store.Push(ctx, s.formula.Snapshot(), answer)
	if err != nil {
		return true, fmt.Errorf("commit calculation: %w", err)
	}
	s.last = answer

	s.logger.Debug("committed calculation",
		"id", id,
		"formula", s.formula.String(),
		"answer", answer,
	)
	return true, nil
}

// PressSequence processes a string of keystrokes in order. Spaces are
// skipped; rejected keystrokes are ignored, matching the behavior of
// a user mashing an inapplicable key. Stops at the first storage
// failure or unknown key.
func (s *Session) PressSequence(ctx context.Context, keys string) error {
	for _, key := range keys {
		if key == ' ' {
			continue
		}
		if _, err := s.Press(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
