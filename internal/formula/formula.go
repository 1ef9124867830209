// Package formula owns the ordered token sequence of one in-progress
// calculation and routes every editing keystroke through the token
// append contract.
//
// All mutation flows through one pattern: ask the last token (or a
// per-keystroke default when the sequence is empty) for its directive,
// then apply the directive to the sequence. Press methods report
// whether the keystroke was accepted; a rejected keystroke never
// changes state.
package formula

import (
	"fmt"

	"github.com/roach88/tally/internal/rpn"
	"github.com/roach88/tally/internal/token"
)

// Formula is the editing automaton. The zero value is an empty
// formula ready for use. Not safe for concurrent use; the host
// processes one user action at a time.
type Formula struct {
	toks []token.Token
}

// New creates an empty formula.
func New() *Formula {
	return &Formula{}
}

// FromTokens creates a formula over an existing sequence, for example
// one decoded from history. The formula takes ownership of the slice.
func FromTokens(toks []token.Token) *Formula {
	return &Formula{toks: toks}
}

// Tokens returns the live sequence. Callers must not mutate it; use
// Snapshot for an isolated copy.
func (f *Formula) Tokens() []token.Token { return f.toks }

// Snapshot returns an independent deep copy of the sequence. Later
// edits to the formula never alias the snapshot.
func (f *Formula) Snapshot() []token.Token { return token.CloneSeq(f.toks) }

// Len returns the number of top-level tokens.
func (f *Formula) Len() int { return len(f.toks) }

// Clear empties the formula (all-clear).
func (f *Formula) Clear() { f.toks = nil }

// IsComplete reports whether the formula ends with an equals marker.
func (f *Formula) IsComplete() bool {
	return len(f.toks) > 0 && f.isEq(len(f.toks)-1)
}

func (f *Formula) isEq(i int) bool {
	_, ok := f.toks[i].(*token.Eq)
	return ok
}

func (f *Formula) last() token.Token {
	return f.toks[len(f.toks)-1]
}

// apply mutates the sequence per the directive. create builds the new
// token for the directives that need one. Any successful edit against
// a complete formula first clears the whole sequence: completing a
// calculation and then continuing always starts a new formula.
func (f *Formula) apply(d token.Directive, create func() token.Token) bool {
	if d == token.Failed {
		return false
	}
	if f.IsComplete() {
		// Only directives issued by the equals marker itself reach
		// this point, and it never asks for in-place mutation.
		f.toks = nil
	}
	switch d {
	case token.Replaced:
		// Token already mutated itself.
	case token.CreateAfter:
		f.toks = append(f.toks, create())
	case token.InsertAnsAndCreate:
		f.toks = append(f.toks, token.NewSymbol(token.SymAns), create())
	case token.DeleteAndCreate:
		f.toks[len(f.toks)-1] = create()
	case token.CreateBefore:
		last := f.last()
		f.toks = append(f.toks[:len(f.toks)-1], create(), last)
	case token.Backspace:
		f.toks = f.toks[:len(f.toks)-1]
	default:
		panic(fmt.Sprintf("formula: unknown directive %v", d))
	}
	return true
}

// PressDigit appends a digit or decimal point keystroke.
func (f *Formula) PressDigit(d byte) bool {
	dir := token.CreateAfter
	if len(f.toks) > 0 {
		dir = f.last().AppendDigit(d)
	}
	return f.apply(dir, func() token.Token { return token.NewNumber(d) })
}

// PressBinary appends a binary operator keystroke. On an empty
// formula the operator implicitly operates on the last answer.
func (f *Formula) PressBinary(op token.BinaryOp) bool {
	dir := token.InsertAnsAndCreate
	if len(f.toks) > 0 {
		dir = f.last().AppendBinary(op)
	}
	return f.apply(dir, func() token.Token { return token.NewBinary(op) })
}

// PressUnary appends a unary operator keystroke. On an empty formula
// the operator implicitly operates on the last answer.
func (f *Formula) PressUnary(op token.UnaryOp) bool {
	dir := token.InsertAnsAndCreate
	if len(f.toks) > 0 {
		dir = f.last().AppendUnary(op)
	}
	return f.apply(dir, func() token.Token { return token.NewUnary(op) })
}

// PressSymbol appends a named-value keystroke.
func (f *Formula) PressSymbol(sym token.SymbolKind) bool {
	dir := token.CreateAfter
	if len(f.toks) > 0 {
		dir = f.last().AppendSymbol(sym)
	}
	return f.apply(dir, func() token.Token { return token.NewSymbol(sym) })
}

// PressOpen appends an open-parenthesis keystroke.
func (f *Formula) PressOpen() bool {
	dir := token.CreateAfter
	if len(f.toks) > 0 {
		dir = f.last().AppendOpen()
	}
	return f.apply(dir, func() token.Token { return token.NewOpen() })
}

// PressClose closes the nearest unmatched open parenthesis: every
// token after the marker is spliced into a new Group replacing the
// marker and the range. Fails when there is nothing to close against.
func (f *Formula) PressClose() bool {
	if len(f.toks) == 0 {
		return false
	}
	switch dir := f.last().AppendClose(); dir {
	case token.Failed:
		return false
	case token.CreateAfter:
		for i := len(f.toks) - 1; i >= 0; i-- {
			if _, ok := f.toks[i].(*token.Open); ok {
				inner := make([]token.Token, len(f.toks)-i-1)
				copy(inner, f.toks[i+1:])
				f.toks = append(f.toks[:i], token.NewGroup(inner))
				return true
			}
		}
		return false
	default:
		panic(fmt.Sprintf("formula: close keystroke produced directive %v", dir))
	}
}

// PressEquals finalizes the formula: every open parenthesis group is
// closed, then the equals marker is appended. Fails silently when
// there is nothing to finalize (empty, already complete, or ending in
// a token no close may follow).
func (f *Formula) PressEquals() bool {
	if len(f.toks) == 0 {
		return false
	}
	if f.last().AppendClose() != token.CreateAfter {
		return false
	}
	for f.PressClose() {
	}
	f.toks = append(f.toks, token.NewEq())
	return true
}

// Backspace undoes the most recent keystroke's worth of structure:
// a multi-character Number loses its final character, a Group
// re-expands into its open marker plus contents (closing is always
// reversible), and any other token is deleted outright.
func (f *Formula) Backspace() bool {
	if len(f.toks) == 0 {
		return false
	}
	last := f.last()
	f.toks = f.toks[:len(f.toks)-1]
	switch t := last.(type) {
	case *token.Number:
		if t.Shorten() {
			f.toks = append(f.toks, t)
		}
	case *token.Group:
		f.toks = append(f.toks, token.NewOpen())
		f.toks = append(f.toks, t.Tokens()...)
	}
	return true
}

// Preview evaluates the live-preview window: the number shown to the
// user before the formula is finalized, or the final answer once it
// is. An empty window previews as zero.
func (f *Formula) Preview(env rpn.Env) float64 {
	w := f.Window()
	if len(w) == 0 {
		return 0
	}
	return rpn.Eval(w, env)
}

// Fragments returns the display fragments of the whole sequence in
// order. This is the only path by which token content reaches the
// presentation layer.
func (f *Formula) Fragments() []token.Fragment {
	var frags []token.Fragment
	for _, t := range f.toks {
		frags = append(frags, t.Fragments()...)
	}
	return frags
}

// String renders the sequence as plain text.
func (f *Formula) String() string {
	return token.Render(f.toks)
}
