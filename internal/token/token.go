// Package token defines the closed set of formula elements and their
// per-keystroke append contract.
//
// Token is a sealed interface: exactly seven variants implement it
// (Number, Binary, Unary, Group, Symbol, Open, Eq). Every editing
// keystroke is routed to the last token of a formula, which answers
// with a Directive telling the owning automaton how to mutate the
// sequence. The token itself never touches the sequence.
package token

// Directive is the result of an append attempt against a token.
// It instructs the formula automaton how to mutate the token sequence.
type Directive int

const (
	// Replaced means the token mutated itself in place; the sequence
	// is unchanged.
	Replaced Directive = iota

	// Failed rejects the keystroke. No state changes anywhere.
	Failed

	// CreateAfter leaves this token untouched; the caller appends a
	// freshly created token after it.
	CreateAfter

	// InsertAnsAndCreate makes the caller insert a last-answer Symbol
	// token first, then append the new token after that.
	InsertAnsAndCreate

	// DeleteAndCreate makes the caller replace this token with the
	// new one.
	DeleteAndCreate

	// CreateBefore makes the caller insert the new token immediately
	// before this one.
	CreateBefore

	// Backspace makes the caller delete this token entirely; no new
	// token is appended.
	Backspace
)

// String returns the directive name for diagnostics.
func (d Directive) String() string {
	switch d {
	case Replaced:
		return "replaced"
	case Failed:
		return "failed"
	case CreateAfter:
		return "createAfter"
	case InsertAnsAndCreate:
		return "insertAnsAndCreate"
	case DeleteAndCreate:
		return "deleteAndCreate"
	case CreateBefore:
		return "createBefore"
	case Backspace:
		return "backspace"
	default:
		return "unknown"
	}
}

// Precedence is the binding strength of a token. The ordering governs
// both postfix conversion and how far back the live-preview window
// extends.
type Precedence int

// Ascending order. PrecValue is the "symbol class" shared by numbers,
// groups and symbols.
const (
	PrecEq Precedence = iota
	PrecOpen
	PrecAdd
	PrecMul
	PrecPow
	PrecUnary
	PrecValue
)

// Class is the semantic class of a render fragment. The presentation
// layer maps classes to markup; the core never performs layout.
type Class string

const (
	ClassNumber Class = "number"
	ClassOp     Class = "operator"
	ClassParen  Class = "parenthesis"
	ClassSymbol Class = "symbol"
	ClassEq     Class = "eq"
)

// Fragment is one displayable piece of a token.
type Fragment struct {
	Class Class
	Text  string
}

// Token is a sealed interface over the seven formula element kinds.
// Only types in this package implement it.
type Token interface {
	token() // sealed

	// The append contract: each method reports how the owning
	// automaton must react to the given keystroke arriving while this
	// token is last in the sequence.
	AppendDigit(d byte) Directive
	AppendBinary(op BinaryOp) Directive
	AppendUnary(op UnaryOp) Directive
	AppendSymbol(sym SymbolKind) Directive
	AppendOpen() Directive
	AppendClose() Directive

	// Prec returns the token's precedence class.
	Prec() Precedence

	// Clone returns an independent deep copy. Stored history must
	// never alias live formula state.
	Clone() Token

	// Fragments returns the token's display fragments in order.
	// Groups recursively wrap their contents in parenthesis fragments.
	Fragments() []Fragment
}

// CloneSeq deep-copies a token sequence.
func CloneSeq(toks []Token) []Token {
	if toks == nil {
		return nil
	}
	out := make([]Token, len(toks))
	for i, t := range toks {
		out[i] = t.Clone()
	}
	return out
}

// Render concatenates the fragment text of a sequence. Used for plain
// text display and diagnostics.
func Render(toks []Token) string {
	var s string
	for _, t := range toks {
		for _, f := range t.Fragments() {
			s += f.Text
		}
	}
	return s
}

// IsValue reports whether a token belongs to the value class
// (Number, Group, Symbol).
func IsValue(t Token) bool {
	return t.Prec() == PrecValue
}
