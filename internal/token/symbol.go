package token

import "fmt"

// SymbolKind identifies a named value. The set currently holds only
// the last-answer symbol.
type SymbolKind int

const (
	// SymAns evaluates to the most recent history answer, or 0 when
	// history is empty.
	SymAns SymbolKind = iota
)

// String returns the display text.
func (k SymbolKind) String() string {
	switch k {
	case SymAns:
		return "Ans"
	default:
		return "?"
	}
}

// Code returns the stable serialization code.
func (k SymbolKind) Code() string {
	switch k {
	case SymAns:
		return "ans"
	default:
		return "?"
	}
}

// ParseSymbolKind resolves a serialization code.
func ParseSymbolKind(code string) (SymbolKind, error) {
	if code == SymAns.Code() {
		return SymAns, nil
	}
	return 0, fmt.Errorf("unknown symbol code %q", code)
}

// Symbol is a named value token.
type Symbol struct {
	kind SymbolKind
}

// NewSymbol creates a symbol token.
func NewSymbol(kind SymbolKind) *Symbol {
	return &Symbol{kind: kind}
}

func (*Symbol) token() {}

// Kind returns the symbol kind.
func (s *Symbol) Kind() SymbolKind { return s.kind }

// AppendDigit replaces the symbol: it is a complete value that a
// following digit cannot extend.
func (s *Symbol) AppendDigit(byte) Directive { return DeleteAndCreate }

func (s *Symbol) AppendBinary(BinaryOp) Directive { return CreateAfter }
func (s *Symbol) AppendUnary(UnaryOp) Directive   { return CreateAfter }

func (s *Symbol) AppendSymbol(SymbolKind) Directive { return DeleteAndCreate }

// AppendOpen inserts the Open marker before the symbol. This mirrors
// the historical behavior of "Ans(" exactly; no implicit
// multiplication operator is synthesized.
func (s *Symbol) AppendOpen() Directive { return CreateBefore }

func (s *Symbol) AppendClose() Directive { return CreateAfter }

func (s *Symbol) Prec() Precedence { return PrecValue }

func (s *Symbol) Clone() Token {
	c := *s
	return &c
}

func (s *Symbol) Fragments() []Fragment {
	return []Fragment{{Class: ClassSymbol, Text: s.kind.String()}}
}
