package token

// Group is a closed parenthesized sub-expression. It is only ever
// created by closing a matching Open marker, so its contents are
// always a previously valid token sequence.
type Group struct {
	toks []Token
}

// NewGroup wraps a token sequence. The Group takes ownership of the
// slice.
func NewGroup(toks []Token) *Group {
	return &Group{toks: toks}
}

func (*Group) token() {}

// Tokens returns the contained sequence. Backspace re-expands a Group
// by splicing this sequence back into the formula.
func (g *Group) Tokens() []Token { return g.toks }

// AppendDigit fails: a closed group is a complete value that a digit
// cannot extend.
func (g *Group) AppendDigit(byte) Directive { return Failed }

func (g *Group) AppendBinary(BinaryOp) Directive   { return CreateAfter }
func (g *Group) AppendUnary(UnaryOp) Directive     { return CreateAfter }
func (g *Group) AppendSymbol(SymbolKind) Directive { return Failed }
func (g *Group) AppendOpen() Directive             { return Failed }
func (g *Group) AppendClose() Directive            { return CreateAfter }

func (g *Group) Prec() Precedence { return PrecValue }

func (g *Group) Clone() Token {
	return &Group{toks: CloneSeq(g.toks)}
}

func (g *Group) Fragments() []Fragment {
	frags := []Fragment{{Class: ClassParen, Text: "("}}
	for _, t := range g.toks {
		frags = append(frags, t.Fragments()...)
	}
	return append(frags, Fragment{Class: ClassParen, Text: ")"})
}
