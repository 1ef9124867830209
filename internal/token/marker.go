package token

// Open marks a not-yet-closed parenthesis. Closing the parenthesis
// consumes the marker and replaces it and everything after it with a
// Group.
type Open struct{}

// NewOpen creates an open-parenthesis marker.
func NewOpen() *Open { return &Open{} }

func (*Open) token() {}

func (o *Open) AppendDigit(byte) Directive { return CreateAfter }

// AppendBinary fails: nothing may directly follow an open parenthesis
// except a value.
func (o *Open) AppendBinary(BinaryOp) Directive { return Failed }
func (o *Open) AppendUnary(UnaryOp) Directive   { return Failed }

func (o *Open) AppendSymbol(SymbolKind) Directive { return CreateAfter }
func (o *Open) AppendOpen() Directive             { return CreateAfter }

// AppendClose fails: empty parentheses are rejected.
func (o *Open) AppendClose() Directive { return Failed }

func (o *Open) Prec() Precedence { return PrecOpen }

func (o *Open) Clone() Token { return &Open{} }

func (o *Open) Fragments() []Fragment {
	return []Fragment{{Class: ClassParen, Text: "("}}
}

// Eq marks a completed formula. Once present it is always the last
// token in the sequence.
type Eq struct{}

// NewEq creates an equals marker.
func NewEq() *Eq { return &Eq{} }

func (*Eq) token() {}

func (e *Eq) AppendDigit(byte) Directive { return CreateAfter }

// AppendBinary continues arithmetic after "=": the automaton inserts
// the last-answer symbol as the left operand of the new operator.
func (e *Eq) AppendBinary(BinaryOp) Directive { return InsertAnsAndCreate }
func (e *Eq) AppendUnary(UnaryOp) Directive   { return InsertAnsAndCreate }

func (e *Eq) AppendSymbol(SymbolKind) Directive { return CreateAfter }
func (e *Eq) AppendOpen() Directive             { return CreateAfter }
func (e *Eq) AppendClose() Directive            { return Failed }

func (e *Eq) Prec() Precedence { return PrecEq }

func (e *Eq) Clone() Token { return &Eq{} }

func (e *Eq) Fragments() []Fragment {
	return []Fragment{{Class: ClassEq, Text: "="}}
}
