package token

import (
	"fmt"
	"math"
)

// BinaryOp identifies one of the six binary operators.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow
	// OpExp is the exponent-shift operator: left × 10^right.
	OpExp
)

// Prec returns the precedence class of the operator.
func (op BinaryOp) Prec() Precedence {
	switch op {
	case OpAdd, OpSub:
		return PrecAdd
	case OpMul, OpDiv:
		return PrecMul
	case OpPow, OpExp:
		return PrecPow
	default:
		panic(fmt.Sprintf("token: unknown binary operator %d", op))
	}
}

// Apply computes op(left, right) with float64 semantics.
func (op BinaryOp) Apply(left, right float64) float64 {
	switch op {
	case OpAdd:
		return left + right
	case OpSub:
		return left - right
	case OpMul:
		return left * right
	case OpDiv:
		return left / right
	case OpPow:
		return math.Pow(left, right)
	case OpExp:
		return left * math.Pow(10, right)
	default:
		panic(fmt.Sprintf("token: unknown binary operator %d", op))
	}
}

// String returns the display glyph.
func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "×"
	case OpDiv:
		return "÷"
	case OpPow:
		return "^"
	case OpExp:
		return "E"
	default:
		return "?"
	}
}

// Code returns the stable serialization code for the operator.
func (op BinaryOp) Code() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpPow:
		return "pow"
	case OpExp:
		return "exp"
	default:
		return "?"
	}
}

// ParseBinaryOp resolves a serialization code. Unknown codes are a
// decode error, never a panic: persisted history may hold entries
// written by a newer build.
func ParseBinaryOp(code string) (BinaryOp, error) {
	for op := OpAdd; op <= OpExp; op++ {
		if op.Code() == code {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown binary operator code %q", code)
}

// UnaryOp identifies one of the three unary operators.
type UnaryOp int

const (
	// OpInv is the reciprocal, 1/x.
	OpInv UnaryOp = iota
	OpSqrt
	OpNeg
)

// Apply computes op(x).
func (op UnaryOp) Apply(x float64) float64 {
	switch op {
	case OpInv:
		return 1 / x
	case OpSqrt:
		return math.Sqrt(x)
	case OpNeg:
		return -x
	default:
		panic(fmt.Sprintf("token: unknown unary operator %d", op))
	}
}

// String returns the display glyph.
func (op UnaryOp) String() string {
	switch op {
	case OpInv:
		return "⁻¹"
	case OpSqrt:
		return "√"
	case OpNeg:
		return "±"
	default:
		return "?"
	}
}

// Code returns the stable serialization code for the operator.
func (op UnaryOp) Code() string {
	switch op {
	case OpInv:
		return "inv"
	case OpSqrt:
		return "sqrt"
	case OpNeg:
		return "neg"
	default:
		return "?"
	}
}

// ParseUnaryOp resolves a serialization code.
func ParseUnaryOp(code string) (UnaryOp, error) {
	for op := OpInv; op <= OpNeg; op++ {
		if op.Code() == code {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown unary operator code %q", code)
}

// Binary is a binary operator token.
type Binary struct {
	op BinaryOp
}

// NewBinary creates a binary operator token.
func NewBinary(op BinaryOp) *Binary {
	return &Binary{op: op}
}

func (*Binary) token() {}

// Op returns the operator.
func (b *Binary) Op() BinaryOp { return b.op }

func (b *Binary) AppendDigit(byte) Directive { return CreateAfter }

// AppendBinary replaces the operator in place: when operators are
// typed consecutively, the last one wins.
func (b *Binary) AppendBinary(op BinaryOp) Directive {
	b.op = op
	return Replaced
}

// AppendUnary fails: no unary operator directly after a binary one.
func (b *Binary) AppendUnary(UnaryOp) Directive { return Failed }

func (b *Binary) AppendSymbol(SymbolKind) Directive { return CreateAfter }
func (b *Binary) AppendOpen() Directive             { return CreateAfter }
func (b *Binary) AppendClose() Directive            { return Failed }

func (b *Binary) Prec() Precedence { return b.op.Prec() }

func (b *Binary) Clone() Token {
	c := *b
	return &c
}

func (b *Binary) Fragments() []Fragment {
	return []Fragment{{Class: ClassOp, Text: b.op.String()}}
}

// Unary is a unary operator token. It follows its operand in the
// sequence: pressing √ after 9 yields [9 √], evaluated postfix.
type Unary struct {
	op UnaryOp
}

// NewUnary creates a unary operator token.
func NewUnary(op UnaryOp) *Unary {
	return &Unary{op: op}
}

func (*Unary) token() {}

// Op returns the operator.
func (u *Unary) Op() UnaryOp { return u.op }

// AppendDigit fails: a unary operator is not itself an operand.
func (u *Unary) AppendDigit(byte) Directive { return Failed }

func (u *Unary) AppendBinary(BinaryOp) Directive { return CreateAfter }

// AppendUnary cancels a repeated negate or reciprocal (double-negate
// toggles off, deleting this token). Square root does not cancel.
func (u *Unary) AppendUnary(op UnaryOp) Directive {
	if op == u.op && op != OpSqrt {
		return Backspace
	}
	return CreateAfter
}

func (u *Unary) AppendSymbol(SymbolKind) Directive { return Failed }
func (u *Unary) AppendOpen() Directive             { return Failed }
func (u *Unary) AppendClose() Directive            { return CreateAfter }

func (u *Unary) Prec() Precedence { return PrecUnary }

func (u *Unary) Clone() Token {
	c := *u
	return &c
}

func (u *Unary) Fragments() []Fragment {
	return []Fragment{{Class: ClassOp, Text: u.op.String()}}
}
