package token

import (
	"fmt"
	"strconv"
	"strings"
)

// Number is a literal operand under construction: a sign flag and a
// digit-string holding at most one decimal point.
type Number struct {
	neg    bool
	digits string
}

// NewNumber creates a Number seeded with the first keystroke. A
// leading decimal point seeds "0." so every reachable digit-string
// parses as a float.
func NewNumber(d byte) *Number {
	if d == '.' {
		return &Number{digits: "0."}
	}
	return &Number{digits: string(d)}
}

// Zero returns the Number representing 0, the preview value of an
// empty window.
func Zero() *Number {
	return &Number{digits: "0"}
}

// RestoreNumber rebuilds a Number from its serialized parts. The
// digit-string must parse as a float; decoded history entries are not
// trusted to uphold the construction invariant.
func RestoreNumber(neg bool, digits string) (*Number, error) {
	if _, err := strconv.ParseFloat(digits, 64); err != nil {
		return nil, fmt.Errorf("invalid digit-string %q", digits)
	}
	if strings.Count(digits, ".") > 1 {
		return nil, fmt.Errorf("invalid digit-string %q", digits)
	}
	return &Number{neg: neg, digits: digits}, nil
}

// Neg reports the sign flag.
func (n *Number) Neg() bool { return n.neg }

// Digits returns the digit-string.
func (n *Number) Digits() string { return n.digits }

func (*Number) token() {}

// Value parses the digit-string and applies the sign.
func (n *Number) Value() float64 {
	v, err := strconv.ParseFloat(n.digits, 64)
	if err != nil {
		// Unreachable: construction and AppendDigit only ever build
		// parseable digit-strings.
		panic("token: unparseable number " + strconv.Quote(n.digits))
	}
	if n.neg {
		return -v
	}
	return v
}

// AppendDigit grows the digit-string in place. A second decimal point
// is rejected; a further digit after a lone "0" replaces it instead of
// extending it.
func (n *Number) AppendDigit(d byte) Directive {
	if d == '.' {
		if strings.ContainsRune(n.digits, '.') {
			return Failed
		}
		n.digits += "."
		return Replaced
	}
	if n.digits == "0" {
		n.digits = string(d)
	} else {
		n.digits += string(d)
	}
	return Replaced
}

func (n *Number) AppendBinary(BinaryOp) Directive { return CreateAfter }

// AppendUnary toggles the sign in place for negate; every other unary
// operator starts a new postfix operator token after the number.
func (n *Number) AppendUnary(op UnaryOp) Directive {
	if op == OpNeg {
		n.neg = !n.neg
		return Replaced
	}
	return CreateAfter
}

func (n *Number) AppendSymbol(SymbolKind) Directive { return CreateAfter }
func (n *Number) AppendOpen() Directive             { return CreateAfter }
func (n *Number) AppendClose() Directive            { return CreateAfter }

func (n *Number) Prec() Precedence { return PrecValue }

func (n *Number) Clone() Token {
	c := *n
	return &c
}

func (n *Number) Fragments() []Fragment {
	text := n.digits
	if n.neg {
		text = "-" + text
	}
	return []Fragment{{Class: ClassNumber, Text: text}}
}

// Shorten removes the final character of the digit-string. It reports
// false when removing the character empties the token entirely, in
// which case the caller drops the token. The sign flag is structure,
// not a digit: it never keeps an emptied token alive.
func (n *Number) Shorten() bool {
	if len(n.digits) <= 1 {
		return false
	}
	n.digits = n.digits[:len(n.digits)-1]
	return true
}
