// Package rpn converts token sequences to postfix order by operator
// precedence and reduces them to a number.
//
// The input sequence must be free of Open and Eq markers; the formula
// automaton strips or resolves those before evaluation. Feeding a
// marker in here is a structural invariant violation and panics.
package rpn

import (
	"fmt"

	"github.com/roach88/tally/internal/token"
)

// Env supplies named values during reduction.
type Env interface {
	// LastAnswer returns the most recent committed answer, or 0 when
	// none exists.
	LastAnswer() float64
}

// AnswerFunc adapts a function to the Env interface.
type AnswerFunc func() float64

// LastAnswer implements Env.
func (f AnswerFunc) LastAnswer() float64 { return f() }

// NoAnswer is the Env of an empty history: every symbol evaluates
// to 0.
var NoAnswer Env = AnswerFunc(func() float64 { return 0 })

// Eval converts a sequence to postfix and reduces it.
func Eval(toks []token.Token, env Env) float64 {
	return Reduce(ToPostfix(toks), env)
}

// ToPostfix reorders a sequence into postfix (RPN) order. Value-class
// and unary tokens pass straight through; a binary operator first pops
// every stacked operator of higher or equal precedence, then stacks
// itself. The remaining stack is flushed in reverse after the scan.
func ToPostfix(toks []token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks))
	var ops []*token.Binary

	for _, t := range toks {
		switch t := t.(type) {
		case *token.Binary:
			for len(ops) > 0 && ops[len(ops)-1].Prec() >= t.Prec() {
				out = append(out, ops[len(ops)-1])
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, t)
		case *token.Open, *token.Eq:
			panic(fmt.Sprintf("rpn: marker token %T in evaluation input", t))
		default:
			// Number, Group, Symbol, Unary. Unary tokens already
			// follow their operand in edit order.
			out = append(out, t)
		}
	}

	for i := len(ops) - 1; i >= 0; i-- {
		out = append(out, ops[i])
	}
	return out
}

// Reduce evaluates a postfix sequence left to right. Value-class
// tokens push their number, unary tokens replace the stack top with
// f(top), binary tokens pop left and right (in push order) and push
// op(left, right). Groups recursively evaluate their own sequence.
//
// Leftover operands are legal: adjacent values such as "2(3)" carry no
// implicit multiplication, and the reduction returns the top of the
// stack. An empty input reduces to 0. Operator underflow panics; the
// automaton never produces a window with a dangling operator.
func Reduce(toks []token.Token, env Env) float64 {
	var stack []float64

	for _, t := range toks {
		switch t := t.(type) {
		case *token.Number:
			stack = append(stack, t.Value())
		case *token.Group:
			stack = append(stack, Eval(t.Tokens(), env))
		case *token.Symbol:
			stack = append(stack, env.LastAnswer())
		case *token.Unary:
			if len(stack) < 1 {
				panic("rpn: unary operator with empty stack")
			}
			stack[len(stack)-1] = t.Op().Apply(stack[len(stack)-1])
		case *token.Binary:
			if len(stack) < 2 {
				panic("rpn: binary operator with short stack")
			}
			right := stack[len(stack)-1]
			left := stack[len(stack)-2]
			stack = stack[:len(stack)-1]
			stack[len(stack)-1] = t.Op().Apply(left, right)
		default:
			panic(fmt.Sprintf("rpn: marker token %T in reduction input", t))
		}
	}

	if len(stack) == 0 {
		return 0
	}
	return stack[len(stack)-1]
}
