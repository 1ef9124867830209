package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tally/internal/rpn"
	"github.com/roach88/tally/internal/token"
)

// press applies a compact keystroke string, failing the test if a
// keystroke the scenario relies on is rejected. Lowercase keys follow
// the session key map; '!' asserts the next keystroke is rejected.
func press(t *testing.T, f *Formula, keys string) {
	t.Helper()
	expectReject := false
	for _, k := range keys {
		if k == '!' {
			expectReject = true
			continue
		}
		ok := pressOne(f, k)
		if expectReject {
			require.False(t, ok, "keystroke %q unexpectedly accepted", string(k))
			expectReject = false
		} else {
			require.True(t, ok, "keystroke %q rejected", string(k))
		}
	}
}

func pressOne(f *Formula, k rune) bool {
	switch {
	case k >= '0' && k <= '9', k == '.':
		return f.PressDigit(byte(k))
	}
	switch k {
	case '+':
		return f.PressBinary(token.OpAdd)
	case '-':
		return f.PressBinary(token.OpSub)
	case '*':
		return f.PressBinary(token.OpMul)
	case '/':
		return f.PressBinary(token.OpDiv)
	case '^':
		return f.PressBinary(token.OpPow)
	case 'E':
		return f.PressBinary(token.OpExp)
	case 'r':
		return f.PressUnary(token.OpInv)
	case 's':
		return f.PressUnary(token.OpSqrt)
	case 'n':
		return f.PressUnary(token.OpNeg)
	case 'a':
		return f.PressSymbol(token.SymAns)
	case '(':
		return f.PressOpen()
	case ')':
		return f.PressClose()
	case '=':
		return f.PressEquals()
	case '<':
		return f.Backspace()
	default:
		panic("unknown test keystroke " + string(k))
	}
}

func preview(f *Formula) float64 {
	return f.Preview(rpn.NoAnswer)
}

func TestDigitsBuildOneNumber(t *testing.T) {
	f := New()
	press(t, f, "12.5")
	assert.Equal(t, 1, f.Len())
	assert.Equal(t, "12.5", f.String())
	assert.InDelta(t, 12.5, preview(f), 1e-12)
}

func TestSecondDecimalPointRejected(t *testing.T) {
	f := New()
	press(t, f, "1.2!.")
	assert.Equal(t, "1.2", f.String())
}

func TestSimpleCalculation(t *testing.T) {
	f := New()
	press(t, f, "2+3")
	assert.Equal(t, "2+3", f.String())
	assert.InDelta(t, 3, preview(f), 1e-12) // live preview shows the operand

	require.True(t, f.PressEquals())
	assert.True(t, f.IsComplete())
	assert.Equal(t, "2+3=", f.String())
	assert.InDelta(t, 5, preview(f), 1e-12) // final answer
}

func TestOperatorPrecedenceEndToEnd(t *testing.T) {
	f := New()
	press(t, f, "2+3*4=")
	assert.InDelta(t, 14, preview(f), 1e-12)

	f = New()
	press(t, f, "(2+3)*4=")
	assert.Equal(t, "(2+3)×4=", f.String())
	assert.InDelta(t, 20, preview(f), 1e-12)

	f = New()
	press(t, f, "2^3^2=")
	assert.InDelta(t, 64, preview(f), 1e-12)
}

func TestLastOperatorWins(t *testing.T) {
	f := New()
	press(t, f, "2+*3")
	assert.Equal(t, "2×3", f.String())
	press(t, f, "=")
	assert.InDelta(t, 6, preview(f), 1e-12)
}

func TestOperatorOnEmptyInsertsAns(t *testing.T) {
	f := New()
	press(t, f, "+")
	assert.Equal(t, "Ans+", f.String())

	toks := f.Tokens()
	require.Len(t, toks, 2)
	assert.IsType(t, &token.Symbol{}, toks[0])
	assert.IsType(t, &token.Binary{}, toks[1])
}

func TestCompletedFormulaClearsOnNextEdit(t *testing.T) {
	t.Run("digit starts fresh", func(t *testing.T) {
		f := New()
		press(t, f, "2+3=7")
		assert.Equal(t, "7", f.String())
		assert.Equal(t, 1, f.Len())
	})

	t.Run("operator continues on Ans", func(t *testing.T) {
		f := New()
		press(t, f, "2+3=*4")
		assert.Equal(t, "Ans×4", f.String())
	})

	t.Run("failed edit leaves completed formula untouched", func(t *testing.T) {
		f := New()
		press(t, f, "2+3=!)")
		assert.Equal(t, "2+3=", f.String())
		assert.True(t, f.IsComplete())
	})
}

func TestCloseWithoutOpenFails(t *testing.T) {
	f := New()
	press(t, f, "23!)")
	assert.Equal(t, "23", f.String())
}

func TestCloseSplicesGroup(t *testing.T) {
	f := New()
	press(t, f, "(2+3)")
	require.Equal(t, 1, f.Len())
	assert.IsType(t, &token.Group{}, f.Tokens()[0])
	assert.Equal(t, "(2+3)", f.String())
}

func TestCloseNestsInnermostFirst(t *testing.T) {
	f := New()
	press(t, f, "((1+2)")
	assert.Equal(t, "((1+2)", f.String())
	press(t, f, "*3)")
	assert.Equal(t, "((1+2)×3)", f.String())
	press(t, f, "=")
	assert.InDelta(t, 9, preview(f), 1e-12)
}

func TestEmptyParenthesesRejected(t *testing.T) {
	f := New()
	press(t, f, "(!)")
	assert.Equal(t, "(", f.String())
}

func TestEqualsClosesOpenGroups(t *testing.T) {
	f := New()
	press(t, f, "2*(3+4=")
	assert.Equal(t, "2×(3+4)=", f.String())
	assert.InDelta(t, 14, preview(f), 1e-12)
}

func TestEqualsRejections(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		f := New()
		assert.False(t, f.PressEquals())
	})

	t.Run("dangling operator", func(t *testing.T) {
		f := New()
		press(t, f, "2+!=")
		assert.Equal(t, "2+", f.String())
	})

	t.Run("dangling open", func(t *testing.T) {
		f := New()
		press(t, f, "2+(!=")
		assert.Equal(t, "2+(", f.String())
	})

	t.Run("already complete", func(t *testing.T) {
		f := New()
		press(t, f, "1=!=")
		assert.Equal(t, "1=", f.String())
	})
}

func TestBackspaceNumber(t *testing.T) {
	t.Run("multi-digit shortens", func(t *testing.T) {
		f := New()
		press(t, f, "123<")
		assert.Equal(t, "12", f.String())
	})

	t.Run("single digit removes token", func(t *testing.T) {
		f := New()
		press(t, f, "2+3<")
		assert.Equal(t, "2+", f.String())
		press(t, f, "<")
		assert.Equal(t, "2", f.String())
	})

	t.Run("empty formula rejects", func(t *testing.T) {
		f := New()
		assert.False(t, f.Backspace())
	})
}

func TestBackspaceGroupReExpands(t *testing.T) {
	f := New()
	press(t, f, "(2+3)")
	require.Equal(t, 1, f.Len())

	press(t, f, "<")
	assert.Equal(t, "(2+3", f.String())
	assert.Equal(t, 4, f.Len())
	assert.IsType(t, &token.Open{}, f.Tokens()[0])

	// Closing is reversible: re-closing reproduces an equivalent group.
	press(t, f, ")")
	require.Equal(t, 1, f.Len())
	assert.Equal(t, "(2+3)", f.String())
	press(t, f, "=")
	assert.InDelta(t, 5, preview(f), 1e-12)
}

func TestDoubleUnaryCancels(t *testing.T) {
	f := New()
	press(t, f, "(2)n")
	assert.Equal(t, "(2)±", f.String())
	press(t, f, "n")
	assert.Equal(t, "(2)", f.String())
}

func TestNegateOnNumberTogglesSign(t *testing.T) {
	f := New()
	press(t, f, "5n")
	assert.Equal(t, "-5", f.String())
	assert.Equal(t, 1, f.Len())
	press(t, f, "n")
	assert.Equal(t, "5", f.String())
}

func TestSymbolEdits(t *testing.T) {
	t.Run("digit replaces symbol", func(t *testing.T) {
		f := New()
		press(t, f, "a7")
		assert.Equal(t, "7", f.String())
		assert.Equal(t, 1, f.Len())
	})

	t.Run("open inserts before symbol", func(t *testing.T) {
		f := New()
		press(t, f, "a(")
		assert.Equal(t, "(Ans", f.String())
		toks := f.Tokens()
		require.Len(t, toks, 2)
		assert.IsType(t, &token.Open{}, toks[0])
		assert.IsType(t, &token.Symbol{}, toks[1])
	})
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name string
		keys string
		want float64
	}{
		{"last operand only", "2+3", 3},
		{"excludes trailing operator", "2+", 2},
		{"higher precedence window", "2+3*", 3},
		{"window spans equal precedence", "2*3*", 6},
		{"trailing unary included", "9s", 3},
		{"unary bound to its operand only", "1+9s", 3},
		{"open marker excluded", "2+(", 2},
		{"lone open is empty window", "(", 0},
		{"complete formula is full window", "2+3=", 5},
		{"group value", "(1+2)", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New()
			press(t, f, tt.keys)
			assert.InDelta(t, tt.want, preview(f), 1e-12)
		})
	}
}

func TestWindowSpansEqualPrecedenceChain(t *testing.T) {
	// 1+2×3× : the window walk stops below × precedence, so the live
	// preview covers 2×3 but not 1+.
	f := New()
	press(t, f, "1+2*3*")
	assert.InDelta(t, 6, preview(f), 1e-12)
}

func TestSnapshotIsIsolated(t *testing.T) {
	f := New()
	press(t, f, "12")
	snap := f.Snapshot()
	press(t, f, "3")

	assert.Equal(t, "123", f.String())
	assert.Equal(t, "12", token.Render(snap))
}
