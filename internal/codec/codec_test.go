package codec

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tally/internal/rpn"
	"github.com/roach88/tally/internal/token"
)

func num(s string) token.Token {
	n := token.NewNumber(s[0])
	for i := 1; i < len(s); i++ {
		if n.AppendDigit(s[i]) != token.Replaced {
			panic("bad test number " + s)
		}
	}
	return n
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		toks []token.Token
	}{
		{
			"simple sum",
			[]token.Token{num("2"), token.NewBinary(token.OpAdd), num("3"), token.NewEq()},
		},
		{
			"decimal and negated number",
			func() []token.Token {
				n := num("12.5")
				n.AppendUnary(token.OpNeg)
				return []token.Token{n}
			}(),
		},
		{
			"all binary operators",
			[]token.Token{
				num("1"), token.NewBinary(token.OpSub),
				num("2"), token.NewBinary(token.OpMul),
				num("3"), token.NewBinary(token.OpDiv),
				num("4"), token.NewBinary(token.OpPow),
				num("5"), token.NewBinary(token.OpExp),
				num("6"),
			},
		},
		{
			"unaries and symbol",
			[]token.Token{
				token.NewSymbol(token.SymAns),
				token.NewUnary(token.OpSqrt),
				token.NewBinary(token.OpAdd),
				num("4"),
				token.NewUnary(token.OpInv),
			},
		},
		{
			"nested groups",
			[]token.Token{
				token.NewGroup([]token.Token{
					token.NewGroup([]token.Token{num("1"), token.NewBinary(token.OpAdd), num("2")}),
					token.NewBinary(token.OpMul),
					num("4"),
				}),
				token.NewEq(),
			},
		},
		{
			"in-progress formula with open marker",
			[]token.Token{num("2"), token.NewBinary(token.OpAdd), token.NewOpen(), num("3")},
		},
		{
			"empty sequence",
			[]token.Token{},
		},
	}

	env := rpn.AnswerFunc(func() float64 { return 7 })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.toks)
			require.NoError(t, err)

			got, err := Decode(data)
			require.NoError(t, err)
			require.Len(t, got, len(tt.toks))

			// Identical rendering behavior.
			assert.Equal(t, token.Render(tt.toks), token.Render(got))

			// Identical evaluation behavior, compared over every
			// marker-free sub-sequence the originals support.
			if evaluable(tt.toks) && len(tt.toks) > 0 {
				assert.Equal(t, rpn.Eval(tt.toks, env), rpn.Eval(got, env))
			}
		})
	}
}

func evaluable(toks []token.Token) bool {
	for _, t := range toks {
		switch t.(type) {
		case *token.Open, *token.Eq:
			return false
		}
	}
	return true
}

func TestEncodeShape(t *testing.T) {
	data, err := Encode([]token.Token{num("2"), token.NewBinary(token.OpAdd), token.NewEq()})
	require.NoError(t, err)

	var pairs [][2]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &pairs))
	require.Len(t, pairs, 3)

	assert.JSONEq(t, `"num"`, string(pairs[0][0]))
	assert.JSONEq(t, `{"neg":false,"digits":"2"}`, string(pairs[0][1]))
	assert.JSONEq(t, `"bin"`, string(pairs[1][0]))
	assert.JSONEq(t, `"add"`, string(pairs[1][1]))
	assert.JSONEq(t, `"eq"`, string(pairs[2][0]))
	assert.JSONEq(t, `null`, string(pairs[2][1]))
}

func TestDecodeUnrecognizedTag(t *testing.T) {
	_, err := Decode([]byte(`[["frac", {"num": 1, "den": 2}]]`))
	require.Error(t, err)

	var decErr *DecodeError
	require.True(t, errors.As(err, &decErr))
	assert.Equal(t, "frac", decErr.Tag)
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not a list", `{"tag":"num"}`},
		{"pair too short", `[["num"]]`},
		{"bad number payload", `[["num", {"neg":false,"digits":"x"}]]`},
		{"bad operator code", `[["bin", "mod"]]`},
		{"bad unary code", `[["una", "abs"]]`},
		{"bad symbol code", `[["sym", "pi"]]`},
		{"bad group payload", `[["grp", 42]]`},
		{"undecodable nested token", `[["grp", [["wat", null]]]]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			var decErr *DecodeError
			require.Error(t, err)
			assert.True(t, errors.As(err, &decErr))
		})
	}
}
