// Package codec serializes token sequences to a tagged, persistence
// friendly JSON form and back.
//
// A serialized formula is an ordered list of [tag, payload] pairs.
// Number carries its sign flag and digit-string, operators and
// symbols carry their code, a Group carries its recursively encoded
// contents, and the two markers carry null. Decoding dispatches
// strictly on the tag; an unrecognized tag fails the decode of that
// sequence, and history loading drops the affected entry.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/tally/internal/token"
)

// Tags for the seven token kinds.
const (
	TagNumber = "num"
	TagBinary = "bin"
	TagUnary  = "una"
	TagGroup  = "grp"
	TagSymbol = "sym"
	TagOpen   = "open"
	TagEq     = "eq"
)

// numberPayload is the serialized form of a Number token.
type numberPayload struct {
	Neg    bool   `json:"neg"`
	Digits string `json:"digits"`
}

// DecodeError reports a failed decode. Persistence collaborators drop
// the affected entry rather than failing the whole history load.
type DecodeError struct {
	Tag string
	Err error
}

func (e *DecodeError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("decode token %q: %v", e.Tag, e.Err)
	}
	return fmt.Sprintf("decode token: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Encode serializes a token sequence to JSON.
func Encode(toks []token.Token) ([]byte, error) {
	pairs, err := encodeSeq(toks)
	if err != nil {
		return nil, err
	}
	return json.Marshal(pairs)
}

// Decode parses a serialized formula back into a token sequence.
// decode(encode(seq)) yields a sequence with identical evaluation and
// rendering behavior.
func Decode(data []byte) ([]token.Token, error) {
	var pairs []json.RawMessage
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return decodeSeq(pairs)
}

func encodeSeq(toks []token.Token) ([]json.RawMessage, error) {
	pairs := make([]json.RawMessage, len(toks))
	for i, t := range toks {
		p, err := encodeToken(t)
		if err != nil {
			return nil, err
		}
		pairs[i] = p
	}
	return pairs, nil
}

func encodeToken(t token.Token) (json.RawMessage, error) {
	var tag string
	var payload any
	switch t := t.(type) {
	case *token.Number:
		tag = TagNumber
		payload = numberPayload{Neg: t.Neg(), Digits: t.Digits()}
	case *token.Binary:
		tag = TagBinary
		payload = t.Op().Code()
	case *token.Unary:
		tag = TagUnary
		payload = t.Op().Code()
	case *token.Symbol:
		tag = TagSymbol
		payload = t.Kind().Code()
	case *token.Group:
		tag = TagGroup
		inner, err := encodeSeq(t.Tokens())
		if err != nil {
			return nil, err
		}
		payload = inner
	case *token.Open:
		tag = TagOpen
	case *token.Eq:
		tag = TagEq
	default:
		return nil, fmt.Errorf("encode token: unknown kind %T", t)
	}
	return json.Marshal([2]any{tag, payload})
}

func decodeSeq(pairs []json.RawMessage) ([]token.Token, error) {
	toks := make([]token.Token, len(pairs))
	for i, p := range pairs {
		t, err := decodeToken(p)
		if err != nil {
			return nil, err
		}
		toks[i] = t
	}
	return toks, nil
}

func decodeToken(data json.RawMessage) (token.Token, error) {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if len(pair) != 2 {
		return nil, &DecodeError{Err: fmt.Errorf("want [tag, payload], got %d elements", len(pair))}
	}

	var tag string
	if err := json.Unmarshal(pair[0], &tag); err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("tag: %w", err)}
	}

	switch tag {
	case TagNumber:
		var p numberPayload
		if err := json.Unmarshal(pair[1], &p); err != nil {
			return nil, &DecodeError{Tag: tag, Err: err}
		}
		n, err := token.RestoreNumber(p.Neg, p.Digits)
		if err != nil {
			return nil, &DecodeError{Tag: tag, Err: err}
		}
		return n, nil

	case TagBinary:
		code, err := decodeCode(pair[1])
		if err != nil {
			return nil, &DecodeError{Tag: tag, Err: err}
		}
		op, err := token.ParseBinaryOp(code)
		if err != nil {
			return nil, &DecodeError{Tag: tag, Err: err}
		}
		return token.NewBinary(op), nil

	case TagUnary:
		code, err := decodeCode(pair[1])
		if err != nil {
			return nil, &DecodeError{Tag: tag, Err: err}
		}
		op, err := token.ParseUnaryOp(code)
		if err != nil {
			return nil, &DecodeError{Tag: tag, Err: err}
		}
		return token.NewUnary(op), nil

	case TagSymbol:
		code, err := decodeCode(pair[1])
		if err != nil {
			return nil, &DecodeError{Tag: tag, Err: err}
		}
		kind, err := token.ParseSymbolKind(code)
		if err != nil {
			return nil, &DecodeError{Tag: tag, Err: err}
		}
		return token.NewSymbol(kind), nil

	case TagGroup:
		var inner []json.RawMessage
		if err := json.Unmarshal(pair[1], &inner); err != nil {
			return nil, &DecodeError{Tag: tag, Err: err}
		}
		toks, err := decodeSeq(inner)
		if err != nil {
			return nil, err
		}
		return token.NewGroup(toks), nil

	case TagOpen:
		return token.NewOpen(), nil

	case TagEq:
		return token.NewEq(), nil

	default:
		return nil, &DecodeError{Tag: tag, Err: fmt.Errorf("unrecognized tag")}
	}
}

func decodeCode(data json.RawMessage) (string, error) {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return "", fmt.Errorf("operator code: %w", err)
	}
	return code, nil
}
