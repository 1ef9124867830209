package formula

import "github.com/roach88/tally/internal/token"

// Window determines the minimal trailing sub-sequence whose value is
// shown as the live preview. Walking backward from the end:
//
//   - a value-class token starts the window;
//   - the equals marker widens the window to the entire sequence
//     minus the marker (the final answer);
//   - unary tokens never bound the window and stay inside it;
//   - unmatched open markers are excluded and the walk continues
//     past them;
//   - a binary operator of precedence p is excluded from the window's
//     end, and the walk then extends the start over every earlier
//     token of precedence >= p.
//
// The returned slice aliases the live sequence; callers evaluate it
// before the next edit.
func (f *Formula) Window() []token.Token {
	if len(f.toks) == 0 {
		return nil
	}
	if f.IsComplete() {
		return f.toks[:len(f.toks)-1]
	}

	end := len(f.toks)
	for i := end - 1; i >= 0; i-- {
		switch t := f.toks[i].(type) {
		case *token.Open:
			end = i
		case *token.Unary:
			// Keep walking; the unary stays in the window.
		case *token.Binary:
			end = i
			p := t.Prec()
			for i > 0 && f.toks[i-1].Prec() >= p {
				i--
			}
			return f.toks[i:end]
		default:
			// Value class: Number, Group, Symbol.
			return f.toks[i:end]
		}
	}

	// Nothing but markers before the front of the sequence.
	return nil
}
