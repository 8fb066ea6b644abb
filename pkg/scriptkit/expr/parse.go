package expr

import (
	"strings"
)

// Op joins two terms of a sequence.
type Op int

const (
	// OpAnd is the logical AND.
	OpAnd Op = iota
	// OpOr is the logical OR.
	OpOr
)

// String returns a readable name for the operator.
func (o Op) String() string {
	if o == OpOr {
		return "or"
	}
	return "and"
}

// Sequence is a list of terms joined by operators.
// len(Ops) is always len(Terms)-1 and Terms is never empty.
type Sequence struct {
	Terms []Term
	Ops   []Op
}

// Term is the text between two operators. It is made of raw text parts and
// blocks.
type Term struct {
	Parts []Part
}

// Part is either raw text or a block (Group non-nil).
type Part struct {
	Text  string
	Group *Sequence
}

// Parse builds the sequence tree of condition. It never fails: unmatched
// block tokens and empty operands are kept as text.
func (e *Evaluator) Parse(condition string) *Sequence {
	p := parser{
		src:    condition,
		tokens: e.tokens,
		pairs:  matchBlocks(condition, e.tokens.BlockOpen, e.tokens.BlockClose),
	}
	return p.sequence(0, len(condition))
}

type parser struct {
	src    string
	tokens Tokens
	// pairs maps the offset of a block open token to the offset of its
	// close token.
	pairs map[int]int
}

// sequence parses src[lo:hi].
func (p *parser) sequence(lo, hi int) *Sequence {
	seq := &Sequence{}
	var term Term
	start := lo

	flush := func(end int) {
		if end > start {
			term.Parts = append(term.Parts, Part{Text: p.src[start:end]})
		}
	}

	for i := lo; i < hi; {
		if closeAt, ok := p.pairs[i]; ok && closeAt < hi {
			flush(i)
			inner := p.sequence(i+len(p.tokens.BlockOpen), closeAt)
			term.Parts = append(term.Parts, Part{Group: inner})
			i = closeAt + len(p.tokens.BlockClose)
			start = i
			continue
		}

		op, size, ok := p.operatorAt(i, hi)
		if !ok {
			i++
			continue
		}
		flush(i)
		seq.Terms = append(seq.Terms, term)
		seq.Ops = append(seq.Ops, op)
		term = Term{}
		i += size
		start = i
	}
	flush(hi)
	seq.Terms = append(seq.Terms, term)
	return seq
}

// operatorAt reports the operator starting at offset i, if any.
func (p *parser) operatorAt(i, hi int) (Op, int, bool) {
	rest := p.src[i:hi]
	if strings.HasPrefix(rest, p.tokens.And) {
		return OpAnd, len(p.tokens.And), true
	}
	if strings.HasPrefix(rest, p.tokens.Or) {
		return OpOr, len(p.tokens.Or), true
	}
	return 0, 0, false
}

// matchBlocks pairs block tokens the way a stack would: each close token
// matches the most recent unmatched open token. Unpaired tokens are left out.
func matchBlocks(s, open, closing string) map[int]int {
	pairs := make(map[int]int)
	var stack []int
	for i := 0; i < len(s); {
		switch {
		case strings.HasPrefix(s[i:], open):
			stack = append(stack, i)
			i += len(open)
		case strings.HasPrefix(s[i:], closing) && len(stack) > 0:
			pairs[stack[len(stack)-1]] = i
			stack = stack[:len(stack)-1]
			i += len(closing)
		default:
			i++
		}
	}
	return pairs
}
