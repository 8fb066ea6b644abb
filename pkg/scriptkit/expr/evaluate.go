package expr

import (
	"strings"
)

// Tokens are the spellings of the condition operators.
type Tokens struct {
	BlockOpen  string
	BlockClose string
	And        string
	Or         string
	Not        string
}

// DefaultTokens returns the tokens shared by the built-in script templates.
func DefaultTokens() Tokens {
	return Tokens{
		BlockOpen:  "(",
		BlockClose: ")",
		And:        "&&",
		Or:         "||",
		Not:        "!",
	}
}

// Result is the outcome of evaluating a condition.
type Result struct {
	// Truth is the boolean value of the condition.
	Truth bool

	// Referenced lists, in evaluation order, the non-negated operands that
	// matched a known name. Duplicates are kept.
	Referenced []string
}

// Evaluator parses and evaluates conditions written with a fixed set of
// tokens. It holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	tokens Tokens
}

// New creates an Evaluator for the given tokens.
// Empty tokens are replaced by their DefaultTokens counterpart.
func New(tokens Tokens) *Evaluator {
	def := DefaultTokens()
	if tokens.BlockOpen == "" {
		tokens.BlockOpen = def.BlockOpen
	}
	if tokens.BlockClose == "" {
		tokens.BlockClose = def.BlockClose
	}
	if tokens.And == "" {
		tokens.And = def.And
	}
	if tokens.Or == "" {
		tokens.Or = def.Or
	}
	if tokens.Not == "" {
		tokens.Not = def.Not
	}
	return &Evaluator{tokens: tokens}
}

// Tokens returns the tokens used by the evaluator.
func (e *Evaluator) Tokens() Tokens {
	return e.tokens
}

// Evaluate parses condition and evaluates it. known reports whether a name
// is bound.
func (e *Evaluator) Evaluate(condition string, known func(name string) bool) Result {
	if known == nil {
		known = func(string) bool { return false }
	}
	var res Result
	res.Truth = e.evalSequence(e.Parse(condition), known, &res.Referenced)
	return res
}

// Eval evaluates condition with the default tokens. A name is known when it
// is a key of vars.
func Eval(condition string, vars map[string]string) Result {
	return defaultEvaluator.Evaluate(condition, func(name string) bool {
		_, ok := vars[name]
		return ok
	})
}

var defaultEvaluator = New(DefaultTokens())

// evalSequence resolves the blocks of every term first, then folds the terms
// from left to right.
func (e *Evaluator) evalSequence(seq *Sequence, known func(string) bool, refs *[]string) bool {
	groups := make([][]bool, len(seq.Terms))
	for i, term := range seq.Terms {
		for _, part := range term.Parts {
			if part.Group != nil {
				groups[i] = append(groups[i], e.evalSequence(part.Group, known, refs))
			}
		}
	}

	var acc bool
	for i, term := range seq.Terms {
		v := e.evalTerm(term, groups[i], known, refs)
		switch {
		case i == 0:
			acc = v
		case seq.Ops[i-1] == OpOr:
			acc = acc || v
		default:
			acc = acc && v
		}
	}
	return acc
}

// evalTerm evaluates a term whose block values have already been computed.
func (e *Evaluator) evalTerm(term Term, groups []bool, known func(string) bool, refs *[]string) bool {
	if soleGroup(term) {
		return groups[0]
	}

	// Anything else around a block, the not token included, is operand
	// text in which each block stands in as its literal value.
	var sb strings.Builder
	g := 0
	for _, part := range term.Parts {
		if part.Group == nil {
			sb.WriteString(part.Text)
			continue
		}
		if groups[g] {
			sb.WriteString(literalTrue)
		} else {
			sb.WriteString(literalFalse)
		}
		g++
	}
	return e.evalOperand(sb.String(), known, refs)
}

// soleGroup reports whether term is a single block surrounded only by
// whitespace.
func soleGroup(term Term) bool {
	groups := 0
	for _, part := range term.Parts {
		switch {
		case part.Group != nil:
			groups++
		case strings.TrimSpace(part.Text) != "":
			return false
		}
	}
	return groups == 1
}

const (
	literalTrue  = "true"
	literalFalse = "false"
)

// evalOperand evaluates a single operand and records it when it is a
// positive match.
func (e *Evaluator) evalOperand(text string, known func(string) bool, refs *[]string) bool {
	name := strings.TrimSpace(text)
	switch name {
	case literalTrue:
		return true
	case literalFalse:
		return false
	}

	if strings.HasPrefix(name, e.tokens.Not) {
		return !known(strings.TrimSpace(name[len(e.tokens.Not):]))
	}

	if known(name) {
		*refs = append(*refs, name)
		return true
	}
	return false
}
