package scriptkit

import (
	"fmt"

	"github.com/randalmurphal/scriptkit/pkg/scriptkit/expr"
)

// Default token spellings.
const (
	CommentSQL      = "--"
	CommentStandard = "//"
	CommentOpen     = "/*"
	CommentClose    = "*/"

	ExpressionOpen  = "{"
	ExpressionClose = "}"
	BlockOpen       = "("
	BlockClose      = ")"

	OperatorThen = "??"
	OperatorElse = "::"
	OperatorAnd  = "&&"
	OperatorOr   = "||"
	OperatorNot  = "!"
)

// Validator checks a binding value before substitution.
type Validator func(value string) error

// Template is the set of tokens a Replacer recognizes, plus an optional
// value validator.
//
// Template is a plain value. Replacers copy it at construction, so changing
// a Template after New has no effect on existing replacers.
type Template struct {
	ExpressionOpen  string
	ExpressionClose string

	// VariableOpen and VariableClose delimit plain variables. When empty
	// they default to the expression tokens.
	VariableOpen  string
	VariableClose string

	BlockOpen  string
	BlockClose string

	OperatorThen string
	OperatorElse string
	OperatorAnd  string
	OperatorOr   string
	OperatorNot  string

	// Comment tokens are only used by the comment stripper. Empty values
	// disable the corresponding kind of comment.
	OneLineComment        string
	MultiLineCommentOpen  string
	MultiLineCommentClose string

	RemoveComments   bool
	RemoveBlankLines bool

	// Validator runs on every binding value. Nil means no validation.
	Validator Validator
}

var sqlTemplate = Template{
	ExpressionOpen:        ExpressionOpen,
	ExpressionClose:       ExpressionClose,
	BlockOpen:             BlockOpen,
	BlockClose:            BlockClose,
	OperatorThen:          OperatorThen,
	OperatorElse:          OperatorElse,
	OperatorAnd:           OperatorAnd,
	OperatorOr:            OperatorOr,
	OperatorNot:           OperatorNot,
	OneLineComment:        CommentSQL,
	MultiLineCommentOpen:  CommentOpen,
	MultiLineCommentClose: CommentClose,
	RemoveComments:        true,
	RemoveBlankLines:      true,
	Validator:             SQLValidator,
}

var jsonTemplate = Template{
	ExpressionOpen:        "<",
	ExpressionClose:       ">",
	BlockOpen:             BlockOpen,
	BlockClose:            BlockClose,
	OperatorThen:          OperatorThen,
	OperatorElse:          OperatorElse,
	OperatorAnd:           OperatorAnd,
	OperatorOr:            OperatorOr,
	OperatorNot:           OperatorNot,
	OneLineComment:        CommentStandard,
	MultiLineCommentOpen:  CommentOpen,
	MultiLineCommentClose: CommentClose,
	RemoveComments:        true,
	RemoveBlankLines:      true,
	Validator:             JSONValidator,
}

// SQL returns the template for SQL scripts: {...} expressions, -- and /* */
// comments, and the SQLValidator.
func SQL() Template {
	return sqlTemplate
}

// JSON returns the template for JSON query bodies: <...> expressions, // and
// /* */ comments, and the JSONValidator.
func JSON() Template {
	return jsonTemplate
}

// Variables returns the effective variable tokens.
func (t Template) Variables() (open, closing string) {
	open, closing = t.VariableOpen, t.VariableClose
	if open == "" {
		open = t.ExpressionOpen
	}
	if closing == "" {
		closing = t.ExpressionClose
	}
	return open, closing
}

// conditionTokens returns the tokens used to evaluate conditions.
func (t Template) conditionTokens() expr.Tokens {
	return expr.Tokens{
		BlockOpen:  t.BlockOpen,
		BlockClose: t.BlockClose,
		And:        t.OperatorAnd,
		Or:         t.OperatorOr,
		Not:        t.OperatorNot,
	}
}

type namedToken struct {
	field string
	value string
}

// Validate checks that every structural token is set and that no two of
// them are equal. Variable tokens may equal their expression counterparts.
func (t Template) Validate() error {
	varOpen, varClose := t.Variables()

	tokens := []namedToken{
		{"expression_open", t.ExpressionOpen},
		{"expression_close", t.ExpressionClose},
		{"block_open", t.BlockOpen},
		{"block_close", t.BlockClose},
		{"operator_then", t.OperatorThen},
		{"operator_else", t.OperatorElse},
		{"operator_and", t.OperatorAnd},
		{"operator_or", t.OperatorOr},
		{"operator_not", t.OperatorNot},
	}
	if varOpen != t.ExpressionOpen {
		tokens = append(tokens, namedToken{"variable_open", varOpen})
	}
	if varClose != t.ExpressionClose {
		tokens = append(tokens, namedToken{"variable_close", varClose})
	}

	seen := make(map[string]string, len(tokens))
	for _, tok := range tokens {
		if tok.value == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalidTemplate, tok.field)
		}
		if other, ok := seen[tok.value]; ok {
			return fmt.Errorf("%w: %s and %s are both %q", ErrInvalidTemplate, other, tok.field, tok.value)
		}
		seen[tok.value] = tok.field
	}

	if varOpen == varClose {
		return fmt.Errorf("%w: variable_open and variable_close are both %q", ErrInvalidTemplate, varOpen)
	}
	return nil
}

// reserved returns the tokens a binding key or value may not contain.
func (t Template) reserved() []string {
	varOpen, varClose := t.Variables()
	return []string{
		t.ExpressionOpen,
		t.ExpressionClose,
		varOpen,
		varClose,
		t.OperatorThen,
		t.OperatorElse,
	}
}
