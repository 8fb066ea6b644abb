package scriptkit

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/randalmurphal/scriptkit/pkg/scriptkit/expr"
	"github.com/randalmurphal/scriptkit/pkg/scriptkit/strip"
)

// Replacer resolves variables and conditional expressions in script text.
//
// Create with New() and configure with Option functions.
// Replacer is safe for concurrent use after construction.
type Replacer struct {
	tmpl    Template
	tmplErr error
	eval    *expr.Evaluator
}

// New creates a Replacer with the given options.
//
// Default configuration:
//   - Template: SQL()
//
// A template that fails Template.Validate is kept, and every call to
// Replace returns the validation error.
//
// Example:
//
//	r := scriptkit.New()
//	out, err := r.Replace("SELECT * FROM t {id??WHERE id = {id}}", map[string]string{"id": "7"})
//	// out: "SELECT * FROM t WHERE id = 7"
func New(opts ...Option) *Replacer {
	r := &Replacer{tmpl: sqlTemplate}
	for _, opt := range opts {
		opt(r)
	}
	r.tmplErr = r.tmpl.Validate()
	r.eval = expr.New(r.tmpl.conditionTokens())
	return r
}

// Template returns the template the Replacer was built with.
func (r *Replacer) Template() Template {
	return r.tmpl
}

// Replace resolves text against bindings.
//
// Resolution is all-or-nothing. The expression tokens are counted first,
// then every binding is checked, and only then is the text rewritten:
// known variables are substituted, unknown plain variables are removed and
// every conditional expression is replaced by its selected branch.
//
// Errors:
//   - *MalformedExpressionError when the open and close counts differ
//   - *InvalidBindingError when a key or value contains a reserved token
//   - *ValidationError when the template validator rejects a value
func (r *Replacer) Replace(text string, bindings map[string]string) (string, error) {
	if r.tmplErr != nil {
		return "", r.tmplErr
	}
	if err := r.checkStructure(text); err != nil {
		return "", err
	}
	if err := r.checkBindings(bindings); err != nil {
		return "", err
	}

	text = r.substitute(text, bindings)
	return r.resolve(text, bindings), nil
}

// ReplaceValues is like Replace but accepts arbitrary values, formatted
// with %v. A nil value is rejected with an *InvalidBindingError.
func (r *Replacer) ReplaceValues(text string, values map[string]any) (string, error) {
	bindings := make(map[string]string, len(values))
	for _, key := range slices.Sorted(maps.Keys(values)) {
		v := values[key]
		if v == nil {
			return "", &InvalidBindingError{Key: key, Field: "value"}
		}
		bindings[key] = fmt.Sprintf("%v", v)
	}
	return r.Replace(text, bindings)
}

// Process applies the template's stripping flags around Replace: comments
// are removed before resolution when RemoveComments is set and blank lines
// after it when RemoveBlankLines is set.
func (r *Replacer) Process(text string, bindings map[string]string) (string, error) {
	if r.tmpl.RemoveComments {
		text = strip.Comments(text, r.tmpl.OneLineComment, r.tmpl.MultiLineCommentOpen, r.tmpl.MultiLineCommentClose)
	}
	out, err := r.Replace(text, bindings)
	if err != nil {
		return "", err
	}
	if r.tmpl.RemoveBlankLines {
		out = strip.BlankLines(out)
	}
	return out, nil
}

// checkStructure compares the open and close token counts. Nesting is not
// checked.
func (r *Replacer) checkStructure(text string) error {
	open := strings.Count(text, r.tmpl.ExpressionOpen)
	closing := strings.Count(text, r.tmpl.ExpressionClose)
	if open != closing {
		return &MalformedExpressionError{
			Open:       r.tmpl.ExpressionOpen,
			Close:      r.tmpl.ExpressionClose,
			OpenCount:  open,
			CloseCount: closing,
		}
	}
	return nil
}

// checkBindings validates keys and values in sorted key order.
func (r *Replacer) checkBindings(bindings map[string]string) error {
	reserved := r.tmpl.reserved()
	for _, key := range slices.Sorted(maps.Keys(bindings)) {
		value := bindings[key]
		if tok := firstReserved(key, reserved); tok != "" {
			return &InvalidBindingError{Key: key, Field: "key", Token: tok}
		}
		if tok := firstReserved(value, reserved); tok != "" {
			return &InvalidBindingError{Key: key, Field: "value", Token: tok}
		}
		if r.tmpl.Validator == nil {
			continue
		}
		if err := r.tmpl.Validator(value); err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				failed := *ve
				failed.Key = key
				return &failed
			}
			return &ValidationError{Key: key, Value: value, Err: err}
		}
	}
	return nil
}

func firstReserved(s string, reserved []string) string {
	for _, tok := range reserved {
		if tok != "" && strings.Contains(s, tok) {
			return tok
		}
	}
	return ""
}

var defaultReplacer = New()

// Replace resolves text with the SQL template.
//
// Example:
//
//	out, _ := scriptkit.Replace("{a&&b::none}", map[string]string{"a": "x", "b": "y"})
//	// out: "xy"
func Replace(text string, bindings map[string]string) (string, error) {
	return defaultReplacer.Replace(text, bindings)
}
