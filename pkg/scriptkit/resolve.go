package scriptkit

import (
	"strings"
)

// frame is an expression whose close token has not been seen yet.
type frame struct {
	body strings.Builder
}

// resolve replaces every expression with its selected branch.
//
// The text is scanned once. A close token matches the most recent unmatched
// open, and the resolved value of an inner expression becomes plain text
// in the body of the enclosing one. Close tokens with no open are kept as
// text, as are open tokens that are never closed.
func (r *Replacer) resolve(text string, bindings map[string]string) string {
	open, closing := r.tmpl.ExpressionOpen, r.tmpl.ExpressionClose
	if !strings.Contains(text, open) {
		return text
	}

	var out strings.Builder
	out.Grow(len(text))
	var stack []*frame

	current := func() *strings.Builder {
		if len(stack) == 0 {
			return &out
		}
		return &stack[len(stack)-1].body
	}

	for i := 0; i < len(text); {
		switch {
		case strings.HasPrefix(text[i:], open):
			stack = append(stack, &frame{})
			i += len(open)
		case strings.HasPrefix(text[i:], closing):
			if len(stack) == 0 {
				out.WriteString(closing)
			} else {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				current().WriteString(r.evalExpression(top.body.String(), bindings))
			}
			i += len(closing)
		default:
			current().WriteByte(text[i])
			i++
		}
	}

	// Unclosed expressions fold back into their parents as literal text.
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		b := current()
		b.WriteString(open)
		b.WriteString(top.body.String())
	}
	return out.String()
}

// evalExpression returns the text selected by one expression body.
func (r *Replacer) evalExpression(body string, bindings map[string]string) string {
	condition, thenVal, elseVal, hasThen, hasElse := r.split(body)
	if !hasThen && !hasElse {
		return ""
	}

	res := r.eval.Evaluate(condition, func(name string) bool {
		_, ok := bindings[name]
		return ok
	})
	if !res.Truth {
		return elseVal
	}
	if hasThen {
		return thenVal
	}

	var sb strings.Builder
	for _, name := range res.Referenced {
		sb.WriteString(bindings[name])
	}
	return sb.String()
}

// split cuts an expression body at the first then operator and, after it,
// the first else operator.
func (r *Replacer) split(body string) (condition, thenVal, elseVal string, hasThen, hasElse bool) {
	then, els := r.tmpl.OperatorThen, r.tmpl.OperatorElse

	if i := strings.Index(body, then); i >= 0 {
		cond, rest := body[:i], body[i+len(then):]
		if j := strings.Index(rest, els); j >= 0 {
			return cond, rest[:j], rest[j+len(els):], true, true
		}
		return cond, rest, "", true, false
	}
	if j := strings.Index(body, els); j >= 0 {
		return body[:j], "", body[j+len(els):], false, true
	}
	return body, "", "", false, false
}
