/*
Package expr parses and evaluates the conditions embedded in script
expressions.

# Overview

A condition is a boolean combination of names. A name is true when it is
bound (the caller's known function reports it), false otherwise. expr is
deliberately small: there is no arithmetic, no comparison and no function
call. Only the spelling of the operators can be changed.

# Condition Syntax

With the default tokens:

	<sequence> := <term> { ('&&' | '||') <term> }
	<term>     := <operand> | '(' <sequence> ')'
	<operand>  := 'true' | 'false' | ['!'] <name>

Names are trimmed before lookup. Block tokens without a partner are kept as
plain operand text.

A block with other text in its term, the not token included, is read as the
literal true or false inside that operand: !(a) becomes !true, which holds
unless a name true is bound.

# Evaluation Order

Operators have no precedence. A sequence is folded strictly from left to
right:

	a || b && c    evaluates as    (a || b) && c

Use blocks to group explicitly:

	a || (b && c)

Every operand is evaluated, there is no short-circuit.

# Referenced Names

Evaluation also records, in order, every non-negated operand that matched a
bound name. Nested blocks are resolved before the operands of the sequence
that contains them, so for

	a && (b || (c))

the referenced names are c, b, a (when all three are bound). Scripts use
this list as the implicit value of an expression without an explicit then
branch.

# Custom Tokens

	e := expr.New(expr.Tokens{
	    BlockOpen:  "[",
	    BlockClose: "]",
	    And:        " AND ",
	    Or:         " OR ",
	    Not:        "NOT ",
	})
	res := e.Evaluate("a AND [b OR c]", func(name string) bool { return name == "a" || name == "c" })
	// res.Truth == true, res.Referenced == []string{"c", "a"}
*/
package expr
