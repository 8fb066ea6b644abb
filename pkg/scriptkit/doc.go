/*
Package scriptkit resolves script templates: SQL or JSON query text with
embedded variables and conditional expressions.

# Quick Start

	r := scriptkit.New()
	query, err := r.Replace(`SELECT * FROM patients
	WHERE 1 = 1
	{name?? AND name = '{name}'}
	{age?? AND age > {age}}`, map[string]string{"name": "Smith"})
	// query:
	//   SELECT * FROM patients
	//   WHERE 1 = 1
	//    AND name = 'Smith'

# Expressions

With the SQL template an expression is written between { and }:

	{name}                 the value of name, or nothing when unbound
	{cond??then}           then when cond is true, nothing otherwise
	{cond::else}           the values of the names in cond when it is
	                       true, else otherwise
	{cond??then::else}     then or else

A condition combines names with &&, || and !, grouped by ( and ). A name is
true when it is bound. Operators have no precedence: a || b && c means
(a || b) && c. See package expr for the full rules.

Expressions nest. Inner expressions are resolved first, and their result
becomes plain text inside the outer one:

	{a??x{b?? and b}}      "x and b" when a and b are bound

# Templates

A Template holds every token and a value validator. SQL() and JSON() return
the built-in templates; RegisterTemplate makes custom ones available by
name to package config and the scriptkit command.

	tmpl := scriptkit.SQL()
	tmpl.Validator = scriptkit.ChainValidators(tmpl.Validator, scriptkit.ForbidValidator(";"))
	r := scriptkit.New(scriptkit.WithTemplate(tmpl))

# Error Handling

Replace never returns partial output. Use errors.Is with the sentinels and
errors.As for details:

	out, err := r.Replace(text, bindings)
	var mal *scriptkit.MalformedExpressionError
	if errors.As(err, &mal) {
	    log.Printf("%d opens, %d closes", mal.OpenCount, mal.CloseCount)
	}

	errors.Is(err, scriptkit.ErrMalformedExpression) // unbalanced token counts
	errors.Is(err, scriptkit.ErrInvalidBinding)      // reserved token in a binding
	errors.Is(err, scriptkit.ErrValidation)          // value rejected by the validator

# Catalogs

A Loader renders named scripts kept in a catalog.Store, with optional
logging, metrics and tracing:

	loader := scriptkit.NewLoader(store,
	    scriptkit.WithLogger(slog.Default()),
	    scriptkit.WithMetrics(observability.NewMetricsRecorder()),
	)
	query, err := loader.Render(ctx, "patients.sql", bindings)

# Thread Safety

Replacer and Loader are safe for concurrent use. A Template is copied into
the Replacer at construction.
*/
package scriptkit
