package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/randalmurphal/scriptkit/pkg/scriptkit"
)

// Template keys.
const (
	KeyBase                  = "base"
	KeyExpressionOpen        = "expression_open"
	KeyExpressionClose       = "expression_close"
	KeyVariableOpen          = "variable_open"
	KeyVariableClose         = "variable_close"
	KeyBlockOpen             = "block_open"
	KeyBlockClose            = "block_close"
	KeyOperatorThen          = "operator_then"
	KeyOperatorElse          = "operator_else"
	KeyOperatorAnd           = "operator_and"
	KeyOperatorOr            = "operator_or"
	KeyOperatorNot           = "operator_not"
	KeyOneLineComment        = "one_line_comment"
	KeyMultiLineCommentOpen  = "multi_line_comment_open"
	KeyMultiLineCommentClose = "multi_line_comment_close"
	KeyRemoveComments        = "remove_comments"
	KeyRemoveBlankLines      = "remove_blank_lines"
	KeyValidator             = "validator"
	KeyForbid                = "forbid"

	// SectionTemplate is the optional section holding the template keys.
	SectionTemplate = "template"
)

// Validator names accepted by the validator key.
const (
	ValidatorSQL  = "sql"
	ValidatorJSON = "json"
	ValidatorNone = "none"
)

// TemplateFrom builds a template from cfg.
//
// The base key names a registered template (default "sql") that supplies
// every setting not given explicitly. When the validator key is absent the
// base template's validator is kept. Values listed under forbid are
// rejected in addition to whatever the validator checks.
func TemplateFrom(cfg Config) (scriptkit.Template, error) {
	if cfg.Has(SectionTemplate) {
		cfg = cfg.Map(SectionTemplate)
	}
	if err := checkKeys(cfg); err != nil {
		return scriptkit.Template{}, err
	}

	base := cfg.String(KeyBase, scriptkit.TemplateSQL)
	t, ok := scriptkit.LookupTemplate(base)
	if !ok {
		return scriptkit.Template{}, fmt.Errorf("unknown base template %q (registered: %s)",
			base, strings.Join(scriptkit.TemplateNames(), ", "))
	}

	for key, field := range stringFields(&t) {
		if cfg.Has(key) {
			s, ok := cfg.Raw()[key].(string)
			if !ok {
				return scriptkit.Template{}, fmt.Errorf("%s must be a string", key)
			}
			*field = s
		}
	}
	t.RemoveComments = cfg.Bool(KeyRemoveComments, t.RemoveComments)
	t.RemoveBlankLines = cfg.Bool(KeyRemoveBlankLines, t.RemoveBlankLines)

	if cfg.Has(KeyValidator) {
		name, ok := cfg.Raw()[KeyValidator].(string)
		if !ok {
			return scriptkit.Template{}, fmt.Errorf("%s must be a string", KeyValidator)
		}
		v, err := validatorNamed(name)
		if err != nil {
			return scriptkit.Template{}, err
		}
		t.Validator = v
	}
	if forbid := cfg.StringSlice(KeyForbid, nil); len(forbid) > 0 {
		t.Validator = scriptkit.ChainValidators(t.Validator, scriptkit.ForbidValidator(forbid...))
	}

	if err := t.Validate(); err != nil {
		return scriptkit.Template{}, err
	}
	return t, nil
}

func stringFields(t *scriptkit.Template) map[string]*string {
	return map[string]*string{
		KeyExpressionOpen:        &t.ExpressionOpen,
		KeyExpressionClose:       &t.ExpressionClose,
		KeyVariableOpen:          &t.VariableOpen,
		KeyVariableClose:         &t.VariableClose,
		KeyBlockOpen:             &t.BlockOpen,
		KeyBlockClose:            &t.BlockClose,
		KeyOperatorThen:          &t.OperatorThen,
		KeyOperatorElse:          &t.OperatorElse,
		KeyOperatorAnd:           &t.OperatorAnd,
		KeyOperatorOr:            &t.OperatorOr,
		KeyOperatorNot:           &t.OperatorNot,
		KeyOneLineComment:        &t.OneLineComment,
		KeyMultiLineCommentOpen:  &t.MultiLineCommentOpen,
		KeyMultiLineCommentClose: &t.MultiLineCommentClose,
	}
}

func validatorNamed(name string) (scriptkit.Validator, error) {
	switch strings.ToLower(name) {
	case ValidatorSQL:
		return scriptkit.SQLValidator, nil
	case ValidatorJSON:
		return scriptkit.JSONValidator, nil
	case ValidatorNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown validator %q", name)
	}
}

var knownKeys = []string{
	KeyBase,
	KeyExpressionOpen, KeyExpressionClose,
	KeyVariableOpen, KeyVariableClose,
	KeyBlockOpen, KeyBlockClose,
	KeyOperatorThen, KeyOperatorElse, KeyOperatorAnd, KeyOperatorOr, KeyOperatorNot,
	KeyOneLineComment, KeyMultiLineCommentOpen, KeyMultiLineCommentClose,
	KeyRemoveComments, KeyRemoveBlankLines,
	KeyValidator, KeyForbid,
}

func checkKeys(cfg Config) error {
	var unknown []string
	for _, k := range cfg.Keys() {
		if !slices.Contains(knownKeys, k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return fmt.Errorf("unknown template keys: %s", strings.Join(unknown, ", "))
	}
	return nil
}
