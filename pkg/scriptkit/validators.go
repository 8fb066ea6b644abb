package scriptkit

import (
	"strings"
)

const singleQuote = "'"

// SQLValidator rejects values whose single quotes are not grouped in pairs:
// an odd count of single quotes fails, and so does any single quote left
// after removing every pair of adjacent quotes.
//
// It blocks the most common quote-breaking injections only. Parameters still
// have to be checked before they reach a script.
func SQLValidator(value string) error {
	if strings.Count(value, singleQuote)%2 != 0 {
		return &ValidationError{
			Value:  value,
			Reason: "value has to contain only pairs of: " + singleQuote,
		}
	}
	if strings.Contains(strings.ReplaceAll(value, singleQuote+singleQuote, ""), singleQuote) {
		return &ValidationError{
			Value:  value,
			Reason: "value has to contain only groups of pairs of: " + singleQuote,
		}
	}
	return nil
}

// JSONValidator rejects values containing < or >.
func JSONValidator(value string) error {
	for _, tok := range []string{"<", ">"} {
		if strings.Contains(value, tok) {
			return &ValidationError{
				Value:  value,
				Reason: "value cannot contain: " + tok,
			}
		}
	}
	return nil
}

// ForbidValidator returns a Validator that rejects values containing any of
// the given substrings. Empty substrings are ignored.
func ForbidValidator(forbidden ...string) Validator {
	return func(value string) error {
		for _, f := range forbidden {
			if f != "" && strings.Contains(value, f) {
				return &ValidationError{
					Value:  value,
					Reason: "value cannot contain: " + f,
				}
			}
		}
		return nil
	}
}

// ChainValidators runs validators in order and returns the first failure.
// Nil validators are skipped; with nothing left it returns nil.
func ChainValidators(validators ...Validator) Validator {
	var chain []Validator
	for _, v := range validators {
		if v != nil {
			chain = append(chain, v)
		}
	}
	switch len(chain) {
	case 0:
		return nil
	case 1:
		return chain[0]
	}
	return func(value string) error {
		for _, v := range chain {
			if err := v(value); err != nil {
				return err
			}
		}
		return nil
	}
}
