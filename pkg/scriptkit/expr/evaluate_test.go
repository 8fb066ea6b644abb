package expr

import (
	"reflect"
	"testing"
)

func TestEval_Operands(t *testing.T) {
	vars := map[string]string{"a": "x", "b": "y"}

	tests := []struct {
		name      string
		condition string
		want      bool
		refs      []string
	}{
		{name: "known name", condition: "a", want: true, refs: []string{"a"}},
		{name: "known name trimmed", condition: "   a  ", want: true, refs: []string{"a"}},
		{name: "unknown name", condition: "c", want: false},
		{name: "negated known", condition: "!a", want: false},
		{name: "negated unknown", condition: "!c", want: true},
		{name: "negated with spaces", condition: " ! c ", want: true},
		{name: "literal true", condition: "true", want: true},
		{name: "literal false", condition: "false", want: false},
		{name: "empty condition", condition: "", want: false},
		{name: "blank condition", condition: "   ", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Eval(tt.condition, vars)
			if got.Truth != tt.want {
				t.Errorf("Eval(%q).Truth = %v, want %v", tt.condition, got.Truth, tt.want)
			}
			if !reflect.DeepEqual(got.Referenced, tt.refs) {
				t.Errorf("Eval(%q).Referenced = %v, want %v", tt.condition, got.Referenced, tt.refs)
			}
		})
	}
}

func TestEval_LogicalOperators(t *testing.T) {
	tests := []struct {
		name      string
		condition string
		vars      map[string]string
		want      bool
	}{
		{name: "and both bound", condition: "a&&b", vars: map[string]string{"a": "1", "b": "2"}, want: true},
		{name: "and left unbound", condition: "a&&b", vars: map[string]string{"b": "2"}, want: false},
		{name: "and right unbound", condition: "a && b", vars: map[string]string{"a": "1"}, want: false},
		{name: "or one bound", condition: "a||b", vars: map[string]string{"b": "2"}, want: true},
		{name: "or none bound", condition: "a || b", vars: nil, want: false},
		{name: "and with negation", condition: "a&&!b", vars: map[string]string{"a": "1", "b": "2"}, want: false},
		{name: "or with negation", condition: "a||!b", vars: map[string]string{"a": "1", "b": "2"}, want: true},
		{name: "negated or", condition: "!a||b", vars: map[string]string{"a": "1", "b": "2"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Eval(tt.condition, tt.vars)
			if got.Truth != tt.want {
				t.Errorf("Eval(%q, %v).Truth = %v, want %v", tt.condition, tt.vars, got.Truth, tt.want)
			}
		})
	}
}

// The fold has no precedence: a || b && c is (a || b) && c.
func TestEval_LeftToRightWithoutPrecedence(t *testing.T) {
	tests := []struct {
		name      string
		condition string
		vars      map[string]string
		want      bool
	}{
		{
			name:      "or then and with c unbound",
			condition: "a || b && c",
			vars:      map[string]string{"a": "1"},
			want:      false,
		},
		{
			name:      "explicit grouping restores conventional reading",
			condition: "a || (b && c)",
			vars:      map[string]string{"a": "1"},
			want:      true,
		},
		{
			name:      "and then or",
			condition: "a && b || c",
			vars:      map[string]string{"c": "1"},
			want:      true,
		},
		{
			name:      "long chain",
			condition: "a && b || c && d",
			vars:      map[string]string{"a": "1", "c": "1"},
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Eval(tt.condition, tt.vars)
			if got.Truth != tt.want {
				t.Errorf("Eval(%q, %v).Truth = %v, want %v", tt.condition, tt.vars, got.Truth, tt.want)
			}
		})
	}
}

func TestEval_Blocks(t *testing.T) {
	vars := map[string]string{
		"var.iable": "value",
		"var1":      "test",
		"var2":      "d''ata",
		"var3":      "super",
		"var4":      "toto",
	}

	tests := []struct {
		name      string
		condition string
		want      bool
		refs      []string
	}{
		{
			name:      "nested blocks resolved first",
			condition: "var.iable&&(var2||unknown)&&(var3||unknown)",
			want:      true,
			refs:      []string{"var2", "var3", "var.iable"},
		},
		{
			name:      "block or block",
			condition: "(var1&&var2)||(var3&&!var4)",
			want:      true,
			refs:      []string{"var1", "var2", "var3"},
		},
		{
			name:      "both blocks false",
			condition: "(var1&&!var2)||(var3&&!var4)",
			want:      false,
			refs:      []string{"var1", "var3"},
		},
		{
			name:      "deep nesting true",
			condition: "!var.iable||(unknown&&var3||(var2&&!unknown))",
			want:      true,
			refs:      []string{"var2", "var3"},
		},
		{
			name:      "deep nesting false",
			condition: "!var.iable||(unknown&&var3||(var2&&unknown))",
			want:      false,
			refs:      []string{"var2", "var3"},
		},
		{
			name:      "not before false block reads literal false",
			condition: "!(unknown||other)",
			want:      true,
		},
		{
			name:      "not before true block reads literal true",
			condition: " ! ( var1 ) ",
			want:      true,
			refs:      []string{"var1"},
		},
		{
			name:      "unmatched open kept as text",
			condition: "(var1",
			want:      false,
		},
		{
			name:      "unmatched close kept as text",
			condition: "var1)",
			want:      false,
		},
		{
			name:      "text fused to block",
			condition: "x(var1)",
			want:      false,
			refs:      []string{"var1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Eval(tt.condition, vars)
			if got.Truth != tt.want {
				t.Errorf("Eval(%q).Truth = %v, want %v", tt.condition, got.Truth, tt.want)
			}
			if !reflect.DeepEqual(got.Referenced, tt.refs) {
				t.Errorf("Eval(%q).Referenced = %v, want %v", tt.condition, got.Referenced, tt.refs)
			}
		})
	}
}

func TestEval_DuplicateReferencesKept(t *testing.T) {
	got := Eval("a && a", map[string]string{"a": "1"})
	want := []string{"a", "a"}
	if !reflect.DeepEqual(got.Referenced, want) {
		t.Errorf("Referenced = %v, want %v", got.Referenced, want)
	}
}

func TestEvaluator_CustomTokens(t *testing.T) {
	e := New(Tokens{
		BlockOpen:  "[",
		BlockClose: "]",
		And:        " AND ",
		Or:         " OR ",
		Not:        "NOT ",
	})
	known := func(name string) bool { return name == "a" || name == "c" }

	got := e.Evaluate("a AND [b OR c]", known)
	if !got.Truth {
		t.Errorf("Truth = false, want true")
	}
	if want := []string{"c", "a"}; !reflect.DeepEqual(got.Referenced, want) {
		t.Errorf("Referenced = %v, want %v", got.Referenced, want)
	}

	got = e.Evaluate("NOT b AND NOT a", known)
	if got.Truth {
		t.Errorf("Truth = true, want false")
	}

	got = e.Evaluate("NOT b AND NOT [a]", known)
	if !got.Truth {
		t.Errorf("Truth = false, want true")
	}
}

func TestEval_NotBeforeBlockReadsLiteral(t *testing.T) {
	tests := []struct {
		name      string
		condition string
		vars      map[string]string
		want      bool
	}{
		{name: "true block", condition: "!(a)", vars: map[string]string{"a": "x"}, want: true},
		{name: "false block", condition: "!(a)", vars: nil, want: true},
		{name: "name true bound", condition: "!(a)", vars: map[string]string{"a": "x", "true": "t"}, want: false},
		{name: "name false bound", condition: "!(a&&b)", vars: map[string]string{"a": "x", "false": "f"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Eval(tt.condition, tt.vars)
			if got.Truth != tt.want {
				t.Errorf("Eval(%q).Truth = %v, want %v", tt.condition, got.Truth, tt.want)
			}
		})
	}
}

func TestEvaluator_NilKnown(t *testing.T) {
	got := New(DefaultTokens()).Evaluate("!a", nil)
	if !got.Truth {
		t.Errorf("Truth = false, want true")
	}
}

func TestNew_FillsEmptyTokens(t *testing.T) {
	e := New(Tokens{And: "AND"})
	got := e.Tokens()
	want := DefaultTokens()
	want.And = "AND"
	if got != want {
		t.Errorf("Tokens() = %+v, want %+v", got, want)
	}
}

func TestParse_Structure(t *testing.T) {
	seq := New(DefaultTokens()).Parse("a && (b || c) || d")

	if len(seq.Terms) != 3 {
		t.Fatalf("len(Terms) = %d, want 3", len(seq.Terms))
	}
	if want := []Op{OpAnd, OpOr}; !reflect.DeepEqual(seq.Ops, want) {
		t.Errorf("Ops = %v, want %v", seq.Ops, want)
	}

	group := seq.Terms[1].Parts[1].Group
	if group == nil {
		t.Fatalf("second term has no block: %+v", seq.Terms[1])
	}
	if len(group.Terms) != 2 || group.Ops[0] != OpOr {
		t.Errorf("block = %+v, want two terms joined by or", group)
	}
}

func TestOp_String(t *testing.T) {
	if OpAnd.String() != "and" || OpOr.String() != "or" {
		t.Errorf("unexpected names: %s %s", OpAnd, OpOr)
	}
}
