package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/randalmurphal/scriptkit/pkg/scriptkit"
	"github.com/randalmurphal/scriptkit/pkg/scriptkit/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFromYAML(t *testing.T) {
	cfg, err := config.FromYAML([]byte(`
base: json
remove_blank_lines: false
forbid:
  - "="
  - ";"
`))
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.String("base", ""))
	assert.False(t, cfg.Bool("remove_blank_lines", true))
	assert.Equal(t, []string{"=", ";"}, cfg.StringSlice("forbid", nil))
}

func TestFromYAML_Invalid(t *testing.T) {
	_, err := config.FromYAML([]byte("base: [unclosed"))
	assert.Error(t, err)
}

func TestFromYAML_Empty(t *testing.T) {
	cfg, err := config.FromYAML(nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Keys())
}

func TestFromYAML_MultipleDocuments(t *testing.T) {
	_, err := config.FromYAML([]byte("base: sql\n---\nbase: json\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than one document")
}

func TestFromJSON(t *testing.T) {
	cfg, err := config.FromJSON([]byte(`{"base": "sql", "remove_comments": true, "forbid": ["="]}`))
	require.NoError(t, err)

	assert.Equal(t, "sql", cfg.String("base", ""))
	assert.True(t, cfg.Bool("remove_comments", false))
	assert.Equal(t, []string{"="}, cfg.StringSlice("forbid", nil))
}

func TestFromJSON_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantMsg string
	}{
		{"truncated", `{"base": `, "parse json"},
		{"array", `["base"]`, "parse json"},
		{"null", `null`, "expected an object"},
		{"trailing data", `{"base": "sql"} {"base": "json"}`, "parse json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.FromJSON([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestFromFile(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		cfg, err := config.FromFile(writeFile(t, "t.yaml", "base: json\n"))
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.String("base", ""))
	})

	t.Run("yml", func(t *testing.T) {
		cfg, err := config.FromFile(writeFile(t, "t.YML", "base: json\n"))
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.String("base", ""))
	})

	t.Run("json", func(t *testing.T) {
		cfg, err := config.FromFile(writeFile(t, "t.json", `{"base": "json"}`))
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.String("base", ""))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := config.FromFile(writeFile(t, "t.toml", "base = 'json'"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported config file extension")
		assert.Contains(t, err.Error(), ".json, .yaml, .yml")
	})

	t.Run("parse error names the file", func(t *testing.T) {
		path := writeFile(t, "bad.json", `{"base": `)
		_, err := config.FromFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.FromFile(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestExtensions(t *testing.T) {
	assert.Equal(t, []string{".json", ".yaml", ".yml"}, config.Extensions())
}

func TestTemplateFromFile(t *testing.T) {
	t.Run("yaml section", func(t *testing.T) {
		path := writeFile(t, "elastic.yaml", `
template:
  base: json
  one_line_comment: "#"
  forbid: ["="]
`)
		tmpl, err := config.TemplateFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<", tmpl.ExpressionOpen)
		assert.Equal(t, "#", tmpl.OneLineComment)

		out, err := scriptkit.New(scriptkit.WithTemplate(tmpl)).Replace(`{"q": "<q>"}`, map[string]string{"q": "x"})
		require.NoError(t, err)
		assert.Equal(t, `{"q": "x"}`, out)

		_, err = scriptkit.New(scriptkit.WithTemplate(tmpl)).Replace("<q>", map[string]string{"q": "a=b"})
		assert.ErrorIs(t, err, scriptkit.ErrValidation)
	})

	t.Run("json", func(t *testing.T) {
		tmpl, err := config.TemplateFromFile(writeFile(t, "t.json", `{"expression_open": "[[", "expression_close": "]]"}`))
		require.NoError(t, err)
		assert.Equal(t, "[[", tmpl.ExpressionOpen)
		assert.Equal(t, "]]", tmpl.ExpressionClose)
	})

	t.Run("empty file gives the sql template", func(t *testing.T) {
		tmpl, err := config.TemplateFromFile(writeFile(t, "empty.yaml", ""))
		require.NoError(t, err)
		assert.Equal(t, scriptkit.SQL().ExpressionOpen, tmpl.ExpressionOpen)
		assert.True(t, tmpl.RemoveComments)
	})

	t.Run("template error names the file", func(t *testing.T) {
		path := writeFile(t, "typo.yaml", "expresion_open: \"[[\"\n")
		_, err := config.TemplateFromFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
		assert.Contains(t, err.Error(), "unknown template keys: expresion_open")
	})

	t.Run("invalid template", func(t *testing.T) {
		_, err := config.TemplateFromFile(writeFile(t, "dup.yaml", "operator_and: \"??\"\n"))
		assert.ErrorIs(t, err, scriptkit.ErrInvalidTemplate)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.TemplateFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
