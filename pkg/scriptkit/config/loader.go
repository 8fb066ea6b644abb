package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/scriptkit/pkg/scriptkit"
)

// parsers maps a file extension to the parser for its format.
var parsers = map[string]func([]byte) (Config, error){
	".yaml": FromYAML,
	".yml":  FromYAML,
	".json": FromJSON,
}

// Extensions returns the file extensions FromFile understands, sorted.
func Extensions() []string {
	exts := make([]string, 0, len(parsers))
	for ext := range parsers {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// FromFile loads configuration from a file, picking the format from its
// extension.
func FromFile(path string) (Config, error) {
	ext := strings.ToLower(filepath.Ext(path))
	parse, ok := parsers[ext]
	if !ok {
		return Config{}, fmt.Errorf("unsupported config file extension %q (supported: %s)",
			ext, strings.Join(Extensions(), ", "))
	}

	data, err := os.ReadFile(path) //nolint:gosec // caller-supplied config path
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	cfg, err := parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// TemplateFromFile reads a template configuration file and builds the
// template it describes. See TemplateFrom for the keys.
//
// Example:
//
//	tmpl, err := config.TemplateFromFile("templates/elastic.yaml")
//	if err != nil {
//	    return err
//	}
//	r := scriptkit.New(scriptkit.WithTemplate(tmpl))
func TemplateFromFile(path string) (scriptkit.Template, error) {
	cfg, err := FromFile(path)
	if err != nil {
		return scriptkit.Template{}, err
	}
	t, err := TemplateFrom(cfg)
	if err != nil {
		return scriptkit.Template{}, fmt.Errorf("config file %s: %w", path, err)
	}
	return t, nil
}

// FromYAML parses a single YAML document into a Config. An empty document
// gives an empty Config; a stream holding more than one document is
// rejected, since later documents would otherwise be ignored.
func FromYAML(data []byte) (Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return New(nil), nil
		}
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}

	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return Config{}, fmt.Errorf("parse yaml: %w", err)
		}
		return Config{}, errors.New("parse yaml: more than one document")
	}
	return New(m), nil
}

// FromJSON parses a JSON object into a Config.
func FromJSON(data []byte) (Config, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse json: %w", err)
	}
	if m == nil {
		return Config{}, errors.New("parse json: expected an object")
	}
	return New(m), nil
}
