/*
Package config loads template settings from YAML or JSON files.

# Overview

Config wraps a map[string]any and provides typed accessor methods that
return a default when a key is missing or holds the wrong type. TemplateFrom
turns a Config into a validated scriptkit.Template.

# Basic Usage

	tmpl, err := config.TemplateFromFile("template.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	r := scriptkit.New(scriptkit.WithTemplate(tmpl))

FromFile picks the format from the extension (.yaml, .yml or .json). A YAML
file must hold a single document and a JSON file a single object.

# Template Keys

A template file names a registered base template and overrides any of its
tokens:

	base: json
	expression_open: "[["
	expression_close: "]]"
	one_line_comment: "#"
	remove_blank_lines: false
	validator: json
	forbid: ["=", ";"]

The keys may also sit under a top-level "template" section. Unknown keys
are rejected so that typos do not silently fall back to defaults.

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
