package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/randalmurphal/scriptkit/pkg/scriptkit"
	"github.com/randalmurphal/scriptkit/pkg/scriptkit/catalog"
	"github.com/randalmurphal/scriptkit/pkg/scriptkit/config"
)

const errCtx = "scriptkit"

type arrayFlags []string

func (af *arrayFlags) String() string {
	return strings.Join(*af, ",")
}

func (af *arrayFlags) Set(value string) error {
	*af = append(*af, value)
	return nil
}

type options struct {
	templateFile string
	output       string
	template     string
	configFile   string
	catalogPath  string
	script       string
	imports      arrayFlags
	variables    arrayFlags
	strip        bool
	verbose      bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("scriptkit", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(
		&opts.templateFile, "template_file", "",
		"Input script path (stdin if empty)",
	)

	fs.StringVar(
		&opts.output, "output", "",
		"Output file path (stdout if empty)",
	)

	fs.StringVar(
		&opts.template, "template", scriptkit.TemplateSQL,
		"Registered template name ("+strings.Join(scriptkit.TemplateNames(), ", ")+")",
	)

	fs.StringVar(
		&opts.configFile, "config", "",
		"YAML or JSON template configuration (overrides -template)",
	)

	fs.StringVar(
		&opts.catalogPath, "catalog", "",
		"SQLite script catalog path",
	)

	fs.StringVar(
		&opts.script, "script", "",
		"Name of the catalog script to render (requires -catalog)",
	)

	fs.Var(
		&opts.imports,
		"import",
		"Store a file in the catalog, NAME=FILE format (repeatable)",
	)

	fs.Var(
		&opts.variables,
		"var",
		"Binding in NAME=VALUE format (repeatable)",
	)

	fs.BoolVar(
		&opts.strip, "strip", false,
		"Apply the template's comment and blank-line stripping",
	)

	fs.BoolVar(
		&opts.verbose, "verbose", false,
		"Log debug output to stderr",
	)

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if opts.catalogPath == "" && (opts.script != "" || len(opts.imports) > 0) {
		return options{}, errors.New("-script and -import require -catalog")
	}
	if opts.catalogPath != "" && opts.templateFile != "" {
		return options{}, errors.New("-template_file cannot be combined with -catalog")
	}
	return opts, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	var logger *slog.Logger
	if opts.verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	tmpl, err := loadTemplate(opts)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	bindings, err := parseBindings(opts.variables)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	replacer := scriptkit.New(scriptkit.WithTemplate(tmpl))

	var result string
	if opts.catalogPath != "" {
		result, err = runCatalog(opts, replacer, logger, bindings)
	} else {
		result, err = runText(opts, replacer, stdin, bindings)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := writeOutput(opts.output, stdout, result); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}
	return nil
}

func loadTemplate(opts options) (scriptkit.Template, error) {
	if opts.configFile != "" {
		return config.TemplateFromFile(opts.configFile)
	}

	tmpl, ok := scriptkit.LookupTemplate(opts.template)
	if !ok {
		return scriptkit.Template{}, fmt.Errorf("unknown template %q (registered: %s)",
			opts.template, strings.Join(scriptkit.TemplateNames(), ", "))
	}
	return tmpl, nil
}

// parseBindings splits NAME=VALUE pairs at the first '='. Later pairs win.
func parseBindings(pairs []string) (map[string]string, error) {
	bindings := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid -var %q: expected NAME=VALUE", pair)
		}
		bindings[strings.TrimSpace(name)] = value
	}
	return bindings, nil
}

func runText(opts options, replacer *scriptkit.Replacer, stdin io.Reader, bindings map[string]string) (string, error) {
	var (
		text []byte
		err  error
	)
	if opts.templateFile != "" {
		text, err = os.ReadFile(opts.templateFile) //nolint:gosec // path from CLI flag
	} else {
		text, err = io.ReadAll(stdin)
	}
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}

	if opts.strip {
		return replacer.Process(string(text), bindings)
	}
	return replacer.Replace(string(text), bindings)
}

func runCatalog(opts options, replacer *scriptkit.Replacer, logger *slog.Logger, bindings map[string]string) (string, error) {
	store, err := catalog.NewSQLiteStore(opts.catalogPath)
	if err != nil {
		return "", fmt.Errorf("opening catalog: %w", err)
	}
	defer store.Close()

	// Render always processes; without -strip the flags are cleared so the
	// output matches text mode.
	if !opts.strip {
		tmpl := replacer.Template()
		tmpl.RemoveComments, tmpl.RemoveBlankLines = false, false
		replacer = scriptkit.New(scriptkit.WithTemplate(tmpl))
	}

	loader := scriptkit.NewLoader(store,
		scriptkit.WithReplacer(replacer),
		scriptkit.WithLogger(logger),
	)

	for _, imp := range opts.imports {
		name, path, ok := strings.Cut(imp, "=")
		if !ok || strings.TrimSpace(name) == "" || path == "" {
			return "", fmt.Errorf("invalid -import %q: expected NAME=FILE", imp)
		}
		text, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
		if err != nil {
			return "", fmt.Errorf("reading import: %w", err)
		}
		if err := loader.Add(strings.TrimSpace(name), string(text)); err != nil {
			return "", err
		}
	}

	if opts.script != "" {
		return loader.Render(context.Background(), opts.script, bindings)
	}
	return listing(store)
}

// listing prints one "name<TAB>size" line per stored script.
func listing(store catalog.Store) (string, error) {
	infos, err := store.List()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, info := range infos {
		fmt.Fprintf(&sb, "%s\t%d\n", info.Name, info.Size)
	}
	return sb.String(), nil
}

func writeOutput(path string, stdout io.Writer, result string) error {
	if path != "" {
		if err := atomic.WriteFile(path, strings.NewReader(result)); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}
	if _, err := io.WriteString(stdout, result); err != nil {
		return fmt.Errorf("writing to stdout: %w", err)
	}
	return nil
}
