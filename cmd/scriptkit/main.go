// Binary scriptkit resolves script templates from a file, stdin or a
// SQLite catalog.
//
// Usage:
//
//	scriptkit -template_file query.sql -var id=42 -var name=Smith
//	scriptkit -template json -strip < body.json
//	scriptkit -catalog scripts.db -import patients.sql=sql/patients.sql
//	scriptkit -catalog scripts.db -script patients.sql -var id=42 -output out.sql
package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
