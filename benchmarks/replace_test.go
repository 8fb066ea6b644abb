package benchmarks

import (
	"strings"
	"testing"

	"github.com/randalmurphal/scriptkit/pkg/scriptkit"
	"github.com/randalmurphal/scriptkit/pkg/scriptkit/expr"
	"github.com/randalmurphal/scriptkit/pkg/scriptkit/strip"
)

const patientSearch = `-- patient search
SELECT p.id, p.name, p.first_name
FROM patients p
WHERE 1 = 1
/* optional filters */
{status?? AND p.status = {status}}
{name?? AND p.name LIKE '{name}%'}
{first_name?? AND p.first_name LIKE '{first_name}%'}
{(sector||unit)&&!doctor?? AND p.sector_id = {sector::0}}
{doctor?? AND p.doctor_id = {doctor}}
{birthday?? AND p.birthday = '{birthday}'}
ORDER BY {sort::p.name}
`

var patientBindings = map[string]string{
	"status": "1",
	"name":   "SMI",
	"sector": "12",
	"sort":   "p.id",
}

// BenchmarkReplace_Script measures a realistic search query.
func BenchmarkReplace_Script(b *testing.B) {
	r := scriptkit.New()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.Replace(patientSearch, patientBindings)
	}
}

// BenchmarkProcess_Script includes comment and blank-line stripping.
func BenchmarkProcess_Script(b *testing.B) {
	r := scriptkit.New()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.Process(patientSearch, patientBindings)
	}
}

// BenchmarkReplace_Large measures a script with many expressions.
func BenchmarkReplace_Large(b *testing.B) {
	var sb strings.Builder
	for i := 0; i < 500; i++ {
		sb.WriteString(patientSearch)
	}
	text := sb.String()
	r := scriptkit.New()

	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.Replace(text, patientBindings)
	}
}

// BenchmarkReplace_DeepNesting measures nested expressions.
func BenchmarkReplace_DeepNesting(b *testing.B) {
	const depth = 50
	text := strings.Repeat("{a??x", depth) + strings.Repeat("}", depth)
	bindings := map[string]string{"a": "1"}
	r := scriptkit.New()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.Replace(text, bindings)
	}
}

// BenchmarkEvaluate measures condition evaluation alone.
func BenchmarkEvaluate(b *testing.B) {
	e := expr.New(expr.DefaultTokens())
	known := func(name string) bool { return name == "a" || name == "c" }

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.Evaluate("!x||(a&&b||(c&&!d))&&a", known)
	}
}

// BenchmarkStripComments measures comment removal.
func BenchmarkStripComments(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = strip.Comments(patientSearch, "--", "/*", "*/")
	}
}
