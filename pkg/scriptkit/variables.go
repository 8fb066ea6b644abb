package scriptkit

import (
	"io"
	"strings"

	"github.com/valyala/fasttemplate"
)

// substitute rewrites every innermost variable region in one pass. A region
// naming a binding becomes its value, a region carrying a then or else
// operator is left for conditional resolution, and anything else is
// removed. Inserted values are not scanned again.
func (r *Replacer) substitute(text string, bindings map[string]string) string {
	open, closing := r.tmpl.Variables()
	if !strings.Contains(text, open) {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))
	// strings.Builder never fails, so neither does ExecuteFunc.
	_, _ = fasttemplate.ExecuteFunc(text, open, closing, &sb, func(w io.Writer, tag string) (int, error) {
		var written int
		name := tag
		// fasttemplate pairs an open with the next close; anything before
		// the last open inside the tag belongs to an outer region.
		if i := strings.LastIndex(tag, open); i >= 0 {
			n, err := io.WriteString(w, open+tag[:i])
			written += n
			if err != nil {
				return written, err
			}
			name = tag[i+len(open):]
		}

		if value, ok := bindings[strings.TrimSpace(name)]; ok {
			n, err := io.WriteString(w, value)
			return written + n, err
		}
		if strings.Contains(name, r.tmpl.OperatorThen) || strings.Contains(name, r.tmpl.OperatorElse) {
			n, err := io.WriteString(w, open+name+closing)
			return written + n, err
		}
		return written, nil
	})
	return sb.String()
}
