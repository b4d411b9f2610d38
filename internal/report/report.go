// Package report provides diagnostic sinks for VCF validation output.
package report

import (
	"fmt"
	"io"

	"github.com/vcfval/vcf-validator/internal/vcf"
)

// StdoutSink writes one line per diagnostic to an io.Writer: errors print
// the diagnostic's Error() text ("line N: Kind: message"), warnings print the
// same text suffixed with " (warning)".
type StdoutSink struct {
	w io.Writer
}

// NewStdoutSink wraps w as a vcf.Sink.
func NewStdoutSink(w io.Writer) *StdoutSink {
	return &StdoutSink{w: w}
}

func (s *StdoutSink) WriteError(d vcf.Diagnostic) {
	fmt.Fprintln(s.w, d.Error())
}

func (s *StdoutSink) WriteWarning(d vcf.Diagnostic) {
	fmt.Fprintln(s.w, d.Error()+" (warning)")
}

var _ vcf.Sink = (*StdoutSink)(nil)
