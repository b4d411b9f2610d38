package vcf

import (
	"io"
	"strconv"
	"strings"
)

// Sink receives diagnostics as the driver produces them, matching spec.md
// §4.1's report collaborator ("write_error", "write_warning"). The core
// never formats diagnostics itself.
type Sink interface {
	WriteError(Diagnostic)
	WriteWarning(Diagnostic)
}

// report forwards a diagnostic to the right Sink method by its severity.
func report(sink Sink, d Diagnostic) {
	if d == nil {
		return
	}
	if d.Severity() == SeverityWarning {
		sink.WriteWarning(d)
	} else {
		sink.WriteError(d)
	}
}

// Summary tallies how many diagnostics of each severity a Validate run produced.
type Summary struct {
	LinesRead int
	Errors    int
	Warnings  int
}

// HasErrors reports whether the run should fail the enclosing CLI's exit code.
func (s Summary) HasErrors() bool { return s.Errors > 0 }

func (s *Summary) count(d Diagnostic) {
	if d.Severity() == SeverityWarning {
		s.Warnings++
	} else {
		s.Errors++
	}
}

// Validate drives one VCF file end to end: tokenizes it, builds Source,
// MetaEntry and Record values through their validating constructors, runs
// ValidateOptionalPolicy on each Record, and reports every diagnostic to
// sink. It never aborts on a single bad line; the file is processed to EOF.
// formatOverride, when nonzero, replaces the tokenizer's sniffed InputFormat
// on Source (spec.md §6's "--input-format override"; InputFormat is
// informational only and never changes how bytes are read).
func Validate(path string, version Version, ploidy Ploidy, dedupeUndefined bool, formatOverride InputFormat, policy *ValidateOptionalPolicy, sink Sink) (Summary, error) {
	tok, err := newTokenizer(path)
	if err != nil {
		return Summary{}, err
	}
	defer tok.close()

	format := tok.format
	if formatOverride != 0 {
		format = formatOverride
	}
	source := NewSource(path, format, version, ploidy, nil)
	state := NewParsingState(source)
	state.DedupeUndefined = dedupeUndefined

	var summary Summary
	headerSeen := false

	for {
		line, err := tok.nextLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return summary, err
		}
		state.NLines = tok.lineNumber
		summary.LinesRead++

		switch tok.classify(line) {
		case lineMeta:
			handleMetaLine(state, line, sink, &summary)

		case lineHeader:
			samples := parseHeaderLine(line)
			source.Samples = samples
			headerSeen = true

			if d := policy.CheckMetaSection(state); d != nil {
				report(sink, d)
				summary.count(d)
			}

		case lineBody:
			if !headerSeen {
				d := NewHeaderSectionError(state.NLines, "expected #CHROM header line before body")
				report(sink, d)
				summary.count(d)
				continue
			}
			handleBodyLine(state, line, policy, sink, &summary)
		}
	}

	if !headerSeen {
		d := NewHeaderSectionError(state.NLines, "no #CHROM header line found")
		report(sink, d)
		summary.count(d)
	}

	if d := policy.CheckBodySection(state); d != nil {
		report(sink, d)
		summary.count(d)
	}

	return summary, nil
}

func parseHeaderLine(line string) []string {
	cols := strings.Split(line, "\t")
	if len(cols) > 9 {
		return cols[9:]
	}
	return nil
}

func handleMetaLine(state *ParsingState, line string, sink Sink, summary *Summary) {
	pm := splitMetaLine(line)
	structure, plain, kv := parseMetaValue(pm.Raw)

	var entry *MetaEntry
	var err error

	switch structure {
	case NoValue:
		entry = NewNoValueMetaEntry(state.NLines, pm.ID, state.Source)
	case PlainValue:
		entry, err = NewPlainValueMetaEntry(state.NLines, pm.ID, plain, state.Source)
	case KeyValue:
		entry, err = NewKeyValueMetaEntry(state.NLines, pm.ID, kv, state.Source)
	}

	if err != nil {
		d := err.(Diagnostic)
		report(sink, d)
		summary.count(d)
		return
	}

	state.Source.AddMetaEntry(entry)
}

func handleBodyLine(state *ParsingState, line string, policy *ValidateOptionalPolicy, sink Sink, summary *Summary) {
	bf, err := splitBodyLine(line)
	if err != nil {
		d := NewBodySectionError(state.NLines, err.Error())
		report(sink, d)
		summary.count(d)
		return
	}

	ids := splitMissing(bf.ID, ';')
	filters := splitMissing(bf.Filter, ';')
	alts := strings.Split(bf.Alt, ",")
	info := parseInfo(bf.Info)

	quality, qualityMissing := MissingQuality, true
	if bf.Qual != "." {
		qualityMissing = false
		quality, err = strconv.ParseFloat(bf.Qual, 64)
		if err != nil {
			d := NewQualityBodyError(state.NLines, "Quality is not a valid number", bf.Qual)
			report(sink, d)
			summary.count(d)
			return
		}
	}

	record, err := NewRecord(
		state.NLines,
		bf.Chrom,
		bf.Pos,
		ids,
		bf.Ref,
		alts,
		quality,
		qualityMissing,
		filters,
		info,
		bf.Format,
		bf.Samples,
		state.Source,
	)
	if err != nil {
		d := err.(Diagnostic)
		report(sink, d)
		summary.count(d)
		return
	}

	for _, d := range policy.CheckBodyEntry(state, record) {
		report(sink, d)
		summary.count(d)
	}
}

// splitMissing splits s by sep unless s is the VCF missing-value sentinel ".".
func splitMissing(s string, sep byte) []string {
	if s == "." || s == "" {
		return nil
	}
	return strings.Split(s, string(sep))
}

// parseInfo splits the INFO column into its ordered (key, value) pairs.
func parseInfo(info string) []InfoField {
	if info == "." || info == "" {
		return nil
	}
	parts := strings.Split(info, ";")
	fields := make([]InfoField, 0, len(parts))
	for _, kv := range parts {
		if i := strings.IndexByte(kv, '='); i >= 0 {
			fields = append(fields, InfoField{Key: kv[:i], Value: kv[i+1:]})
		} else {
			fields = append(fields, InfoField{Key: kv, Value: ""})
		}
	}
	return fields
}
