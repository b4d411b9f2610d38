package vcf

import (
	"fmt"
	"regexp"
)

// ValidateOptionalPolicy is the stateless semantic policy that cross-checks
// each Record against accumulated header state and global invariants, per
// spec.md §4.7. Its only configuration is the ploidy-mismatch severity; the
// dedupe-undefined switch lives on ParsingState, and all actual state lives
// in ParsingState/Source.
type ValidateOptionalPolicy struct {
	// PloidyMismatchSeverity controls whether an observed-vs-configured
	// ploidy mismatch is a warning (default) or an error.
	PloidyMismatchSeverity Severity
}

// NewValidateOptionalPolicy returns the policy with spec.md §9's documented
// default: ploidy mismatches are warnings.
func NewValidateOptionalPolicy() *ValidateOptionalPolicy {
	return &ValidateOptionalPolicy{PloidyMismatchSeverity: SeverityWarning}
}

// CheckMetaSection runs once, after the header is complete.
func (p *ValidateOptionalPolicy) CheckMetaSection(state *ParsingState) Diagnostic {
	if !state.Source.HasMetaEntry("reference") {
		return NewMetaSectionError(state.NLines, "A valid 'reference' entry is not listed in the meta section")
	}
	return nil
}

// CheckBodySection is reserved; spec.md §4.7 currently defines no checks here.
func (p *ValidateOptionalPolicy) CheckBodySection(state *ParsingState) Diagnostic {
	return nil
}

// CheckBodyEntry applies the per-record checks (a)-(i) of spec.md §4.7, in
// order. Each check emits its own diagnostic and does not abort the
// remaining checks for the same record.
func (p *ValidateOptionalPolicy) CheckBodyEntry(state *ParsingState, record *Record) []Diagnostic {
	var diags []Diagnostic
	add := func(d Diagnostic) {
		if d != nil {
			diags = append(diags, d)
		}
	}

	add(p.checkPloidy(state, record))
	add(p.checkPositionZero(state, record))
	diags = append(diags, p.checkIDCommas(state, record)...)
	diags = append(diags, p.checkIndelFirstNucleotide(state, record)...)
	add(p.checkContigDeclared(state, record))
	diags = append(diags, p.checkAltDeclared(state, record)...)
	diags = append(diags, p.checkFilterDeclared(state, record)...)
	diags = append(diags, p.checkInfoDeclared(state, record)...)
	diags = append(diags, p.checkFormatDeclared(state, record)...)

	return diags
}

// (a) Ploidy consistency.
func (p *ValidateOptionalPolicy) checkPloidy(state *ParsingState, record *Record) Diagnostic {
	if len(record.Format) == 0 || record.Format[0] != "GT" {
		return nil
	}

	ploidy := 0
	for i, sample := range record.Samples {
		subfields := SampleSubfields(sample)
		alleles := SplitGenotype(subfields[0])

		if ploidy > 0 {
			if len(alleles) != ploidy {
				return NewSamplesFieldBodyError(
					state.NLines,
					fmt.Sprintf("Sample #%d has %d allele(s), but %d were found in others", i+1, len(alleles), ploidy),
					"GT", ploidy)
			}
		} else {
			ploidy = len(alleles)
		}
	}

	provided := state.Source.Ploidy.PloidyFor(record.Chromosome)
	if provided != ploidy {
		msg := fmt.Sprintf(
			"The specified ploidy for contig %q was %d, which doesn't match the genotypes, which show ploidy %d",
			record.Chromosome, provided, ploidy)
		if p.PloidyMismatchSeverity == SeverityError {
			return NewSamplesFieldBodyError(state.NLines, msg, "GT", provided)
		}
		return NewSamplesFieldBodyWarning(state.NLines, msg, "GT", provided)
	}
	return nil
}

// (b) Position zero should only be used for telomeres.
func (p *ValidateOptionalPolicy) checkPositionZero(state *ParsingState, record *Record) Diagnostic {
	if record.Position == 0 {
		return NewPositionBodyError(state.NLines, "Position zero should only be used to reference a telomere", "0")
	}
	return nil
}

// (c) ID comma should be a semicolon.
func (p *ValidateOptionalPolicy) checkIDCommas(state *ParsingState, record *Record) []Diagnostic {
	var diags []Diagnostic
	for _, id := range record.IDs {
		for i := 0; i < len(id); i++ {
			if id[i] == ',' {
				diags = append(diags, NewIdBodyError(state.NLines,
					"Comma found in the ID column; if used as separator, please replace it with semi-colon", id))
				break
			}
		}
	}
	return diags
}

// (d) Indel ref/alt must share the first nucleotide.
func (p *ValidateOptionalPolicy) checkIndelFirstNucleotide(state *ParsingState, record *Record) []Diagnostic {
	var diags []Diagnostic
	for i, alt := range record.AlternateAlleles {
		if record.Types[i] == INDEL && (len(alt) == 0 || alt[0] != record.ReferenceAllele[0]) {
			diags = append(diags, NewReferenceAlleleBodyError(state.NLines,
				"Reference and alternate alleles do not share the first nucleotide", alt))
		}
	}
	return diags
}

// isDeclared scans a category's meta entries for a KeyValue whose ID matches.
func isDeclared(entries []*MetaEntry, id string) bool {
	for _, e := range entries {
		if e.Structure == KeyValue && e.KV["ID"] == id {
			return true
		}
	}
	return false
}

// checkDeclared implements the shared well-defined/undefined memoization
// dance used by checks (e)-(i).
func (p *ValidateOptionalPolicy) checkDeclared(state *ParsingState, category, id, field, message string) Diagnostic {
	if state.IsWellDefinedMeta(category, id) {
		return nil
	}
	if state.DedupeUndefined && state.IsUndefinedMeta(category, id) {
		return nil
	}

	if isDeclared(state.Source.MetaEntries(category), id) {
		state.AddWellDefinedMeta(category, id)
		return nil
	}

	state.AddUndefinedMeta(category, id)
	return NewNoMetaDefinitionError(state.NLines, message, field, id)
}

// (e) Contig must be declared.
func (p *ValidateOptionalPolicy) checkContigDeclared(state *ParsingState, record *Record) Diagnostic {
	chrom := record.Chromosome
	return p.checkDeclared(state, "contig", chrom, "CHROM",
		"Chromosome/contig '"+chrom+"' is not described in a 'contig' meta description")
}

var structuralAltRegexp = regexp.MustCompile(`<([A-Za-z0-9:_]+)>`)

// (f) Structural alternates of the form <ID> must be declared.
func (p *ValidateOptionalPolicy) checkAltDeclared(state *ParsingState, record *Record) []Diagnostic {
	var diags []Diagnostic
	for _, alt := range record.AlternateAlleles {
		m := structuralAltRegexp.FindStringSubmatch(alt)
		if m == nil {
			continue
		}
		altID := m[1]
		if d := p.checkDeclared(state, "ALT", altID, "ALT",
			"Alternate '<"+altID+">' is not listed in a valid meta-data ALT entry"); d != nil {
			diags = append(diags, d)
		}
	}
	return diags
}

// (g) FILTER must be declared, except PASS/".".
func (p *ValidateOptionalPolicy) checkFilterDeclared(state *ParsingState, record *Record) []Diagnostic {
	var diags []Diagnostic
	for _, filter := range record.Filters {
		if filter == "PASS" || filter == "." {
			continue
		}
		if d := p.checkDeclared(state, "FILTER", filter, "FILTER",
			"Filter '"+filter+"' is not listed in a valid meta-data FILTER entry"); d != nil {
			diags = append(diags, d)
		}
	}
	return diags
}

// (h) INFO keys must be declared, except ".".
func (p *ValidateOptionalPolicy) checkInfoDeclared(state *ParsingState, record *Record) []Diagnostic {
	var diags []Diagnostic
	for _, field := range record.Info {
		if field.Key == "." {
			continue
		}
		if d := p.checkDeclared(state, "INFO", field.Key, "INFO",
			"Info '"+field.Key+"' is not listed in a valid meta-data INFO entry"); d != nil {
			diags = append(diags, d)
		}
	}
	return diags
}

// (i) FORMAT entries must be declared.
func (p *ValidateOptionalPolicy) checkFormatDeclared(state *ParsingState, record *Record) []Diagnostic {
	var diags []Diagnostic
	for _, fm := range record.Format {
		if d := p.checkDeclared(state, "FORMAT", fm, "FORMAT",
			"Format '"+fm+"' is not listed in a valid meta-data FORMAT entry"); d != nil {
			diags = append(diags, d)
		}
	}
	return diags
}
