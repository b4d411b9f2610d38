package vcf

import (
	"strings"
)

// RecordType classifies a single alternate allele relative to the reference,
// per spec.md §4.6.
type RecordType int

const (
	SNV RecordType = iota
	MNV
	INDEL
	STRUCTURAL
	NoVariation
	Other
)

func (t RecordType) String() string {
	switch t {
	case SNV:
		return "SNV"
	case MNV:
		return "MNV"
	case INDEL:
		return "INDEL"
	case STRUCTURAL:
		return "STRUCTURAL"
	case NoVariation:
		return "NO_VARIATION"
	default:
		return "OTHER"
	}
}

// classify implements spec.md §4.6's classification rules.
func classify(ref, alt string) RecordType {
	switch {
	case strings.HasPrefix(alt, "<"):
		return STRUCTURAL
	case alt == "*" || alt == "":
		return NoVariation
	case len(ref) == 1 && len(alt) == 1:
		return SNV
	case len(ref) == len(alt) && len(ref) > 1:
		return MNV
	case len(ref) != len(alt):
		return INDEL
	default:
		return Other
	}
}

// InfoField is one ordered (key, value) pair from the INFO column. "." is a
// permitted missing-value key.
type InfoField struct {
	Key   string
	Value string
}

// Record is a single VCF body line, validated on construction for the
// structural rules of spec.md §4.5.
type Record struct {
	Line             int
	Chromosome       string
	Position         uint64
	IDs              []string
	ReferenceAllele  string
	AlternateAlleles []string
	Types            []RecordType
	Quality          float64
	QualityMissing   bool
	Filters          []string
	Info             []InfoField
	Format           []string
	Samples          []string
	Source           *Source
}

// MissingQuality is the sentinel Quality value meaning "missing" (VCF's `.`).
const MissingQuality = -1.0

// NewRecord constructs and structurally validates a Record. Checks run in
// the order of spec.md §4.5; the first failure aborts construction.
func NewRecord(
	line int,
	chromosome string,
	position uint64,
	ids []string,
	referenceAllele string,
	alternateAlleles []string,
	quality float64,
	qualityMissing bool,
	filters []string,
	info []InfoField,
	format []string,
	samples []string,
	source *Source,
) (*Record, error) {
	// 1. chromosome: no whitespace, no ':'
	if strings.ContainsAny(chromosome, " \t\r\n") {
		return nil, NewChromosomeBodyError(line, "Chromosome contains whitespace", chromosome)
	}
	if strings.ContainsRune(chromosome, ':') {
		return nil, NewChromosomeBodyError(line, "Chromosome contains a colon", chromosome)
	}

	// 2. position >= 0 is implicit in the uint64 type; 0 passes through here,
	// semantic policy rejects it except for telomeres.

	// 3. ids: no whitespace; no duplicates (v4.3+, and per spec.md, earlier versions too)
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if strings.ContainsAny(id, " \t\r\n") {
			return nil, NewIdBodyError(line, "ID contains whitespace", id)
		}
		if seen[id] {
			return nil, NewIdBodyError(line, "Duplicate ID value: "+id, id)
		}
		seen[id] = true
	}

	// 4. reference_allele: nonempty, valid bases
	if referenceAllele == "" {
		return nil, NewReferenceAlleleBodyError(line, "Reference allele is empty", referenceAllele)
	}
	if !isValidBases(referenceAllele) {
		return nil, NewReferenceAlleleBodyError(line, "Reference allele contains invalid characters", referenceAllele)
	}

	// 5. alternate_alleles: nonempty, distinct from reference, classified
	if len(alternateAlleles) == 0 {
		return nil, NewAlternateAllelesBodyError(line, "Alternate alleles list is empty", "")
	}
	types := make([]RecordType, len(alternateAlleles))
	for i, alt := range alternateAlleles {
		if alt == referenceAllele {
			return nil, NewAlternateAllelesBodyError(line, "Alternate allele is identical to the reference allele", alt)
		}
		types[i] = classify(referenceAllele, alt)
	}

	// 6. quality >= 0 or missing
	if !qualityMissing && quality < 0 {
		return nil, NewQualityBodyError(line, "Quality is negative", "")
	}

	// 7. format: no duplicates (v4.3+); GT must be first if present
	if source.Version == V43 {
		fseen := make(map[string]bool, len(format))
		for _, f := range format {
			if fseen[f] {
				return nil, NewFormatBodyError(line, "Duplicate FORMAT entry: "+f, f)
			}
			fseen[f] = true
		}
	}
	for i, f := range format {
		if f == "GT" && i != 0 {
			return nil, NewFormatBodyError(line, "GT must be the first FORMAT entry", f)
		}
	}

	// 8. each sample, split on ':', yields at most len(format) subfields
	for _, s := range samples {
		if n := len(SampleSubfields(s)); n > len(format) {
			return nil, NewSamplesFieldBodyError(line, "Sample has more subfields than declared in FORMAT", "FORMAT", len(format))
		}
	}

	return &Record{
		Line:             line,
		Chromosome:       chromosome,
		Position:         position,
		IDs:              ids,
		ReferenceAllele:  referenceAllele,
		AlternateAlleles: alternateAlleles,
		Types:            types,
		Quality:          quality,
		QualityMissing:   qualityMissing,
		Filters:          filters,
		Info:             info,
		Format:           format,
		Samples:          samples,
		Source:           source,
	}, nil
}

var validBase = map[byte]bool{
	'A': true, 'C': true, 'G': true, 'T': true, 'N': true,
	// IUPAC ambiguity codes
	'R': true, 'Y': true, 'S': true, 'W': true, 'K': true, 'M': true,
	'B': true, 'D': true, 'H': true, 'V': true,
}

func isValidBases(s string) bool {
	for i := 0; i < len(s); i++ {
		if !validBase[s[i]] {
			return false
		}
	}
	return true
}

// SampleSubfields splits one sample column on ':' into FORMAT-aligned
// subfields, per spec.md §4.5 check 8. Genotype subfields are further split
// by the caller using SplitGenotype.
func SampleSubfields(sample string) []string {
	return strings.Split(sample, ":")
}

// SplitGenotype splits a GT subfield on '|' or '/' into its alleles.
func SplitGenotype(gt string) []string {
	return strings.FieldsFunc(gt, func(r rune) bool { return r == '|' || r == '/' })
}
