package vcf

// predefinedTag is a (Type, Number) pair a well-known FORMAT/INFO id is
// required to declare. "." in either slot means "do not constrain".
type predefinedTag struct {
	Type   string
	Number string
}

// predefinedFormat and predefinedInfo are keyed by predefined-tag group
// ("v41_v42" or "v43") then by declared ID, per spec.md's Predefined-tag
// tables. Values are the standard VCF-spec reserved FORMAT/INFO definitions.
var predefinedFormat = map[string]map[string]predefinedTag{
	"v41_v42": {
		"GT": {"String", "1"},
		"DP": {"Integer", "1"},
		"FT": {"String", "1"},
		"GL": {"Float", "G"},
		"GQ": {"Integer", "1"},
		"HQ": {"Integer", "2"},
		"PS": {"Integer", "1"},
		"PQ": {"Integer", "1"},
		"EC": {"Integer", "A"},
		"MQ": {"Integer", "1"},
	},
	"v43": {
		"GT": {"String", "1"},
		"DP": {"Integer", "1"},
		"FT": {"String", "1"},
		"GL": {"Float", "G"},
		"GQ": {"Integer", "1"},
		"GP": {"Float", "G"},
		"PL": {"Integer", "G"},
		"HQ": {"Integer", "2"},
		"PS": {"Integer", "1"},
		"PQ": {"Integer", "1"},
		"EC": {"Integer", "A"},
		"MQ": {"Integer", "1"},
	},
}

var predefinedInfo = map[string]map[string]predefinedTag{
	"v41_v42": {
		"AA":       {"String", "1"},
		"AC":       {"Integer", "A"},
		"AF":       {"Float", "A"},
		"AN":       {"Integer", "1"},
		"BQ":       {"Float", "1"},
		"CIGAR":    {"String", "A"},
		"DB":       {"Flag", "0"},
		"DP":       {"Integer", "1"},
		"END":      {"Integer", "1"},
		"H2":       {"Flag", "0"},
		"H3":       {"Flag", "0"},
		"MQ":       {"Float", "1"},
		"MQ0":      {"Integer", "1"},
		"NS":       {"Integer", "1"},
		"SB":       {"Float", "1"},
		"SOMATIC":  {"Flag", "0"},
		"VALIDATED": {"Flag", "0"},
		"1000G":    {"Flag", "0"},
	},
	"v43": {
		"AA":      {"String", "1"},
		"AC":      {"Integer", "A"},
		"AF":      {"Float", "A"},
		"AN":      {"Integer", "1"},
		"BQ":      {"Float", "1"},
		"CIGAR":   {"String", "A"},
		"DB":      {"Flag", "0"},
		"DP":      {"Integer", "1"},
		"END":     {"Integer", "1"},
		"H2":      {"Flag", "0"},
		"H3":      {"Flag", "0"},
		"MQ":      {"Float", "1"},
		"MQ0":     {"Integer", "1"},
		"NS":      {"Integer", "1"},
		"SB":      {"Float", "1"},
		"SOMATIC": {"Flag", "0"},
		"SVTYPE":  {"String", "1"},
		"SVLEN":   {"Integer", "."},
		"CIPOS":   {"Integer", "2"},
		"CIEND":   {"Integer", "2"},
	},
}

// checkPredefinedTag enforces spec.md's "Predefined-tag check": for the
// current version group, if the ID is well-known, Type and Number (whichever
// is not ".") must match exactly.
func checkPredefinedTag(line int, tagField, id string, keyValues map[string]string, table map[string]predefinedTag) error {
	expected, ok := table[id]
	if !ok {
		return nil
	}
	if expected.Type != "." && expected.Type != keyValues["Type"] {
		return NewMetaSectionError(line, tagField+" "+id+" metadata Type is not "+expected.Type)
	}
	if expected.Number != "." && expected.Number != keyValues["Number"] {
		return NewMetaSectionError(line, tagField+" "+id+" metadata Number is not "+expected.Number)
	}
	return nil
}
