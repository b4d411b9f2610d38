package vcf

import (
	"regexp"
	"strings"
)

// MetaStructure discriminates the three shapes a meta entry's value can take.
type MetaStructure int

const (
	NoValue MetaStructure = iota
	PlainValue
	KeyValue
)

// MetaEntry is a single `##id=...` header line, validated against its
// per-id schema on construction.
type MetaEntry struct {
	Line      int
	ID        string
	Source    *Source
	Structure MetaStructure
	Plain     string
	KV        map[string]string
}

// NewNoValueMetaEntry builds a valueless meta entry (e.g. `##key` with no `=`).
// There is nothing to check: NoValue entries always construct successfully.
func NewNoValueMetaEntry(line int, id string, source *Source) *MetaEntry {
	return &MetaEntry{Line: line, ID: id, Source: source, Structure: NoValue}
}

// NewPlainValueMetaEntry builds a scalar meta entry, e.g. `##reference=file://x`.
func NewPlainValueMetaEntry(line int, id, value string, source *Source) (*MetaEntry, error) {
	if strings.ContainsRune(value, '\n') {
		return nil, NewMetaSectionError(line, "Metadata value contains a line break")
	}
	return &MetaEntry{Line: line, ID: id, Source: source, Structure: PlainValue, Plain: value}, nil
}

// NewKeyValueMetaEntry builds a keyed meta entry, e.g.
// `##FORMAT=<ID=GT,Number=1,Type=String,Description="Genotype">`.
func NewKeyValueMetaEntry(line int, id string, kv map[string]string, source *Source) (*MetaEntry, error) {
	if err := checkKeyValue(line, id, kv, source); err != nil {
		return nil, err
	}
	return &MetaEntry{Line: line, ID: id, Source: source, Structure: KeyValue, KV: kv}, nil
}

// Equal compares two meta entries by id and value only; Line is informational.
func (m *MetaEntry) Equal(other *MetaEntry) bool {
	if other == nil || m.ID != other.ID || m.Structure != other.Structure {
		return false
	}
	switch m.Structure {
	case PlainValue:
		return m.Plain == other.Plain
	case KeyValue:
		if len(m.KV) != len(other.KV) {
			return false
		}
		for k, v := range m.KV {
			if other.KV[k] != v {
				return false
			}
		}
		return true
	default:
		return true
	}
}

var altIDPrefixes = map[string]bool{"DEL": true, "INS": true, "DUP": true, "INV": true, "CNV": true}

// checkKeyValue dispatches KeyValue validation by id, per spec.md §4.4.
func checkKeyValue(line int, id string, kv map[string]string, source *Source) error {
	switch id {
	case "ALT":
		return checkAlt(line, kv)
	case "contig":
		return checkContig(line, kv)
	case "FILTER":
		return checkFilter(line, kv)
	case "FORMAT":
		return checkFormat(line, kv, source)
	case "INFO":
		return checkInfo(line, kv, source)
	case "SAMPLE":
		return checkSample(line, kv)
	case "PEDIGREE", "pedigreeDB", "assembly":
		return nil
	default:
		return nil
	}
}

func requireKeys(line int, tag string, kv map[string]string, keys ...string) error {
	for _, k := range keys {
		if _, ok := kv[k]; !ok {
			return NewMetaSectionError(line, tag+" metadata does not contain a field called '"+k+"'")
		}
	}
	return nil
}

func checkAlt(line int, kv map[string]string) error {
	if err := requireKeys(line, "ALT", kv, "ID", "Description"); err != nil {
		return err
	}
	idField := kv["ID"]
	prefix := idField
	if i := strings.IndexByte(idField, ':'); i >= 0 {
		prefix = idField[:i]
	}
	if !altIDPrefixes[prefix] {
		return NewMetaSectionError(line, "ALT metadata ID does not begin with DEL/INS/DUP/INV/CNV")
	}
	return nil
}

func checkContig(line int, kv map[string]string) error {
	return requireKeys(line, "contig", kv, "ID")
}

func checkFilter(line int, kv map[string]string) error {
	return requireKeys(line, "FILTER", kv, "ID", "Description")
}

var allDigits = regexp.MustCompile(`^[0-9]+$`)

func checkFormat(line int, kv map[string]string, source *Source) error {
	if err := requireKeys(line, "FORMAT", kv, "ID", "Number", "Type", "Description"); err != nil {
		return err
	}
	if err := checkNumber(line, "FORMAT", kv["Number"]); err != nil {
		return err
	}
	if err := checkType(line, "FORMAT", kv["Type"], []string{"Integer", "Float", "Character", "String"}); err != nil {
		return err
	}
	table := predefinedFormat[source.Version.predefinedGroup()]
	return checkPredefinedTag(line, "FORMAT", kv["ID"], kv, table)
}

func checkInfo(line int, kv map[string]string, source *Source) error {
	if err := requireKeys(line, "INFO", kv, "ID", "Number", "Type", "Description"); err != nil {
		return err
	}
	if err := checkNumber(line, "INFO", kv["Number"]); err != nil {
		return err
	}
	if err := checkType(line, "INFO", kv["Type"], []string{"Integer", "Float", "Flag", "Character", "String"}); err != nil {
		return err
	}
	table := predefinedInfo[source.Version.predefinedGroup()]
	return checkPredefinedTag(line, "INFO", kv["ID"], kv, table)
}

func checkNumber(line int, tag, number string) error {
	if number == "A" || number == "R" || number == "G" || number == "." || allDigits.MatchString(number) {
		return nil
	}
	return NewMetaSectionError(line, tag+" metadata Number is not a number, A, R, G or dot")
}

func checkType(line int, tag, typ string, allowed []string) error {
	for _, a := range allowed {
		if typ == a {
			return nil
		}
	}
	return NewMetaSectionError(line, tag+" metadata Type is not a "+strings.Join(allowed, ", "))
}

func checkSample(line int, kv map[string]string) error {
	return requireKeys(line, "SAMPLE", kv, "ID")
}

// splitKeyValueLine parses the `<K1=V1,K2=V2,...>` grammar of a structured
// meta value, respecting commas inside double-quoted values (e.g.
// Description="a, b").
func splitKeyValueLine(body string) map[string]string {
	kv := make(map[string]string)
	var key strings.Builder
	var val strings.Builder
	inQuotes := false
	inKey := true

	flush := func() {
		k := strings.TrimSpace(key.String())
		if k != "" {
			v := val.String()
			if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
				v = v[1 : len(v)-1]
			}
			kv[k] = v
		}
		key.Reset()
		val.Reset()
		inKey = true
	}

	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			if !inKey {
				val.WriteByte(c)
			}
		case c == '=' && inKey && !inQuotes:
			inKey = false
		case c == ',' && !inQuotes:
			flush()
		default:
			if inKey {
				key.WriteByte(c)
			} else {
				val.WriteByte(c)
			}
		}
	}
	flush()
	return kv
}

// parseMetaValue classifies a raw `##id=value` right-hand side into its
// MetaStructure and extracted payload, per SPEC_FULL §6.2.
func parseMetaValue(raw string) (MetaStructure, string, map[string]string) {
	if raw == "" {
		return NoValue, "", nil
	}
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "<") && strings.HasSuffix(trimmed, ">") {
		return KeyValue, "", splitKeyValueLine(trimmed[1 : len(trimmed)-1])
	}
	return PlainValue, raw, nil
}
