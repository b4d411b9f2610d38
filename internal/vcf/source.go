package vcf

// Source describes a single VCF file and is shared by reference from every
// MetaEntry and Record built from it. Meta entries accumulate as the header
// streams in; they are never removed, and Version/Ploidy never change once
// the Source exists.
type Source struct {
	Name    string
	Format  InputFormat
	Version Version
	Ploidy  Ploidy

	metaEntries map[string][]*MetaEntry
	Samples     []string
}

// NewSource creates a Source. Samples is the ordered list of sample columns
// found after FORMAT on the #CHROM header line.
func NewSource(name string, format InputFormat, version Version, ploidy Ploidy, samples []string) *Source {
	return &Source{
		Name:        name,
		Format:      format,
		Version:     version,
		Ploidy:      ploidy,
		metaEntries: make(map[string][]*MetaEntry),
		Samples:     samples,
	}
}

// AddMetaEntry appends a MetaEntry under its tag id. Multiple entries per id
// are expected (one per declared ID within that category).
func (s *Source) AddMetaEntry(e *MetaEntry) {
	s.metaEntries[e.ID] = append(s.metaEntries[e.ID], e)
}

// MetaEntries returns the entries declared under the given tag id, e.g. "FORMAT".
func (s *Source) MetaEntries(id string) []*MetaEntry {
	return s.metaEntries[id]
}

// HasMetaEntry reports whether any entry has been declared under the given tag id.
func (s *Source) HasMetaEntry(id string) bool {
	return len(s.metaEntries[id]) > 0
}
