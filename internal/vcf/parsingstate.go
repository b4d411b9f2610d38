package vcf

// metaKey identifies one (category, id) cross-reference target, e.g.
// ("FILTER", "q10").
type metaKey struct {
	category string
	id       string
}

// ParsingState is the per-file accumulator the policy checks against: the
// current line counter, the file's Source, and two memoization sets that
// dedupe cross-reference checks so that at most one diagnostic is emitted
// per undefined identifier per file (spec.md §4.3).
type ParsingState struct {
	NLines int
	Source *Source

	wellDefined map[metaKey]struct{}
	undefined   map[metaKey]struct{}

	// DedupeUndefined controls whether a miss is remembered so later records
	// referencing the same (category, id) are silently skipped instead of
	// re-emitting NoMetaDefinitionError. See SPEC_FULL §7.
	DedupeUndefined bool
}

// NewParsingState creates a ParsingState for a file, bound to its Source.
func NewParsingState(source *Source) *ParsingState {
	return &ParsingState{
		Source:          source,
		wellDefined:     make(map[metaKey]struct{}),
		undefined:       make(map[metaKey]struct{}),
		DedupeUndefined: true,
	}
}

// IsWellDefinedMeta reports whether (category, id) was already confirmed present in the header.
func (s *ParsingState) IsWellDefinedMeta(category, id string) bool {
	_, ok := s.wellDefined[metaKey{category, id}]
	return ok
}

// AddWellDefinedMeta marks (category, id) as confirmed; it will not be re-checked.
// It also drops any earlier undefined mark for the same (category, id).
func (s *ParsingState) AddWellDefinedMeta(category, id string) {
	key := metaKey{category, id}
	s.wellDefined[key] = struct{}{}
	delete(s.undefined, key)
}

// IsUndefinedMeta reports whether (category, id) was already reported missing.
func (s *ParsingState) IsUndefinedMeta(category, id string) bool {
	_, ok := s.undefined[metaKey{category, id}]
	return ok
}

// AddUndefinedMeta marks (category, id) as reported missing, so a later
// record referencing it produces no further diagnostic when DedupeUndefined
// is enabled. A given (category, id) is never in both sets at once.
func (s *ParsingState) AddUndefinedMeta(category, id string) {
	s.undefined[metaKey{category, id}] = struct{}{}
}
