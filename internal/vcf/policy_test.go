package vcf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func declareContig(t *testing.T, source *Source, id string) {
	t.Helper()
	e, err := NewKeyValueMetaEntry(1, "contig", map[string]string{"ID": id}, source)
	require.NoError(t, err)
	source.AddMetaEntry(e)
}

func declareFilter(t *testing.T, source *Source, id string) {
	t.Helper()
	e, err := NewKeyValueMetaEntry(1, "FILTER", map[string]string{"ID": id, "Description": "x"}, source)
	require.NoError(t, err)
	source.AddMetaEntry(e)
}

func declareFormat(t *testing.T, source *Source, id string) {
	t.Helper()
	e, err := NewKeyValueMetaEntry(1, "FORMAT", map[string]string{"ID": id, "Number": "1", "Type": "String", "Description": "x"}, source)
	require.NoError(t, err)
	source.AddMetaEntry(e)
}

func declareInfo(t *testing.T, source *Source, id string) {
	t.Helper()
	e, err := NewKeyValueMetaEntry(1, "INFO", map[string]string{"ID": id, "Number": "1", "Type": "Integer", "Description": "x"}, source)
	require.NoError(t, err)
	source.AddMetaEntry(e)
}

func declareAlt(t *testing.T, source *Source, id string) {
	t.Helper()
	e, err := NewKeyValueMetaEntry(1, "ALT", map[string]string{"ID": id, "Description": "x"}, source)
	require.NoError(t, err)
	source.AddMetaEntry(e)
}

func declareReference(t *testing.T, source *Source) {
	t.Helper()
	e, err := NewPlainValueMetaEntry(1, "reference", "file:///ref.fa", source)
	require.NoError(t, err)
	source.AddMetaEntry(e)
}

func TestCheckMetaSection(t *testing.T) {
	source := testSource(t, V41)
	policy := NewValidateOptionalPolicy()
	state := NewParsingState(source)

	d := policy.CheckMetaSection(state)
	require.NotNil(t, d)
	var metaErr *MetaSectionError
	assert.ErrorAs(t, d, &metaErr)

	declareReference(t, source)
	assert.Nil(t, policy.CheckMetaSection(state))
}

func TestCheckBodyEntry_HappyPath(t *testing.T) {
	source := testSource(t, V41)
	declareReference(t, source)
	declareContig(t, source, "chr1")
	declareFilter(t, source, "q10")
	declareInfo(t, source, "DP")
	declareFormat(t, source, "GT")

	policy := NewValidateOptionalPolicy()
	state := NewParsingState(source)
	state.NLines = 10

	record, err := NewRecord(10, "chr1", 100, []string{"rs1"}, "A", []string{"T"}, 30.0, false,
		[]string{"q10"}, []InfoField{{Key: "DP", Value: "10"}}, []string{"GT"}, []string{"0|1"}, source)
	require.NoError(t, err)

	diags := policy.CheckBodyEntry(state, record)
	assert.Empty(t, diags)
}

func TestCheckBodyEntry_UndeclaredContigAndFilter(t *testing.T) {
	source := testSource(t, V41)
	declareReference(t, source)

	policy := NewValidateOptionalPolicy()
	state := NewParsingState(source)
	state.NLines = 5

	record, err := NewRecord(5, "chrX", 100, nil, "A", []string{"T"}, 30.0, false,
		[]string{"q10"}, nil, nil, nil, source)
	require.NoError(t, err)

	diags := policy.CheckBodyEntry(state, record)
	var kinds []string
	for _, d := range diags {
		kinds = append(kinds, d.Kind())
	}
	assert.Contains(t, kinds, "NoMetaDefinitionError")
}

func TestCheckBodyEntry_UndeclaredReferenceDedupesAcrossCalls(t *testing.T) {
	source := testSource(t, V41)
	declareReference(t, source)

	policy := NewValidateOptionalPolicy()
	state := NewParsingState(source)

	record, err := NewRecord(1, "chrX", 100, nil, "A", []string{"T"}, 30.0, false,
		nil, nil, nil, nil, source)
	require.NoError(t, err)

	first := policy.CheckBodyEntry(state, record)
	assert.NotEmpty(t, first)

	second := policy.CheckBodyEntry(state, record)
	assert.Empty(t, second)
}

func TestCheckBodyEntry_PositionZero(t *testing.T) {
	source := testSource(t, V41)
	declareReference(t, source)
	declareContig(t, source, "chr1")

	policy := NewValidateOptionalPolicy()
	state := NewParsingState(source)

	record, err := NewRecord(1, "chr1", 0, nil, "A", []string{"T"}, 30.0, false,
		nil, nil, nil, nil, source)
	require.NoError(t, err)

	diags := policy.CheckBodyEntry(state, record)
	found := false
	for _, d := range diags {
		if d.Kind() == "PositionBodyError" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCheckBodyEntry_IDComma(t *testing.T) {
	source := testSource(t, V41)
	declareReference(t, source)
	declareContig(t, source, "chr1")

	policy := NewValidateOptionalPolicy()
	state := NewParsingState(source)

	record, err := NewRecord(1, "chr1", 100, []string{"rs1,rs2"}, "A", []string{"T"}, 30.0, false,
		nil, nil, nil, nil, source)
	require.NoError(t, err)

	diags := policy.CheckBodyEntry(state, record)
	found := false
	for _, d := range diags {
		if d.Kind() == "IdBodyError" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCheckBodyEntry_IndelFirstNucleotideMismatch(t *testing.T) {
	source := testSource(t, V41)
	declareReference(t, source)
	declareContig(t, source, "chr1")

	policy := NewValidateOptionalPolicy()
	state := NewParsingState(source)

	record, err := NewRecord(1, "chr1", 100, nil, "AT", []string{"G"}, 30.0, false,
		nil, nil, nil, nil, source)
	require.NoError(t, err)
	require.Equal(t, INDEL, record.Types[0])

	diags := policy.CheckBodyEntry(state, record)
	found := false
	for _, d := range diags {
		if d.Kind() == "ReferenceAlleleBodyError" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCheckBodyEntry_StructuralAltDeclared(t *testing.T) {
	source := testSource(t, V41)
	declareReference(t, source)
	declareContig(t, source, "chr1")

	policy := NewValidateOptionalPolicy()
	state := NewParsingState(source)

	record, err := NewRecord(1, "chr1", 100, nil, "A", []string{"<DEL>"}, 30.0, false,
		nil, nil, nil, nil, source)
	require.NoError(t, err)

	diags := policy.CheckBodyEntry(state, record)
	found := false
	for _, d := range diags {
		if d.Kind() == "NoMetaDefinitionError" {
			if fd, ok := d.(FieldDiagnostic); ok && fd.FieldInfo().ColumnName == "ALT" {
				found = true
			}
		}
	}
	assert.True(t, found)

	declareAlt(t, source, "DEL")
	diags = policy.CheckBodyEntry(state, record)
	for _, d := range diags {
		assert.NotEqual(t, "NoMetaDefinitionError", d.Kind())
	}
}

func TestCheckBodyEntry_PloidyMismatch(t *testing.T) {
	source := NewSource("test", FormatVCF, V41, NewPloidy(2, nil), []string{"S1", "S2"})
	declareReference(t, source)
	declareContig(t, source, "chr1")

	policy := NewValidateOptionalPolicy()
	state := NewParsingState(source)

	record, err := NewRecord(1, "chr1", 100, nil, "A", []string{"T"}, 30.0, false,
		nil, nil, []string{"GT"}, []string{"0", "1"}, source)
	require.NoError(t, err)

	diags := policy.CheckBodyEntry(state, record)
	var samplesErr *SamplesFieldBodyError
	found := false
	for _, d := range diags {
		if assertAs(d, &samplesErr) {
			found = true
		}
	}
	assert.True(t, found)
	assert.Equal(t, SeverityWarning, samplesErr.Severity())
}

func TestCheckBodyEntry_PloidyMismatchPromotedToError(t *testing.T) {
	source := NewSource("test", FormatVCF, V41, NewPloidy(2, nil), []string{"S1"})
	declareReference(t, source)
	declareContig(t, source, "chr1")

	policy := NewValidateOptionalPolicy()
	policy.PloidyMismatchSeverity = SeverityError
	state := NewParsingState(source)

	record, err := NewRecord(1, "chr1", 100, nil, "A", []string{"T"}, 30.0, false,
		nil, nil, []string{"GT"}, []string{"0"}, source)
	require.NoError(t, err)

	diags := policy.CheckBodyEntry(state, record)
	require.NotEmpty(t, diags)
	assert.Equal(t, SeverityError, diags[0].Severity())
}

// assertAs mimics errors.As for the Diagnostic interface without requiring
// each caller to repeat the type switch.
func assertAs(d Diagnostic, target **SamplesFieldBodyError) bool {
	if v, ok := d.(*SamplesFieldBodyError); ok {
		*target = v
		return true
	}
	return false
}
