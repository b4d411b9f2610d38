package vcf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsingState_WellDefinedMemoization(t *testing.T) {
	state := NewParsingState(testSource(t, V41))

	assert.False(t, state.IsWellDefinedMeta("contig", "chr1"))
	state.AddWellDefinedMeta("contig", "chr1")
	assert.True(t, state.IsWellDefinedMeta("contig", "chr1"))
	assert.False(t, state.IsWellDefinedMeta("contig", "chr2"))
}

func TestParsingState_UndefinedMemoization(t *testing.T) {
	state := NewParsingState(testSource(t, V41))

	assert.False(t, state.IsUndefinedMeta("FILTER", "q10"))
	state.AddUndefinedMeta("FILTER", "q10")
	assert.True(t, state.IsUndefinedMeta("FILTER", "q10"))
}

func TestNewParsingState_DedupeUndefinedDefaultsTrue(t *testing.T) {
	state := NewParsingState(testSource(t, V41))
	assert.True(t, state.DedupeUndefined)
}
