package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcfval/vcf-validator/internal/vcf"
)

func TestStdoutSink_WriteError(t *testing.T) {
	var buf bytes.Buffer
	sink := NewStdoutSink(&buf)

	sink.WriteError(vcf.NewChromosomeBodyError(5, "Chromosome contains a colon", "chr:1"))

	require.Contains(t, buf.String(), "line 5")
	assert.Contains(t, buf.String(), "Chromosome contains a colon")
	assert.NotContains(t, buf.String(), "(warning)")
}

func TestStdoutSink_WriteWarning(t *testing.T) {
	var buf bytes.Buffer
	sink := NewStdoutSink(&buf)

	sink.WriteWarning(vcf.NewSamplesFieldBodyWarning(7, "ploidy mismatch", "GT", 2))

	assert.Contains(t, buf.String(), "(warning)")
}
