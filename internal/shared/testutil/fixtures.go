package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Column positions of the assembly_summary fields the pipeline reads.
const (
	colTaxID        = 5
	colOrganismName = 7
	colGenomeSize   = 25
	colGCPercent    = 27
	colCDSCount     = 35

	summaryColumns = 38
)

// SummaryHeader is the two comment lines NCBI puts above the data.
var SummaryHeader = []string{
	"#   See ftp://ftp.ncbi.nlm.nih.gov/genomes/README_assembly_summary.txt for a description of the columns",
	"#assembly_accession\tbioproject\tbiosample\twgs_master\trefseq_category\ttaxid",
}

// SummaryRow builds an assembly_summary data line. Columns the pipeline
// does not read are "na".
func SummaryRow(taxid, name, size, gc, cds string) string {
	fields := make([]string, summaryColumns)
	for i := range fields {
		fields[i] = "na"
	}
	fields[colTaxID] = taxid
	fields[colOrganismName] = name
	fields[colGenomeSize] = size
	fields[colGCPercent] = gc
	fields[colCDSCount] = cds
	return strings.Join(fields, "\t")
}

// WriteSummary writes lines as assembly_summary.txt in a temp dir and
// returns its path.
func WriteSummary(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "assembly_summary.txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("write summary: %v", err)
	}
	return path
}
