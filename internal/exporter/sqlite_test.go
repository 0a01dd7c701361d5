package exporter

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.db")
	ctx := context.Background()

	// A second write replaces the first instead of failing on the primary key.
	require.NoError(t, WriteSQLite(ctx, path, testRecords()))
	require.NoError(t, WriteSQLite(ctx, path, testRecords()))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+TableName).Scan(&n))
	assert.Equal(t, 2, n)

	var (
		species string
		mean    float64
		gcMin   sql.NullFloat64
		gcCount int
		cdsMax  int64
	)
	err = db.QueryRow(`SELECT "Species", "Mean", "GC_Min", "GC_count", "CDS_Max"
		FROM `+TableName+` WHERE "Consensus_TAXID" = ?`, 1234).
		Scan(&species, &mean, &gcMin, &gcCount, &cdsMax)
	require.NoError(t, err)

	assert.Equal(t, "Foo bar", species)
	assert.InDelta(t, 3000.6667, mean, 1e-3)
	assert.False(t, gcMin.Valid, "NA is stored as NULL")
	assert.Equal(t, 0, gcCount)
	assert.Equal(t, int64(950), cdsMax)
}

func TestWriteSQLite_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WriteSQLite(ctx, filepath.Join(t.TempDir(), "report.db"), testRecords())
	require.Error(t, err)
}

func TestSQLStatements(t *testing.T) {
	require.Len(t, sqlColumnTypes, len(Header))
	assert.Contains(t, createTableSQL(), `"Consensus_TAXID" INTEGER PRIMARY KEY`)
	assert.Contains(t, insertSQL(), `INSERT INTO assembly_stats ("Species", "Min"`)
	assert.Len(t, sqlValues(sampleRecord()), len(Header))
}
