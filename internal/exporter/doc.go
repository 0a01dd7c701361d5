// Package exporter writes the per-taxid report.
//
// Every format shares one column layout (Header) and one cell rendering
// (Row). ReportWriter writes all requested formats for a run concurrently:
//
//	TSV     <dir>/<prefix>_<YYYYMMDD>.txt   tab-separated, one header line
//	XLSX    <dir>/<prefix>_<YYYYMMDD>.xlsx  one sheet, numeric cells typed
//	SQLite  <dir>/<prefix>_<YYYYMMDD>.db    table assembly_stats keyed by taxid
//
// Cells that could not be computed hold the literal text NA, or NULL in
// SQLite.
package exporter
