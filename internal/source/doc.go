// Package source opens the assembly summary input as a byte stream.
//
// Supported locations:
//
//	/path/to/assembly_summary.txt      local file, plain or compressed
//	-                                  standard input
//	https://ftp.ncbi.nlm.nih.gov/...   HTTP(S) download
//	s3://bucket/key[.gz]               S3 or an S3-compatible store
//
// Compression (gzip, xz, zstd, bzip2) is detected from the content for local
// and HTTP inputs. S3 objects are decompressed when the key ends in .gz.
// Every failure is returned as a TRANSPORT error.
package source
