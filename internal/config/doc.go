// Package config provides centralized configuration management for assemblystats.
// It handles loading configuration from multiple sources, validation, and report
// path resolution.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// Command-line flags in cmd/assemblystats are applied on top of the loaded
// configuration.
//
// # Environment Variables
//
// All environment variables follow the pattern ASMSTATS_<SECTION>_<FIELD>:
//
//	ASMSTATS_LOGGING_LEVEL=debug
//	ASMSTATS_OUTPUT_DIR=/data/reports
//	ASMSTATS_OUTPUT_FORMATS=tsv,xlsx
//	ASMSTATS_SOURCE_S3_REGION=us-east-1
//	ASMSTATS_TELEMETRY_METRICS_FILE=/var/lib/node_exporter/assemblystats.prom
//
// ASMSTATS_CONFIG_FILE points at an explicit YAML file; otherwise
// assemblystats.yaml and configs/assemblystats.yaml are tried.
//
// # Validation
//
// Every section carries validator/v10 struct tags. Validation failures are
// returned as VALIDATION AppErrors listing each offending field.
package config
