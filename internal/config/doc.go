// Package config provides configuration management for the gamryparse CLI.
// The parsing library itself takes explicit options and never reads the
// environment; only the command line tool goes through this package.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern GAMRY_<SECTION>_<FIELD>:
//
//	GAMRY_LOGGING_LEVEL=debug
//	GAMRY_PARSE_LOCALE=de_DE.utf8
//	GAMRY_PARSE_CURVE_PREFIXES=Z,VFP,EFM
//	GAMRY_BATCH_WORKERS=8
//	GAMRY_TELEMETRY_TRACING=stdout
//
// # Configuration File
//
//	logging:
//	  level: info
//	  format: text
//	parse:
//	  locale: de_DE
//	  timestamps: true
//	export:
//	  format: xlsx
//	  output_dir: results
//
// Without -config the file is looked up as gamryparse.yaml in the working
// directory, configs/ and the user config directory.
package config
