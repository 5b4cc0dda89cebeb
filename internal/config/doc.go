// Package config loads and validates histviz configuration.
//
// Values come from three layers, later layers winning:
//
//	1. Default()
//	2. config.yaml (gopkg.in/yaml.v2), searched in ./ and ./configs/
//	3. HISTVIZ_* environment variables (kelseyhightower/envconfig)
//
// Examples:
//
//	HISTVIZ_SERVER_PORT=5000
//	HISTVIZ_PATHS_DATA_DIR=/srv/histviz/data
//	HISTVIZ_SUMMARY_MAX_NUM_BINS=500
//	HISTVIZ_TELEMETRY_TRACE_EXPORTER=stdout
//
// Relative paths are resolved against the executable directory by
// ResolvePaths.
package config
