// Package config provides centralized configuration management for the
// warehouse reporting service. It handles loading configuration from multiple
// sources, validation, and provides a type-safe API for accessing
// configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern WMS_* for namespacing:
//
//	WMS_SERVER_PORT=8080
//	WMS_DATABASE_HOST=db.internal
//	WMS_DATABASE_PASSWORD=secret
//	WMS_LOGGING_LEVEL=info
//
// The configuration file location defaults to config.yaml in the working
// directory and can be overridden with WMS_CONFIG_FILE.
package config
