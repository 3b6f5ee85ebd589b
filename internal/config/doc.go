// Package config loads and validates YAML configuration for platform binaries.
//
// Configuration is layered:
//  1. YAML file with ${VAR} expansion
//  2. Built-in defaults for everything optional
//  3. Environment overrides for secrets (SPAC_DB_PASSWORD, SPAC_TELEGRAM_TOKEN,
//     SPAC_QUOTE_API_KEY) so credentials never need to live in the file
package config
