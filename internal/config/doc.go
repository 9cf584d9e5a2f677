// Package config manages contribwriter's configuration.
//
// Settings are resolved in layers: compiled-in defaults, then optional .env
// files (via godotenv), then environment variables, then command-line flags
// and positional arguments. Finalize validates the result and fills in
// derived values such as the absolute repository path and the default log
// file location.
package config
