// Package config loads the TOML configuration shared by the argmap CLI and
// HTTP server.
//
// Load layers a config file over the defaults in Default, expands paths,
// normalises enumerations and validates the result. Library users configure the
// analyzer through the options package instead.
package config
