// Package config provides configuration loading, merging, and validation
// for the sync server and the offline client.
//
// Configuration is assembled from multiple sources. Later sources override
// earlier non-zero fields:
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags (server only)
//  4. JSON or YAML config file
//  5. Typed overrides from the client command tree (client only)
//
// The main entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the client.
package config
