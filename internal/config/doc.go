// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry point is [GetConfig], which returns the gateway endpoint,
// deliver-stream endpoint, TLS, and JSON-file settings the rest of the
// module needs to reach a Fabric gateway.
package config
