// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry points are [GetStructuredConfig] for server/runtime
// configuration and [GetClientConfig] for client-specific configuration.
//
// The [Remote] section plays a special role on the client: its Validate
// method is the gate that decides whether the tracker runs in online mode
// (against the shared remote store) or falls back to local-only operation.
// An invalid remote bundle is therefore not a startup error for the client.
package config
