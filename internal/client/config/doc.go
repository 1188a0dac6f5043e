// Package config loads runtime configuration for the VoltDrive CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-f string   local session database file
//	-r int      request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "http://127.0.0.1:5000",
//	  "database_dsn": "voltdrive.db",
//	  "request_timeout": "15s"
//	}
package config
