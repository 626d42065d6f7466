// Package config loads runtime configuration for the beautybook CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: BEAUTYBOOK_* variables, after loading an optional dotenv
//     file (-env path, or ./.env when present).
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override everything above.
//
// Supported flags
//
//	-a string   base URL of the booking API
//	-t int      request timeout in seconds, 0 keeps the transport default
//	-s string   session backend: sqlite, redis or memory
//	-d string   path of the SQLite session database
//	-r string   Redis address for the redis backend
//	-z string   IANA time zone used for booking times ("Local" by default)
//	-l string   log level: debug, info, warn, error
//	-e string   Sentry DSN, empty disables error reporting
//	-m string   metrics listen address, empty disables /metrics
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:8000",
//	  "request_timeout": "10s",
//	  "session_backend": "sqlite",
//	  "session_path": "/home/me/.config/beautybook/session.db",
//	  "redis_addr": "localhost:6379",
//	  "timezone": "Europe/Moscow",
//	  "log_level": "info",
//	  "sentry_dsn": "",
//	  "metrics_addr": ""
//	}
package config
