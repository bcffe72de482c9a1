// Package config resolves runtime configuration from defaults, an
// optional codeloft.yaml, CODELOFT_* environment variables, and CLI
// flags, in ascending precedence.
package config
