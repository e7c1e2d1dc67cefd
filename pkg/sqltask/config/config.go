// Package config resolves sqltask settings from the environment and optional .env files.
package config

// Config is the read-only view of application settings.
type Config interface {
	Get(string) string
	GetOrDefault(string, string) string
}
