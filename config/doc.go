// Package config loads application configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: the
// default .env file is loaded once per process (missing files are ignored),
// then the environment is parsed into any struct carrying `env` field tags.
// Unlike a framework-level loader there is no per-type caching here; each
// Load call re-reads the environment, which keeps tests straightforward.
package config
