// Package config loads application settings from the environment (TASKS_*
// variables, optionally seeded from a .env file) and an optional config.yaml,
// applies defaults and validates the result before anything else starts.
package config
