// Package config loads and validates the project configuration that drives
// plan execution: the plan list, executor settings, and orchestration
// limits. Configuration is a YAML file with environment variable overrides
// (RAS_ prefix) applied on top.
package config
