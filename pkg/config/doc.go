// Package config defines the Firegate configuration model and its YAML loader.
//
// Configuration is loaded once at startup from a YAML file, defaults are
// applied, environment overrides (FIREGATE_*) take precedence, and the result
// is validated before any component sees it. The rest of the codebase treats
// the loaded Config as immutable.
package config
