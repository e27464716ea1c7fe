// Package config manages exgen settings. Values are read, in increasing order
// of precedence, from built-in defaults, ~/.exgen/config.yaml (or a .exgen.yaml
// in the working directory, which replaces it), EXGEN_* environment variables,
// and command-line flags bound by the cli package.
package config
