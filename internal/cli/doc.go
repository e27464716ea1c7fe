// Package cli defines the Cobra command tree for the exgen CLI. Each file
// registers one command with the root. Commands load settings and the
// catalog, build the registry, and delegate to the scaffold and render
// packages; this package only handles flags, output formatting, and error
// reporting.
package cli
