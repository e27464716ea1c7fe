// Package manifest handles parsing and validation of example catalogs. A
// catalog is a YAML or TOML document listing example categories and the
// examples they contain. Catalogs are validated against an embedded JSON
// Schema and gated on their format version before the registry package
// turns them into an immutable lookup structure.
package manifest
