// Package registry holds the immutable set of example and category
// descriptors for one invocation. A Registry is built once from a catalog,
// validated for cross-reference integrity, and then passed to the renderer
// and materializer as a plain value. It exposes lookups by identifier,
// category, difficulty, and tag, and a case-insensitive search.
package registry
