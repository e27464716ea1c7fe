// Package scaffold materializes runnable example projects and standalone
// documentation pages from the registry. A project is a copy of the base
// Hardhat template with the example's contract and test injected and its
// rendered documents written alongside. Every artifact is read before the
// first write, so a missing input never leaves a half-built directory.
//
// Source artifacts are read from one afero.Fs (usually rooted at the source
// root) and output is written to another, which lets tests run entirely in
// memory.
package scaffold
