// Package domain contains the core model for bracefix: a file held as lines,
// bracket depth traces, patch specs and their results.
//
// The domain does not touch the filesystem. Infra adapters load and store
// Lines; use cases combine them.
package domain
