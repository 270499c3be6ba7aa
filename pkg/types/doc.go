// Package types defines the core types and interfaces shared across nulink:
// the filesystem abstraction, package references discovered in a workspace
// and the link status snapshot read back from disk.
package types
