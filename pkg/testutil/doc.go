// Package testutil provides utilities for testing nulink components.
//
// Key components:
//   - MemoryFS: in-memory types.FS that models symlinks, renames, error
//     injection and access counters
//   - Snapshot: records a directory tree without following links, for
//     asserting that a failed operation left the filesystem untouched
//   - PackageFixture: builds installed and linked packages
//
// Tests of the link engine and the command driver run on MemoryFS; tests
// that must exercise real symlinks use t.TempDir() with filesystem.NewOS().
package testutil
