// Package linker performs the two state transitions of a package's lib
// folder.
//
// Link moves the installed lib folder to its backup and puts a symlink to
// the local build output in its place. Unlink removes that symlink and
// moves the backup back. Both transitions inspect the package first and
// refuse to touch the filesystem when a precondition does not hold, so a
// refused operation leaves the tree exactly as it was.
//
// The order of the mutations matters for Unlink: the link is removed
// before the backup is restored, and the removal never follows the link
// into the local build output.
package linker
