// Package filesystem provides the operating system implementation of
// types.FS used by nulink at runtime. Tests use testutil.MemoryFS instead.
package filesystem
