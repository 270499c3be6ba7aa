// Package paths provides centralized path handling for nulink.
//
// It owns the on-disk naming conventions nulink relies on: where a package's
// lib folder is installed for both the global packages folder and the legacy
// solution-level packages folder, and where the lib folder is stashed while
// linked. The backup naming is part of the on-disk contract and must stay
// stable across releases, so that a backup created by one run is recognized
// by a later one.
package paths
