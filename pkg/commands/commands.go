// Package commands provides high-level command implementations for nulink.
//
// This package contains the command orchestration layer that coordinates
// between the CLI interface and the catalog, inspector and link engine.
//
// Each command is implemented in its own subdirectory:
//   - link/      - LinkPackages command
//   - unlink/    - UnlinkPackages command
//   - status/    - StatusPackages command
//   - genconfig/ - GenConfig command
//   - internal/  - Shared reference loading and per-package execution
//
// This file re-exports the command functions and their option types.
package commands

import (
	"github.com/arthur-debert/nulink/pkg/commands/genconfig"
	"github.com/arthur-debert/nulink/pkg/commands/internal"
	"github.com/arthur-debert/nulink/pkg/commands/link"
	"github.com/arthur-debert/nulink/pkg/commands/status"
	"github.com/arthur-debert/nulink/pkg/commands/unlink"
	"github.com/arthur-debert/nulink/pkg/types"
)

// Options is shared by every command
type Options = internal.Options

// RunResult collects per-package outcomes of link and unlink
type RunResult = internal.RunResult

// PackageResult is the outcome for one package
type PackageResult = internal.PackageResult

// LinkPackages links the lib folder of the selected packages to their local source.
type LinkPackagesOptions = link.LinkPackagesOptions

func LinkPackages(opts LinkPackagesOptions) (*RunResult, error) {
	return link.LinkPackages(opts)
}

// UnlinkPackages restores the original lib folder of the selected packages.
type UnlinkPackagesOptions = unlink.UnlinkPackagesOptions

func UnlinkPackages(opts UnlinkPackagesOptions) (*RunResult, error) {
	return unlink.UnlinkPackages(opts)
}

// StatusPackages reports the link state of the selected packages.
type StatusPackagesOptions = status.StatusPackagesOptions

func StatusPackages(opts StatusPackagesOptions) (*types.StatusReport, error) {
	return status.StatusPackages(opts)
}

// GenConfig renders or writes a workspace configuration file.
type GenConfigOptions = genconfig.GenConfigOptions

type GenConfigResult = genconfig.GenConfigResult

func GenConfig(opts GenConfigOptions) (*GenConfigResult, error) {
	return genconfig.GenConfig(opts)
}

// Reported reports whether err was already shown through the Reporter
func Reported(err error) bool {
	return internal.Reported(err)
}
