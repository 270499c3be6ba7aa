package linker

import (
	"github.com/arthur-debert/nulink/pkg/errors"
	"github.com/arthur-debert/nulink/pkg/logging"
	"github.com/arthur-debert/nulink/pkg/status"
	"github.com/arthur-debert/nulink/pkg/types"
)

// Transition names the direction of a change
type Transition string

const (
	TransitionLink   Transition = "link"
	TransitionUnlink Transition = "unlink"
)

// Result describes a completed (or, in dry-run mode, planned) transition
type Result struct {
	PackageID     string     `json:"packageId" yaml:"packageId"`
	Transition    Transition `json:"transition" yaml:"transition"`
	LibFolderPath string     `json:"libFolderPath" yaml:"libFolderPath"`
	// TargetPath is the local build output the lib folder points (or
	// pointed) to.
	TargetPath string `json:"targetPath" yaml:"targetPath"`
	DryRun     bool   `json:"dryRun,omitempty" yaml:"dryRun,omitempty"`
}

// Options configures an Engine
type Options struct {
	DryRun bool
}

// Engine links and unlinks packages on a filesystem
type Engine struct {
	fs        types.FS
	inspector *status.Inspector
	dryRun    bool
}

// NewEngine creates an engine over fs
func NewEngine(fs types.FS, opts Options) *Engine {
	return &Engine{
		fs:        fs,
		inspector: status.NewInspector(fs),
		dryRun:    opts.DryRun,
	}
}

// Link replaces the package's lib folder with a symlink to its local
// source, keeping the original folder as a backup.
func (e *Engine) Link(ref types.PackageReference) (*Result, error) {
	logger := logging.GetLogger("linker").With().
		Str("package", ref.PackageID).
		Str("lib", ref.LibFolderPath).
		Logger()

	st, err := e.inspector.Inspect(ref)
	if err != nil {
		return nil, err
	}
	if err := checkLink(ref, st); err != nil {
		logger.Debug().Str("code", string(errors.GetErrorCode(err))).Msg("Link refused")
		return nil, err
	}

	result := &Result{
		PackageID:     ref.PackageID,
		Transition:    TransitionLink,
		LibFolderPath: ref.LibFolderPath,
		TargetPath:    ref.LocalSourcePath,
		DryRun:        e.dryRun,
	}
	if e.dryRun {
		logger.Info().Msg("Dry run: skipping link")
		return result, nil
	}

	if err := e.fs.Rename(ref.LibFolderPath, ref.LibBackupFolderPath); err != nil {
		return nil, errors.Wrapf(err, errors.ErrRename,
			"Cannot link package %s: failed to move %s to %s",
			ref.PackageID, ref.LibFolderPath, ref.LibBackupFolderPath)
	}
	logger.Debug().Str("backup", ref.LibBackupFolderPath).Msg("Moved lib folder to backup")

	if err := e.fs.Symlink(ref.LocalSourcePath, ref.LibFolderPath); err != nil {
		linkErr := errors.Wrapf(err, errors.ErrSymlinkCreate,
			"Cannot link package %s: failed to create link %s -> %s",
			ref.PackageID, ref.LibFolderPath, ref.LocalSourcePath)
		if rerr := e.fs.Rename(ref.LibBackupFolderPath, ref.LibFolderPath); rerr != nil {
			logger.Error().Err(rerr).Msg("Failed to restore lib folder from backup")
			return nil, linkErr.
				WithDetail("state", status.Broken.String()).
				WithDetail("restoreError", rerr.Error())
		}
		logger.Debug().Msg("Restored lib folder after failed link")
		return nil, linkErr
	}

	logger.Info().Str("target", ref.LocalSourcePath).Msg("Linked package")
	return result, nil
}

// Unlink removes the link at the package's lib folder and restores the
// original folder from its backup.
func (e *Engine) Unlink(ref types.PackageReference) (*Result, error) {
	logger := logging.GetLogger("linker").With().
		Str("package", ref.PackageID).
		Str("lib", ref.LibFolderPath).
		Logger()

	st, err := e.inspector.Inspect(ref)
	if err != nil {
		return nil, err
	}
	if err := checkUnlink(ref, st); err != nil {
		logger.Debug().Str("code", string(errors.GetErrorCode(err))).Msg("Unlink refused")
		return nil, err
	}

	result := &Result{
		PackageID:     ref.PackageID,
		Transition:    TransitionUnlink,
		LibFolderPath: ref.LibFolderPath,
		TargetPath:    st.LibFolderLinkTargetPath,
		DryRun:        e.dryRun,
	}
	if e.dryRun {
		logger.Info().Msg("Dry run: skipping unlink")
		return result, nil
	}

	// Remove, not RemoveAll: the link goes, its target stays.
	if err := e.fs.Remove(ref.LibFolderPath); err != nil {
		return nil, errors.Wrapf(err, errors.ErrRemove,
			"Cannot unlink package %s: failed to remove link %s",
			ref.PackageID, ref.LibFolderPath)
	}
	logger.Debug().Msg("Removed lib folder link")

	if err := e.fs.Rename(ref.LibBackupFolderPath, ref.LibFolderPath); err != nil {
		renameErr := errors.Wrapf(err, errors.ErrRename,
			"Cannot unlink package %s: failed to restore %s from %s",
			ref.PackageID, ref.LibFolderPath, ref.LibBackupFolderPath)
		if lerr := e.fs.Symlink(st.LibFolderLinkTargetPath, ref.LibFolderPath); lerr != nil {
			logger.Error().Err(lerr).Msg("Failed to recreate lib folder link")
			return nil, renameErr.
				WithDetail("state", status.Broken.String()).
				WithDetail("restoreError", lerr.Error())
		}
		logger.Debug().Msg("Recreated lib folder link after failed restore")
		return nil, renameErr
	}

	logger.Info().Str("target", st.LibFolderLinkTargetPath).Msg("Unlinked package")
	return result, nil
}
