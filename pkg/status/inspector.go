package status

import (
	stderrors "errors"
	iofs "io/fs"
	"syscall"

	"github.com/arthur-debert/nulink/pkg/errors"
	"github.com/arthur-debert/nulink/pkg/logging"
	"github.com/arthur-debert/nulink/pkg/types"
)

// Inspector reads link status through a filesystem
type Inspector struct {
	fs types.FS
}

// NewInspector creates an inspector over fs
func NewInspector(fs types.FS) *Inspector {
	return &Inspector{fs: fs}
}

// Inspect takes a snapshot of the package's lib folder, backup folder and
// local source. Missing paths are a valid status; only unexpected I/O
// failures are returned as errors.
func (i *Inspector) Inspect(ref types.PackageReference) (types.LinkStatus, error) {
	logger := logging.GetLogger("status").With().
		Str("package", ref.PackageID).
		Logger()

	var status types.LinkStatus

	lib, err := i.lstat(ref.LibFolderPath)
	if err != nil {
		return types.LinkStatus{}, err
	}
	if lib != nil {
		status.LibFolderExists = true
		if lib.Mode()&iofs.ModeSymlink != 0 {
			target, err := i.fs.Readlink(ref.LibFolderPath)
			if err != nil {
				return types.LinkStatus{}, errors.Wrapf(err, errors.ErrFileAccess,
					"failed to read link %s", ref.LibFolderPath)
			}
			status.IsLibFolderLinked = true
			status.LibFolderLinkTargetPath = target
		} else if !lib.IsDir() {
			status.LibFolderIsFile = true
		}
	}

	backup, err := i.lstat(ref.LibBackupFolderPath)
	if err != nil {
		return types.LinkStatus{}, err
	}
	status.LibBackupFolderExists = backup != nil

	if ref.LocalSourcePath != "" {
		info, err := i.fs.Stat(ref.LocalSourcePath)
		status.LocalSourceExists = err == nil && info.IsDir()
	}

	logger.Trace().
		Bool("libFolderExists", status.LibFolderExists).
		Bool("isLibFolderLinked", status.IsLibFolderLinked).
		Str("linkTarget", status.LibFolderLinkTargetPath).
		Bool("libBackupFolderExists", status.LibBackupFolderExists).
		Msg("Inspected package")

	return status, nil
}

// lstat returns nil info for a missing path
func (i *Inspector) lstat(path string) (iofs.FileInfo, error) {
	if path == "" {
		return nil, nil
	}
	info, err := i.fs.Lstat(path)
	if err != nil {
		if isNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to inspect %s", path)
	}
	return info, nil
}

// isNotExist checks if an error indicates a file doesn't exist. A regular
// file where a parent directory is expected counts as missing.
func isNotExist(err error) bool {
	return stderrors.Is(err, iofs.ErrNotExist) || stderrors.Is(err, syscall.ENOTDIR)
}
