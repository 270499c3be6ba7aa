package linker

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/nulink/pkg/errors"
	"github.com/arthur-debert/nulink/pkg/status"
	"github.com/arthur-debert/nulink/pkg/types"
)

// checkLink allows Link only from Unlinked with an existing local source
func checkLink(ref types.PackageReference, st types.LinkStatus) error {
	id := ref.PackageID
	c := status.Classify(st)

	switch c.State {
	case status.Unlinked:
		if st.LibFolderIsFile {
			return errors.Newf(errors.ErrLibNotDirectory,
				"Cannot link package %s: %s is not a directory", id, ref.LibFolderPath).
				WithDetail("path", ref.LibFolderPath)
		}
	case status.Linked:
		return alreadyLinked(id, st)
	case status.LibMissing:
		return libMissing("link", ref)
	case status.Broken:
		switch c.Reason {
		case status.LinkWithoutBackup:
			return alreadyLinked(id, st)
		case status.BackupWithoutLink:
			return errors.Newf(errors.ErrBackupAlreadyExists,
				"Cannot link package %s: backup folder already exists at %s", id, ref.LibBackupFolderPath).
				WithDetail("path", ref.LibBackupFolderPath)
		default:
			return libMissing("link", ref)
		}
	default:
		return errors.Newf(errors.ErrInternal, "unknown state %s for package %s", c.State, id)
	}

	if ref.LocalSourcePath == "" {
		return errors.Newf(errors.ErrLocalSourceMissing,
			"Cannot link package %s: no local source configured", id)
	}
	if within(ref.LocalSourcePath, ref.LibFolderPath) {
		return errors.Newf(errors.ErrLocalSourceInLib,
			"Cannot link package %s: local source %s is inside its own lib folder %s",
			id, ref.LocalSourcePath, ref.LibFolderPath).
			WithDetail("path", ref.LocalSourcePath)
	}
	if !st.LocalSourceExists {
		return errors.Newf(errors.ErrLocalSourceMissing,
			"Cannot link package %s: local source folder not found, expected %s", id, ref.LocalSourcePath).
			WithDetail("path", ref.LocalSourcePath)
	}
	return nil
}

// checkUnlink allows Unlink only from Linked
func checkUnlink(ref types.PackageReference, st types.LinkStatus) error {
	id := ref.PackageID
	c := status.Classify(st)

	switch c.State {
	case status.Linked:
		return nil
	case status.Unlinked:
		return notLinked(id)
	case status.LibMissing:
		return libMissing("unlink", ref)
	case status.Broken:
		switch c.Reason {
		case status.LinkWithoutBackup:
			return errors.Newf(errors.ErrBackupMissing,
				"Cannot unlink package %s: backup folder not found, expected %s", id, ref.LibBackupFolderPath).
				WithDetail("path", ref.LibBackupFolderPath)
		case status.BackupWithoutLink:
			return notLinked(id)
		default:
			return libMissing("unlink", ref)
		}
	}
	return errors.Newf(errors.ErrInternal, "unknown state %s for package %s", c.State, id)
}

// within reports whether path is dir or lies below it
func within(path, dir string) bool {
	path, dir = filepath.Clean(path), filepath.Clean(dir)
	return path == dir || strings.HasPrefix(path, dir+string(filepath.Separator))
}

func libMissing(verb string, ref types.PackageReference) error {
	return errors.Newf(errors.ErrLibFolderMissing,
		"Cannot %s package %s: 'lib' folder not found, expected %s", verb, ref.PackageID, ref.LibFolderPath).
		WithDetail("path", ref.LibFolderPath)
}

func alreadyLinked(id string, st types.LinkStatus) error {
	return errors.Newf(errors.ErrAlreadyLinked,
		"Package %s is already linked to %s", id, st.LibFolderLinkTargetPath).
		WithDetail("target", st.LibFolderLinkTargetPath)
}

func notLinked(id string) error {
	return errors.Newf(errors.ErrNotLinked, "Package %s is not linked.", id)
}
