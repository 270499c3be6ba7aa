package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/nulink/pkg/paths"
	"github.com/arthur-debert/nulink/pkg/types"
	"github.com/stretchr/testify/require"
)

// Snapshot records every entry below root without following symlinks.
// Directories map to "dir", symlinks to "-> <target>" and files to their
// content. A missing root yields an empty snapshot. Two equal snapshots mean
// the tree was left byte-identical.
func Snapshot(t *testing.T, fsys types.FS, root string) map[string]string {
	t.Helper()

	snap := make(map[string]string)
	var walk func(path, rel string)
	walk = func(path, rel string) {
		info, err := fsys.Lstat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return
			}
			require.NoError(t, err)
		}

		switch {
		case info.Mode()&os.ModeSymlink != 0:
			target, err := fsys.Readlink(path)
			require.NoError(t, err)
			snap[rel] = "-> " + target
		case info.IsDir():
			snap[rel] = "dir"
			entries, err := fsys.ReadDir(path)
			require.NoError(t, err)
			for _, e := range entries {
				walk(filepath.Join(path, e.Name()), filepath.ToSlash(filepath.Join(rel, e.Name())))
			}
		default:
			content, err := fsys.ReadFile(path)
			require.NoError(t, err)
			snap[rel] = string(content)
		}
	}
	walk(root, ".")
	return snap
}

// PackageFixture builds installed packages and local build outputs on a
// filesystem for tests
type PackageFixture struct {
	t    *testing.T
	fs   types.FS
	Root string
}

// NewPackageFixture creates a fixture rooted at root
func NewPackageFixture(t *testing.T, fsys types.FS, root string) *PackageFixture {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(root, 0755))
	return &PackageFixture{t: t, fs: fsys, Root: root}
}

// Installed creates <Root>/packages/<id>/lib holding files and a local
// build output at <Root>/dev/<id>/bin, and returns the matching reference
func (f *PackageFixture) Installed(id string, files ...string) types.PackageReference {
	f.t.Helper()

	lib := filepath.Join(f.Root, "packages", id, paths.LibFolderName)
	require.NoError(f.t, f.fs.MkdirAll(lib, 0755))
	for _, name := range files {
		require.NoError(f.t, f.fs.WriteFile(filepath.Join(lib, name), []byte("original "+name), 0644))
	}

	local := filepath.Join(f.Root, "dev", id, "bin")
	require.NoError(f.t, f.fs.MkdirAll(local, 0755))
	require.NoError(f.t, f.fs.WriteFile(filepath.Join(local, id+".dll"), []byte("local build"), 0644))

	return types.PackageReference{
		PackageID:           id,
		Version:             "1.0.0",
		LibFolderPath:       lib,
		LibBackupFolderPath: paths.BackupFolderPath(lib),
		LocalSourcePath:     local,
	}
}

// Linked creates a package already in the linked state: the original lib
// folder moved to its backup and lib pointing at the local build output
func (f *PackageFixture) Linked(id string, files ...string) types.PackageReference {
	f.t.Helper()

	ref := f.Installed(id, files...)
	require.NoError(f.t, f.fs.Rename(ref.LibFolderPath, ref.LibBackupFolderPath))
	require.NoError(f.t, f.fs.Symlink(ref.LocalSourcePath, ref.LibFolderPath))
	return ref
}
