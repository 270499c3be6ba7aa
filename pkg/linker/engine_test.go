// pkg/linker/engine_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: MemoryFS
// PURPOSE: Link and Unlink transitions, refusals and rollback

package linker

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/nulink/pkg/errors"
	"github.com/arthur-debert/nulink/pkg/status"
	"github.com/arthur-debert/nulink/pkg/testutil"
	"github.com/arthur-debert/nulink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classify(t *testing.T, fs types.FS, ref types.PackageReference) status.Classification {
	t.Helper()
	st, err := status.NewInspector(fs).Inspect(ref)
	require.NoError(t, err)
	return status.Classify(st)
}

func TestLink(t *testing.T) {
	fs := testutil.NewMemoryFS()
	ref := testutil.NewPackageFixture(t, fs, "/ws").Installed("Acme.Widgets", "a.dll")

	result, err := NewEngine(fs, Options{}).Link(ref)
	require.NoError(t, err)

	assert.Equal(t, &Result{
		PackageID:     "Acme.Widgets",
		Transition:    TransitionLink,
		LibFolderPath: ref.LibFolderPath,
		TargetPath:    ref.LocalSourcePath,
	}, result)

	target, err := fs.Readlink(ref.LibFolderPath)
	require.NoError(t, err)
	assert.Equal(t, ref.LocalSourcePath, target)

	content, err := fs.ReadFile(ref.LibBackupFolderPath + "/a.dll")
	require.NoError(t, err)
	assert.Equal(t, "original a.dll", string(content))

	assert.Equal(t, status.Linked, classify(t, fs, ref).State)
}

func TestUnlink(t *testing.T) {
	fs := testutil.NewMemoryFS()
	ref := testutil.NewPackageFixture(t, fs, "/ws").Linked("Acme.Widgets", "a.dll")

	result, err := NewEngine(fs, Options{}).Unlink(ref)
	require.NoError(t, err)
	assert.Equal(t, TransitionUnlink, result.Transition)
	assert.Equal(t, ref.LocalSourcePath, result.TargetPath)

	info, err := fs.Lstat(ref.LibFolderPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = fs.Lstat(ref.LibBackupFolderPath)
	assert.Error(t, err)

	// the local build output is left alone
	content, err := fs.ReadFile(ref.LocalSourcePath + "/Acme.Widgets.dll")
	require.NoError(t, err)
	assert.Equal(t, "local build", string(content))

	assert.Equal(t, status.Unlinked, classify(t, fs, ref).State)
}

func TestRoundTripRestoresTree(t *testing.T) {
	fs := testutil.NewMemoryFS()
	ref := testutil.NewPackageFixture(t, fs, "/ws").Installed("Acme.Widgets", "a.dll", "b.dll")
	before := testutil.Snapshot(t, fs, "/ws")

	engine := NewEngine(fs, Options{})
	_, err := engine.Link(ref)
	require.NoError(t, err)
	_, err = engine.Unlink(ref)
	require.NoError(t, err)

	assert.Equal(t, before, testutil.Snapshot(t, fs, "/ws"))
}

func TestRefusalsLeaveTreeUntouched(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, fs *testutil.MemoryFS) types.PackageReference
		unlink   bool
		wantCode errors.ErrorCode
	}{
		{
			name: "link twice",
			setup: func(t *testing.T, fs *testutil.MemoryFS) types.PackageReference {
				return testutil.NewPackageFixture(t, fs, "/ws").Linked("P", "a.dll")
			},
			wantCode: errors.ErrAlreadyLinked,
		},
		{
			name: "link without lib folder",
			setup: func(t *testing.T, fs *testutil.MemoryFS) types.PackageReference {
				ref := testutil.NewPackageFixture(t, fs, "/ws").Installed("P", "a.dll")
				require.NoError(t, fs.RemoveAll(ref.LibFolderPath))
				return ref
			},
			wantCode: errors.ErrLibFolderMissing,
		},
		{
			name: "link over stale backup",
			setup: func(t *testing.T, fs *testutil.MemoryFS) types.PackageReference {
				ref := testutil.NewPackageFixture(t, fs, "/ws").Installed("P", "a.dll")
				require.NoError(t, fs.MkdirAll(ref.LibBackupFolderPath, 0755))
				return ref
			},
			wantCode: errors.ErrBackupAlreadyExists,
		},
		{
			name: "link to missing local source",
			setup: func(t *testing.T, fs *testutil.MemoryFS) types.PackageReference {
				ref := testutil.NewPackageFixture(t, fs, "/ws").Installed("P", "a.dll")
				ref.LocalSourcePath = "/ws/dev/missing/bin"
				return ref
			},
			wantCode: errors.ErrLocalSourceMissing,
		},
		{
			name: "link without configured local source",
			setup: func(t *testing.T, fs *testutil.MemoryFS) types.PackageReference {
				ref := testutil.NewPackageFixture(t, fs, "/ws").Installed("P", "a.dll")
				ref.LocalSourcePath = ""
				return ref
			},
			wantCode: errors.ErrLocalSourceMissing,
		},
		{
			name: "link with only the backup left",
			setup: func(t *testing.T, fs *testutil.MemoryFS) types.PackageReference {
				ref := testutil.NewPackageFixture(t, fs, "/ws").Installed("P", "a.dll")
				require.NoError(t, fs.Rename(ref.LibFolderPath, ref.LibBackupFolderPath))
				return ref
			},
			wantCode: errors.ErrLibFolderMissing,
		},
		{
			name: "link when lib is a regular file",
			setup: func(t *testing.T, fs *testutil.MemoryFS) types.PackageReference {
				ref := testutil.NewPackageFixture(t, fs, "/ws").Installed("P", "a.dll")
				require.NoError(t, fs.RemoveAll(ref.LibFolderPath))
				require.NoError(t, fs.WriteFile(ref.LibFolderPath, []byte("not a folder"), 0644))
				return ref
			},
			wantCode: errors.ErrLibNotDirectory,
		},
		{
			name: "link to the lib folder itself",
			setup: func(t *testing.T, fs *testutil.MemoryFS) types.PackageReference {
				ref := testutil.NewPackageFixture(t, fs, "/ws").Installed("P", "a.dll")
				ref.LocalSourcePath = ref.LibFolderPath
				return ref
			},
			wantCode: errors.ErrLocalSourceInLib,
		},
		{
			name: "link to a folder inside lib",
			setup: func(t *testing.T, fs *testutil.MemoryFS) types.PackageReference {
				ref := testutil.NewPackageFixture(t, fs, "/ws").Installed("P", "a.dll")
				ref.LocalSourcePath = ref.LibFolderPath + "/net8.0/"
				require.NoError(t, fs.MkdirAll(ref.LocalSourcePath, 0755))
				return ref
			},
			wantCode: errors.ErrLocalSourceInLib,
		},
		{
			name: "unlink twice",
			setup: func(t *testing.T, fs *testutil.MemoryFS) types.PackageReference {
				return testutil.NewPackageFixture(t, fs, "/ws").Installed("P", "a.dll")
			},
			unlink:   true,
			wantCode: errors.ErrNotLinked,
		},
		{
			name: "unlink without lib folder",
			setup: func(t *testing.T, fs *testutil.MemoryFS) types.PackageReference {
				ref := testutil.NewPackageFixture(t, fs, "/ws").Installed("P", "a.dll")
				require.NoError(t, fs.Rename(ref.LibFolderPath, ref.LibBackupFolderPath))
				return ref
			},
			unlink:   true,
			wantCode: errors.ErrLibFolderMissing,
		},
		{
			name: "unlink with stale backup next to a regular lib",
			setup: func(t *testing.T, fs *testutil.MemoryFS) types.PackageReference {
				ref := testutil.NewPackageFixture(t, fs, "/ws").Installed("P", "a.dll")
				require.NoError(t, fs.MkdirAll(ref.LibBackupFolderPath, 0755))
				return ref
			},
			unlink:   true,
			wantCode: errors.ErrNotLinked,
		},
		{
			name: "unlink without backup",
			setup: func(t *testing.T, fs *testutil.MemoryFS) types.PackageReference {
				ref := testutil.NewPackageFixture(t, fs, "/ws").Linked("P", "a.dll")
				require.NoError(t, fs.RemoveAll(ref.LibBackupFolderPath))
				return ref
			},
			unlink:   true,
			wantCode: errors.ErrBackupMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := testutil.NewMemoryFS()
			ref := tt.setup(t, fs)
			before := testutil.Snapshot(t, fs, "/ws")
			fs.ResetStats()

			engine := NewEngine(fs, Options{})
			var (
				result *Result
				err    error
			)
			if tt.unlink {
				result, err = engine.Unlink(ref)
			} else {
				result, err = engine.Link(ref)
			}

			require.Error(t, err)
			assert.Nil(t, result)
			assert.Equal(t, tt.wantCode, errors.GetErrorCode(err))

			_, writes := fs.Stats()
			assert.Zero(t, writes)
			assert.Equal(t, before, testutil.Snapshot(t, fs, "/ws"))
		})
	}
}

func TestRefusalMessages(t *testing.T) {
	fs := testutil.NewMemoryFS()
	fixture := testutil.NewPackageFixture(t, fs, "/ws")
	unlinked := fixture.Installed("Plain", "a.dll")
	engine := NewEngine(fs, Options{})

	_, err := engine.Unlink(unlinked)
	assert.Equal(t, "Package Plain is not linked.", errors.Message(err))

	broken := fixture.Linked("Broken", "a.dll")
	require.NoError(t, fs.RemoveAll(broken.LibBackupFolderPath))
	_, err = engine.Unlink(broken)
	assert.Equal(t,
		"Cannot unlink package Broken: backup folder not found, expected "+broken.LibBackupFolderPath,
		errors.Message(err))

	missing := types.PackageReference{PackageID: "Gone", LibFolderPath: "/ws/gone/lib", LibBackupFolderPath: "/ws/gone/lib.bak"}
	_, err = engine.Unlink(missing)
	assert.Equal(t, "Cannot unlink package Gone: 'lib' folder not found, expected /ws/gone/lib", errors.Message(err))
}

func TestDryRun(t *testing.T) {
	fs := testutil.NewMemoryFS()
	fixture := testutil.NewPackageFixture(t, fs, "/ws")
	unlinked := fixture.Installed("A", "a.dll")
	linked := fixture.Linked("B", "b.dll")
	before := testutil.Snapshot(t, fs, "/ws")
	fs.ResetStats()

	engine := NewEngine(fs, Options{DryRun: true})

	result, err := engine.Link(unlinked)
	require.NoError(t, err)
	assert.True(t, result.DryRun)

	result, err = engine.Unlink(linked)
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, linked.LocalSourcePath, result.TargetPath)

	// preconditions still apply
	_, err = engine.Link(linked)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyLinked))

	_, writes := fs.Stats()
	assert.Zero(t, writes)
	assert.Equal(t, before, testutil.Snapshot(t, fs, "/ws"))
}

func TestLink_SymlinkFailureRestoresLib(t *testing.T) {
	fs := testutil.NewMemoryFS()
	ref := testutil.NewPackageFixture(t, fs, "/ws").Installed("P", "a.dll")
	before := testutil.Snapshot(t, fs, "/ws")

	fs.FailOperation("symlink", stderrors.New("operation not permitted"))
	_, err := NewEngine(fs, Options{}).Link(ref)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSymlinkCreate))
	assert.Nil(t, errors.GetErrorDetails(err)["state"])
	assert.Equal(t, before, testutil.Snapshot(t, fs, "/ws"))
}

func TestLink_RenameFailureChangesNothing(t *testing.T) {
	fs := testutil.NewMemoryFS()
	ref := testutil.NewPackageFixture(t, fs, "/ws").Installed("P", "a.dll")
	before := testutil.Snapshot(t, fs, "/ws")

	fs.FailOperation("rename", stderrors.New("device busy"))
	_, err := NewEngine(fs, Options{}).Link(ref)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRename))
	assert.Equal(t, before, testutil.Snapshot(t, fs, "/ws"))
}

func TestUnlink_RenameFailureRecreatesLink(t *testing.T) {
	fs := testutil.NewMemoryFS()
	ref := testutil.NewPackageFixture(t, fs, "/ws").Linked("P", "a.dll")
	before := testutil.Snapshot(t, fs, "/ws")

	fs.FailOperation("rename", stderrors.New("device busy"))
	_, err := NewEngine(fs, Options{}).Unlink(ref)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRename))
	assert.Equal(t, before, testutil.Snapshot(t, fs, "/ws"))
	assert.Equal(t, status.Linked, classify(t, fs, ref).State)
}

func TestUnlink_FailedRecoveryReportsBroken(t *testing.T) {
	fs := testutil.NewMemoryFS()
	ref := testutil.NewPackageFixture(t, fs, "/ws").Linked("P", "a.dll")

	fs.FailOperation("rename", stderrors.New("device busy"))
	fs.FailOperation("symlink", stderrors.New("operation not permitted"))
	_, err := NewEngine(fs, Options{}).Unlink(ref)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRename))
	assert.Equal(t, "broken", errors.GetErrorDetails(err)["state"])

	fs.FailOperation("rename", nil)
	fs.FailOperation("symlink", nil)
	c := classify(t, fs, ref)
	assert.Equal(t, status.Broken, c.State)
	assert.Equal(t, status.BackupWithoutLib, c.Reason)
}

func TestUnlink_RemoveFailureChangesNothing(t *testing.T) {
	fs := testutil.NewMemoryFS()
	ref := testutil.NewPackageFixture(t, fs, "/ws").Linked("P", "a.dll")
	before := testutil.Snapshot(t, fs, "/ws")

	fs.FailOperation("remove", stderrors.New("permission denied"))
	_, err := NewEngine(fs, Options{}).Unlink(ref)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRemove))
	assert.Equal(t, before, testutil.Snapshot(t, fs, "/ws"))
}
