// internal/cli/commands_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (t.TempDir), cobra command tree
// PURPOSE: End-to-end command behavior, output routing and exit codes

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/nulink/pkg/types"
)

const widgetsProject = `<Project Sdk="Microsoft.NET.Sdk">
  <ItemGroup>
    <PackageReference Include="Acme.Widgets" Version="1.2.0" />
  </ItemGroup>
</Project>
`

// workspace is an SDK project consuming Acme.Widgets from a temp packages root
type workspace struct {
	project string
	lib     string
	local   string
}

func newWorkspace(t *testing.T) workspace {
	t.Helper()
	root := t.TempDir()

	t.Setenv("NULINK_CONFIG_DIR", filepath.Join(root, "config"))
	t.Setenv("NUGET_PACKAGES", filepath.Join(root, "packages"))
	t.Setenv("NO_COLOR", "1")

	ws := workspace{
		project: filepath.Join(root, "app", "App.csproj"),
		lib:     filepath.Join(root, "packages", "acme.widgets", "1.2.0", "lib"),
		local:   filepath.Join(root, "widgets", "bin", "Debug"),
	}

	require.NoError(t, os.MkdirAll(filepath.Dir(ws.project), 0755))
	require.NoError(t, os.WriteFile(ws.project, []byte(widgetsProject), 0644))
	require.NoError(t, os.MkdirAll(ws.lib, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(ws.lib, "a.dll"), []byte("a"), 0644))
	require.NoError(t, os.MkdirAll(ws.local, 0755))
	return ws
}

func run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	code := Execute(rootCmd)
	return stdout.String(), stderr.String(), code
}

func TestLinkAndUnlink(t *testing.T) {
	ws := newWorkspace(t)

	stdout, stderr, code := run(t, "link", "Acme.Widgets", "--project", ws.project, "--local", ws.local, "--format", "text")
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, stdout, "Checking package references in project: "+ws.project)
	assert.Contains(t, stdout, "Linked Acme.Widgets\n")
	assert.Contains(t, stdout, " ---> "+ws.local)

	target, err := os.Readlink(ws.lib)
	require.NoError(t, err)
	assert.Equal(t, ws.local, target)
	assert.FileExists(t, filepath.Join(ws.lib+".bak", "a.dll"))

	stdout, stderr, code = run(t, "unlink", "acme.widgets", "--project", ws.project, "--format", "text")
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, stdout, "Unlinked Acme.Widgets\n")
	assert.Contains(t, stdout, " -X-> "+ws.local)

	info, err := os.Lstat(ws.lib)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.FileExists(t, filepath.Join(ws.lib, "a.dll"))
}

func TestLink_ConfiguredSource(t *testing.T) {
	ws := newWorkspace(t)
	config := "[sources]\n\"Acme.Widgets\" = " + `"` + filepath.ToSlash(ws.local) + `"` + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(ws.project), ".nulink.toml"), []byte(config), 0644))

	_, stderr, code := run(t, "link", "--all", "--project", ws.project, "--format", "text")
	require.Equal(t, ExitOK, code, stderr)

	target, err := os.Readlink(ws.lib)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(ws.local), filepath.Clean(target))
}

func TestLink_PreconditionFailureExitsTwo(t *testing.T) {
	ws := newWorkspace(t)
	require.NoError(t, os.Mkdir(ws.lib+".bak", 0755))

	stdout, stderr, code := run(t, "link", "Acme.Widgets", "--project", ws.project, "--local", ws.local, "--format", "text")
	assert.Equal(t, ExitPartialFailure, code)
	assert.NotContains(t, stdout, "Linked")

	msg := "Error: Cannot link package Acme.Widgets: backup folder already exists at " + ws.lib + ".bak"
	assert.Equal(t, 1, strings.Count(stderr, msg), stderr)

	info, err := os.Lstat(ws.lib)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestUnlink_UnknownPackageExitsOne(t *testing.T) {
	ws := newWorkspace(t)

	_, stderr, code := run(t, "unlink", "Nope", "--project", ws.project, "--format", "text")
	assert.Equal(t, ExitFatal, code)
	assert.Equal(t, 1, strings.Count(stderr, "Error: Package not referenced: Nope"), stderr)
}

func TestLink_DryRun(t *testing.T) {
	ws := newWorkspace(t)

	stdout, stderr, code := run(t, "link", "Acme.Widgets", "--project", ws.project, "--local", ws.local, "--dry-run", "--format", "text")
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, stdout, "Would link Acme.Widgets")

	_, err := os.Readlink(ws.lib)
	assert.Error(t, err)
	assert.NoDirExists(t, ws.lib+".bak")
}

func TestUsageErrors(t *testing.T) {
	ws := newWorkspace(t)

	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"no target", []string{"link", "--project", ws.project}, MsgErrNeedTarget},
		{"target and all", []string{"unlink", "X", "--all", "--project", ws.project}, MsgErrTargetAndAll},
		{"local with all", []string{"link", "--all", "--local", ws.local, "--project", ws.project}, MsgErrLocalWithAll},
		{"bad format", []string{"status", "--project", ws.project, "--format", "xml"}, `unknown output format "xml"`},
		{"no command", []string{}, "no command specified"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := run(t, tt.args...)
			assert.Equal(t, ExitFatal, code)
			assert.Contains(t, stderr, "Error: "+tt.msg)
		})
	}
}

func TestStatus_YAML(t *testing.T) {
	ws := newWorkspace(t)

	stdout, stderr, code := run(t, "status", "--project", ws.project, "--format", "yaml")
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, stderr, "Checking package references in project:")

	var report types.StatusReport
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Packages, 1)
	assert.Equal(t, "Acme.Widgets", report.Packages[0].PackageID)
	assert.Equal(t, "1.2.0", report.Packages[0].Version)
	assert.Equal(t, "unlinked", report.Packages[0].State)
	assert.Equal(t, ws.lib, report.Packages[0].LibFolderPath)
}

func TestGenConfig(t *testing.T) {
	ws := newWorkspace(t)
	target := filepath.Join(filepath.Dir(ws.project), ".nulink.toml")

	t.Run("stdout", func(t *testing.T) {
		stdout, stderr, code := run(t, "genconfig", "--stdout", "--project", ws.project)
		require.Equal(t, ExitOK, code, stderr)
		assert.True(t, strings.HasPrefix(stdout, "# nulink workspace configuration."))
		assert.Contains(t, stdout, "[sources]")
		assert.Contains(t, stdout, "Acme.Widgets")
		assert.NoFileExists(t, target)
	})

	t.Run("write then refuse", func(t *testing.T) {
		stdout, stderr, code := run(t, "genconfig", "--project", ws.project, "--format", "text")
		require.Equal(t, ExitOK, code, stderr)
		assert.Contains(t, stdout, "Wrote "+target)
		assert.FileExists(t, target)

		_, stderr, code = run(t, "genconfig", "--project", ws.project, "--format", "text")
		assert.Equal(t, ExitFatal, code)
		assert.Contains(t, stderr, "config file already exists")
	})
}

func TestVersionCommand(t *testing.T) {
	stdout, _, code := run(t, "version")
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, stdout, "nulink version dev")
	assert.Contains(t, stdout, "Commit: unknown")
}

func TestTopicsCommand(t *testing.T) {
	stdout, _, code := run(t, "topics")
	assert.Equal(t, ExitOK, code)
	for _, topic := range []string{"linking", "configuration", "local-sources", "status-states", "--dry-run", "--format"} {
		assert.Contains(t, stdout, topic)
	}
}
