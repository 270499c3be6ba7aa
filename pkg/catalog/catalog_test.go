// pkg/catalog/catalog_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: MemoryFS
// PURPOSE: Reference discovery, deduplication and install path resolution

package catalog

import (
	"testing"

	"github.com/arthur-debert/nulink/pkg/errors"
	"github.com/arthur-debert/nulink/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, fs *testutil.MemoryFS, files map[string]string) {
	t.Helper()
	for path, content := range files {
		require.NoError(t, fs.WriteFile(path, []byte(content), 0644))
	}
}

func TestLoad_PackageReferences(t *testing.T) {
	fs := testutil.NewMemoryFS()
	writeFiles(t, fs, map[string]string{
		"/ws/App.csproj": `<Project Sdk="Microsoft.NET.Sdk">
  <ItemGroup>
    <PackageReference Include="Newtonsoft.Json" Version="13.0" />
    <PackageReference Include="Acme.Widgets">
      <Version>[2.1.0]</Version>
    </PackageReference>
    <PackageReference Update="Newtonsoft.Json" PrivateAssets="all" />
  </ItemGroup>
</Project>`,
	})

	refs, err := New(Options{FS: fs, PackagesRoot: "/nuget"}).Load("/ws/App.csproj", false)
	require.NoError(t, err)
	require.Len(t, refs, 2)

	assert.Equal(t, "Acme.Widgets", refs[0].PackageID)
	assert.Equal(t, "2.1.0", refs[0].Version)
	assert.Equal(t, "/nuget/acme.widgets/2.1.0/lib", refs[0].LibFolderPath)
	assert.Equal(t, "/nuget/acme.widgets/2.1.0/lib.bak", refs[0].LibBackupFolderPath)
	assert.Equal(t, []string{"/ws/App.csproj"}, refs[0].Projects)
	assert.Empty(t, refs[0].LocalSourcePath)

	assert.Equal(t, "Newtonsoft.Json", refs[1].PackageID)
	assert.Equal(t, "13.0.0", refs[1].Version)
	assert.Equal(t, "/nuget/newtonsoft.json/13.0.0/lib", refs[1].LibFolderPath)
}

func TestLoad_SolutionDeduplicates(t *testing.T) {
	fs := testutil.NewMemoryFS()
	writeFiles(t, fs, map[string]string{
		"/ws/All.sln": `Microsoft Visual Studio Solution File, Format Version 12.00
Project("{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "App", "App\App.csproj", "{11111111-1111-1111-1111-111111111111}"
EndProject
Project("{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "Tests", "Tests\Tests.csproj", "{22222222-2222-2222-2222-222222222222}"
EndProject`,
		"/ws/App/App.csproj": `<Project><ItemGroup>
  <PackageReference Include="Acme.Widgets" Version="1.0.0" />
</ItemGroup></Project>`,
		"/ws/Tests/Tests.csproj": `<Project><ItemGroup>
  <PackageReference Include="acme.widgets" Version="1.0.0" />
  <PackageReference Include="Zeta" Version="3.0.0" />
</ItemGroup></Project>`,
	})

	refs, err := New(Options{FS: fs, PackagesRoot: "/nuget"}).Load("/ws/All.sln", true)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "Acme.Widgets", refs[0].PackageID)
	assert.Equal(t, []string{"/ws/App/App.csproj", "/ws/Tests/Tests.csproj"}, refs[0].Projects)
	assert.Equal(t, "Zeta", refs[1].PackageID)
}

func TestLoad_CentralPackageVersions(t *testing.T) {
	fs := testutil.NewMemoryFS()
	writeFiles(t, fs, map[string]string{
		"/ws/Directory.Packages.props": `<Project>
  <ItemGroup>
    <PackageVersion Include="Acme.Widgets" Version="4.0.1" />
    <PackageVersion Include="Pinned" Version="1.0.0" />
  </ItemGroup>
</Project>`,
		"/ws/src/App/App.csproj": `<Project><ItemGroup>
  <PackageReference Include="ACME.Widgets" />
  <PackageReference Include="Pinned" VersionOverride="1.5.0" />
</ItemGroup></Project>`,
	})

	refs, err := New(Options{FS: fs, PackagesRoot: "/nuget"}).Load("/ws/src/App/App.csproj", false)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "4.0.1", refs[0].Version)
	assert.Equal(t, "/nuget/acme.widgets/4.0.1/lib", refs[0].LibFolderPath)
	assert.Equal(t, "1.5.0", refs[1].Version)
}

func TestLoad_PackagesConfig(t *testing.T) {
	fs := testutil.NewMemoryFS()
	writeFiles(t, fs, map[string]string{
		"/ws/All.sln": `Microsoft Visual Studio Solution File, Format Version 12.00
Project("{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "Legacy", "Legacy\Legacy.csproj", "{11111111-1111-1111-1111-111111111111}"
EndProject`,
		"/ws/Legacy/Legacy.csproj": `<Project ToolsVersion="15.0" />`,
		"/ws/Legacy/packages.config": `<?xml version="1.0" encoding="utf-8"?>
<packages>
  <package id="Acme.Widgets" version="1.0.0.0" targetFramework="net48" />
</packages>`,
	})

	refs, err := New(Options{FS: fs}).Load("/ws/All.sln", true)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "/ws/packages/Acme.Widgets.1.0.0.0/lib", refs[0].LibFolderPath)
}

func TestLoad_PackagesConfigForLoneProject(t *testing.T) {
	fs := testutil.NewMemoryFS()
	writeFiles(t, fs, map[string]string{
		"/ws/Legacy/Legacy.csproj":   `<Project />`,
		"/ws/Legacy/packages.config": `<packages><package id="Old" version="2.0.0" /></packages>`,
	})
	require.NoError(t, fs.MkdirAll("/ws/packages", 0755))

	refs, err := New(Options{FS: fs}).Load("/ws/Legacy/Legacy.csproj", false)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "/ws/packages/Old.2.0.0/lib", refs[0].LibFolderPath)
}

func TestLoad_SkipsUnmappableVersions(t *testing.T) {
	fs := testutil.NewMemoryFS()
	writeFiles(t, fs, map[string]string{
		"/ws/App.csproj": `<Project><ItemGroup>
  <PackageReference Include="Floating" Version="1.*" />
  <PackageReference Include="Open" Version="(,2.0)" />
  <PackageReference Include="NoVersion" />
  <PackageReference Include="Ok" Version="[1.0,2.0)" />
</ItemGroup></Project>`,
	})

	refs, err := New(Options{FS: fs, PackagesRoot: "/nuget"}).Load("/ws/App.csproj", false)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "Ok", refs[0].PackageID)
	assert.Equal(t, "1.0.0", refs[0].Version)
}

func TestLoad_LocalSources(t *testing.T) {
	fs := testutil.NewMemoryFS()
	writeFiles(t, fs, map[string]string{
		"/ws/App.csproj": `<Project><ItemGroup>
  <PackageReference Include="Acme.Widgets" Version="1.0.0" />
  <PackageReference Include="Acme.Gadgets" Version="1.0.0" />
  <PackageReference Include="Other" Version="1.0.0" />
</ItemGroup></Project>`,
	})

	refs, err := New(Options{
		FS:           fs,
		PackagesRoot: "/nuget",
		Sources: map[string]string{
			"acme.widgets": "../widgets/bin",
			"Acme.Gadgets": "/src/gadgets/Acme.Gadgets.csproj",
		},
		LocalConfiguration: "Release",
	}).Load("/ws/App.csproj", false)
	require.NoError(t, err)
	require.Len(t, refs, 3)

	assert.Equal(t, "/src/gadgets/bin/Release", refs[0].LocalSourcePath)
	assert.Equal(t, "/widgets/bin", refs[1].LocalSourcePath)
	assert.Empty(t, refs[2].LocalSourcePath)
}

func TestLoad_MalformedPackagesConfig(t *testing.T) {
	fs := testutil.NewMemoryFS()
	writeFiles(t, fs, map[string]string{
		"/ws/App.csproj":      `<Project />`,
		"/ws/packages.config": `<packages><package id="x"`,
	})

	_, err := New(Options{FS: fs}).Load("/ws/App.csproj", false)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrProjectLoad))
}

func TestResolveLocalSource(t *testing.T) {
	assert.Equal(t, "/base/out", ResolveLocalSource("out", "/base", ""))
	assert.Equal(t, "/abs/out", ResolveLocalSource("/abs/out/", "/base", ""))
	assert.Equal(t, "/base/src/bin/Debug", ResolveLocalSource("src/Lib.csproj", "/base", ""))
}
