package ui_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/arthur-debert/nulink/pkg/style"
	"github.com/arthur-debert/nulink/pkg/types"
	"github.com/arthur-debert/nulink/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport() *types.StatusReport {
	return &types.StatusReport{
		EntryPath: "/ws/App.csproj",
		Packages: []types.PackageStatus{
			{
				PackageID:     "Acme.Widgets",
				Version:       "1.0.0",
				State:         "linked",
				LibFolderPath: "/nuget/acme.widgets/1.0.0/lib",
				LinkTarget:    "/dev/widgets/bin",
				BackupExists:  true,
			},
			{
				PackageID:     "Newtonsoft.Json",
				Version:       "13.0.3",
				State:         "unlinked",
				LibFolderPath: "/nuget/newtonsoft.json/13.0.3/lib",
			},
		},
	}
}

func TestNew(t *testing.T) {
	for _, format := range []ui.Format{ui.FormatAuto, ui.FormatTerminal, ui.FormatText, ui.FormatJSON, ui.FormatYAML} {
		t.Run(format.String(), func(t *testing.T) {
			out, err := ui.New(format, ui.Options{Out: &bytes.Buffer{}, ErrOut: &bytes.Buffer{}})
			require.NoError(t, err)
			assert.NotNil(t, out)
		})
	}

	_, err := ui.New(ui.Format(999), ui.Options{})
	assert.Error(t, err)
}

func TestTextOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	o, err := ui.New(ui.FormatText, ui.Options{Out: &out, ErrOut: &errOut})
	require.NoError(t, err)

	o.Info(func() string { return "Checking package references in project: /ws/App.csproj" })
	o.Success(func() string { return "Linked Acme.Widgets" })
	o.Success(func() string { return " ---> /dev/widgets/bin" }, style.ColorGreen, style.ColorDarkYellow)
	o.Error(func() string { return "Error: Package not referenced: Nope" })

	assert.Equal(t,
		"Checking package references in project: /ws/App.csproj\nLinked Acme.Widgets\n ---> /dev/widgets/bin\n",
		out.String())
	assert.Equal(t, "Error: Package not referenced: Nope\n", errOut.String())
}

func TestNoColorTerminalIsPlain(t *testing.T) {
	var out bytes.Buffer
	o, err := ui.New(ui.FormatTerminal, ui.Options{Out: &out, ErrOut: &out, NoColor: true})
	require.NoError(t, err)

	o.Success(func() string { return " -X-> /dev/widgets/bin" }, style.ColorRed, style.ColorDarkYellow)
	assert.Equal(t, " -X-> /dev/widgets/bin\n", out.String())
}

func TestTextStatusTable(t *testing.T) {
	var out bytes.Buffer
	o, err := ui.New(ui.FormatText, ui.Options{Out: &out})
	require.NoError(t, err)

	require.NoError(t, o.RenderStatus(sampleReport()))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Package")
	assert.Contains(t, lines[1], "Acme.Widgets")
	assert.Contains(t, lines[1], "-> /dev/widgets/bin")
	assert.Contains(t, lines[2], "unlinked")
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestTextStatusEmpty(t *testing.T) {
	var out bytes.Buffer
	o, err := ui.New(ui.FormatText, ui.Options{Out: &out})
	require.NoError(t, err)

	require.NoError(t, o.RenderStatus(&types.StatusReport{EntryPath: "/ws/App.csproj"}))
	assert.Equal(t, "No package references found\n", out.String())
}

func TestJSONOutput(t *testing.T) {
	var out bytes.Buffer
	o, err := ui.New(ui.FormatJSON, ui.Options{Out: &out})
	require.NoError(t, err)

	o.Success(func() string { return "Unlinked Acme.Widgets" }, style.ColorRed)
	o.Error(func() string { return "Error: Package Acme.Widgets is not linked." })

	dec := json.NewDecoder(&out)
	var first, second map[string]string
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))
	assert.Equal(t, map[string]string{"level": "success", "message": "Unlinked Acme.Widgets"}, first)
	assert.Equal(t, "error", second["level"])

	out.Reset()
	require.NoError(t, o.RenderStatus(sampleReport()))
	var report types.StatusReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, *sampleReport(), report)
}

func TestYAMLOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	o, err := ui.New(ui.FormatYAML, ui.Options{Out: &out, ErrOut: &errOut})
	require.NoError(t, err)

	o.Info(func() string { return "Checking package references in project: /ws/App.csproj" })
	require.NoError(t, o.RenderStatus(sampleReport()))

	assert.Contains(t, errOut.String(), "Checking package references")

	var report types.StatusReport
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, *sampleReport(), report)
}

func TestRecorder(t *testing.T) {
	r := ui.NewRecorder()
	r.Info(func() string { return "a" })
	r.Success(func() string { return "b" }, style.ColorGreen)
	r.Error(func() string { return "c" })

	assert.Equal(t, []string{"b"}, r.Texts(ui.LevelSuccess))
	assert.Equal(t, []style.Color{style.ColorGreen}, r.Messages[1].Hints)
	assert.Len(t, r.Messages, 3)
}

func TestEverySeverityTakesHints(t *testing.T) {
	r := ui.NewRecorder()
	var rep ui.Reporter = r
	rep.Info(func() string { return "Checking /ws/App.csproj" }, style.ColorDefault, style.ColorDarkYellow)
	rep.Error(func() string { return "Error: broken" }, style.ColorRed)

	require.Len(t, r.Messages, 2)
	assert.Equal(t, []style.Color{style.ColorDefault, style.ColorDarkYellow}, r.Messages[0].Hints)
	assert.Equal(t, []style.Color{style.ColorRed}, r.Messages[1].Hints)

	var out, errOut bytes.Buffer
	o, err := ui.New(ui.FormatText, ui.Options{Out: &out, ErrOut: &errOut})
	require.NoError(t, err)
	o.Info(func() string { return "Checking /ws/App.csproj" }, style.ColorDarkYellow)
	o.Error(func() string { return "Error: broken" }, style.ColorRed)
	assert.Equal(t, "Checking /ws/App.csproj\n", out.String())
	assert.Equal(t, "Error: broken\n", errOut.String())
}
