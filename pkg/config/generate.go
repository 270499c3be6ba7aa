package config

import (
	"bytes"

	"github.com/arthur-debert/nulink/pkg/errors"
	"github.com/arthur-debert/nulink/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

const workspaceHeader = `# nulink workspace configuration.
# Fill in a local source for each package you want to link: a build output
# directory, or a project file (resolved to <project dir>/bin/<configuration>).
# Relative paths are resolved against this file's directory.

`

type workspaceTemplate struct {
	Packages struct {
		Root string `toml:"root" comment:"Global packages folder, overrides NUGET_PACKAGES and nuget.config" commented:"true"`
	} `toml:"packages"`
	Local struct {
		Configuration string `toml:"configuration" comment:"Build configuration for project file sources"`
	} `toml:"local"`
	Sources map[string]string `toml:"sources" comment:"Local source per package id. Empty entries are not linkable."`
}

// GenerateWorkspaceConfig renders a .nulink.toml listing every package in
// refs under [sources]. Sources already configured in cfg are kept.
func GenerateWorkspaceConfig(cfg *Config, refs []types.PackageReference) ([]byte, error) {
	var tmpl workspaceTemplate
	tmpl.Packages.Root = cfg.Packages.Root
	tmpl.Local.Configuration = cfg.Local.Configuration
	tmpl.Sources = make(map[string]string, len(refs))
	for _, ref := range refs {
		source, _ := cfg.SourceFor(ref.PackageID)
		tmpl.Sources[ref.PackageID] = source
	}

	var buf bytes.Buffer
	buf.WriteString(workspaceHeader)
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(false)
	if err := enc.Encode(tmpl); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render workspace config")
	}
	return buf.Bytes(), nil
}
