package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/nulink/pkg/errors"
	"github.com/arthur-debert/nulink/pkg/logging"
	"github.com/arthur-debert/nulink/pkg/workspace"
	"github.com/beevik/etree"
)

const (
	packagesConfigFile  = "packages.config"
	centralVersionsFile = "Directory.Packages.props"
)

// projectReferences collects the PackageReference items and packages.config
// entries of a project
func (c *DiskCatalog) projectReferences(project workspace.Project) ([]declared, error) {
	logger := logging.GetLogger("catalog").With().Str("project", project.Path).Logger()

	var central map[string]string
	var out []declared

	for _, el := range project.Doc.FindElements("//ItemGroup/PackageReference") {
		id := strings.TrimSpace(el.SelectAttrValue("Include", ""))
		if id == "" {
			// Update items modify references declared elsewhere
			continue
		}

		version := el.SelectAttrValue("VersionOverride", "")
		if version == "" {
			version = attrOrChild(el, "Version")
		}
		if version == "" {
			if central == nil {
				var err error
				central, err = c.centralVersions(project.Dir())
				if err != nil {
					return nil, err
				}
			}
			version = central[strings.ToLower(id)]
		}
		if version == "" {
			logger.Warn().Str("package", id).Msg("Skipping package reference without a version")
			continue
		}

		out = append(out, declared{id: id, version: version, project: project.Path})
	}

	legacy, err := c.packagesConfig(project)
	if err != nil {
		return nil, err
	}
	return append(out, legacy...), nil
}

// packagesConfig reads <package id version/> entries from a packages.config
// next to the project, if there is one
func (c *DiskCatalog) packagesConfig(project workspace.Project) ([]declared, error) {
	path := filepath.Join(project.Dir(), packagesConfigFile)
	data, err := c.opts.FS.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrProjectLoad, "failed to read %s", path)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrapf(err, errors.ErrProjectLoad, "malformed %s", path).
			WithDetail("path", path)
	}

	var out []declared
	for _, el := range doc.FindElements("/packages/package") {
		id := el.SelectAttrValue("id", "")
		version := el.SelectAttrValue("version", "")
		if id == "" || version == "" {
			continue
		}
		out = append(out, declared{id: id, version: version, project: project.Path, legacy: true})
	}
	return out, nil
}

// centralVersions loads <PackageVersion Include Version/> from the nearest
// Directory.Packages.props at or above dir, keyed by lowercased id
func (c *DiskCatalog) centralVersions(dir string) (map[string]string, error) {
	versions := make(map[string]string)

	path, ok := c.findUpward(dir, centralVersionsFile)
	if !ok {
		return versions, nil
	}

	data, err := c.opts.FS.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrProjectLoad, "failed to read %s", path)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrapf(err, errors.ErrProjectLoad, "malformed %s", path).
			WithDetail("path", path)
	}

	for _, el := range doc.FindElements("//ItemGroup/PackageVersion") {
		id := el.SelectAttrValue("Include", "")
		if id == "" {
			continue
		}
		versions[strings.ToLower(id)] = attrOrChild(el, "Version")
	}

	logger := logging.GetLogger("catalog")
	logger.Debug().
		Str("file", path).
		Int("versions", len(versions)).
		Msg("Loaded central package versions")
	return versions, nil
}

func (c *DiskCatalog) findUpward(dir, name string) (string, bool) {
	dir = filepath.Clean(dir)
	for {
		candidate := filepath.Join(dir, name)
		if info, err := c.opts.FS.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// attrOrChild reads an MSBuild item metadata value, which may be written as
// an attribute or as a child element
func attrOrChild(el *etree.Element, name string) string {
	if v := el.SelectAttrValue(name, ""); v != "" {
		return strings.TrimSpace(v)
	}
	if child := el.SelectElement(name); child != nil {
		return strings.TrimSpace(child.Text())
	}
	return ""
}
