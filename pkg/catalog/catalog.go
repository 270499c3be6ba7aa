package catalog

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/nulink/pkg/logging"
	"github.com/arthur-debert/nulink/pkg/paths"
	"github.com/arthur-debert/nulink/pkg/types"
	"github.com/arthur-debert/nulink/pkg/workspace"
)

// Catalog lists the package references of a workspace
type Catalog interface {
	Load(entryPath string, isSolution bool) ([]types.PackageReference, error)
}

// Options configures a DiskCatalog
type Options struct {
	FS types.FS
	// PackagesRoot overrides the global packages folder
	PackagesRoot string
	// Sources maps package ids to local sources (directories or project files)
	Sources map[string]string
	// LocalConfiguration is the build configuration for project sources
	LocalConfiguration string
	// BaseDir resolves relative local sources. Defaults to the directory of
	// the entry path.
	BaseDir string
}

// DiskCatalog reads references from project files on disk
type DiskCatalog struct {
	opts Options
}

// New creates a catalog reading through opts.FS
func New(opts Options) *DiskCatalog {
	return &DiskCatalog{opts: opts}
}

// declared is a reference as found in a project, before path resolution
type declared struct {
	id      string
	version string
	project string
	// legacy is set for packages.config entries
	legacy bool
}

// Load returns every package referenced by the workspace, deduplicated by
// id (case-insensitive) and sorted by id.
func (c *DiskCatalog) Load(entryPath string, isSolution bool) ([]types.PackageReference, error) {
	logger := logging.GetLogger("catalog")

	projects, err := workspace.LoadProjects(c.opts.FS, entryPath, isSolution)
	if err != nil {
		return nil, err
	}

	absEntry, _ := filepath.Abs(entryPath)
	entryDir := filepath.Dir(absEntry)

	var found []declared
	for _, project := range projects {
		refs, err := c.projectReferences(project)
		if err != nil {
			return nil, err
		}
		found = append(found, refs...)
	}

	var packagesRoot string
	byID := make(map[string]int)
	var out []types.PackageReference

	for _, d := range found {
		key := strings.ToLower(d.id)
		if i, ok := byID[key]; ok {
			out[i].Projects = appendUnique(out[i].Projects, d.project)
			continue
		}

		var lib, version string
		if d.legacy {
			version = d.version
			lib = paths.SolutionLibFolderPath(c.solutionDir(d.project, entryDir, isSolution), d.id, version)
		} else {
			version, err = paths.NormalizeVersion(d.version)
			if err != nil {
				logger.Warn().
					Str("package", d.id).
					Str("version", d.version).
					Str("project", d.project).
					Msg("Skipping package reference: version cannot be mapped to an install folder")
				continue
			}
			if packagesRoot == "" {
				packagesRoot, err = paths.ResolvePackagesRoot(c.opts.FS, c.opts.PackagesRoot, entryDir)
				if err != nil {
					return nil, err
				}
				logger.Debug().Str("packagesRoot", packagesRoot).Msg("Resolved packages root")
			}
			lib = paths.GlobalLibFolderPath(packagesRoot, d.id, version)
		}

		byID[key] = len(out)
		out = append(out, types.PackageReference{
			PackageID:           d.id,
			Version:             version,
			LibFolderPath:       lib,
			LibBackupFolderPath: paths.BackupFolderPath(lib),
			LocalSourcePath:     c.localSource(d.id, entryDir),
			Projects:            []string{d.project},
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].PackageID) < strings.ToLower(out[j].PackageID)
	})

	logger.Debug().
		Str("entry", absEntry).
		Int("projects", len(projects)).
		Int("packages", len(out)).
		Msg("Loaded package references")
	return out, nil
}

// localSource resolves the configured local source of a package
func (c *DiskCatalog) localSource(id, entryDir string) string {
	var source string
	for key, value := range c.opts.Sources {
		if strings.EqualFold(key, id) {
			source = value
			break
		}
	}
	if source == "" {
		return ""
	}
	return ResolveLocalSource(source, c.baseDir(entryDir), c.opts.LocalConfiguration)
}

func (c *DiskCatalog) baseDir(entryDir string) string {
	if c.opts.BaseDir != "" {
		return c.opts.BaseDir
	}
	return entryDir
}

// ResolveLocalSource maps a configured or command line local source to the
// folder a lib folder links to. Relative sources resolve against baseDir.
func ResolveLocalSource(source, baseDir, configuration string) string {
	source = paths.ExpandHome(source)
	if !filepath.IsAbs(source) {
		source = filepath.Join(baseDir, source)
	}
	return paths.LocalBuildOutput(filepath.Clean(source), configuration)
}

// solutionDir is where packages.config installs live. For a solution it is
// the solution's directory; for a lone project it is the nearest ancestor
// holding a packages folder.
func (c *DiskCatalog) solutionDir(projectPath, entryDir string, isSolution bool) string {
	if isSolution {
		return entryDir
	}
	dir := filepath.Dir(projectPath)
	for {
		info, err := c.opts.FS.Stat(filepath.Join(dir, paths.SolutionPackagesDir))
		if err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return filepath.Dir(filepath.Dir(projectPath))
		}
		dir = parent
	}
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}

// Static is a Catalog over a fixed reference list
type Static []types.PackageReference

// Load returns a copy of the list
func (s Static) Load(string, bool) ([]types.PackageReference, error) {
	out := make([]types.PackageReference, len(s))
	copy(out, s)
	return out, nil
}
