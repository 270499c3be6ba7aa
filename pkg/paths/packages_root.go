package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/nulink/pkg/errors"
	"github.com/arthur-debert/nulink/pkg/logging"
	"github.com/arthur-debert/nulink/pkg/types"
	"github.com/beevik/etree"
)

// nugetConfigNames are checked in each directory, in this order. NuGet
// itself accepts these spellings on case-sensitive filesystems.
var nugetConfigNames = []string{"nuget.config", "NuGet.Config", "NuGet.config"}

// ResolvePackagesRoot finds the global packages folder for a workspace.
// Priority: the configured value, the NUGET_PACKAGES environment variable,
// globalPackagesFolder from the nearest nuget.config above startDir, and
// finally ~/.nuget/packages.
func ResolvePackagesRoot(fsys types.FS, configured, startDir string) (string, error) {
	logger := logging.GetLogger("paths")

	if configured != "" {
		return filepath.Clean(ExpandHome(configured)), nil
	}

	if env := os.Getenv(EnvNugetPackages); env != "" {
		return filepath.Clean(ExpandHome(env)), nil
	}

	configPath, found := findNugetConfig(fsys, startDir)
	if found {
		folder, err := readGlobalPackagesFolder(fsys, configPath)
		if err != nil {
			return "", err
		}
		if folder != "" {
			logger.Debug().
				Str("nugetConfig", configPath).
				Str("globalPackagesFolder", folder).
				Msg("Using packages folder from nuget.config")
			if !filepath.IsAbs(folder) {
				folder = filepath.Join(filepath.Dir(configPath), folder)
			}
			return filepath.Clean(ExpandHome(folder)), nil
		}
	}

	return filepath.Join(xdg.Home, ".nuget", "packages"), nil
}

// findNugetConfig walks up from dir looking for a nuget.config file
func findNugetConfig(fsys types.FS, dir string) (string, bool) {
	dir = filepath.Clean(dir)
	for {
		for _, name := range nugetConfigNames {
			candidate := filepath.Join(dir, name)
			if info, err := fsys.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// readGlobalPackagesFolder extracts
// <configuration><config><add key="globalPackagesFolder" value="..."/>
func readGlobalPackagesFolder(fsys types.FS, configPath string) (string, error) {
	data, err := fsys.ReadFile(configPath)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", configPath)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigLoad, "malformed nuget config %s", configPath)
	}

	for _, add := range doc.FindElements("/configuration/config/add") {
		if add.SelectAttrValue("key", "") == "globalPackagesFolder" {
			return add.SelectAttrValue("value", ""), nil
		}
	}
	return "", nil
}
