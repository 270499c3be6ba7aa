package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/nulink/pkg/errors"
)

// Environment variable names
const (
	// EnvNugetPackages overrides the global packages folder, as NuGet does
	EnvNugetPackages = "NUGET_PACKAGES"

	// EnvNulinkConfigDir overrides the XDG config directory for nulink
	EnvNulinkConfigDir = "NULINK_CONFIG_DIR"
)

// Fixed names. These are not user-configurable.
const (
	// AppDirName is the directory name for nulink-specific files
	AppDirName = "nulink"

	// WorkspaceConfigFile is read from the directory holding the project or solution
	WorkspaceConfigFile = ".nulink.toml"

	// UserConfigFile is read from the user's config directory
	UserConfigFile = "config.toml"
)

// userConfigFiles are checked in order; the first existing one is used
var userConfigFiles = []string{UserConfigFile, "config.yaml", "config.yml"}

// Paths resolves the directories nulink works with for one workspace
type Paths interface {
	WorkspaceDir() string
	WorkspaceConfigPath() string
	ConfigDir() string
	UserConfigPath() string
	HomeDir() string
	ResolvePath(path string) string
}

type paths struct {
	workspaceDir string
	configDir    string
	homeDir      string
}

// New creates a Paths instance for the workspace holding entryPath, which is
// either a project file, a solution file or a directory.
func New(entryPath string) (Paths, error) {
	abs, err := filepath.Abs(ExpandHome(entryPath))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", entryPath)
	}

	workspaceDir := abs
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		workspaceDir = filepath.Dir(abs)
	}

	p := &paths{
		workspaceDir: workspaceDir,
		homeDir:      xdg.Home,
	}

	if configDir := os.Getenv(EnvNulinkConfigDir); configDir != "" {
		p.configDir = ExpandHome(configDir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	return p, nil
}

func (p *paths) WorkspaceDir() string { return p.workspaceDir }

func (p *paths) WorkspaceConfigPath() string {
	return filepath.Join(p.workspaceDir, WorkspaceConfigFile)
}

func (p *paths) ConfigDir() string { return p.configDir }

// UserConfigPath returns the user config file. YAML is accepted when no
// config.toml exists.
func (p *paths) UserConfigPath() string {
	for _, name := range userConfigFiles {
		candidate := filepath.Join(p.configDir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return filepath.Join(p.configDir, UserConfigFile)
}

func (p *paths) HomeDir() string { return p.homeDir }

// ResolvePath expands ~ and makes relative paths absolute against the
// workspace directory
func (p *paths) ResolvePath(path string) string {
	if path == "" {
		return ""
	}
	path = ExpandHome(path)
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.workspaceDir, path)
	}
	return filepath.Clean(path)
}

// ExpandHome expands ~ to the user's home directory
func ExpandHome(path string) string {
	if path == "~" {
		return xdg.Home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(xdg.Home, path[2:])
	}
	return path
}
