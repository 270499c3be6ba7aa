package paths

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// LibFolderName is the folder holding a package's binaries
	LibFolderName = "lib"

	// BackupSuffix is appended to the lib folder name to form the sibling
	// folder holding the original contents while a package is linked
	BackupSuffix = ".bak"

	// SolutionPackagesDir is the packages.config install folder next to a solution
	SolutionPackagesDir = "packages"

	// DefaultLocalConfiguration is the build configuration used when a local
	// source is given as a project file
	DefaultLocalConfiguration = "Debug"
)

var invariantLower = cases.Lower(language.Und)

// BackupFolderPath returns the backup location for a lib folder. It is a
// pure function of libFolderPath.
func BackupFolderPath(libFolderPath string) string {
	clean := filepath.Clean(libFolderPath)
	return filepath.Join(filepath.Dir(clean), filepath.Base(clean)+BackupSuffix)
}

// PackageFolderName returns the folder name of a package id in the global
// packages folder
func PackageFolderName(packageID string) string {
	return invariantLower.String(packageID)
}

// GlobalLibFolderPath is the lib folder of a PackageReference install:
// <packagesRoot>/<id lowercased>/<version>/lib
func GlobalLibFolderPath(packagesRoot, packageID, version string) string {
	return filepath.Join(packagesRoot, PackageFolderName(packageID), version, LibFolderName)
}

// SolutionLibFolderPath is the lib folder of a packages.config install:
// <solutionDir>/packages/<Id>.<Version>/lib
func SolutionLibFolderPath(solutionDir, packageID, version string) string {
	return filepath.Join(solutionDir, SolutionPackagesDir, packageID+"."+version, LibFolderName)
}

// LocalBuildOutput maps a local source to the folder the lib folder links
// to. Project files resolve to their bin/<configuration> output folder,
// anything else is used as-is.
func LocalBuildOutput(source, configuration string) string {
	if !IsProjectFile(source) {
		return source
	}
	if configuration == "" {
		configuration = DefaultLocalConfiguration
	}
	return filepath.Join(filepath.Dir(source), "bin", configuration)
}

// IsProjectFile reports whether path names an MSBuild project file
func IsProjectFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csproj", ".fsproj", ".vbproj":
		return true
	}
	return false
}

// IsSolutionFile reports whether path names a solution file
func IsSolutionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sln", ".slnx":
		return true
	}
	return false
}
