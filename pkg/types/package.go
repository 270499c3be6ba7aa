package types

import "strings"

// PackageReference identifies one package consumed by one or more projects
// of a workspace. All projects referencing the same package id share a single
// reference, since they share the same installed lib folder.
type PackageReference struct {
	// PackageID is the package identifier as declared by the first project
	// that referenced it
	PackageID string `json:"packageId" yaml:"packageId"`

	// Version is the normalized version folder name
	Version string `json:"version" yaml:"version"`

	// LibFolderPath is where the package binaries are installed
	LibFolderPath string `json:"libFolderPath" yaml:"libFolderPath"`

	// LibBackupFolderPath stashes the original lib folder while linked
	LibBackupFolderPath string `json:"libBackupFolderPath" yaml:"libBackupFolderPath"`

	// LocalSourcePath is the local build output the lib folder links to.
	// Empty when no local source is configured.
	LocalSourcePath string `json:"localSourcePath,omitempty" yaml:"localSourcePath,omitempty"`

	// Projects lists the project files referencing this package
	Projects []string `json:"projects,omitempty" yaml:"projects,omitempty"`
}

// Matches reports whether id names this package. NuGet package ids are
// case-insensitive.
func (r PackageReference) Matches(id string) bool {
	return strings.EqualFold(r.PackageID, id)
}

// FindPackage returns the reference whose id matches, or nil.
func FindPackage(refs []PackageReference, id string) *PackageReference {
	for i := range refs {
		if refs[i].Matches(id) {
			return &refs[i]
		}
	}
	return nil
}
