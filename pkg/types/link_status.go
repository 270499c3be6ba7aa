package types

// LinkStatus is a snapshot of a package's lib folder as found on disk at the
// moment of inspection. It carries no state of its own and must be read again
// before every mutation.
type LinkStatus struct {
	LibFolderExists         bool   `json:"libFolderExists" yaml:"libFolderExists"`
	IsLibFolderLinked       bool   `json:"isLibFolderLinked" yaml:"isLibFolderLinked"`
	LibFolderLinkTargetPath string `json:"libFolderLinkTargetPath,omitempty" yaml:"libFolderLinkTargetPath,omitempty"`
	LibBackupFolderExists   bool   `json:"libBackupFolderExists" yaml:"libBackupFolderExists"`

	// LibFolderIsFile marks a lib path that exists as something other than
	// a directory or a link. Link refuses it.
	LibFolderIsFile bool `json:"libFolderIsFile,omitempty" yaml:"libFolderIsFile,omitempty"`

	// LocalSourceExists is only meaningful when the reference has a
	// LocalSourcePath; it gates Link.
	LocalSourceExists bool `json:"localSourceExists" yaml:"localSourceExists"`
}
