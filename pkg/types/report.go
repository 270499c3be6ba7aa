package types

// PackageStatus is the displayable link state of one package
type PackageStatus struct {
	PackageID       string   `json:"packageId" yaml:"packageId"`
	Version         string   `json:"version" yaml:"version"`
	State           string   `json:"state" yaml:"state"`
	Reason          string   `json:"reason,omitempty" yaml:"reason,omitempty"`
	LibFolderPath   string   `json:"libFolderPath" yaml:"libFolderPath"`
	LinkTarget      string   `json:"linkTarget,omitempty" yaml:"linkTarget,omitempty"`
	BackupExists    bool     `json:"backupExists" yaml:"backupExists"`
	LocalSourcePath string   `json:"localSourcePath,omitempty" yaml:"localSourcePath,omitempty"`
	Projects        []string `json:"projects,omitempty" yaml:"projects,omitempty"`
}

// StatusReport is the result of the status command
type StatusReport struct {
	EntryPath string          `json:"entryPath" yaml:"entryPath"`
	Packages  []PackageStatus `json:"packages" yaml:"packages"`
}
