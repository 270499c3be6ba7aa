package status

import (
	"fmt"

	"github.com/arthur-debert/nulink/pkg/types"
)

// State is the classification of a package's link status
type State int

const (
	// Unlinked is a normal install: lib is a regular directory, no backup
	Unlinked State = iota
	// Linked means lib is a link and the backup holds the original contents
	Linked
	// Broken is any combination that is neither Unlinked nor Linked. It is
	// never a target state; operations refuse to act on it.
	Broken
	// LibMissing means neither lib nor its backup exist, typically a
	// package that was never restored
	LibMissing
)

// String returns the display name of a state
func (s State) String() string {
	switch s {
	case Unlinked:
		return "unlinked"
	case Linked:
		return "linked"
	case Broken:
		return "broken"
	case LibMissing:
		return "missing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MarshalText renders states by name in json and yaml output
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// BrokenReason explains a Broken state
type BrokenReason int

const (
	NotBroken BrokenReason = iota
	// LinkWithoutBackup: lib is a link but the original contents are gone
	LinkWithoutBackup
	// BackupWithoutLink: lib is a regular directory and a stale backup sits next to it
	BackupWithoutLink
	// BackupWithoutLib: lib is absent, only the backup remains. This is
	// what an interrupted unlink leaves behind.
	BackupWithoutLib
)

// String describes the reason for display
func (r BrokenReason) String() string {
	switch r {
	case NotBroken:
		return ""
	case LinkWithoutBackup:
		return "lib folder is linked but the backup folder is missing"
	case BackupWithoutLink:
		return "backup folder exists next to an unlinked lib folder"
	case BackupWithoutLib:
		return "lib folder is missing but the backup folder exists"
	default:
		return fmt.Sprintf("BrokenReason(%d)", int(r))
	}
}

// Classification is the closed result of Classify
type Classification struct {
	State  State
	Reason BrokenReason
}

// Classify maps a link status snapshot to exactly one state
func Classify(s types.LinkStatus) Classification {
	switch {
	case !s.LibFolderExists && !s.LibBackupFolderExists:
		return Classification{State: LibMissing}
	case !s.LibFolderExists && s.LibBackupFolderExists:
		return Classification{State: Broken, Reason: BackupWithoutLib}
	case s.IsLibFolderLinked && s.LibBackupFolderExists:
		return Classification{State: Linked}
	case s.IsLibFolderLinked && !s.LibBackupFolderExists:
		return Classification{State: Broken, Reason: LinkWithoutBackup}
	case s.LibBackupFolderExists:
		return Classification{State: Broken, Reason: BackupWithoutLink}
	default:
		return Classification{State: Unlinked}
	}
}
