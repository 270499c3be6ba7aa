package status

import (
	"github.com/arthur-debert/nulink/pkg/commands/internal"
	"github.com/arthur-debert/nulink/pkg/errors"
	"github.com/arthur-debert/nulink/pkg/logging"
	linkstatus "github.com/arthur-debert/nulink/pkg/status"
	"github.com/arthur-debert/nulink/pkg/types"
)

// StateError marks packages whose status could not be read
const StateError = "error"

// StatusPackagesOptions defines the options for the StatusPackages command.
type StatusPackagesOptions struct {
	internal.Options
}

// StatusPackages inspects the selected packages without changing anything.
// A package whose status cannot be read is listed with state "error".
func StatusPackages(opts StatusPackagesOptions) (*types.StatusReport, error) {
	log := logging.GetLogger("commands.status")
	log.Debug().Str("command", "StatusPackages").Msg("Executing command")

	opts.Defaults()

	refs, err := internal.LoadReferences(opts.Options)
	if err != nil {
		return nil, err
	}
	targets, err := internal.SelectTargets(refs, opts.Options)
	if err != nil {
		return nil, err
	}

	inspector := linkstatus.NewInspector(opts.FS)
	report := &types.StatusReport{
		EntryPath: opts.EntryPath,
		Packages:  make([]types.PackageStatus, 0, len(targets)),
	}

	for _, ref := range targets {
		ps := types.PackageStatus{
			PackageID:       ref.PackageID,
			Version:         ref.Version,
			LibFolderPath:   ref.LibFolderPath,
			LocalSourcePath: ref.LocalSourcePath,
			Projects:        ref.Projects,
		}

		st, err := inspector.Inspect(ref)
		if err != nil {
			log.Warn().Err(err).Str("package", ref.PackageID).Msg("Failed to inspect package")
			ps.State = StateError
			ps.Reason = errors.Message(err)
			report.Packages = append(report.Packages, ps)
			continue
		}

		c := linkstatus.Classify(st)
		ps.State = c.State.String()
		ps.Reason = c.Reason.String()
		ps.LinkTarget = st.LibFolderLinkTargetPath
		ps.BackupExists = st.LibBackupFolderExists
		report.Packages = append(report.Packages, ps)
	}

	log.Info().
		Str("command", "StatusPackages").
		Int("packages", len(report.Packages)).
		Msg("Command finished")
	return report, nil
}
