package unlink

import (
	"fmt"

	"github.com/arthur-debert/nulink/pkg/commands/internal"
	"github.com/arthur-debert/nulink/pkg/linker"
	"github.com/arthur-debert/nulink/pkg/logging"
	"github.com/arthur-debert/nulink/pkg/style"
)

// UnlinkPackagesOptions defines the options for the UnlinkPackages command.
type UnlinkPackagesOptions struct {
	internal.Options
}

// UnlinkPackages restores the original lib folder of the selected packages.
func UnlinkPackages(opts UnlinkPackagesOptions) (*internal.RunResult, error) {
	log := logging.GetLogger("commands.unlink")
	log.Debug().Str("command", "UnlinkPackages").Msg("Executing command")

	opts.Defaults()

	refs, err := internal.LoadReferences(opts.Options)
	if err != nil {
		return nil, err
	}
	targets, err := internal.SelectTargets(refs, opts.Options)
	if err != nil {
		return nil, err
	}

	engine := linker.NewEngine(opts.FS, linker.Options{DryRun: opts.DryRun})
	verb := "Unlinked"
	if opts.DryRun {
		verb = "Would unlink"
	}

	run := internal.RunEach(targets, opts.Options, engine.Unlink, func(r *linker.Result) {
		opts.Reporter.Success(func() string { return fmt.Sprintf("%s %s", verb, r.PackageID) })
		opts.Reporter.Success(func() string { return fmt.Sprintf(" -X-> %s", r.TargetPath) },
			style.ColorRed, style.ColorDarkYellow)
	})

	log.Info().
		Str("command", "UnlinkPackages").
		Int("packages", len(run.Packages)).
		Int("failed", run.Failed).
		Msg("Command finished")
	return run, run.Err()
}
