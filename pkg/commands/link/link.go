package link

import (
	"fmt"

	"github.com/arthur-debert/nulink/pkg/commands/internal"
	"github.com/arthur-debert/nulink/pkg/linker"
	"github.com/arthur-debert/nulink/pkg/logging"
	"github.com/arthur-debert/nulink/pkg/style"
)

// LinkPackagesOptions defines the options for the LinkPackages command.
type LinkPackagesOptions struct {
	internal.Options
	// LocalSource overrides the configured local source of a single target.
	// It must already be resolved to the folder to link to.
	LocalSource string
}

// LinkPackages points the lib folder of the selected packages at their
// local build output.
func LinkPackages(opts LinkPackagesOptions) (*internal.RunResult, error) {
	log := logging.GetLogger("commands.link")
	log.Debug().Str("command", "LinkPackages").Msg("Executing command")

	opts.Defaults()

	refs, err := internal.LoadReferences(opts.Options)
	if err != nil {
		return nil, err
	}
	targets, err := internal.SelectTargets(refs, opts.Options)
	if err != nil {
		return nil, err
	}
	if opts.LocalSource != "" && !opts.All {
		for i := range targets {
			targets[i].LocalSourcePath = opts.LocalSource
		}
	}

	engine := linker.NewEngine(opts.FS, linker.Options{DryRun: opts.DryRun})
	verb := "Linked"
	if opts.DryRun {
		verb = "Would link"
	}

	run := internal.RunEach(targets, opts.Options, engine.Link, func(r *linker.Result) {
		opts.Reporter.Success(func() string { return fmt.Sprintf("%s %s", verb, r.PackageID) })
		opts.Reporter.Success(func() string { return fmt.Sprintf(" ---> %s", r.TargetPath) },
			style.ColorGreen, style.ColorDarkYellow)
	})

	log.Info().
		Str("command", "LinkPackages").
		Int("packages", len(run.Packages)).
		Int("failed", run.Failed).
		Msg("Command finished")
	return run, run.Err()
}
