package internal

import (
	"fmt"

	"github.com/arthur-debert/nulink/pkg/catalog"
	"github.com/arthur-debert/nulink/pkg/config"
	"github.com/arthur-debert/nulink/pkg/errors"
	"github.com/arthur-debert/nulink/pkg/filesystem"
	"github.com/arthur-debert/nulink/pkg/linker"
	"github.com/arthur-debert/nulink/pkg/logging"
	"github.com/arthur-debert/nulink/pkg/types"
	"github.com/arthur-debert/nulink/pkg/ui"
)

// Options is shared by every command that works on package references
type Options struct {
	// EntryPath is the project or solution file
	EntryPath  string
	IsSolution bool
	// PackageID selects one package. Ignored when All is set.
	PackageID string
	All       bool
	DryRun    bool

	FS       types.FS
	Reporter ui.Reporter
	// Catalog defaults to a DiskCatalog configured from Config
	Catalog catalog.Catalog
	Config  *config.Config
}

// PackageResult is the outcome for one package
type PackageResult struct {
	PackageID string         `json:"packageId"`
	Result    *linker.Result `json:"result,omitempty"`
	Err       error          `json:"-"`
}

// RunResult collects the outcomes of a run, in processing order
type RunResult struct {
	Packages []PackageResult `json:"packages"`
	Failed   int             `json:"failed"`
	DryRun   bool            `json:"dryRun,omitempty"`
}

// Err returns a PARTIAL_FAILURE error when any package failed
func (r *RunResult) Err() error {
	if r == nil || r.Failed == 0 {
		return nil
	}
	return errors.Newf(errors.ErrPartialFailure, "%d of %d packages failed", r.Failed, len(r.Packages)).
		WithDetail("failed", r.Failed).
		WithDetail(ReportedDetail, true)
}

// ReportedDetail marks errors that were already shown through the Reporter
const ReportedDetail = "reported"

// Defaults fills in the filesystem, reporter and config
func (o *Options) Defaults() {
	if o.FS == nil {
		o.FS = filesystem.NewOS()
	}
	if o.Reporter == nil {
		o.Reporter = ui.NewRecorder()
	}
	if o.Config == nil {
		o.Config = &config.Config{Local: config.Local{Configuration: "Debug"}}
	}
	if o.Catalog == nil {
		o.Catalog = catalog.New(catalog.Options{
			FS:                 o.FS,
			PackagesRoot:       o.Config.Packages.Root,
			Sources:            o.Config.Sources,
			LocalConfiguration: o.Config.Local.Configuration,
		})
	}
}

// LoadReferences announces the workspace and loads its package references
func LoadReferences(opts Options) ([]types.PackageReference, error) {
	kind := "project"
	if opts.IsSolution {
		kind = "solution"
	}
	opts.Reporter.Info(func() string {
		return fmt.Sprintf("Checking package references in %s: %s", kind, opts.EntryPath)
	})

	refs, err := opts.Catalog.Load(opts.EntryPath, opts.IsSolution)
	if err != nil {
		return nil, err
	}
	logger := logging.GetLogger("commands")
	logger.Debug().
		Int("packages", len(refs)).
		Msg("Loaded package references")
	return refs, nil
}

// SelectTargets narrows refs to the requested package. An unknown id is
// reported and returned as PACKAGE_NOT_REFERENCED.
func SelectTargets(refs []types.PackageReference, opts Options) ([]types.PackageReference, error) {
	if opts.All || opts.PackageID == "" {
		return refs, nil
	}

	ref := types.FindPackage(refs, opts.PackageID)
	if ref == nil {
		err := errors.Newf(errors.ErrPackageNotReferenced, "Package not referenced: %s", opts.PackageID).
			WithDetail("package", opts.PackageID).
			WithDetail(ReportedDetail, true)
		ReportError(opts.Reporter, err)
		return nil, err
	}
	return []types.PackageReference{*ref}, nil
}

// Transition is one engine operation
type Transition func(ref types.PackageReference) (*linker.Result, error)

// RunEach applies transition to each target in order. A failure is
// reported and recorded, and processing continues with the next package.
func RunEach(targets []types.PackageReference, opts Options, transition Transition, onSuccess func(*linker.Result)) *RunResult {
	logger := logging.GetLogger("commands")
	run := &RunResult{DryRun: opts.DryRun}

	for _, ref := range targets {
		result, err := transition(ref)
		run.Packages = append(run.Packages, PackageResult{
			PackageID: ref.PackageID,
			Result:    result,
			Err:       err,
		})
		if err != nil {
			run.Failed++
			logger.Debug().
				Str("package", ref.PackageID).
				Str("code", string(errors.GetErrorCode(err))).
				Msg("Package failed")
			ReportError(opts.Reporter, err)
			continue
		}
		onSuccess(result)
	}
	return run
}

// ReportError shows err through the reporter
func ReportError(r ui.Reporter, err error) {
	r.Error(func() string { return "Error: " + errors.Message(err) })
}

// Reported reports whether err was already shown to the user
func Reported(err error) bool {
	reported, _ := errors.GetErrorDetails(err)[ReportedDetail].(bool)
	return reported
}
