package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Link NuGet package lib folders to local build output"
	MsgLinkShort       = "Link a package to its local build output"
	MsgUnlinkShort     = "Restore the original lib folder of a package"
	MsgStatusShort     = "Show the link state of referenced packages"
	MsgGenConfigShort  = "Write a .nulink.toml listing referenced packages"
	MsgVersionShort    = "Print version information"
	MsgVersionLong     = "Print detailed version information including commit hash and build date"
	MsgCompletionShort = "Generate shell completion script"

	// Version output
	MsgVersionFormat = "nulink version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Command output
	MsgConfigWritten = "Wrote %s"

	// Error messages
	MsgErrNoEntry       = "no project or solution file found in %s, use --project or --solution"
	MsgErrManyEntries   = "found several %s files in %s, use --project or --solution to pick one"
	MsgErrBothEntries   = "--project and --solution cannot be used together"
	MsgErrNotProject    = "not a project file: %s"
	MsgErrNotSolution   = "not a solution file: %s"
	MsgErrNeedTarget    = "specify a package id or --all"
	MsgErrTargetAndAll  = "a package id cannot be combined with --all"
	MsgErrLocalWithAll  = "--local can only be used when linking a single package"
	MsgErrInitPaths     = "failed to initialize paths"
	MsgErrInvalidFormat = "invalid --format value %q"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun   = "Preview changes without executing them"
	MsgFlagFormat   = "Output format: auto, term, text, json, yaml"
	MsgFlagNoColor  = "Disable colored output"
	MsgFlagProject  = "Project file to work on (.csproj, .fsproj, .vbproj)"
	MsgFlagSolution = "Solution file to work on (.sln, .slnx)"
	MsgFlagAll      = "Process every referenced package"
	MsgFlagLocal    = "Local build folder or project file to link to"
	MsgFlagStdout   = "Print the configuration instead of writing it"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/link-long.txt
	msgLinkLongRaw string
	MsgLinkLong    = strings.TrimSpace(msgLinkLongRaw)

	//go:embed msgs/link-example.txt
	msgLinkExampleRaw string
	MsgLinkExample    = strings.TrimRight(msgLinkExampleRaw, "\n")

	//go:embed msgs/unlink-long.txt
	msgUnlinkLongRaw string
	MsgUnlinkLong    = strings.TrimSpace(msgUnlinkLongRaw)

	//go:embed msgs/unlink-example.txt
	msgUnlinkExampleRaw string
	MsgUnlinkExample    = strings.TrimRight(msgUnlinkExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/status-example.txt
	msgStatusExampleRaw string
	MsgStatusExample    = strings.TrimRight(msgStatusExampleRaw, "\n")

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/genconfig-example.txt
	msgGenConfigExampleRaw string
	MsgGenConfigExample    = strings.TrimRight(msgGenConfigExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
