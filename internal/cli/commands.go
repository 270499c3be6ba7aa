// Package cli builds the nulink command line on top of pkg/commands.
package cli

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/nulink/internal/version"
	"github.com/arthur-debert/nulink/pkg/catalog"
	"github.com/arthur-debert/nulink/pkg/cobrax/topics"
	"github.com/arthur-debert/nulink/pkg/commands"
	"github.com/arthur-debert/nulink/pkg/config"
	"github.com/arthur-debert/nulink/pkg/errors"
	"github.com/arthur-debert/nulink/pkg/filesystem"
	"github.com/arthur-debert/nulink/pkg/logging"
	"github.com/arthur-debert/nulink/pkg/paths"
	"github.com/arthur-debert/nulink/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicsFS embed.FS

// globalOptions are the persistent flags of the root command
type globalOptions struct {
	verbosity int
	dryRun    bool
	format    string
	noColor   bool
	project   string
	solution  string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "nulink",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Short(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show help and fail as a usage error
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, "no command specified")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.BoolVar(&g.dryRun, "dry-run", false, MsgFlagDryRun)
	pf.StringVar(&g.format, "format", "", MsgFlagFormat)
	pf.BoolVar(&g.noColor, "no-color", false, MsgFlagNoColor)
	pf.StringVarP(&g.project, "project", "p", "", MsgFlagProject)
	pf.StringVarP(&g.solution, "solution", "s", "", MsgFlagSolution)
	rootCmd.MarkFlagsMutuallyExclusive("project", "solution")
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{config.FormatAuto, config.FormatTerm, config.FormatText, config.FormatJSON, config.FormatYAML}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.MarkPersistentFlagFilename("project", "csproj", "fsproj", "vbproj")
	_ = rootCmd.MarkPersistentFlagFilename("solution", "sln", "slnx")

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newLinkCmd(g))
	rootCmd.AddCommand(newUnlinkCmd(g))
	rootCmd.AddCommand(newStatusCmd(g))
	rootCmd.AddCommand(newGenConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Topic-based help, rendered with glamour
	_, err := topics.InitializeWithOptions(rootCmd, topicsFS, "topics", topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	})
	if err == nil {
		for _, c := range rootCmd.Commands() {
			if c.Name() == "topics" {
				c.GroupID = "misc"
			}
		}
	}

	return rootCmd
}

// session is what a workspace command needs once flags are parsed
type session struct {
	cwd        string
	entryPath  string
	isSolution bool
	config     *config.Config
	output     ui.Output
}

// open resolves the workspace, loads its configuration and builds the
// output for cmd
func (g *globalOptions) open(cmd *cobra.Command) (*session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, MsgErrInitPaths)
	}

	entry, isSolution, err := resolveEntry(g.project, g.solution, cwd)
	if err != nil {
		return nil, err
	}

	p, err := paths.New(entry)
	if err != nil {
		return nil, err
	}

	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("format") {
		overrides["output.format"] = strings.ToLower(g.format)
	}
	if g.noColor {
		overrides["output.color"] = false
	}

	cfg, err := config.Load(config.Sources{
		UserConfigPath:      p.UserConfigPath(),
		WorkspaceConfigPath: p.WorkspaceConfigPath(),
		Overrides:           overrides,
	})
	if err != nil {
		return nil, err
	}

	format, err := ui.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, MsgErrInvalidFormat, cfg.Output.Format)
	}
	output, err := ui.New(format, ui.Options{
		Out:     cmd.OutOrStdout(),
		ErrOut:  cmd.ErrOrStderr(),
		NoColor: !cfg.Output.Color,
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, MsgErrInvalidFormat, cfg.Output.Format)
	}

	log.Debug().
		Str("entry", entry).
		Bool("solution", isSolution).
		Str("format", format.String()).
		Msg("Workspace resolved")

	return &session{
		cwd:        cwd,
		entryPath:  entry,
		isSolution: isSolution,
		config:     cfg,
		output:     output,
	}, nil
}

// options builds the driver options for one invocation
func (s *session) options(packageID string, all, dryRun bool) commands.Options {
	return commands.Options{
		EntryPath:  s.entryPath,
		IsSolution: s.isSolution,
		PackageID:  packageID,
		All:        all,
		DryRun:     dryRun,
		Reporter:   s.output,
		Config:     s.config,
	}
}

// selectTarget validates the package id argument against --all
func selectTarget(args []string, all bool) (string, error) {
	switch {
	case len(args) == 1 && all:
		return "", errors.New(errors.ErrInvalidInput, MsgErrTargetAndAll)
	case len(args) == 1:
		return args[0], nil
	case all:
		return "", nil
	}
	return "", errors.New(errors.ErrInvalidInput, MsgErrNeedTarget)
}

// packageIDCompletion completes the ids referenced by the workspace
func (g *globalOptions) packageIDCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	entry, isSolution, err := resolveEntry(g.project, g.solution, cwd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	refs, err := catalog.New(catalog.Options{FS: filesystem.NewOS()}).Load(entry, isSolution)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if strings.HasPrefix(strings.ToLower(ref.PackageID), strings.ToLower(toComplete)) {
			ids = append(ids, ref.PackageID)
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

func newLinkCmd(g *globalOptions) *cobra.Command {
	var (
		all   bool
		local string
	)

	cmd := &cobra.Command{
		Use:               "link [package-id]",
		Short:             MsgLinkShort,
		Long:              MsgLinkLong,
		Example:           MsgLinkExample,
		GroupID:           "core",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: g.packageIDCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := selectTarget(args, all)
			if err != nil {
				return err
			}
			if all && local != "" {
				return errors.New(errors.ErrInvalidInput, MsgErrLocalWithAll)
			}

			s, err := g.open(cmd)
			if err != nil {
				return err
			}

			opts := commands.LinkPackagesOptions{Options: s.options(id, all, g.dryRun)}
			if local != "" {
				opts.LocalSource = catalog.ResolveLocalSource(local, s.cwd, s.config.Local.Configuration)
			}

			log.Info().
				Str("entry", s.entryPath).
				Str("package", id).
				Bool("all", all).
				Bool("dry_run", g.dryRun).
				Msg("Linking packages")

			_, err = commands.LinkPackages(opts)
			return err
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, MsgFlagAll)
	cmd.Flags().StringVarP(&local, "local", "l", "", MsgFlagLocal)
	_ = cmd.MarkFlagDirname("local")

	return cmd
}

func newUnlinkCmd(g *globalOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:               "unlink [package-id]",
		Short:             MsgUnlinkShort,
		Long:              MsgUnlinkLong,
		Example:           MsgUnlinkExample,
		GroupID:           "core",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: g.packageIDCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := selectTarget(args, all)
			if err != nil {
				return err
			}

			s, err := g.open(cmd)
			if err != nil {
				return err
			}

			log.Info().
				Str("entry", s.entryPath).
				Str("package", id).
				Bool("all", all).
				Bool("dry_run", g.dryRun).
				Msg("Unlinking packages")

			_, err = commands.UnlinkPackages(commands.UnlinkPackagesOptions{
				Options: s.options(id, all, g.dryRun),
			})
			return err
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, MsgFlagAll)

	return cmd
}

func newStatusCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "status [package-id]",
		Short:             MsgStatusShort,
		Long:              MsgStatusLong,
		Example:           MsgStatusExample,
		GroupID:           "core",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: g.packageIDCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd)
			if err != nil {
				return err
			}

			var id string
			if len(args) == 1 {
				id = args[0]
			}

			report, err := commands.StatusPackages(commands.StatusPackagesOptions{
				Options: s.options(id, id == "", false),
			})
			if err != nil {
				return err
			}
			return s.output.RenderStatus(report)
		},
	}
}

func newGenConfigCmd(g *globalOptions) *cobra.Command {
	var stdout bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd)
			if err != nil {
				return err
			}

			opts := commands.GenConfigOptions{
				Options: s.options("", true, false),
				Write:   !stdout,
			}
			if stdout {
				// Keep stdout clean for redirection
				opts.Reporter = ui.NewRecorder()
			}

			result, err := commands.GenConfig(opts)
			if err != nil {
				return err
			}

			if stdout {
				_, err = fmt.Fprint(cmd.OutOrStdout(), result.ConfigContent)
				return err
			}
			s.output.Success(func() string { return fmt.Sprintf(MsgConfigWritten, result.Path) })
			return nil
		},
	}

	cmd.Flags().BoolVar(&stdout, "stdout", false, MsgFlagStdout)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Long:    MsgVersionLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, version.Version)
			fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			fmt.Fprintf(out, MsgBuiltFormat, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
