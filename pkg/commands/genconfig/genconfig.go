package genconfig

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/nulink/pkg/commands/internal"
	"github.com/arthur-debert/nulink/pkg/config"
	"github.com/arthur-debert/nulink/pkg/errors"
	"github.com/arthur-debert/nulink/pkg/logging"
	"github.com/arthur-debert/nulink/pkg/paths"
)

// GenConfigOptions holds options for the genconfig command
type GenConfigOptions struct {
	internal.Options
	// Write stores the file next to the entry path. Otherwise only the
	// content is returned.
	Write bool
}

// GenConfigResult is the generated workspace configuration
type GenConfigResult struct {
	ConfigContent string `json:"configContent"`
	// Path is set when the file was written
	Path string `json:"path,omitempty"`
}

// GenConfig renders a workspace .nulink.toml listing every referenced
// package. An existing file is never overwritten.
func GenConfig(opts GenConfigOptions) (*GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	opts.Defaults()

	refs, err := internal.LoadReferences(opts.Options)
	if err != nil {
		return nil, err
	}

	content, err := config.GenerateWorkspaceConfig(opts.Config, refs)
	if err != nil {
		return nil, err
	}
	result := &GenConfigResult{ConfigContent: string(content)}

	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	abs, err := filepath.Abs(opts.EntryPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid path %s", opts.EntryPath)
	}
	target := filepath.Join(filepath.Dir(abs), paths.WorkspaceConfigFile)

	if _, err := opts.FS.Lstat(target); err == nil {
		return nil, errors.Newf(errors.ErrFileWrite, "config file already exists: %s", target).
			WithDetail("path", target)
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to check %s", target)
	}

	if err := opts.FS.WriteFile(target, content, 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", target)
	}

	logger.Info().Str("path", target).Int("packages", len(refs)).Msg("Written config file")
	result.Path = target
	return result, nil
}
