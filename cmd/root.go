package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fetchit/pkg/config"
	"fetchit/pkg/delivery"
	"fetchit/pkg/fetch"
	"fetchit/pkg/logging"
	"fetchit/pkg/selection"
	"fetchit/pkg/ui"
	"fetchit/pkg/version"
)

// options holds the persistent flags shared by all commands.
type options struct {
	Roots      []string
	ConfigPath string
	Debug      bool
	Wrap       bool
	Separator  string
	Excludes   []string
	AssumeYes  bool
}

var (
	opts   options
	logger = zap.NewNop()
)

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "fetchit",
	Short: "fetchit copies files and folders to the clipboard",
	Long: `fetchit gathers the text files of a file or folder, honouring .gitignore files
and configured exclude globs, and copies them to the clipboard as a single payload,
optionally as fenced code blocks with path headers.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(opts.Debug, "fetchit", version.Get().Version)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

// Logger returns the logger configured for the running command.
func Logger() *zap.Logger {
	return logger
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringSliceVar(&opts.Roots, "root", nil, "Workspace root (repeatable); defaults to the enclosing git repository of the working directory")
	flags.StringVar(&opts.ConfigPath, "config", "", "Path to a YAML config file; defaults to <root>/"+config.FileName)
	flags.BoolVar(&opts.Debug, "debug", false, "Enable debug logging")
	flags.BoolVar(&opts.Wrap, "wrap", true, "Wrap each file in a fenced code block with a path header")
	flags.StringVar(&opts.Separator, "separator", "", "Text placed between files")
	flags.StringSliceVarP(&opts.Excludes, "exclude", "e", nil, "Extra exclude glob (repeatable)")
	flags.BoolVarP(&opts.AssumeYes, "yes", "y", false, "Save to the suggested file without asking when the clipboard copy fails")
}

// newService resolves the workspace and configuration from the flags.
func newService(cmd *cobra.Command) (*fetch.Service, error) {
	roots := opts.Roots
	if len(roots) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		root, err := selection.DiscoverRoot(wd)
		if err != nil {
			return nil, err
		}
		roots = []string{root}
	}

	ws, err := selection.NewWorkspace(roots...)
	if err != nil {
		return nil, err
	}

	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = filepath.Join(ws.Roots[0], config.FileName)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Error("Failed to load config", zap.String("path", cfgPath), zap.Error(err))
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("wrap") {
		cfg.WrapAsCodeBlock = opts.Wrap
	}
	if flags.Changed("separator") {
		cfg.Separator = opts.Separator
	}
	cfg.ExcludeGlobs = append(cfg.ExcludeGlobs, opts.Excludes...)

	logger.Debug("Resolved configuration",
		zap.Strings("roots", ws.Roots),
		zap.String("config", cfgPath),
		zap.Strings("excludeGlobs", cfg.ExcludeGlobs),
		zap.Bool("wrapAsCodeBlock", cfg.WrapAsCodeBlock))

	term := ui.NewTerminal(opts.AssumeYes)
	return fetch.NewService(ws, cfg, delivery.SystemClipboard{}, term, term, logger), nil
}
