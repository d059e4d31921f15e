// Package cli defines the gitsync cobra commands.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gitsync.dev/gitsync/internal/actions/sync"
	"gitsync.dev/gitsync/internal/runtime"
)

const (
	repoPrompt    = "Enter the path to your Git repository:"
	messagePrompt = "Enter the commit message:"
)

// newContext builds the runtime context for a command. Tests replace it.
var newContext = runtime.NewContextFromConfig

// reportedError marks an error whose message has already been shown to the user
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already printed by the command that returned it
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

type rootOptions struct {
	repo       string
	message    string
	configPath string
	logFile    string
	verbose    bool
}

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	var opts rootOptions

	rootCmd := &cobra.Command{
		Use:   "gitsync",
		Short: "Pull, commit and push a local Git repository in one step",
		Long: `gitsync pulls remote changes into a local repository, commits the staged
changes with a message, and pushes the result. It stops at the first git
command that fails. A commit with nothing to commit is not a failure.

The repository path and commit message are prompted for unless given
with --repo and --message.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := newContext(runtime.Options{
				ConfigPath: opts.configPath,
				LogFile:    opts.logFile,
				Verbose:    opts.verbose,
			})
			if err != nil {
				return err
			}
			defer func() { _ = ctx.Close() }()
			ctx.Context = cmd.Context()

			return runSync(cmd, ctx, &opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.repo, "repo", "r", "", "Path to the local repository (prompted for when omitted)")
	flags.StringVarP(&opts.message, "message", "m", "", "Commit message (prompted for when omitted)")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to the config file (default $XDG_CONFIG_HOME/gitsync/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Also write a timestamped log to this file")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show debug output")

	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}

// runSync collects any values not given by flag and runs the sync action
func runSync(cmd *cobra.Command, ctx *runtime.Context, opts *rootOptions) error {
	repo := opts.repo
	if !cmd.Flags().Changed("repo") {
		answer, err := ctx.Prompter.Input(repoPrompt, "")
		if err != nil {
			return fmt.Errorf("failed to read repository path: %w", err)
		}
		repo = answer
	}

	message := opts.message
	if !cmd.Flags().Changed("message") {
		answer, err := ctx.Prompter.Input(messagePrompt, "")
		if err != nil {
			return fmt.Errorf("failed to read commit message: %w", err)
		}
		message = answer
	}

	if err := sync.Action(ctx, sync.Options{RepoPath: repo, Message: message}); err != nil {
		return &reportedError{err: err}
	}
	return nil
}
