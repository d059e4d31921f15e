// Package runtime provides a context type that holds the logger, config,
// git runner and prompter for use throughout the application.
package runtime

import (
	"context"
	"fmt"
	"os"

	"gitsync.dev/gitsync/internal/config"
	"gitsync.dev/gitsync/internal/git"
	"gitsync.dev/gitsync/internal/output"
	"gitsync.dev/gitsync/internal/tui"
)

// Context provides access to output, config and git for commands
type Context struct {
	Context  context.Context
	Splog    *output.Splog
	Config   *config.UserConfig
	Runner   git.Runner
	Prompter tui.Prompter

	// Chdir changes the process working directory. Tests may replace it.
	Chdir func(dir string) error
}

// Options configures NewContextFromConfig
type Options struct {
	ConfigPath string
	LogFile    string
	Verbose    bool
}

// NewContext creates a context from explicit parts
func NewContext(splog *output.Splog, cfg *config.UserConfig, runner git.Runner, prompter tui.Prompter) *Context {
	return &Context{
		Context:  context.Background(),
		Splog:    splog,
		Config:   cfg,
		Runner:   runner,
		Prompter: prompter,
		Chdir:    os.Chdir,
	}
}

// NewContextFromConfig loads the user config and builds the real logger,
// git runner and prompter from it.
func NewContextFromConfig(opts Options) (*Context, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.LogFile != "" {
		cfg.LogFile = opts.LogFile
	}

	output.ConfigureColor(cfg.ColorEnabled(), os.Stdout)

	splog, err := output.NewSplogWithConfig(output.Options{
		Writer:  os.Stdout,
		Debug:   opts.Verbose || os.Getenv("DEBUG") != "",
		Color:   cfg.ColorEnabled(),
		LogFile: cfg.LogFile,
		Rotation: output.Rotation{
			MaxSize:    cfg.Log.MaxSize,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAge,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	// An empty working dir means git runs wherever the process is, which
	// follows the Chdir into the repository.
	runner := git.NewCommandRunner(cfg.Git, "")

	return NewContext(splog, cfg, runner, tui.NewSurveyPrompter()), nil
}

// Close releases resources held by the context
func (c *Context) Close() error {
	if c.Splog != nil {
		return c.Splog.Close()
	}
	return nil
}
