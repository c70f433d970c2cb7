// Package cli implements the tldr command-line tool. Commands share the
// server's configuration and run the same summary pipeline in-process.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tldr-summary/internal/app"
	"tldr-summary/internal/config"
	"tldr-summary/internal/observability/logging"
)

// Options wires the command tree to its environment. Zero fields use the
// process streams, config.LoadFrom and app.New.
type Options struct {
	In         io.Reader
	Out        io.Writer
	Err        io.Writer
	LoadConfig func(path string) (*config.Config, error)
	NewApp     func(ctx context.Context, cfg *config.Config) (*app.App, error)
}

type session struct {
	opts       Options
	configPath string
	logLevel   string
	jsonOutput bool

	cfg *config.Config
	app *app.App
}

// Execute runs the command line in args and releases the pipeline's
// resources whether or not the command succeeds.
func Execute(ctx context.Context, opts Options, args []string) error {
	root, s := newRootCommand(opts)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if cerr := s.close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func newRootCommand(opts Options) (*cobra.Command, *session) {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.LoadConfig == nil {
		opts.LoadConfig = config.LoadFrom
	}
	if opts.NewApp == nil {
		opts.NewApp = func(ctx context.Context, cfg *config.Config) (*app.App, error) {
			return app.New(ctx, cfg)
		}
	}
	s := &session{opts: opts}

	root := &cobra.Command{
		Use:           "tldr",
		Short:         "Generate TL;DR summaries with the configured AI provider",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(opts.In)
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)

	root.PersistentFlags().StringVarP(&s.configPath, "config", "c", os.Getenv("TLDR_CONFIG_FILE"), "YAML configuration file")
	root.PersistentFlags().StringVar(&s.logLevel, "log-level", "", "log level (debug, info, warn, error); default from LOG_LEVEL")
	root.PersistentFlags().BoolVar(&s.jsonOutput, "json", false, "output as JSON")

	root.AddCommand(
		newSummarizeCommand(s),
		newPlatformsCommand(s),
		newModelsCommand(s),
		newSelectionCommand(s),
		newTestConnectionCommand(s),
		newTokenCommand(s),
	)
	return root, s
}

// config loads the configuration once and installs a text logger on stderr.
func (s *session) config() (*config.Config, error) {
	if s.cfg != nil {
		return s.cfg, nil
	}
	cfg, err := s.opts.LoadConfig(s.configPath)
	if err != nil {
		return nil, err
	}
	level := cfg.Log.Level
	if s.logLevel != "" {
		level = s.logLevel
	}
	slog.SetDefault(logging.NewTextLogger(s.opts.Err, logging.ParseLevel(level)))
	s.cfg = cfg
	return cfg, nil
}

// application builds the summary pipeline on first use.
func (s *session) application(ctx context.Context) (*app.App, error) {
	if s.app != nil {
		return s.app, nil
	}
	cfg, err := s.config()
	if err != nil {
		return nil, err
	}
	a, err := s.opts.NewApp(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}
	s.app = a
	return a, nil
}

func (s *session) close() error {
	if s.app == nil {
		return nil
	}
	err := s.app.Close()
	s.app = nil
	return err
}

func (s *session) printJSON(v any) error {
	enc := json.NewEncoder(s.opts.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (s *session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.opts.Out, format, args...)
}
