package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JaimeStill/pure-pdf/internal/config"
	"github.com/JaimeStill/pure-pdf/internal/infrastructure"
	"github.com/JaimeStill/pure-pdf/pkg/logging"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

// App is the purepdf command tree.
type App struct {
	root   *cobra.Command
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	stagingDir string
	logLevel   string
}

func New() *App {
	app := &App{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	app.root = &cobra.Command{
		Use:   "purepdf",
		Short: "Page operations on PDF files",
		Long: `purepdf merges, splits, reorders, rotates, protects, watermarks, and
converts PDF documents. Every operation reads whole files and writes a single
output file; inputs are never modified.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := app.root.PersistentFlags()
	flags.StringVar(&app.configPath, "config", config.BaseConfigFile, "configuration file; defaults apply when it does not exist")
	flags.StringVar(&app.stagingDir, "staging-dir", "", "directory for temporary files (default: a fresh directory under the system temp dir)")
	flags.StringVar(&app.logLevel, "log-level", "warn", "log level: debug, info, warn, or error; empty uses the configuration file")

	app.root.AddCommand(app.newOperationCmds()...)
	app.root.AddCommand(
		app.newInspectCmd(),
		app.newListCmd(),
		app.newSpecCmd(),
		app.newVersionCmd(),
	)

	return app
}

// WithIO sets custom input and output streams.
func (a *App) WithIO(stdin io.Reader, stdout, stderr io.Writer) *App {
	a.stdin = stdin
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetIn(stdin)
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the command tree with explicit arguments.
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

func (a *App) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFile(a.configPath)
	if err != nil {
		return nil, err
	}

	if a.logLevel != "" {
		level, err := logging.ParseLevel(a.logLevel)
		if err != nil {
			return nil, err
		}
		cfg.Logging.Level = level
	}

	return cfg, nil
}

// startInfrastructure builds and starts the document systems. The returned
// function stops them and removes a temporary staging directory.
func (a *App) startInfrastructure() (*infrastructure.Infrastructure, func(), error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	cleanupDir := func() {}
	if a.stagingDir != "" {
		cfg.Staging.BasePath = a.stagingDir
	} else {
		dir, err := os.MkdirTemp("", "purepdf-")
		if err != nil {
			return nil, nil, fmt.Errorf("create staging directory: %w", err)
		}
		cfg.Staging.BasePath = dir
		cleanupDir = func() { os.RemoveAll(dir) }
	}

	infra, err := infrastructure.New(cfg, a.stderr)
	if err != nil {
		cleanupDir()
		return nil, nil, err
	}

	if err := infra.Start(); err != nil {
		cleanupDir()
		return nil, nil, err
	}
	infra.Lifecycle.WaitForStartup()

	stop := func() {
		if err := infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration() + time.Second); err != nil {
			infra.Logger.Warn("shutdown incomplete", "error", err)
		}
		cleanupDir()
	}

	return infra, stop, nil
}

func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "purepdf version %s\n", Version)
		},
	}
}
