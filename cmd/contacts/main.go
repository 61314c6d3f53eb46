package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/contacts/internal/config"
	"github.com/smileynet/contacts/internal/shell"
	"github.com/smileynet/contacts/internal/store"
	"github.com/smileynet/contacts/internal/viewer"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for contacts.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Run     RunCmd           `cmd:"" default:"withargs" help:"Start the interactive contact book (default)."`
	Show    ShowCmd          `cmd:"" help:"Show contacts saved to a file."`
}

// RunCmd starts the interactive command loop on stdin/stdout.
type RunCmd struct {
	Path   string `help:"File that SAVE appends to (overrides config)." short:"p" placeholder:"FILE"`
	Plain  bool   `help:"Disable colors even if stdout is a TTY." default:"false"`
	Config string `help:"Extra config file layered on top of the user and project configs." placeholder:"FILE"`
}

// ShowCmd prints or browses a saved contacts file.
type ShowCmd struct {
	Path   string `arg:"" optional:"" help:"Contacts file (default: configured path)."`
	Plain  bool   `help:"Force a plain text table even if stdout is a TTY." default:"false"`
	Config string `help:"Extra config file layered on top of the user and project configs." placeholder:"FILE"`
}

// errLoad marks failures reading a contacts file, as opposed to setup errors.
var errLoad = errors.New("loading contacts")

// loadConfig loads layered config from user and project paths, an optional
// explicit file, and env overrides.
func loadConfig(extra string) (*config.Config, error) {
	paths := []string{
		os.ExpandEnv("$HOME/.config/contacts/config.yaml"),
		".contacts/config.yaml",
	}
	if extra != "" {
		if _, err := os.Stat(extra); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		paths = append(paths, extra)
	}

	cfg, err := config.LoadLayered(paths...)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the diagnostics logger. Diagnostics never share a stream
// with the command loop output.
func newLogger(w io.Writer, l config.Log) (*slog.Logger, error) {
	level, err := l.SlogLevel()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// isTerminal reports whether f is connected to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Run executes the run command.
func (r *RunCmd) Run() error {
	cfg, err := loadConfig(r.Config)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	// Apply CLI flag overrides.
	if r.Path != "" {
		cfg.Storage.PathToWrite = r.Path
	}
	if r.Plain || !isTerminal(os.Stdout) {
		cfg.Console.Plain = true
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	logger, err := newLogger(os.Stderr, cfg.Log)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	return r.run(context.Background(), os.Stdin, os.Stdout, cfg, logger)
}

// run wires the store and shell and drives the loop, enabling testable wiring.
func (r *RunCmd) run(ctx context.Context, in io.Reader, out io.Writer, cfg *config.Config, logger *slog.Logger) error {
	st := store.NewFileStore(cfg.Storage.PathToWrite, store.WithLogger(logger))
	sh := shell.New(in, out, st,
		shell.WithStyles(!cfg.Console.Plain),
		shell.WithLogger(logger),
	)

	logger.Debug("starting contact book", "path", st.Path())
	if err := sh.Run(ctx); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// Run executes the show command.
func (s *ShowCmd) Run() error {
	cfg, err := loadConfig(s.Config)
	if err != nil {
		return fmt.Errorf("show: %w", err)
	}
	if s.Plain {
		cfg.Console.Plain = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("show: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	v := viewer.New(viewer.Options{Writer: os.Stdout, ForcePlain: cfg.Console.Plain})
	return s.run(ctx, v, cfg)
}

// run loads the file and hands it to the viewer, enabling testable wiring.
func (s *ShowCmd) run(ctx context.Context, v viewer.Viewer, cfg *config.Config) error {
	path := s.Path
	if path == "" {
		path = cfg.Storage.PathToWrite
	}

	contacts, err := store.NewFileStore(path).Load()
	if err != nil {
		return fmt.Errorf("show: %w: %w", errLoad, err)
	}

	if err := v.Show(ctx, path, contacts); err != nil {
		return fmt.Errorf("show: %w", err)
	}
	return nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitRuntime = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, errLoad) || errors.Is(err, shell.ErrInput) {
		return exitRuntime
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("contacts"),
		kong.Description("Interactive contact book with plain-text file persistence."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
