package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/rdrkr/contribution-writer/internal/config"
	"github.com/rdrkr/contribution-writer/internal/constants"
	cwErrors "github.com/rdrkr/contribution-writer/internal/errors"
	"github.com/rdrkr/contribution-writer/internal/git"
	"github.com/rdrkr/contribution-writer/internal/graph"
	"github.com/rdrkr/contribution-writer/internal/lock"
	"github.com/rdrkr/contribution-writer/internal/logger"
)

// WordWriter creates the backdated commits for one word
type WordWriter interface {
	Verify() error
	WriteWord(ctx context.Context, word string, year int, plan []graph.PlanEntry) error
	PrintSummary()
}

// Locker manages file locking
type Locker interface {
	Acquire() error
	Release() error
}

// AppOptions contains app configuration and dependencies.
// It allows injection of both required and optional dependencies,
// enabling flexible configuration and easier testing.
type AppOptions struct {
	// Config holds the application configuration settings (required).
	// The application will panic if this field is nil.
	Config *config.Config

	// Optional components

	// Logger provides logging functionality (optional, a default will be created if nil).
	Logger logger.Logger

	// Locker manages repository locking (optional, a default will be created if nil).
	// Used to prevent multiple contribwriter instances from writing to the same repository.
	Locker Locker

	// Writer performs the Git operations (optional, a default will be created if nil).
	Writer WordWriter

	// I/O dependencies

	// Stdout is the writer for standard output (optional, defaults to os.Stdout).
	Stdout io.Writer

	// Stderr is the writer for error output (optional, defaults to os.Stderr).
	Stderr io.Writer

	// System dependencies

	// Exit is the function to terminate the application (optional, defaults to os.Exit).
	Exit func(code int)

	// ExecLookPath is used to find executables in PATH (optional, defaults to exec.LookPath).
	ExecLookPath func(file string) (string, error)

	// IsRepository checks if a path is a valid Git repository (optional, defaults to git.IsRepository).
	IsRepository func(string) bool
}

// App is the main contribwriter application.
// It orchestrates all components and manages the application lifecycle,
// handling initialization, command execution, and cleanup.
type App struct {
	Config *config.Config
	Logger logger.Logger
	Locker Locker
	Writer WordWriter

	// I/O streams
	Stdout io.Writer
	Stderr io.Writer

	// System dependencies
	exit         func(code int)
	execLookPath func(file string) (string, error)
	isRepository func(string) bool
}

// NewDefaultApp creates an App with standard dependencies.
// It initializes a new Config with the provided version information, loads
// .env files and environment variables, and sets up OS dependencies.
func NewDefaultApp(versionInfo config.VersionInfo) *App {
	cfg := config.New()
	cfg.VersionInfo = versionInfo
	cfg.LoadDotEnv()
	cfg.LoadFromEnvironment()

	opts := AppOptions{
		Config:       cfg,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Exit:         os.Exit,
		ExecLookPath: exec.LookPath,
		IsRepository: git.IsRepository,
	}

	return NewApp(opts)
}

// NewApp creates an App with custom dependencies specified in opts.
// Optional dependencies left nil get defaults during initialization.
//
// Panics if opts.Config is nil.
func NewApp(opts AppOptions) *App {
	if opts.Config == nil {
		panic("Config is required in AppOptions")
	}

	app := &App{
		Config:       opts.Config,
		Logger:       opts.Logger,
		Locker:       opts.Locker,
		Writer:       opts.Writer,
		Stdout:       opts.Stdout,
		Stderr:       opts.Stderr,
		exit:         opts.Exit,
		execLookPath: opts.ExecLookPath,
		isRepository: opts.IsRepository,
	}

	// Set defaults for nil dependencies
	if app.Stdout == nil {
		app.Stdout = os.Stdout
	}
	if app.Stderr == nil {
		app.Stderr = os.Stderr
	}
	if app.exit == nil {
		app.exit = os.Exit
	}
	if app.execLookPath == nil {
		app.execLookPath = exec.LookPath
	}
	if app.isRepository == nil {
		app.isRepository = git.IsRepository
	}

	return app
}

// Initialize sets up components not provided during construction
func (a *App) Initialize() error {
	if err := a.Config.Finalize(); err != nil {
		// Config.Finalize() already returns a properly wrapped error
		if cwErrors.Is(err, cwErrors.ErrInvalidConfiguration) {
			return err
		}
		return cwErrors.Wrap(cwErrors.ErrInvalidConfiguration, err.Error())
	}

	if a.Logger == nil {
		a.Logger = logger.New(a.Config.Debug, a.Config.LogFile, a.Config.Verbose)
	}

	if a.Locker == nil {
		locker, err := lock.New(a.Config.RepoPath)
		if err != nil {
			return cwErrors.Wrap(err, "failed to initialize lock")
		}
		a.Locker = locker
	}

	if a.Writer == nil {
		writerConfig := git.WriterConfig{
			RepoPath:        a.Config.RepoPath,
			CommitsPerPixel: a.Config.CommitsPerPixel,
			MarkerFile:      a.Config.MarkerFile,
			CommitPrefix:    a.Config.CommitPrefix,
			Verbose:         a.Config.Verbose,
		}
		a.Writer = git.NewWriter(writerConfig, a.Logger)
	}

	return nil
}

// Run executes the application with the given context.
// Handles special flags, renders previews, and writes the commits.
func (a *App) Run(ctx context.Context) error {
	// Ensure the app is fully initialised before doing any work.
	if err := a.Initialize(); err != nil {
		return err
	}

	// Handle special flags first
	if a.Config.Version {
		a.ShowVersion()
		return nil
	}

	if a.Config.ShowLogo {
		a.ShowLogo()
		return nil
	}

	words := a.Config.Words()
	a.displayStartupInfo(words)

	if !a.Config.DryRun {
		if err := a.checkRequiredCommands(); err != nil {
			_, _ = fmt.Fprintf(a.Stderr, "❌ Error: %v. Please install it and try again.\n", err)
			return err
		}

		if !a.isRepository(a.Config.RepoPath) {
			return cwErrors.Wrapf(cwErrors.ErrNotGitRepository, "%s", a.Config.RepoPath)
		}
		a.Logger.Info("Git repository verified")

		if err := a.Writer.Verify(); err != nil {
			return err
		}

		// Acquire the per-repository lock
		if err := a.Locker.Acquire(); err != nil {
			// Locker.Acquire() already returns a properly wrapped error
			if cwErrors.Is(err, cwErrors.ErrAlreadyRunning) {
				return err
			}
			return cwErrors.Wrap(cwErrors.ErrLockAcquisitionFailure, err.Error())
		}
	}

	for i, word := range words {
		year := a.Config.StartYear + i
		a.Logger.StatusMessage("📅 Year %d  →  '%s'", year, word)

		bitmap := graph.RenderWord(word)
		a.warnRenderIssues(word, bitmap)

		a.Logger.StatusMessage("%s", bitmap.Preview())
		a.Logger.StatusMessage("  (%d active pixels)", bitmap.LitCount())

		if a.Config.DryRun {
			a.Logger.StatusMessage("")
			continue
		}

		plan := bitmap.Plan(year, a.Config.CommitsPerPixel)
		if err := a.Writer.WriteWord(ctx, word, year, plan); err != nil {
			return err
		}
		a.Logger.StatusMessage("")
	}

	if a.Config.DryRun {
		a.Logger.Success("Dry run complete. Re-run without -n to create commits.")
	}

	return nil
}

// displayStartupInfo outputs the active configuration to the user
func (a *App) displayStartupInfo(words []string) {
	mode := fmt.Sprintf("%d commit(s)/pixel", a.Config.CommitsPerPixel)
	if a.Config.DryRun {
		mode = "DRY RUN (preview only)"
	}

	a.Logger.StatusMessage("")
	a.Logger.StatusMessage("✍️   %s", constants.Tagline)
	a.Logger.StatusMessage("     Sentence : %s", a.Config.Sentence)
	a.Logger.StatusMessage("     Years    : %d to %d", a.Config.StartYear, a.Config.StartYear+len(words)-1)
	a.Logger.StatusMessage("     Mode     : %s", mode)
	a.Logger.StatusMessage("")
}

// warnRenderIssues reports dropped characters and clipped columns for a word
func (a *App) warnRenderIssues(word string, bitmap *graph.Bitmap) {
	if len(bitmap.Dropped) > 0 {
		a.Logger.WarningToUser("Unsupported characters in %q rendered blank: %q", word, string(bitmap.Dropped))
	}
	if bitmap.Clipped > 0 {
		a.Logger.WarningToUser("'%s' is long (%d chars), %d columns were clipped off the grid",
			word, len([]rune(word)), bitmap.Clipped)
	}
}

// ShowVersion displays version information
func (a *App) ShowVersion() {
	_, _ = fmt.Fprintf(a.Stdout, "contribwriter %s (%s) built on %s\n",
		a.Config.VersionInfo.Version,
		a.Config.VersionInfo.Commit,
		a.Config.VersionInfo.Date)
}

// ShowLogo displays ASCII art logo
func (a *App) ShowLogo() {
	_, _ = fmt.Fprint(a.Stdout, constants.Logo+"\n")
	_, _ = fmt.Fprintln(a.Stdout, "")

	asciiArtWidth := 72
	padding := (asciiArtWidth - len(constants.Tagline)) / 2
	if padding < 0 {
		padding = 0
	}
	_, _ = fmt.Fprintln(a.Stdout, strings.Repeat(" ", padding)+constants.Tagline)
}

// checkRequiredCommands verifies git is available in PATH
func (a *App) checkRequiredCommands() error {
	_, err := a.execLookPath("git")
	if err != nil {
		return fmt.Errorf("git is not found in PATH")
	}
	return nil
}

// Close releases resources held by the App
func (a *App) Close() error {
	var errs []error

	// Release lock if it exists
	if a.Locker != nil {
		if err := a.Locker.Release(); err != nil {
			if a.Logger != nil {
				a.Logger.Error("Failed to release lock during cleanup: %v", err)
			} else {
				_, _ = fmt.Fprintf(a.Stderr, "❌ Failed to release lock during cleanup: %v\n", err)
			}
			errs = append(errs, err)
		}
	}

	if a.Logger != nil {
		if closer, ok := a.Logger.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				_, _ = fmt.Fprintf(a.Stderr, "❌ Failed to close logger: %v\n", err)
				errs = append(errs, err)
			}
		}
	}

	if len(errs) > 0 {
		return cwErrors.Join(errs...)
	}
	return nil
}

// CleanupOnSignal releases locks and shows a summary on interruption
func (a *App) CleanupOnSignal() {
	if err := a.Close(); err != nil {
		_, _ = fmt.Fprintf(a.Stderr, "❌ Error during cleanup: %v\n", err)
	}

	if !a.Config.ShowLogo && !a.Config.Version && !a.Config.DryRun && a.Writer != nil {
		a.Writer.PrintSummary()
	}
}
