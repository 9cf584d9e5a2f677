package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rdrkr/contribution-writer/internal/common"
	"github.com/rdrkr/contribution-writer/internal/errors"
	"github.com/rdrkr/contribution-writer/internal/graph"
)

const (
	// DefaultMarkerFile is the file that receives one line per commit
	DefaultMarkerFile = ".graph_art"

	// DefaultCommitPrefix for the backdated commit messages
	DefaultCommitPrefix = "graph: pixel"
)

// WriterConfig contains configuration for a Writer instance
type WriterConfig struct {
	// Repository path
	RepoPath string

	// Commit settings
	CommitsPerPixel int
	MarkerFile      string
	CommitPrefix    string

	// Output configuration
	Verbose bool
}

// Writer creates the backdated commits that light up the contribution graph.
// It appends marker lines to a file in the repository and drives the git
// executable through a CommandExecutor, one commit per lit pixel per
// intensity step.
type Writer struct {
	config       WriterConfig
	logger       Logger
	executor     CommandExecutor
	commitsCount int
	startTime    time.Time
}

// Logger alias to common.Logger
type Logger = common.Logger

// NewWriter creates a new Writer with the default executor
func NewWriter(config WriterConfig, logger Logger) *Writer {
	return NewWriterWithDeps(config, logger, NewExecExecutor())
}

// NewWriterWithDeps creates a new Writer with a custom executor
func NewWriterWithDeps(config WriterConfig, logger Logger, executor CommandExecutor) *Writer {
	if config.MarkerFile == "" {
		config.MarkerFile = DefaultMarkerFile
	}
	if config.CommitPrefix == "" {
		config.CommitPrefix = DefaultCommitPrefix
	}

	return &Writer{
		config:       config,
		logger:       logger,
		executor:     executor,
		commitsCount: 0,
		startTime:    time.Now(),
	}
}

// IsRepository checks if the given path is a git repository
func IsRepository(path string) bool {
	cmd := exec.Command("git", "-C", path, "rev-parse", "--is-inside-work-tree")
	executor := NewExecExecutor()
	return executor.Execute(cmd) == nil
}

// HasCommits reports whether the repository has at least one commit.
// Backdated commits need an existing HEAD to build on.
func (w *Writer) HasCommits() bool {
	_, err := w.runGitCommandWithOutput("rev-parse", "--verify", "HEAD")
	return err == nil
}

// Verify checks the repository preconditions before any commits are made.
func (w *Writer) Verify() error {
	if !IsRepository(w.config.RepoPath) {
		return errors.Wrapf(errors.ErrNotGitRepository, "%s", w.config.RepoPath)
	}
	if !w.HasCommits() {
		return errors.Wrap(errors.ErrNoCommits,
			"create an initial commit first (git commit --allow-empty -m init)")
	}
	return nil
}

// WriteWord creates the commits for one word's plan. Entries must be in
// chronological order; each entry produces Count commits dated to its pixel.
// The context is checked between pixels so an interrupt stops the run
// cleanly after the in-flight commit.
func (w *Writer) WriteWord(ctx context.Context, word string, year int, plan []graph.PlanEntry) error {
	total := 0
	for _, entry := range plan {
		total += entry.Count
	}
	w.logger.StatusMessage("  → %d pixels × %d commits = %d commits …",
		len(plan), w.config.CommitsPerPixel, total)

	for i, entry := range plan {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for n := 0; n < entry.Count; n++ {
			if err := w.commitPixel(entry.Date); err != nil {
				w.logger.Error("Failed to commit pixel %s: %v", entry.Date.Format("2006-01-02"), err)
				return err
			}
		}

		if (i+1)%10 == 0 || i+1 == len(plan) {
			w.logger.Info("Word %q year %d: %d/%d pixels committed", word, year, i+1, len(plan))
			if w.config.Verbose {
				w.logger.StatusMessage("  ├─ %d/%d pixels done …", i+1, len(plan))
			}
		}
	}

	w.logger.Success("%d — '%s' written (%d commits created)", year, word, total)
	return nil
}

// commitPixel appends one marker line and creates a single backdated commit.
// A fresh UUID per line guarantees a distinct blob, so repeated commits on
// the same date still get distinct hashes.
func (w *Writer) commitPixel(date time.Time) error {
	day := date.Format("2006-01-02")

	marker := filepath.Join(w.config.RepoPath, w.config.MarkerFile)
	line := fmt.Sprintf("%s %s\n", day, uuid.NewString())
	if err := appendLine(marker, line); err != nil {
		return errors.Wrapf(err, "failed to append to marker file %s", marker)
	}

	if err := w.runGitCommand(nil, "add", w.config.MarkerFile); err != nil {
		return err
	}

	// Both author and committer dates must be overridden or GitHub attributes
	// the commit to today. Noon UTC keeps the commit inside its pixel's day
	// in any nearby timezone.
	timestamp := day + "T12:00:00 +0000"
	env := append(os.Environ(),
		"GIT_AUTHOR_DATE="+timestamp,
		"GIT_COMMITTER_DATE="+timestamp,
	)

	commitMsg := fmt.Sprintf("%s %s", w.config.CommitPrefix, day)
	if err := w.runGitCommand(env, "commit", "-m", commitMsg); err != nil {
		return err
	}

	w.commitsCount++
	return nil
}

// CommitsCount returns the number of commits created so far
func (w *Writer) CommitsCount() int {
	return w.commitsCount
}

// PrintSummary prints a summary of the writing session
func (w *Writer) PrintSummary() {
	duration := time.Since(w.startTime)
	minutes := int(duration.Minutes())
	seconds := int(duration.Seconds()) % 60

	w.logger.StatusMessage("")
	w.logger.StatusMessage("---------------------------------------------")
	w.logger.StatusMessage("📊 contribwriter Session Summary")
	w.logger.StatusMessage("---------------------------------------------")
	w.logger.StatusMessage("✅ Total commits made: %d", w.commitsCount)
	w.logger.StatusMessage("⏱️  Session duration: %dm %ds", minutes, seconds)

	if w.commitsCount > 0 {
		w.logger.StatusMessage("")
		w.logger.StatusMessage("🎉 All done! Push to GitHub with:")
		w.logger.StatusMessage("  cd %s && git push origin main", w.config.RepoPath)
		w.showRecentCommits()
	}

	w.logger.StatusMessage("---------------------------------------------")
}

// showRecentCommits displays the tail of the history that was just written
func (w *Writer) showRecentCommits() {
	output, err := w.runGitCommandWithOutput("log", "--oneline", "--date=short", "--pretty=format:%h %ad %s", "-n", "10")
	if err == nil && output != "" {
		w.logger.StatusMessage("")
		w.logger.StatusMessage("🔍 Last 10 commits:")
		w.logger.StatusMessage("---------------------------------------------")
		w.logger.StatusMessage("%s", strings.TrimRight(output, "\n"))
	}
}

// runGitCommand executes a git command in the repository directory.
func (w *Writer) runGitCommand(env []string, args ...string) error {
	baseArgs := []string{"-C", w.config.RepoPath}
	cmd := exec.Command("git", append(baseArgs, args...)...)
	cmd.Dir = w.config.RepoPath
	cmd.Env = env
	return w.executor.Execute(cmd)
}

// runGitCommandWithOutput executes a git command and returns its output.
func (w *Writer) runGitCommandWithOutput(args ...string) (string, error) {
	baseArgs := []string{"-C", w.config.RepoPath}
	cmd := exec.Command("git", append(baseArgs, args...)...)
	cmd.Dir = w.config.RepoPath
	return w.executor.ExecuteWithOutput(cmd)
}

// appendLine appends a line to path, creating the file if needed.
func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
