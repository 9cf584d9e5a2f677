package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	cwErrors "github.com/rdrkr/contribution-writer/internal/errors"
)

func TestParsePositionalArguments(t *testing.T) {
	cfg := New()
	err := cfg.Parse([]string{"HELLO WORLD", "2022", "/tmp/repo"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Sentence != "HELLO WORLD" {
		t.Errorf("Sentence = %q, want %q", cfg.Sentence, "HELLO WORLD")
	}
	if cfg.StartYear != 2022 {
		t.Errorf("StartYear = %d, want 2022", cfg.StartYear)
	}
	if cfg.RepoPath != "/tmp/repo" {
		t.Errorf("RepoPath = %q, want /tmp/repo", cfg.RepoPath)
	}
}

func TestParseRepoPathOptional(t *testing.T) {
	cfg := New()
	if err := cfg.Parse([]string{"-n", "HI", "2022"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !cfg.DryRun {
		t.Error("Expected DryRun to be set")
	}
	if cfg.RepoPath != "" {
		t.Errorf("RepoPath = %q, want empty before Finalize", cfg.RepoPath)
	}
}

func TestParseFlags(t *testing.T) {
	cfg := New()
	err := cfg.Parse([]string{"-c", "6", "-quiet", "-prefix", "art:", "HI", "2022", "/tmp/repo"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.CommitsPerPixel != 6 {
		t.Errorf("CommitsPerPixel = %d, want 6", cfg.CommitsPerPixel)
	}
	if cfg.Verbose {
		t.Error("Expected -quiet to disable Verbose")
	}
	if cfg.CommitPrefix != "art:" {
		t.Errorf("CommitPrefix = %q, want art:", cfg.CommitPrefix)
	}
}

func TestParseMissingArguments(t *testing.T) {
	tests := [][]string{
		{},
		{"HI"},
	}
	for _, args := range tests {
		cfg := New()
		err := cfg.Parse(args)
		if !cwErrors.Is(err, cwErrors.ErrInvalidConfiguration) {
			t.Errorf("Parse(%v): expected ErrInvalidConfiguration, got %v", args, err)
		}
	}
}

func TestParseTooManyArguments(t *testing.T) {
	cfg := New()
	err := cfg.Parse([]string{"UNQUOTED", "SENTENCE", "2022", "/tmp/repo"})
	if !cwErrors.Is(err, cwErrors.ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestParseBadYear(t *testing.T) {
	cfg := New()
	err := cfg.Parse([]string{"HI", "twentytwo", "/tmp/repo"})
	if !cwErrors.Is(err, cwErrors.ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestParseVersionNeedsNoArguments(t *testing.T) {
	cfg := New()
	if err := cfg.Parse([]string{"-version"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !cfg.Version {
		t.Error("Expected Version to be set")
	}
}

func TestFinalizeDefaults(t *testing.T) {
	cfg := New()
	cfg.Sentence = "HI"
	cfg.StartYear = 2022
	cfg.RepoPath = "."

	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if !filepath.IsAbs(cfg.RepoPath) {
		t.Errorf("RepoPath = %q, want an absolute path", cfg.RepoPath)
	}
	if cfg.LogFile == "" {
		t.Error("Expected a default LogFile")
	}
	if !strings.Contains(cfg.LogFile, "contribwriter-") {
		t.Errorf("LogFile = %q, want a repo-hashed default name", cfg.LogFile)
	}
}

func TestFinalizeRejectsZeroCommitsPerPixel(t *testing.T) {
	cfg := New()
	cfg.Sentence = "HI"
	cfg.StartYear = 2022
	cfg.CommitsPerPixel = 0

	err := cfg.Finalize()
	if !cwErrors.Is(err, cwErrors.ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestFinalizeRejectsEmptySentence(t *testing.T) {
	cfg := New()
	cfg.Sentence = "   "
	cfg.StartYear = 2022

	err := cfg.Finalize()
	if !cwErrors.Is(err, cwErrors.ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestFinalizeRejectsBadYear(t *testing.T) {
	for _, year := range []int{0, 1969, 10000} {
		cfg := New()
		cfg.Sentence = "HI"
		cfg.StartYear = year

		err := cfg.Finalize()
		if !cwErrors.Is(err, cwErrors.ErrInvalidConfiguration) {
			t.Errorf("StartYear %d: expected ErrInvalidConfiguration, got %v", year, err)
		}
	}
}

func TestFinalizeRejectsNestedMarkerFile(t *testing.T) {
	cfg := New()
	cfg.Sentence = "HI"
	cfg.StartYear = 2022
	cfg.MarkerFile = filepath.Join("sub", "marker")

	err := cfg.Finalize()
	if !cwErrors.Is(err, cwErrors.ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestFinalizeSkipsValidationForVersion(t *testing.T) {
	cfg := New()
	cfg.Version = true
	if err := cfg.Finalize(); err != nil {
		t.Errorf("Finalize with -version should not validate arguments: %v", err)
	}
}

func TestWords(t *testing.T) {
	cfg := New()
	cfg.Sentence = "  YOLO   PUSHED "
	words := cfg.Words()
	if len(words) != 2 || words[0] != "YOLO" || words[1] != "PUSHED" {
		t.Errorf("Words() = %v, want [YOLO PUSHED]", words)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("COMMITS_PER_PIXEL", "5")
	t.Setenv("MARKER_FILE", ".pixels")
	t.Setenv("DRY_RUN", "true")
	t.Setenv("VERBOSE", "no")

	cfg := New()
	cfg.LoadFromEnvironment()

	if cfg.CommitsPerPixel != 5 {
		t.Errorf("CommitsPerPixel = %d, want 5", cfg.CommitsPerPixel)
	}
	if cfg.MarkerFile != ".pixels" {
		t.Errorf("MarkerFile = %q, want .pixels", cfg.MarkerFile)
	}
	if !cfg.DryRun {
		t.Error("Expected DRY_RUN=true to enable DryRun")
	}
	if cfg.Verbose {
		t.Error("Expected VERBOSE=no to disable Verbose")
	}
}

func TestLoadFromEnvironmentIgnoresGarbage(t *testing.T) {
	t.Setenv("COMMITS_PER_PIXEL", "lots")
	t.Setenv("DEBUG", "maybe")

	cfg := New()
	cfg.LoadFromEnvironment()

	if cfg.CommitsPerPixel != DefaultCommitsPerPixel {
		t.Errorf("CommitsPerPixel = %d, want default %d", cfg.CommitsPerPixel, DefaultCommitsPerPixel)
	}
	if cfg.Debug {
		t.Error("Expected unparseable DEBUG to keep the default")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("COMMIT_PREFIX=dotenv: pixel\n"), 0644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}

	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWd); err != nil {
			t.Fatalf("Failed to restore working directory: %v", err)
		}
	})

	// Register cleanup for the variable godotenv is about to set
	t.Setenv("COMMIT_PREFIX", "placeholder")
	if err := os.Unsetenv("COMMIT_PREFIX"); err != nil {
		t.Fatalf("Failed to unset COMMIT_PREFIX: %v", err)
	}

	cfg := New()
	cfg.LoadDotEnv()
	cfg.LoadFromEnvironment()

	if cfg.CommitPrefix != "dotenv: pixel" {
		t.Errorf("CommitPrefix = %q, want value from .env", cfg.CommitPrefix)
	}
}
