package config

import (
	"crypto/sha256"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/rdrkr/contribution-writer/internal/constants"
	"github.com/rdrkr/contribution-writer/internal/errors"
)

const (
	// DefaultCommitsPerPixel gives a medium-green square on the graph
	DefaultCommitsPerPixel = 3

	// DefaultMarkerFile receives one appended line per commit
	DefaultMarkerFile = ".graph_art"

	// DefaultCommitPrefix for the backdated commit messages
	DefaultCommitPrefix = "graph: pixel"
)

// Config holds all contribwriter application settings
type Config struct {
	// What to write and where
	Sentence  string
	StartYear int
	RepoPath  string

	// Commit settings
	CommitsPerPixel int
	MarkerFile      string
	CommitPrefix    string

	// Modes
	DryRun  bool
	Verbose bool

	// Debugging
	Debug   bool
	LogFile string

	// Special flags
	Version  bool
	ShowLogo bool // Shows ASCII logo and exits

	// Build metadata
	VersionInfo VersionInfo
}

// VersionInfo contains build-time version metadata
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// New creates a new Config with default values
func New() *Config {
	return &Config{
		CommitsPerPixel: DefaultCommitsPerPixel,
		MarkerFile:      DefaultMarkerFile,
		CommitPrefix:    DefaultCommitPrefix,
		DryRun:          false,
		Verbose:         true,
		Debug:           false,
		LogFile:         "",
		Version:         false,
		ShowLogo:        false,

		// Default version info, will be overridden if provided
		VersionInfo: VersionInfo{
			Version: "dev",
			Commit:  "unknown",
			Date:    "unknown",
		},
	}
}

// LoadDotEnv loads optional .env files from the current directory into the
// process environment so LoadFromEnvironment can pick them up.
// .env.local wins over .env; missing files are not an error.
func (c *Config) LoadDotEnv() {
	for _, name := range []string{".env.local", ".env"} {
		if _, err := os.Stat(name); err == nil {
			_ = godotenv.Load(name)
		}
	}
}

// LoadFromEnvironment updates config from environment variables
func (c *Config) LoadFromEnvironment() {
	c.CommitsPerPixel = getEnvInt("COMMITS_PER_PIXEL", c.CommitsPerPixel)
	c.MarkerFile = getEnvString("MARKER_FILE", c.MarkerFile)
	c.CommitPrefix = getEnvString("COMMIT_PREFIX", c.CommitPrefix)
	c.RepoPath = getEnvString("REPO_PATH", c.RepoPath)
	c.DryRun = getEnvBool("DRY_RUN", c.DryRun)
	c.Verbose = getEnvBool("VERBOSE", c.Verbose)
	c.Debug = getEnvBool("DEBUG", c.Debug)
	c.LogFile = getEnvString("LOG_FILE", c.LogFile)
}

// SetupFlags sets up command-line flags to override config values
func (c *Config) SetupFlags(fs *flag.FlagSet) {
	// Save original value for the inverted flag (for CLI ergonomics)
	origVerbose := c.Verbose

	fs.IntVar(&c.CommitsPerPixel, "c", c.CommitsPerPixel, "Commits per lit pixel (higher = darker green square)")
	fs.BoolVar(&c.DryRun, "n", c.DryRun, "Preview bitmaps only, do not create any commits")
	fs.StringVar(&c.MarkerFile, "marker", c.MarkerFile, "Marker file that receives one line per commit")
	fs.StringVar(&c.CommitPrefix, "prefix", c.CommitPrefix, "Custom commit message prefix")
	fs.BoolVar(&c.Verbose, "quiet", !origVerbose, "Hide informational messages")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "Enable debug logging")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "Path to log file (default: ~/.local/share/contribwriter/logs/contribwriter-{repo-hash}.log)")
	fs.BoolVar(&c.Version, "version", c.Version, "Print version information and exit")
	fs.BoolVar(&c.ShowLogo, "logo", c.ShowLogo, "Display ASCII logo and exit")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "contribwriter - %s\n\nFlags:\n", constants.Tagline)
		fs.PrintDefaults()
		_, _ = fmt.Fprint(fs.Output(), constants.Usage)
	}
}

// ParseFlags parses the process arguments and updates the config
func (c *Config) ParseFlags() error {
	return c.Parse(os.Args[1:])
}

// Parse parses the given arguments (flags followed by positional arguments)
// and updates the config. The positional arguments are SENTENCE, START_YEAR,
// and an optional REPO_PATH.
func (c *Config) Parse(args []string) error {
	fs := flag.NewFlagSet("contribwriter", flag.ContinueOnError)

	c.SetupFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errors.NewConfigError("flags", nil,
			errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to parse command-line arguments: %v", err)))
	}

	// Invert the boolean flag here, after parsing (for CLI ergonomics):
	// -quiet means Verbose=false
	c.Verbose = !c.Verbose

	// Version and logo runs don't need positional arguments
	if c.Version || c.ShowLogo {
		return nil
	}

	rest := fs.Args()
	if len(rest) < 2 {
		return errors.NewConfigError("arguments", nil,
			errors.Wrap(errors.ErrInvalidConfiguration, "expected SENTENCE START_YEAR [REPO_PATH] arguments"))
	}
	if len(rest) > 3 {
		return errors.NewConfigError("arguments", rest,
			errors.Wrap(errors.ErrInvalidConfiguration, "too many arguments (quote the sentence)"))
	}

	c.Sentence = rest[0]

	year, err := strconv.Atoi(rest[1])
	if err != nil {
		return errors.NewConfigError("startYear", rest[1],
			errors.Wrap(errors.ErrInvalidConfiguration, "START_YEAR must be a number"))
	}
	c.StartYear = year

	if len(rest) == 3 {
		c.RepoPath = rest[2]
	}

	return nil
}

// Finalize validates and finalizes the configuration
func (c *Config) Finalize() error {
	if c.Version || c.ShowLogo {
		return nil
	}

	if strings.TrimSpace(c.Sentence) == "" {
		return errors.NewConfigError("sentence", nil,
			errors.Wrap(errors.ErrInvalidConfiguration, "sentence must contain at least one word"))
	}

	if c.StartYear < 1970 || c.StartYear > 9999 {
		err := fmt.Errorf("invalid start year: %d (must be between 1970 and 9999)", c.StartYear)
		return errors.NewConfigError("startYear", c.StartYear,
			errors.Wrap(errors.ErrInvalidConfiguration, err.Error()))
	}

	// A zero commit count would render an invisible word; reject it rather
	// than silently doing nothing
	if c.CommitsPerPixel < 1 {
		err := fmt.Errorf("invalid commits-per-pixel: %d (must be at least 1)", c.CommitsPerPixel)
		return errors.NewConfigError("commitsPerPixel", c.CommitsPerPixel,
			errors.Wrap(errors.ErrInvalidConfiguration, err.Error()))
	}

	if c.RepoPath == "" {
		var err error
		c.RepoPath, err = os.Getwd()
		if err != nil {
			return errors.NewConfigError("repoPath", "",
				errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to get current directory: %v", err)))
		}
	}

	absRepoPath, err := filepath.Abs(c.RepoPath)
	if err != nil {
		return errors.NewConfigError("repoPath", c.RepoPath,
			errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to resolve absolute path: %v", err)))
	}
	c.RepoPath = absRepoPath

	if strings.ContainsRune(c.MarkerFile, os.PathSeparator) {
		return errors.NewConfigError("markerFile", c.MarkerFile,
			errors.Wrap(errors.ErrInvalidConfiguration, "marker file must be a bare file name inside the repository"))
	}

	if c.LogFile == "" {
		// Follow XDG Base Directory Specification
		logDir := os.Getenv("XDG_DATA_HOME")
		if logDir == "" {
			homeDir, err := os.UserHomeDir()
			if err == nil {
				logDir = filepath.Join(homeDir, ".local", "share")
			} else {
				// Fallback to the temp directory if home dir can't be determined
				logDir = os.TempDir()
			}
		}

		// Create a unique identifier for the repository
		repoHash := fmt.Sprintf("%x", sha256OfString(c.RepoPath)[:8])

		logFileDir := filepath.Join(logDir, "contribwriter", "logs")
		c.LogFile = filepath.Join(logFileDir, fmt.Sprintf("contribwriter-%s.log", repoHash))
	}

	return nil
}

// Words returns the whitespace-separated words of the sentence.
// One word is written per year.
func (c *Config) Words() []string {
	return strings.Fields(c.Sentence)
}

// getEnvString returns an environment variable string or a default value
func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an environment variable as int or a default value
func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

// getEnvBool returns an environment variable as bool or a default value
func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		valueLower := strings.ToLower(valueStr)
		if valueLower == "true" || valueLower == "1" || valueLower == "yes" {
			return true
		}
		if valueLower == "false" || valueLower == "0" || valueLower == "no" {
			return false
		}
		// For any other value, fall back to default
	}
	return defaultValue
}

// sha256OfString returns the SHA256 hash of a string
func sha256OfString(input string) []byte {
	hash := sha256.Sum256([]byte(input))
	return hash[:]
}
