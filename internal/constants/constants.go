package constants

// Logo is the ASCII art shown by the -logo flag
const Logo = `
                       _        _ _                    _ _
   ___ ___  _ __  _ __(_)_ __  | (_)_      __ _ __ ___(_) |_ ___ _ __
  / __/ _ \| '_ \| '__| | '_ \ | | \ \ /\ / /| '__/ _ \ | __/ _ \ '__|
 | (_| (_) | | | | |  | | |_) || | |\ V  V / | | |  __/ | ||  __/ |
  \___\___/|_| |_|_|  |_|_.__(_)_|_| \_/\_/  |_|  \___|_|\__\___|_|
`

// Tagline is the application's motto
const Tagline = "Write words into your contribution graph"

// Usage is the help text printed after the flag defaults
const Usage = `
Usage:
  contribwriter [flags] SENTENCE START_YEAR [REPO_PATH]

One word is written per year, starting from START_YEAR. REPO_PATH defaults
to the current directory and may be omitted with -n (dry run).

Commit counts per intensity level (approximate):
  1 commit   lightest green
  3 commits  medium green (default)
  6+ commits darkest green

Examples:
  # Preview without making any commits:
  contribwriter -n "YOLO PUSHED" 2023

  # Actually write the commits (medium green intensity):
  contribwriter "YOLO PUSHED" 2023 /path/to/repo

  # Darker squares (more commits per pixel):
  contribwriter -c 6 "YOLO PUSHED" 2023 /path/to/repo

The git user.email in the repository must match your GitHub account email,
and the repository needs at least one existing commit. After running, push:
  cd /path/to/repo && git push origin main
`
