// Command contribwriter writes words into a GitHub contribution graph by
// creating backdated git commits that form 5x7 pixel letters.
//
// Usage:
//
//	contribwriter [flags] SENTENCE START_YEAR [REPO_PATH]
//
// One word is written per year, starting from START_YEAR. Each lit pixel of
// a letter becomes one calendar day; the number of commits on that day
// (-c, default 3) controls how dark the square renders on the graph.
//
// With -n the program only prints a preview of each word's bitmap and the
// count of lit pixels, creating no commits. Without -n the target must be an
// existing git repository with at least one commit, and the configured
// git user.email should match the GitHub account whose graph is being drawn.
package main
