// Package contributionwriter is the root of the contribwriter project, a
// command-line tool that writes words into a GitHub contribution graph by
// creating backdated git commits shaped like 5x7 pixel letters.
//
// The binary lives in cmd/contribwriter. Supporting packages are under
// internal/: font (the glyph table), graph (bitmap rendering and date
// mapping), git (the commit driver), config, logger, lock, and errors.
package contributionwriter
