// Package git drives the git executable to create backdated commits.
//
// All interaction with git happens through the CommandExecutor interface so
// tests can substitute a mock. The Writer turns a chronological commit plan
// into real commits by appending marker lines to a file in the repository
// and committing with GIT_AUTHOR_DATE and GIT_COMMITTER_DATE overridden to
// the pixel's date.
package git
