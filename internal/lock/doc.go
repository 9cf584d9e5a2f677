// Package lock provides a file-based mutual exclusion mechanism keyed on the
// repository path.
//
// A run of contribwriter can create thousands of commits; two instances
// interleaving commits in the same repository would corrupt each other's
// history. The Locker writes its PID into a flock-protected file under the
// system temp directory and recovers locks left behind by dead processes.
package lock
