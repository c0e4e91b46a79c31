// Package git is gl's only door to the git engine.
//
// Reads (branches, refs, remotes, trees, config) go through go-git.
// Anything that mutates the working tree or needs git's own safety checks
// (checkout, status, reset, add, update-ref compare-and-swap) is executed
// through the git CLI by CommandRunner.
package git
