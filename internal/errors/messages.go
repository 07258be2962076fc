package errors

import "fmt"

// Common error messages for the changelog CLI.
// These templates keep messages consistent and actionable.

// RepositoryNotFound creates an error for an unopenable repository path.
func RepositoryNotFound(path string) *CLIError {
	return NewRepositoryError(
		fmt.Sprintf("could not open git repository at %s", path),
		"Check that the path points inside a git repository",
		"Pass the repository path explicitly with --repo",
	)
}

// MissingRemoteURL creates an error for a repository without a usable
// origin remote.
func MissingRemoteURL() *CLIError {
	return NewRepositoryError(
		"could not resolve the repository URL from the origin remote",
		"Add an origin remote: git remote add origin <url>",
		"Or pass the URL explicitly with --url",
	)
}

// InvalidOutputPath creates an error for an unwritable changelog path.
func InvalidOutputPath(path string, cause error) *CLIError {
	return WrapWithMessage(cause, Runtime,
		fmt.Sprintf("cannot write changelog to %s", path),
		"Check that the directory exists and is writable",
	)
}
