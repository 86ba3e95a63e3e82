package app

import (
	"errors"

	"github.com/ludo-technologies/codesim/domain"
)

// ResolveFilePaths resolves the snippet files named by paths.
// If every path is already a regular file the list is returned unchanged, in
// the caller's order; otherwise directories are expanded with the include and
// exclude patterns and the sorted result is returned.
func ResolveFilePaths(
	fileReader domain.FileReader,
	paths []string,
	recursive bool,
	includePatterns []string,
	excludePatterns []string,
) ([]string, error) {
	allFiles := true
	for _, path := range paths {
		exists, err := fileReader.FileExists(path)
		if err != nil || !exists {
			allFiles = false
			break
		}
	}

	if allFiles {
		return paths, nil
	}

	return fileReader.CollectFiles(paths, recursive, includePatterns, excludePatterns)
}

// keepDomainError returns err unchanged when it already carries a domain
// code, and wraps it with wrap otherwise.
func keepDomainError(err error, wrap func(error) error) error {
	var de domain.DomainError
	if errors.As(err, &de) {
		return err
	}
	return wrap(err)
}
