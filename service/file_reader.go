package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/ludo-technologies/codesim/domain"
)

// FileReaderImpl discovers and reads snippet files
type FileReaderImpl struct{}

// NewFileReader creates a new file reader service
func NewFileReader() *FileReaderImpl {
	return &FileReaderImpl{}
}

// CollectFiles expands paths into a sorted, de-duplicated list of files.
// Directories are walked (recursively when requested) and their files are
// filtered with doublestar include/exclude patterns matched against the path
// relative to the walked directory. Files named explicitly are always kept
// unless an exclude pattern matches them.
func (f *FileReaderImpl) CollectFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	if err := validatePatterns(includePatterns, excludePatterns); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}

		if !info.IsDir() {
			if !matchesAny(excludePatterns, filepath.ToSlash(path)) {
				add(path)
			}
			continue
		}

		dirFiles, err := f.collectFromDirectory(path, recursive, includePatterns, excludePatterns)
		if err != nil {
			return nil, err
		}
		for _, file := range dirFiles {
			add(file)
		}
	}

	sort.Strings(files)
	return files, nil
}

// ReadFile reads the content of a file
func (f *FileReaderImpl) ReadFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	return content, nil
}

// ReadSnippet reads path and decodes it into a snippet named after the path
func (f *FileReaderImpl) ReadSnippet(path string) (domain.Snippet, error) {
	content, err := f.ReadFile(path)
	if err != nil {
		return domain.Snippet{}, err
	}
	code, err := domain.DecodeSource(content)
	if err != nil {
		return domain.Snippet{}, err
	}
	return domain.Snippet{Name: path, Code: code}, nil
}

// ReadSnippets reads every path in order
func (f *FileReaderImpl) ReadSnippets(paths []string) ([]domain.Snippet, error) {
	snippets := make([]domain.Snippet, 0, len(paths))
	for _, path := range paths {
		snippet, err := f.ReadSnippet(path)
		if err != nil {
			return nil, err
		}
		snippets = append(snippets, snippet)
	}
	return snippets, nil
}

// FileExists checks if a regular file exists
func (f *FileReaderImpl) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

func (f *FileReaderImpl) collectFromDirectory(dirPath string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	walkFunc := func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// unreadable entries are skipped
			return nil
		}
		if path == dirPath {
			return nil
		}

		if d.IsDir() {
			if !recursive || strings.HasPrefix(d.Name(), ".") || shouldSkipDirectory(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		rel, err := filepath.Rel(dirPath, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if matchesAny(excludePatterns, rel) {
			return nil
		}
		if len(includePatterns) == 0 || matchesAny(includePatterns, rel) {
			files = append(files, path)
		}
		return nil
	}

	if err := filepath.WalkDir(dirPath, walkFunc); err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dirPath, err)
	}
	return files, nil
}

// matchesAny matches rel and its base name against each pattern
func matchesAny(patterns []string, rel string) bool {
	base := rel
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		base = rel[i+1:]
	}
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

func validatePatterns(groups ...[]string) error {
	for _, patterns := range groups {
		for _, pattern := range patterns {
			if !doublestar.ValidatePattern(pattern) {
				return domain.NewInvalidInputError(fmt.Sprintf("invalid glob pattern: %s", pattern), nil)
			}
		}
	}
	return nil
}

// shouldSkipDirectory reports directories that never hold source snippets
func shouldSkipDirectory(dirName string) bool {
	switch strings.ToLower(dirName) {
	case "__pycache__", "node_modules", "venv", "env", "build", "dist", "site-packages":
		return true
	}
	return strings.HasSuffix(dirName, ".egg-info")
}
