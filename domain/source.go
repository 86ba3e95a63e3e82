package domain

import (
	"io"
	"strings"
	"unicode/utf8"
)

// DecodeSource turns a snippet supplied as string, []byte or io.Reader into
// text. Byte input that is not valid UTF-8 has the offending bytes dropped.
// Any other type is an INPUT_TYPE_ERROR.
func DecodeSource(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return decodeBytes(v), nil
	case io.Reader:
		data, err := io.ReadAll(v)
		if err != nil {
			return "", NewInvalidInputError("failed to read snippet", err)
		}
		return decodeBytes(data), nil
	default:
		return "", NewInputTypeError(value)
	}
}

func decodeBytes(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "")
}

// FileReader discovers and reads snippet files
type FileReader interface {
	// CollectFiles expands files and directories into a sorted file list
	CollectFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadSnippet reads one file into a snippet named after its path
	ReadSnippet(path string) (Snippet, error)

	// ReadSnippets reads every path in order
	ReadSnippets(paths []string) ([]Snippet, error)

	// FileExists reports whether path is an existing regular file
	FileExists(path string) (bool, error)
}
