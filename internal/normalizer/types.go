package normalizer

import (
	"encoding/json"
	"sort"

	"gopkg.in/yaml.v3"
)

// Role is the category a user-defined name is abstracted to.
type Role int

const (
	RoleVariable Role = iota
	RoleFunction
	RoleClass
)

// Placeholder tokens substituted for user-defined names.
const (
	VariablePlaceholder = "<VAR>"
	FunctionPlaceholder = "<FUNC>"
	ClassPlaceholder    = "<CLASS>"
)

// Placeholder returns the token that replaces names of this role.
func (r Role) Placeholder() string {
	switch r {
	case RoleFunction:
		return FunctionPlaceholder
	case RoleClass:
		return ClassPlaceholder
	default:
		return VariablePlaceholder
	}
}

// NameSet is a set of original identifier names. It marshals as a sorted list.
type NameSet map[string]struct{}

// Add inserts name into the set.
func (s NameSet) Add(name string) {
	s[name] = struct{}{}
}

// Has reports whether name is in the set.
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the names in lexical order.
func (s NameSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// MarshalJSON encodes the set as a sorted JSON array.
func (s NameSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// MarshalYAML encodes the set as a sorted YAML sequence.
func (s NameSet) MarshalYAML() (interface{}, error) {
	return s.Sorted(), nil
}

var _ yaml.Marshaler = NameSet(nil)

// SymbolTable holds the original names found for each role.
type SymbolTable struct {
	Variables NameSet `json:"variables" yaml:"variables"`
	Functions NameSet `json:"functions" yaml:"functions"`
	Classes   NameSet `json:"classes" yaml:"classes"`
}

// NewSymbolTable returns a table with empty, non-nil sets.
func NewSymbolTable() SymbolTable {
	return SymbolTable{
		Variables: NameSet{},
		Functions: NameSet{},
		Classes:   NameSet{},
	}
}

// Result is the outcome of normalizing one snippet.
type Result struct {
	Code    string      `json:"code" yaml:"code"`
	Symbols SymbolTable `json:"symbols" yaml:"symbols"`
}
