package normalizer

import (
	"context"
	"errors"
	"testing"

	"github.com/ludo-technologies/codesim/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		want      string
		variables []string
		functions []string
		classes   []string
	}{
		{
			name: "function with locals",
			source: `def add(a, b):
    total = a + b
    return total
`,
			want:      "def <FUNC>(<VAR>, <VAR>):\n    <VAR> = <VAR> + <VAR>\n    return <VAR>",
			variables: []string{"a", "b", "total"},
			functions: []string{"add"},
			classes:   []string{},
		},
		{
			name: "class with attribute assignment",
			source: `class Point:
    def __init__(self, x):
        self.x = x
`,
			want:      "class <CLASS>:\n    def <FUNC>(<VAR>, <VAR>):\n        <VAR>.<VAR> = <VAR>",
			variables: []string{"self", "x"},
			functions: []string{"__init__"},
			classes:   []string{"Point"},
		},
		{
			name: "import alias and builtins kept",
			source: `import numpy as np
result = np.array(range(10))
size = len(result)
`,
			want:      "import numpy as np\n<VAR> = np.array(range(10))\n<VAR> = len(<VAR>)",
			variables: []string{"result", "size"},
			functions: []string{},
			classes:   []string{},
		},
		{
			name:      "keyword argument name kept",
			source:    "sorted(items, key=score)",
			want:      "sorted(<VAR>, key = <VAR>)",
			variables: []string{"items", "score"},
			functions: []string{},
			classes:   []string{},
		},
		{
			name:      "comments and blank lines dropped",
			source:    "x = 1  # one\n\n\ny = 2\n",
			want:      "<VAR> = 1\n<VAR> = 2",
			variables: []string{"x", "y"},
			functions: []string{},
			classes:   []string{},
		},
		{
			name:      "bracketed continuation joined",
			source:    "values = [\n    1,\n    2,\n]\n",
			want:      "<VAR> = [1, 2,]",
			variables: []string{"values"},
			functions: []string{},
			classes:   []string{},
		},
		{
			name: "global declaration kept",
			source: `def bump():
    global counter
    counter += 1
`,
			want:      "def <FUNC>():\n    global counter\n    <VAR> += 1",
			variables: []string{"counter"},
			functions: []string{"bump"},
			classes:   []string{},
		},
		{
			name: "except alias kept",
			source: `try:
    run()
except ValueError as err:
    pass
`,
			want:      "try:\n    <VAR>()\nexcept ValueError as err:\n    pass",
			variables: []string{"run"},
			functions: []string{},
			classes:   []string{},
		},
		{
			name:      "lambda parameters",
			source:    "double = lambda x: x * 2",
			want:      "<VAR> = lambda <VAR>: <VAR> * 2",
			variables: []string{"double", "x"},
			functions: []string{},
			classes:   []string{},
		},
		{
			name:      "default and variadic parameters",
			source:    "def f(a, b=2, *args, **kwargs): return a",
			want:      "def <FUNC>(<VAR>, <VAR> = 2, *<VAR>, **<VAR>): return <VAR>",
			variables: []string{"a", "args", "b", "kwargs"},
			functions: []string{"f"},
			classes:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Normalize(context.Background(), tt.source)
			require.NoError(t, err)

			assert.Equal(t, tt.want, result.Code)
			assert.Equal(t, tt.variables, result.Symbols.Variables.Sorted())
			assert.Equal(t, tt.functions, result.Symbols.Functions.Sorted())
			assert.Equal(t, tt.classes, result.Symbols.Classes.Sorted())
		})
	}
}

func TestNormalizeRenamingInvariance(t *testing.T) {
	original := `
class Stack:
    def __init__(self):
        self.items = []

    def push(self, item):
        self.items.append(item)

def fill(stack, count):
    for i in range(count):
        stack.push(i)
`
	renamed := `
class Pile:
    def __init__(this):
        this.data = []

    def add(this, value):
        this.data.append(value)

def load(p, n):
    for k in range(n):
        p.add(k)
`
	a, err := Normalize(context.Background(), original)
	require.NoError(t, err)
	b, err := Normalize(context.Background(), renamed)
	require.NoError(t, err)

	assert.Equal(t, a.Code, b.Code)
	assert.Equal(t, []string{"Stack"}, a.Symbols.Classes.Sorted())
	assert.Equal(t, []string{"Pile"}, b.Symbols.Classes.Sorted())
	assert.NotContains(t, a.Code, "stack")
	assert.NotContains(t, a.Code, "items")
}

func TestNormalizeFString(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		want      string
		variables []string
	}{
		{
			name:      "interpolated name",
			source:    "def greet(name):\n    msg = f\"hello {name}\"\n    return msg\n",
			want:      "def <FUNC>(<VAR>):\n    <VAR> = f\"hello {<VAR>}\"\n    return <VAR>",
			variables: []string{"msg", "name"},
		},
		{
			name:      "expression and builtin call",
			source:    "label = f'{len(items)} items'\n",
			want:      "<VAR> = f'{len(<VAR>)} items'",
			variables: []string{"items", "label"},
		},
		{
			name:      "plain string untouched",
			source:    "text = \"{name}\"\n",
			want:      "<VAR> = \"{name}\"",
			variables: []string{"text"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Normalize(context.Background(), tt.source)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Code)
			assert.Equal(t, tt.variables, result.Symbols.Variables.Sorted())
		})
	}
}

func TestNormalizeFStringRenamingInvariance(t *testing.T) {
	a, err := Normalize(context.Background(), "def greet(name):\n    msg = f\"hello {name}!\"\n    return msg\n")
	require.NoError(t, err)
	b, err := Normalize(context.Background(), "def welcome(who):\n    text = f\"hello {who}!\"\n    return text\n")
	require.NoError(t, err)

	assert.Equal(t, a.Code, b.Code)
	assert.NotContains(t, a.Code, "name")
}

func TestNormalizeEmptyInput(t *testing.T) {
	for _, source := range []string{"", "   \n\t", "# only a comment\n", `"""docstring"""`} {
		result, err := Normalize(context.Background(), source)
		require.NoError(t, err)
		assert.Equal(t, "", result.Code)
		assert.Empty(t, result.Symbols.Variables)
		assert.Empty(t, result.Symbols.Functions)
		assert.Empty(t, result.Symbols.Classes)
	}
}

func TestNormalizeParseError(t *testing.T) {
	_, err := Normalize(context.Background(), "def broken(:\n    pass\n")
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.True(t, errors.Is(err, parser.ErrSyntax))

	var syntaxErr *parser.SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.GreaterOrEqual(t, syntaxErr.Line, 1)
}

func TestNormalizeDoesNotSubstituteBuiltinDefinitions(t *testing.T) {
	result, err := Normalize(context.Background(), "def max(x):\n    return x\n")
	require.NoError(t, err)

	assert.Equal(t, "def max(<VAR>):\n    return <VAR>", result.Code)
	assert.Empty(t, result.Symbols.Functions)
}

func TestRolePlaceholder(t *testing.T) {
	assert.Equal(t, VariablePlaceholder, RoleVariable.Placeholder())
	assert.Equal(t, FunctionPlaceholder, RoleFunction.Placeholder())
	assert.Equal(t, ClassPlaceholder, RoleClass.Placeholder())
	assert.Equal(t, VariablePlaceholder, Role(42).Placeholder())
}

func TestIsBuiltin(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{name: "len", want: true},
		{name: "ValueError", want: true},
		{name: "lambda", want: true},
		{name: "None", want: true},
		{name: "total", want: false},
		{name: "Len", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isBuiltin(tt.name))
		})
	}
}
