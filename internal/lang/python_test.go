package lang

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPython_BlocksSimpleFunction(t *testing.T) {
	src := "def add(a, b):\n    return a + b\n"
	blocks, err := NewPython().Blocks(context.Background(), []byte(src))
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, Block{Name: "add", Kind: KindFunction, Line: 1, Complexity: 1}, blocks[0])
}

func TestPython_BlocksDecisionPoints(t *testing.T) {
	src := `def f(x):
    if x > 0 and x < 10:
        return 1
    elif x == 0:
        return 0
    for i in range(x):
        pass
    else:
        pass
    while x:
        x -= 1
    try:
        pass
    except ValueError:
        pass
    except KeyError:
        pass
    return [y for y in range(3) if y]
`
	blocks, err := NewPython().Blocks(context.Background(), []byte(src))
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	// if, and, elif, for, for-else, while, two excepts, comprehension for and if.
	assert.Equal(t, 11, blocks[0].Complexity)
}

func TestPython_BlocksElseOfIfIsFree(t *testing.T) {
	src := "def g(x):\n    if x:\n        return 1\n    else:\n        return 2\n"
	blocks, err := NewPython().Blocks(context.Background(), []byte(src))
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, 2, blocks[0].Complexity)
}

func TestPython_BlocksTwelve(t *testing.T) {
	var b strings.Builder
	b.WriteString("def busy(x):\n")
	for i := 0; i < 11; i++ {
		fmt.Fprintf(&b, "    if x == %d:\n        return %d\n", i, i)
	}
	b.WriteString("    return -1\n")

	blocks, err := NewPython().Blocks(context.Background(), []byte(b.String()))
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, 12, blocks[0].Complexity)
}

func TestPython_BlocksClass(t *testing.T) {
	src := `class Greeter:
    def hello(self):
        return "hi"

    def bye(self, loud):
        if loud:
            return "BYE"
        return "bye"
`
	blocks, err := NewPython().Blocks(context.Background(), []byte(src))
	require.NoError(t, err)
	require.Len(t, blocks, 3)

	assert.Equal(t, "Greeter", blocks[0].Name)
	assert.Equal(t, KindClass, blocks[0].Kind)
	assert.Equal(t, 3, blocks[0].Complexity)

	assert.Equal(t, "Greeter.hello", blocks[1].Name)
	assert.Equal(t, KindMethod, blocks[1].Kind)
	assert.Equal(t, 1, blocks[1].Complexity)

	assert.Equal(t, "Greeter.bye", blocks[2].Name)
	assert.Equal(t, 2, blocks[2].Complexity)
}

func TestPython_BlocksFunctionsBeforeClasses(t *testing.T) {
	src := `class A:
    def m(self):
        pass


def first():
    pass


class B:
    pass


def second():
    pass
`
	blocks, err := NewPython().Blocks(context.Background(), []byte(src))
	require.NoError(t, err)

	var names []string
	for _, b := range blocks {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"first", "second", "A", "A.m", "B"}, names)
}

func TestPython_BlocksNestedFunctionIgnored(t *testing.T) {
	src := `def outer():
    def inner(y):
        if y:
            return 1
    return inner
`
	blocks, err := NewPython().Blocks(context.Background(), []byte(src))
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "outer", blocks[0].Name)
	assert.Equal(t, 1, blocks[0].Complexity)
}

func TestPython_BlocksDecorated(t *testing.T) {
	src := "@cache\ndef cached(x):\n    return x or 0\n"
	blocks, err := NewPython().Blocks(context.Background(), []byte(src))
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "cached", blocks[0].Name)
	assert.Equal(t, 2, blocks[0].Complexity)
}

func TestPython_NoBlocks(t *testing.T) {
	for _, src := range []string{"", "x = 1\ny = x + 2\n"} {
		blocks, err := NewPython().Blocks(context.Background(), []byte(src))
		require.NoError(t, err)
		assert.Empty(t, blocks)
	}
}

func TestPython_Unparseable(t *testing.T) {
	src := []byte("def broken(:\n    pass\n")
	py := NewPython()

	_, err := py.Blocks(context.Background(), src)
	assert.ErrorIs(t, err, ErrUnparseable)

	n, err := py.MissingDocstrings(context.Background(), src)
	assert.ErrorIs(t, err, ErrUnparseable)
	assert.Zero(t, n)
}

func TestPython_UnparseableFragments(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"indented methods", "    def helper(self, x):\n        if x:\n            return 1\n\n    def other(self):\n        pass\n"},
		{"indented statement", "    return value\n"},
		{"dangling else", "    return 1\nelse:\n    return 2\n"},
		{"python 2 print", "print \"x\"\n"},
		{"python 2 exec", "exec \"x = 1\"\n"},
	}
	py := NewPython()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := py.Blocks(context.Background(), []byte(tt.src))
			assert.ErrorIs(t, err, ErrUnparseable)
			_, err = py.MissingDocstrings(context.Background(), []byte(tt.src))
			assert.ErrorIs(t, err, ErrUnparseable)
		})
	}
}

func TestPython_MissingDocstrings(t *testing.T) {
	src := `def documented():
    """Does things."""
    return 1


def bare():
    return 2


class Thing:
    'Single quoted doc.'

    def method(self):
        pass


def empty_doc():
    """   """


def byte_doc():
    b"""bytes are not docs"""
`
	n, err := NewPython().MissingDocstrings(context.Background(), []byte(src))
	require.NoError(t, err)
	// bare, Thing.method, empty_doc, byte_doc
	assert.Equal(t, 4, n)
}

func TestPython_MissingDocstringsNested(t *testing.T) {
	src := `def outer():
    """Outer."""
    def inner():
        return 1
    return inner
`
	n, err := NewPython().MissingDocstrings(context.Background(), []byte(src))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPython_MissingDocstringsNone(t *testing.T) {
	n, err := NewPython().MissingDocstrings(context.Background(), []byte("x = 1\n"))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPython_PrintCall(t *testing.T) {
	re := NewPython().PrintCall()
	tests := []struct {
		line string
		want bool
	}{
		{`print("x")`, true},
		{`print ("x")`, true},
		{`    print(a, b)`, true},
		{`reprint(x)`, false},
		{`fingerprint (x)`, false},
		{`print`, false},
		{`logger.info("print(")`, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, re.MatchString(tt.line), tt.line)
	}
}

func TestRegistry_Detect(t *testing.T) {
	r := DefaultRegistry()
	tests := []struct {
		name string
		want string
	}{
		{"app.py", "python"},
		{"pkg/sub/mod.py", "python"},
		{"notes.txt", ""},
		{"Makefile", ""},
		{"UPPER.PY", ""},
		{"script.pyc", ""},
	}
	for _, tt := range tests {
		l := r.Detect(tt.name)
		if tt.want == "" {
			assert.Nil(t, l, tt.name)
			continue
		}
		require.NotNil(t, l, tt.name)
		assert.Equal(t, tt.want, l.Name())
	}

	var nilRegistry *Registry
	assert.Nil(t, nilRegistry.Detect("x.py"))
}
