package tagbind

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rangeHCL = `
tag "paginate" {
  arg "limit" {
    kind    = "integer"
    default = 100
  }
}

tag "range" {
  arg "start" {
    kind       = "integer"
    positional = true
  }
  arg "to" {
    kind = "constant"
  }
  arg "finish" {
    kind       = "integer"
    positional = true
  }
  arg "reverse" {
    kind = "boolean"
  }
}
`

func TestDefinitionsFromHCL(t *testing.T) {
	defs, err := DefinitionsFromHCL("tags.hcl", []byte(rangeHCL))
	require.NoError(t, err)
	require.Len(t, defs, 2)

	paginate := defs[0]
	assert.Equal(t, "paginate", paginate.Name())
	limit, ok := paginate.Arg("limit")
	require.True(t, ok)
	assert.Equal(t, KindInteger, limit.Kind())
	v, has := limit.Default()
	assert.True(t, has)
	assert.Equal(t, 100, v)

	rng := defs[1]
	assert.Equal(t, "range", rng.Name())
	assert.Equal(t, 4, rng.Len())

	positional := rng.Positional()
	require.Len(t, positional, 3)
	assert.Equal(t, "start", positional[0].Name())
	assert.Equal(t, "to", positional[1].Name())
	assert.Equal(t, KindConstant, positional[1].Kind())
	assert.Equal(t, "finish", positional[2].Name())
}

func TestDefinitionsFromHCL_DefaultConversion(t *testing.T) {
	defs, err := DefinitionsFromHCL("defaults.hcl", []byte(`
tag "settings" {
  arg "limit" {
    kind    = "integer"
    default = 25
  }
  arg "ratio" {
    default = 0.5
  }
  arg "title" {
    kind    = "string"
    default = "untitled"
  }
  arg "strict" {
    kind    = "boolean"
    default = false
  }
  arg "labels" {
    default = ["a", "b"]
  }
  arg "options" {
    kind    = "keywords"
    default = { theme = "dark", depth = 3 }
  }
}
`))
	require.NoError(t, err)
	require.Len(t, defs, 1)
	def := defs[0]

	expect := map[string]any{
		"limit":   25,
		"ratio":   0.5,
		"title":   "untitled",
		"strict":  false,
		"labels":  []any{"a", "b"},
		"options": map[string]any{"theme": "dark", "depth": 3},
	}
	for name, want := range expect {
		a, ok := def.Arg(name)
		require.True(t, ok, name)
		v, has := a.Default()
		assert.True(t, has, name)
		assert.Equal(t, want, v, name)
	}
}

func TestDefinitionsFromHCL_NullDefault(t *testing.T) {
	t.Run("requires nullable", func(t *testing.T) {
		_, err := DefinitionsFromHCL("null.hcl", []byte(`
tag "show" {
  arg "cursor" {
    default = null
  }
}
`))
		require.Error(t, err)
		assert.True(t, IsDefinitionError(err))
		assert.Contains(t, err.Error(), ErrMsgNilDefault)
	})

	t.Run("with nullable", func(t *testing.T) {
		defs, err := DefinitionsFromHCL("null.hcl", []byte(`
tag "show" {
  arg "cursor" {
    default  = null
    nullable = true
  }
}
`))
		require.NoError(t, err)

		cursor, ok := defs[0].Arg("cursor")
		require.True(t, ok)
		v, has := cursor.Default()
		assert.True(t, has)
		assert.Nil(t, v)
	})
}

func TestDefinitionsFromHCL_Invalid(t *testing.T) {
	t.Run("empty source", func(t *testing.T) {
		_, err := DefinitionsFromHCL("empty.hcl", []byte("  \n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgLoaderEmptyDocument)
	})

	t.Run("no tag blocks", func(t *testing.T) {
		_, err := DefinitionsFromHCL("comment.hcl", []byte("# nothing declared\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgLoaderEmptyDocument)
	})

	t.Run("invalid syntax", func(t *testing.T) {
		_, err := DefinitionsFromHCL("bad.hcl", []byte(`tag "x" {{{`))
		require.Error(t, err)
		assert.True(t, IsDefinitionError(err))
		assert.Contains(t, err.Error(), ErrMsgLoaderInvalidHCL)
	})

	t.Run("unexpected block", func(t *testing.T) {
		_, err := DefinitionsFromHCL("bad.hcl", []byte(`widget "x" {}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgLoaderInvalidHCL)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := DefinitionsFromHCL("bad.hcl", []byte(`
tag "range" {
  arg "start" {
    kind = "interger"
  }
}
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgLoaderUnknownKind)
	})

	t.Run("instance kind", func(t *testing.T) {
		_, err := DefinitionsFromHCL("bad.hcl", []byte(`
tag "pin" {
  arg "item" {
    kind = "instance"
  }
}
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgLoaderInstanceKind)
	})
}

func TestDefinitionsFromHCLFile(t *testing.T) {
	t.Run("loads from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tags.hcl")
		require.NoError(t, os.WriteFile(path, []byte(rangeHCL), 0o644))

		defs, err := DefinitionsFromHCLFile(path)
		require.NoError(t, err)
		assert.Len(t, defs, 2)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := DefinitionsFromHCLFile(filepath.Join(t.TempDir(), "absent.hcl"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgLoaderReadFailed)
	})
}

func TestLibraryFromHCL(t *testing.T) {
	outputs := map[string]OutputFunc{
		"paginate": limitOutput,
		"range": func(data ResolvedData, _ *Context) (string, error) {
			return "", nil
		},
	}

	t.Run("registers and renders", func(t *testing.T) {
		lib, err := LibraryFromHCL("tags.hcl", []byte(rangeHCL), outputs)
		require.NoError(t, err)
		assert.Equal(t, []string{"paginate", "range"}, lib.List())

		out, err := lib.Render("paginate", nil)
		require.NoError(t, err)
		assert.Equal(t, "limit=100", out)
	})

	t.Run("missing output function", func(t *testing.T) {
		_, err := LibraryFromHCL("tags.hcl", []byte(rangeHCL), map[string]OutputFunc{
			"paginate": limitOutput,
		})
		require.Error(t, err)
		assert.True(t, IsDefinitionError(err))
		assert.Contains(t, err.Error(), ErrMsgLoaderNoOutput)
	})
}
