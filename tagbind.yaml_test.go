package tagbind

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rangeYAML = `
tag: range
args:
  - name: start
    kind: integer
    positional: true
  - name: to
    kind: constant
  - name: finish
    kind: integer
    positional: true
  - name: reverse
    kind: boolean
`

func TestDefinitionFromYAML(t *testing.T) {
	def, err := DefinitionFromYAML([]byte(rangeYAML))
	require.NoError(t, err)
	require.NotNil(t, def)

	assert.Equal(t, "range", def.Name())
	assert.Equal(t, 4, def.Len())

	positional := def.Positional()
	require.Len(t, positional, 3)
	assert.Equal(t, "start", positional[0].Name())
	assert.Equal(t, KindInteger, positional[0].Kind())
	assert.Equal(t, "to", positional[1].Name())
	assert.Equal(t, KindConstant, positional[1].Kind())
	assert.Equal(t, "finish", positional[2].Name())

	reverse, ok := def.Arg("reverse")
	require.True(t, ok)
	assert.Equal(t, KindBoolean, reverse.Kind())
	assert.False(t, reverse.IsRequired())
}

func TestDefinitionFromYAML_Declarations(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		def, err := DefinitionFromYAML([]byte(`
tag: paginate
args:
  - name: limit
    kind: integer
    default: 25
  - name: order
    kind: string
    default: name
`))
		require.NoError(t, err)

		limit, ok := def.Arg("limit")
		require.True(t, ok)
		assert.False(t, limit.IsRequired())
		v, has := limit.Default()
		assert.True(t, has)
		assert.Equal(t, 25, v)

		order, ok := def.Arg("order")
		require.True(t, ok)
		v, has = order.Default()
		assert.True(t, has)
		assert.Equal(t, "name", v)
	})

	t.Run("null default requires nullable", func(t *testing.T) {
		_, err := DefinitionFromYAML([]byte(`
tag: show
args:
  - name: cursor
    default: null
`))
		require.Error(t, err)
		assert.True(t, IsDefinitionError(err))
		assert.Contains(t, err.Error(), ErrMsgNilDefault)
	})

	t.Run("null default with nullable", func(t *testing.T) {
		def, err := DefinitionFromYAML([]byte(`
tag: show
args:
  - name: cursor
    default: null
    nullable: true
`))
		require.NoError(t, err)

		cursor, ok := def.Arg("cursor")
		require.True(t, ok)
		assert.True(t, cursor.IsNullable())
		v, has := cursor.Default()
		assert.True(t, has)
		assert.Nil(t, v)
	})

	t.Run("required overrides kind default", func(t *testing.T) {
		def, err := DefinitionFromYAML([]byte(`
tag: list
args:
  - name: reverse
    kind: boolean
    required: true
  - name: limit
    kind: integer
    required: false
`))
		require.NoError(t, err)

		reverse, _ := def.Arg("reverse")
		assert.True(t, reverse.IsRequired())
		limit, _ := def.Arg("limit")
		assert.False(t, limit.IsRequired())
	})

	t.Run("required with default is rejected", func(t *testing.T) {
		_, err := DefinitionFromYAML([]byte(`
tag: paginate
args:
  - name: limit
    kind: integer
    required: true
    default: 25
`))
		require.Error(t, err)
		assert.True(t, IsDefinitionError(err))
		assert.Contains(t, err.Error(), ErrMsgRequiredAndDefault)
	})

	t.Run("keyword syntax", func(t *testing.T) {
		def, err := DefinitionFromYAML([]byte(`
tag: embed
args:
  - name: with
    keyword: true
`))
		require.NoError(t, err)

		with, _ := def.Arg("with")
		assert.True(t, with.HasKeywordSyntax())
	})

	t.Run("name normalization", func(t *testing.T) {
		def, err := DefinitionFromYAML([]byte(`
tag: alias
args:
  - name: as_
    kind: basic
`))
		require.NoError(t, err)

		_, ok := def.Arg("as")
		assert.True(t, ok)
	})
}

func TestDefinitionFromYAML_Invalid(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		_, err := DefinitionFromYAML([]byte("  \n"))
		require.Error(t, err)
		assert.True(t, IsDefinitionError(err))
		assert.Contains(t, err.Error(), ErrMsgLoaderEmptyDocument)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := DefinitionFromYAML([]byte("tag: [unclosed"))
		require.Error(t, err)
		assert.True(t, IsDefinitionError(err))
		assert.Contains(t, err.Error(), ErrMsgLoaderInvalidYAML)

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))
		source, ok := customErr.GetMetadata(MetaKeySource)
		assert.True(t, ok)
		assert.Equal(t, SourceYAML, source)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := DefinitionFromYAML([]byte(`
tag: range
args:
  - name: start
    kind: interger
`))
		require.Error(t, err)
		assert.True(t, IsDefinitionError(err))
		assert.Contains(t, err.Error(), ErrMsgLoaderUnknownKind)

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))
		kind, ok := customErr.GetMetadata(MetaKeyKind)
		assert.True(t, ok)
		assert.Equal(t, "interger", kind)
	})

	t.Run("instance kind", func(t *testing.T) {
		_, err := DefinitionFromYAML([]byte(`
tag: pin
args:
  - name: item
    kind: instance
`))
		require.Error(t, err)
		assert.True(t, IsDefinitionError(err))
		assert.Contains(t, err.Error(), ErrMsgLoaderInstanceKind)
	})

	t.Run("definition invariants apply", func(t *testing.T) {
		_, err := DefinitionFromYAML([]byte(`
tag: dup
args:
  - name: limit
    kind: integer
  - name: limit
    kind: integer
`))
		require.Error(t, err)
		assert.True(t, IsDefinitionError(err))
		assert.Contains(t, err.Error(), ErrMsgDuplicateArgName)
	})

	t.Run("positional boolean", func(t *testing.T) {
		_, err := DefinitionFromYAML([]byte(`
tag: list
args:
  - name: reverse
    kind: boolean
    positional: true
`))
		require.Error(t, err)
		assert.True(t, IsDefinitionError(err))
		assert.Contains(t, err.Error(), ErrMsgPositionalKind)
	})
}

func TestDefinitionFromYAMLFile(t *testing.T) {
	t.Run("loads from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "range.yaml")
		require.NoError(t, os.WriteFile(path, []byte(rangeYAML), 0o644))

		def, err := DefinitionFromYAMLFile(path)
		require.NoError(t, err)
		assert.Equal(t, "range", def.Name())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := DefinitionFromYAMLFile(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.True(t, IsDefinitionError(err))
		assert.Contains(t, err.Error(), ErrMsgLoaderReadFailed)
	})
}

const libraryYAML = `
tags:
  - tag: paginate
    args:
      - name: limit
        kind: integer
        default: 25
  - tag: shout
    args:
      - name: word
        positional: true
`

func TestDefinitionsFromYAML(t *testing.T) {
	t.Run("loads every tag", func(t *testing.T) {
		defs, err := DefinitionsFromYAML([]byte(libraryYAML))
		require.NoError(t, err)
		require.Len(t, defs, 2)
		assert.Equal(t, "paginate", defs[0].Name())
		assert.Equal(t, "shout", defs[1].Name())
	})

	t.Run("empty tags list", func(t *testing.T) {
		_, err := DefinitionsFromYAML([]byte("tags: []"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgLoaderEmptyDocument)
	})

	t.Run("bad tag fails the document", func(t *testing.T) {
		_, err := DefinitionsFromYAML([]byte(`
tags:
  - tag: good
  - tag: bad
    args:
      - name: start
        kind: interger
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgLoaderUnknownKind)
	})
}

func TestLibraryFromYAML(t *testing.T) {
	outputs := map[string]OutputFunc{
		"paginate": limitOutput,
		"shout": func(data ResolvedData, _ *Context) (string, error) {
			return fmt.Sprintf("%v!", data["word"]), nil
		},
	}

	t.Run("registers and renders", func(t *testing.T) {
		lib, err := LibraryFromYAML([]byte(libraryYAML), outputs)
		require.NoError(t, err)
		assert.Equal(t, []string{"paginate", "shout"}, lib.List())

		out, err := lib.Render("paginate", nil)
		require.NoError(t, err)
		assert.Equal(t, "limit=25", out)

		out, err = lib.Render(`shout "hello"`, nil)
		require.NoError(t, err)
		assert.Equal(t, "hello!", out)
	})

	t.Run("missing output function", func(t *testing.T) {
		_, err := LibraryFromYAML([]byte(libraryYAML), map[string]OutputFunc{
			"paginate": limitOutput,
		})
		require.Error(t, err)
		assert.True(t, IsDefinitionError(err))
		assert.Contains(t, err.Error(), ErrMsgLoaderNoOutput)
	})
}
