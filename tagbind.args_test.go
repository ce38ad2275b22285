package tagbind

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestArgConstructors verifies per-kind defaults set by the constructors.
func TestArgConstructors(t *testing.T) {
	t.Run("generic expression arg is required by default", func(t *testing.T) {
		a := NewArg("user")
		assert.Equal(t, "user", a.Name())
		assert.Equal(t, KindExpression, a.Kind())
		assert.True(t, a.IsRequired())
		assert.False(t, a.IsPositional())
		assert.False(t, a.IsNullable())

		_, hasDefault := a.Default()
		assert.False(t, hasDefault)
	})

	t.Run("basic arg keeps raw tokens", func(t *testing.T) {
		a := BasicArg("varname")
		assert.Equal(t, KindBasic, a.Kind())
		assert.True(t, a.IsRequired())
	})

	t.Run("boolean flag is optional by default", func(t *testing.T) {
		a := BooleanArg("reverse")
		assert.Equal(t, KindBoolean, a.Kind())
		assert.False(t, a.IsRequired())
	})

	t.Run("keywords arg is optional by default", func(t *testing.T) {
		a := KeywordsArg("with")
		assert.Equal(t, KindKeywords, a.Kind())
		assert.False(t, a.IsRequired())
	})

	t.Run("constant arg forces positional", func(t *testing.T) {
		a := ConstantArg("to")
		assert.Equal(t, KindConstant, a.Kind())
		assert.True(t, a.IsPositional())
		assert.True(t, a.IsRequired())
	})

	t.Run("typed value kinds", func(t *testing.T) {
		assert.Equal(t, KindInteger, IntegerArg("limit").Kind())
		assert.Equal(t, KindString, StringArg("title").Kind())
		assert.Equal(t, KindDate, DateArg("start").Kind())
		assert.Equal(t, KindTime, TimeArg("at").Kind())
		assert.Equal(t, KindDateTime, DateTimeArg("when").Kind())
	})

	t.Run("instance arg records the expected type", func(t *testing.T) {
		type account struct{ ID string }
		expected := reflect.TypeOf(&account{})
		a := InstanceArg("account", expected)
		assert.Equal(t, KindInstance, a.Kind())
		assert.Equal(t, expected, a.ExpectedType())
	})
}

// TestArgOptions verifies the functional options.
func TestArgOptions(t *testing.T) {
	t.Run("positional", func(t *testing.T) {
		a := NewArg("start", Positional())
		assert.True(t, a.IsPositional())
	})

	t.Run("optional", func(t *testing.T) {
		a := IntegerArg("offset", Optional())
		assert.False(t, a.IsRequired())
	})

	t.Run("required overrides a kind default", func(t *testing.T) {
		a := BooleanArg("strict", Required())
		assert.True(t, a.IsRequired())
	})

	t.Run("default implies optional", func(t *testing.T) {
		a := IntegerArg("limit", WithDefault(100))
		assert.False(t, a.IsRequired())

		def, ok := a.Default()
		require.True(t, ok)
		assert.Equal(t, 100, def)
	})

	t.Run("nullable", func(t *testing.T) {
		a := IntegerArg("offset", Nullable())
		assert.True(t, a.IsNullable())
	})

	t.Run("keyword syntax", func(t *testing.T) {
		a := IntegerArg("limit", Keyword())
		assert.True(t, a.HasKeywordSyntax())
	})

	t.Run("clean hook is recorded", func(t *testing.T) {
		a := StringArg("name", WithClean(func(v any) (any, error) { return v, nil }))
		assert.NotNil(t, a.clean)
	})
}

// TestArgNameNormalization verifies trailing-underscore stripping: the
// declared "as_" matches and stores as "as".
func TestArgNameNormalization(t *testing.T) {
	t.Run("single trailing underscore", func(t *testing.T) {
		a := BasicArg("as_")
		assert.Equal(t, "as", a.Name())
		assert.Equal(t, "as", a.Key())
	})

	t.Run("run of trailing underscores", func(t *testing.T) {
		a := NewArg("for__")
		assert.Equal(t, "for", a.Name())
		assert.Equal(t, "for", a.Key())
	})

	t.Run("inner underscores survive", func(t *testing.T) {
		a := NewArg("sort_by")
		assert.Equal(t, "sort_by", a.Name())
	})
}
