package mapping

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	for _, name := range []string{"bool", "string", "int", "uint64", "float64", "[]byte", "bytes", "time.Time", "time.Duration", "any"} {
		_, ok := c.Type(name)
		assert.True(t, ok, name)
	}

	bytesT, _ := c.Type("bytes")
	assert.Equal(t, reflect.TypeFor[[]byte](), bytesT)
	assert.Equal(t, "[]byte", c.TypeName(bytesT))

	assert.Equal(t,
		[]string{"len", "lower", "seconds", "sprint", "toint64", "trim", "unixmilli", "upper"},
		c.TransformNames())
}

func TestCatalog_Register(t *testing.T) {
	type custom struct{ N int }

	c := NewCatalog()
	require.NoError(t, RegisterType[custom](c, "custom"))
	require.ErrorIs(t, RegisterType[int](c, "custom"), ErrDuplicateName)

	require.NoError(t, RegisterTransform(c, "n", func(v custom) int { return v.N }))
	require.ErrorIs(t, RegisterTransform(c, "n", func(v custom) int { return 0 }), ErrDuplicateName)

	tr, ok := c.Transform("n")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[custom](), tr.In)
	assert.Equal(t, reflect.TypeFor[int](), tr.Out)

	dm := tr.Map("value")
	require.NoError(t, dm.Validate())
	assert.Equal(t, "n", dm.Transform)
	assert.Equal(t, 9, dm.BoxedReader(0)([]any{custom{N: 9}}))

	assert.Equal(t, "custom", c.TypeName(reflect.TypeFor[custom]()))
	assert.Equal(t, "int", c.TypeName(reflect.TypeFor[int]()))
	assert.Equal(t, "", c.TypeName(nil))
}

func TestCatalog_Map(t *testing.T) {
	c := DefaultCatalog()

	t.Run("pass through", func(t *testing.T) {
		dm, err := c.Map("elapsed", "time.Duration", "")
		require.NoError(t, err)
		assert.Equal(t, reflect.TypeFor[time.Duration](), dm.DestinationType)
	})

	t.Run("transform", func(t *testing.T) {
		dm, err := c.Map("path", "string", "len")
		require.NoError(t, err)
		assert.Equal(t, reflect.TypeFor[int](), dm.DestinationType)
		assert.Equal(t, 5, dm.BoxedReader(0)([]any{"hello"}))
	})

	t.Run("transform infers type", func(t *testing.T) {
		dm, err := c.Map("at", "", "unixmilli")
		require.NoError(t, err)
		assert.Equal(t, int64(1000), dm.BoxedReader(0)([]any{time.UnixMilli(1000)}))
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := c.Map("x", "strin", "")
		require.ErrorIs(t, err, ErrUnknownType)
	})

	t.Run("unknown transform", func(t *testing.T) {
		_, err := c.Map("x", "string", "length")
		require.ErrorIs(t, err, ErrUnknownTransform)
	})

	t.Run("input mismatch", func(t *testing.T) {
		_, err := c.Map("x", "int", "upper")
		require.ErrorIs(t, err, ErrTransformInput)
	})
}
