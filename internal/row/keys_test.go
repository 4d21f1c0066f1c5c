package row

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userID uint32

func TestPrimaryKey(t *testing.T) {
	k := NewPrimaryKey[int64](5)
	assert.Equal(t, int64(5), k.Get())
	assert.Equal(t, "5", k.String())

	require.NoError(t, k.Parse("17"))
	assert.Equal(t, int64(17), k.Get())

	assert.Error(t, k.Parse("seventeen"))
	assert.Equal(t, int64(17), k.Get())
}

func TestPrimaryKey_NamedType(t *testing.T) {
	var k PrimaryKey[userID]
	require.NoError(t, k.Parse("4000000000"))
	assert.Equal(t, userID(4000000000), k.Get())

	assert.Error(t, k.Parse("-1"))
}

func TestAutoIncrementPrimaryKey(t *testing.T) {
	var k AutoIncrementPrimaryKey[int64]
	_, ok := k.Get()
	assert.False(t, ok)
	assert.Equal(t, "NULL", k.String())

	k.Set(42)
	v, ok := k.Get()
	assert.True(t, ok)
	assert.Equal(t, int64(42), v)
	assert.Equal(t, "42", k.String())

	assert.Equal(t, NewAutoIncrementPrimaryKey[int64](42), k)
}

func TestAutoIncrementPrimaryKey_ParseNeverFails(t *testing.T) {
	k := NewAutoIncrementPrimaryKey[int64](1)

	require.NoError(t, k.Parse("43"))
	v, ok := k.Get()
	assert.True(t, ok)
	assert.Equal(t, int64(43), v)

	require.NoError(t, k.Parse("NULL"))
	_, ok = k.Get()
	assert.False(t, ok)

	require.NoError(t, k.Parse("garbage"))
	assert.Equal(t, "NULL", k.String())
}
