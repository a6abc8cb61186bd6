package keyopts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestValue(t *testing.T) {
	r := New([]KeyedDefinition[testKey]{
		Define(keyA, 'a', "", 0, Unbounded, ""),
		Define(keyB, 'b', "", 0, 0, ""),
	})

	cases := []struct {
		args   []string
		key    testKey
		latest string
	}{
		{[]string{"exe"}, keyA, ""},
		{[]string{"exe", "-a"}, keyA, ""},
		{[]string{"exe", "-a", "1", "2"}, keyA, "2"},
		{[]string{"exe", "-a", "1", "-a", "2", "3"}, keyA, "3"},
		{[]string{"exe", "-a", "1", "-a"}, keyA, ""},
		{[]string{"exe", "-b"}, keyB, ""},
	}

	for _, c := range cases {
		po, err := r.Parse(c.args)
		require.NoError(t, err, "%v", c.args)
		assert.Equal(t, c.latest, po.LatestValue(c.key), "%v", c.args)
	}
}

func TestAbsentKey(t *testing.T) {
	r := New([]KeyedDefinition[testKey]{
		Define(keyA, 'a', "", 0, 0, ""),
	})

	po, err := r.Parse([]string{"exe"})
	require.NoError(t, err)
	assert.False(t, po.IsPresent(keyA))
	assert.False(t, po.Defaulted(keyA))
	assert.Equal(t, 0, po.Count(keyA))
	assert.Nil(t, po.Occurrences(keyA))
	assert.Nil(t, po.Values(keyA))

	// keys never registered behave like absent ones
	assert.False(t, po.IsPresent(keyD))
	assert.Equal(t, "", po.LatestValue(keyD))
}

func TestResultAccessorsReturnCopies(t *testing.T) {
	r := New([]KeyedDefinition[testKey]{
		Define(keyA, 'a', "", 1, 1, ""),
	})

	po, err := r.Parse([]string{"exe", "-a", "x", "y"})
	require.NoError(t, err)

	po.Occurrences(keyA)[0][0] = "changed"
	po.Values(keyA)[0] = "changed"
	po.TrailingValues()[0] = "changed"
	po.Positions()[0].ArgIndex = 99
	po.Keys()[0] = keyD

	assert.Equal(t, []Occurrence{{"x"}}, po.Occurrences(keyA))
	assert.Equal(t, []string{"y"}, po.TrailingValues())
	assert.Equal(t, 1, po.Positions()[0].ArgIndex)
	assert.Equal(t, []testKey{keyA}, po.Keys())
}

func TestKeysOrder(t *testing.T) {
	r := New([]KeyedDefinition[testKey]{
		Define(keyA, 'a', "", 0, 0, ""),
		Define(keyB, 'b', "", 0, 1, "", "x"),
		Define(keyC, 'c', "", 0, 0, ""),
		Define(keyD, 'd', "", 0, 1, "", "y"),
	})

	po, err := r.Parse([]string{"exe", "-c", "-d", "-a", "-c"})
	require.NoError(t, err)
	assert.Equal(t, []testKey{keyC, keyD, keyA, keyB}, po.Keys())
	assert.True(t, po.Defaulted(keyB))
	assert.False(t, po.Defaulted(keyD))
}
