package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_OrderAndOverwrite(t *testing.T) {
	rec := RecordOf("b", 1, "a", "x")
	rec.Set("b", IntValue(2))
	rec.Set("c", Null)

	assert.Equal(t, []string{"b", "a", "c"}, rec.Fields())
	v, ok := rec.Get("b")
	require.True(t, ok)
	assert.Equal(t, int64(2), v.Interface())
	assert.True(t, rec.Has("c"), "NULL fields are present")
	assert.False(t, rec.Has("d"))
	assert.Equal(t, "{b: 2, a: x, c: null}", rec.String())
}

func TestRecord_CloneIsIndependent(t *testing.T) {
	rec := RecordOf("a", 1)
	clone := rec.Clone()
	clone.Set("a", IntValue(2))

	v, _ := rec.Get("a")
	assert.Equal(t, int64(1), v.Interface())
}

func TestRecordFromRow_SkipsMissingColumns(t *testing.T) {
	rec := RecordFromRow([]string{"id", "name", "gone"}, map[string]any{"id": int64(1), "name": []byte("n")})
	assert.Equal(t, []string{"id", "name"}, rec.Fields())
	assert.Equal(t, map[string]any{"id": int64(1), "name": "n"}, rec.Map())
}

func TestRecord_KeyOf(t *testing.T) {
	rec := RecordOf("ip", "1.1.1.1", "slot", 2, "empty", nil)

	k, err := rec.KeyOf("ip", "slot")
	require.NoError(t, err)
	assert.Equal(t, []string{"1.1.1.1", "2"}, k.Parts())
	assert.Equal(t, "1.1.1.1,2", k.String())

	_, err = rec.KeyOf("missing")
	assert.ErrorIs(t, err, ErrMissingKey)

	_, err = rec.KeyOf("empty")
	assert.ErrorIs(t, err, ErrMissingKey)

	_, err = rec.KeyOf()
	assert.ErrorIs(t, err, ErrMissingKey)
}
