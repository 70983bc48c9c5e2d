package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupe_LastOccurrenceWins(t *testing.T) {
	records := []Record{
		RecordOf("ip", "a", "v", 1),
		RecordOf("ip", "b", "v", 2),
		RecordOf("ip", "a", "v", 3),
		RecordOf("v", 4),
		RecordOf("ip", nil, "v", 5),
		RecordOf("ip", "a", "v", 6),
	}

	res := Dedupe(records, "ip")

	require.Len(t, res.Records, 2)
	assert.Equal(t, 2, res.MissingKey)
	assert.Equal(t, 2, res.Duplicates)

	first, _ := res.Records[0].Get("v")
	second, _ := res.Records[1].Get("v")
	assert.Equal(t, int64(6), first.Interface())
	assert.Equal(t, int64(2), second.Interface())
}

func TestDedupe_UniqueKeys(t *testing.T) {
	records := []Record{
		RecordOf("id", 1), RecordOf("id", "1"), RecordOf("id", 1.0), RecordOf("id", 2),
	}

	res := Dedupe(records, "id")

	seen := map[Key]bool{}
	for _, r := range res.Records {
		k, err := r.KeyOf("id")
		require.NoError(t, err)
		assert.False(t, seen[k], "duplicate key %s", k)
		seen[k] = true
	}
	assert.Len(t, res.Records, 2)
}

func TestDedupe_CompositeKey(t *testing.T) {
	records := []Record{
		RecordOf("tower", "t1", "slot", 1, "v", "x"),
		RecordOf("tower", "t1", "slot", 2, "v", "y"),
		RecordOf("tower", "t1", "slot", 1, "v", "z"),
	}

	res := Dedupe(records, "tower", "slot")

	require.Len(t, res.Records, 2)
	v, _ := res.Records[0].Get("v")
	assert.Equal(t, "z", v.String())
}

func TestDedupe_Empty(t *testing.T) {
	res := Dedupe(nil, "id")
	assert.Empty(t, res.Records)
	assert.Zero(t, res.MissingKey)
}
