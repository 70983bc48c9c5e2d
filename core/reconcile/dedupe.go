package reconcile

// DedupeResult is the output of Dedupe.
type DedupeResult struct {
	// Records holds one record per logical key, in first-seen key order.
	Records []Record

	// MissingKey counts records dropped because a key field was absent or NULL.
	MissingKey int

	// Duplicates counts records superseded by a later record with the same key.
	Duplicates int
}

// Dedupe collapses records to one record per logical key, keeping the last record seen for a key.
// Records lacking any of the key fields are dropped and counted, not treated as errors;
// heterogeneous source rows are expected to miss keys now and then.
func Dedupe(records []Record, keyFields ...string) DedupeResult {
	var res DedupeResult
	index := make(map[Key]int, len(records))
	out := make([]Record, 0, len(records))

	for _, rec := range records {
		key, err := rec.KeyOf(keyFields...)
		if err != nil {
			res.MissingKey++
			continue
		}
		if pos, seen := index[key]; seen {
			out[pos] = rec
			res.Duplicates++
			continue
		}
		index[key] = len(out)
		out = append(out, rec)
	}

	res.Records = out
	return res
}
