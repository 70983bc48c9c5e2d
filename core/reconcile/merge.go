package reconcile

import "sort"

// MergeStats reports the warning conditions raised by a join.
type MergeStats struct {
	// Matched counts primary records that found a secondary match.
	Matched int

	// SkippedSecondary counts secondary records lacking the secondary join field.
	SkippedSecondary int

	// MissingPrimaryField is set when no primary record carries the primary join field;
	// the join then degenerates to passing the primary records through.
	MissingPrimaryField bool

	// Collisions lists secondary columns that also exist on the primary side.
	// The primary value is kept for those columns.
	Collisions []string
}

// Warned reports whether the join raised any warning condition.
func (s MergeStats) Warned() bool {
	return s.SkippedSecondary > 0 || s.MissingPrimaryField || len(s.Collisions) > 0
}

// MergeResult is the output of Merge.
type MergeResult struct {
	// Records holds exactly one output record per primary record, in primary order.
	Records []Record

	// Stats reports warning conditions.
	Stats MergeStats
}

// Merge performs a left outer join of primary with secondary.
//
// Every primary record is preserved. When a secondary record's secondaryField value equals
// the primary record's primaryField value (compared on canonical keys), the secondary
// columns other than the join field are added to a copy of the primary record.
// Unmatched primary records pass through with those columns absent.
// When several secondary records share a join value the last one wins, so the output never
// holds more records than primary.
func Merge(primary, secondary []Record, primaryField, secondaryField string) MergeResult {
	var stats MergeStats

	lookup := make(map[Key]Record, len(secondary))
	for _, rec := range secondary {
		key, err := rec.KeyOf(secondaryField)
		if err != nil {
			stats.SkippedSecondary++
			continue
		}
		lookup[key] = rec
	}

	stats.MissingPrimaryField = len(primary) > 0
	collided := make(map[string]struct{})
	out := make([]Record, 0, len(primary))

	for _, rec := range primary {
		if rec.Has(primaryField) {
			stats.MissingPrimaryField = false
		}
		key, err := rec.KeyOf(primaryField)
		if err != nil {
			out = append(out, rec)
			continue
		}
		match, ok := lookup[key]
		if !ok {
			out = append(out, rec)
			continue
		}

		merged := rec.Clone()
		match.Range(func(field string, v Value) bool {
			if field == secondaryField {
				return true
			}
			if merged.Has(field) {
				collided[field] = struct{}{}
				return true
			}
			merged.Set(field, v)
			return true
		})
		out = append(out, merged)
		stats.Matched++
	}

	for field := range collided {
		stats.Collisions = append(stats.Collisions, field)
	}
	sort.Strings(stats.Collisions)

	return MergeResult{Records: out, Stats: stats}
}

// JoinInput describes one secondary table folded into a multi-source merge.
type JoinInput struct {
	// Name identifies the table in warnings.
	Name string

	// Records are the secondary table's (deduplicated) records.
	Records []Record

	// Field is the secondary join field.
	Field string
}

// MergeAll folds secondaries into primary left to right; each output becomes the next join's
// primary input. primaryField is the join field on the primary side for every join.
// Per-join stats are returned in input order.
func MergeAll(primary []Record, primaryField string, secondaries ...JoinInput) ([]Record, []MergeStats) {
	out := primary
	stats := make([]MergeStats, 0, len(secondaries))
	for _, sec := range secondaries {
		res := Merge(out, sec.Records, primaryField, sec.Field)
		out = res.Records
		stats = append(stats, res.Stats)
	}
	return out, stats
}
