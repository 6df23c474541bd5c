// Package lookup holds the static model-number to AFUE mapping used to
// backfill equipment readings when the rating plate did not show an AFUE.
// The table is read-only once built; callers inject it into the enricher so
// tests can substitute fixtures.
package lookup

import "strings"

// Table maps normalized model numbers to known AFUE ratings.
type Table struct {
	entries map[string]float64
}

// Normalize prepares a model number for lookup: trimmed and uppercased.
func Normalize(model string) string {
	return strings.ToUpper(strings.TrimSpace(model))
}

// New builds a table from raw entries, normalizing keys. Entries with empty
// keys are dropped.
func New(entries map[string]float64) *Table {
	t := &Table{entries: make(map[string]float64, len(entries))}
	for model, afue := range entries {
		key := Normalize(model)
		if key == "" {
			continue
		}
		t.entries[key] = afue
	}
	return t
}

// defaultEntries ships with the binary; extended via config, never edited by
// the pipeline.
var defaultEntries = map[string]float64{
	"TUD1B080A9361A": 80,
	"ML180UH090E36A": 80,
	"GMVC960804CNA":  96,
	"G6RC080C-16":    92.1,
	"59TP6B080E17":   96.5,
}

// Default returns a table seeded with the shipped entries.
func Default() *Table {
	return New(defaultEntries)
}

// Merge returns a new table with extra entries layered over t. Extra entries
// win on key collision.
func (t *Table) Merge(extra map[string]float64) *Table {
	merged := make(map[string]float64, len(t.entries)+len(extra))
	for k, v := range t.entries {
		merged[k] = v
	}
	out := New(merged)
	for model, afue := range extra {
		key := Normalize(model)
		if key == "" {
			continue
		}
		out.entries[key] = afue
	}
	return out
}

// AFUE looks up the rating for a model number. The key is normalized before
// lookup, so raw plate text with stray whitespace or lowercase still hits.
func (t *Table) AFUE(model string) (float64, bool) {
	v, ok := t.entries[Normalize(model)]
	return v, ok
}

// Len reports how many models the table knows.
func (t *Table) Len() int { return len(t.entries) }
