package service

import (
	"testing"
	"time"

	"loadscout"
	"loadscout/internal/lookup"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t *testing.T, year int) clockwork.Clock {
	t.Helper()
	return clockwork.NewFakeClockAt(time.Date(year, 6, 15, 12, 0, 0, 0, time.UTC))
}

func testEnricher(t *testing.T) *EquipmentEnrichmentService {
	t.Helper()
	table := lookup.New(map[string]float64{
		"TUD1B080A9361A": 80,
		"GMVC960804CNA":  96,
	})
	return NewEquipmentEnrichmentService(table, fixedClock(t, 2026))
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestEnrich_AbsentEquipment(t *testing.T) {
	svc := testEnricher(t)

	enriched, warranty, flags := svc.Enrich(nil)

	assert.Nil(t, enriched)
	assert.Nil(t, flags, "absent equipment must yield absent flags, not an empty record")
	assert.Equal(t, loadscout.WarrantyStatus{Status: loadscout.WarrantyUnknown}, warranty)
}

func TestBackfill_HitSetsAFUEAndProvenance(t *testing.T) {
	svc := testEnricher(t)
	in := &loadscout.EquipmentAttributes{
		ModelNumber:    "  tud1b080a9361a ",
		AFUEProvenance: loadscout.ProvenanceUnknown,
		VentMaterial:   loadscout.VentMetalFlue,
	}

	enriched, _, _ := svc.Enrich(in)

	require.NotNil(t, enriched.AFUE)
	assert.Equal(t, 80.0, *enriched.AFUE)
	assert.Equal(t, loadscout.ProvenanceModelLookup, enriched.AFUEProvenance)
	// input untouched
	assert.Nil(t, in.AFUE)
	assert.Equal(t, loadscout.ProvenanceUnknown, in.AFUEProvenance)
}

func TestBackfill_MissLeavesRecordUnchanged(t *testing.T) {
	svc := testEnricher(t)
	in := &loadscout.EquipmentAttributes{
		ModelNumber:    "NOT-IN-TABLE",
		AFUEProvenance: loadscout.ProvenanceUnknown,
	}

	enriched, _, _ := svc.Enrich(in)

	assert.Nil(t, enriched.AFUE)
	assert.Equal(t, loadscout.ProvenanceUnknown, enriched.AFUEProvenance)
}

func TestBackfill_NeverOverwritesMeasuredAFUE(t *testing.T) {
	svc := testEnricher(t)
	in := &loadscout.EquipmentAttributes{
		ModelNumber:    "GMVC960804CNA", // table says 96
		AFUE:           floatPtr(92.5),
		AFUEProvenance: loadscout.ProvenanceLabel,
	}

	enriched, _, _ := svc.Enrich(in)

	assert.Equal(t, 92.5, *enriched.AFUE)
	assert.Equal(t, loadscout.ProvenanceLabel, enriched.AFUEProvenance)
}

func TestBackfill_Idempotent(t *testing.T) {
	svc := testEnricher(t)
	in := &loadscout.EquipmentAttributes{ModelNumber: "GMVC960804CNA"}

	once, _, _ := svc.Enrich(in)
	twice, _, _ := svc.Enrich(once)

	assert.Equal(t, once, twice)
}

func TestBackfill_ProvenanceNeverDowngrades(t *testing.T) {
	svc := testEnricher(t)
	// AFUE null but provenance "inferred": lookup fills the value yet must
	// not replace the stronger provenance.
	in := &loadscout.EquipmentAttributes{
		ModelNumber:    "GMVC960804CNA",
		AFUEProvenance: loadscout.ProvenanceInferred,
	}

	enriched, _, _ := svc.Enrich(in)

	require.NotNil(t, enriched.AFUE)
	assert.Equal(t, 96.0, *enriched.AFUE)
	assert.Equal(t, loadscout.ProvenanceInferred, enriched.AFUEProvenance)
}

func TestWarranty_Boundaries(t *testing.T) {
	svc := testEnricher(t) // clock frozen at 2026

	cases := []struct {
		name string
		year *int
		want loadscout.WarrantyState
		age  *int
	}{
		{"exactly ten years old", intPtr(2016), loadscout.WarrantyLikelyInParts, intPtr(10)},
		{"eleven years old", intPtr(2015), loadscout.WarrantyLikelyOut, intPtr(11)},
		{"brand new", intPtr(2026), loadscout.WarrantyLikelyInParts, intPtr(0)},
		{"year unknown", nil, loadscout.WarrantyUnknown, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, warranty, _ := svc.Enrich(&loadscout.EquipmentAttributes{ManufactureYear: tc.year})

			assert.Equal(t, tc.want, warranty.Status)
			assert.Equal(t, tc.year, warranty.ManufactureYear)
			assert.Equal(t, tc.age, warranty.ApproximateAgeYears)
		})
	}
}

func TestFlags_MismatchHighAFUEOnMetalFlue(t *testing.T) {
	svc := testEnricher(t)

	_, _, flags := svc.Enrich(&loadscout.EquipmentAttributes{
		AFUE:           floatPtr(96),
		AFUEProvenance: loadscout.ProvenanceLabel,
		VentMaterial:   loadscout.VentMetalFlue,
	})

	require.NotNil(t, flags)
	assert.True(t, flags.AFUEVentMismatch)
	require.Len(t, flags.Notes, 1)
	assert.Contains(t, flags.Notes[0], "metal-flue")
}

func TestFlags_PVCWithoutAFUESuggestsCondensing(t *testing.T) {
	svc := testEnricher(t)

	_, _, flags := svc.Enrich(&loadscout.EquipmentAttributes{
		ModelNumber:  "NOT-IN-TABLE",
		VentMaterial: loadscout.VentPVC,
	})

	require.NotNil(t, flags)
	assert.False(t, flags.AFUEVentMismatch)
	require.Len(t, flags.Notes, 1)
	assert.Contains(t, flags.Notes[0], "PVC")
}

func TestFlags_MutuallyExclusive(t *testing.T) {
	svc := testEnricher(t)

	// Sweep AFUE values and vent materials: at most one note ever appears.
	afues := []*float64{nil, floatPtr(80), floatPtr(90), floatPtr(96)}
	vents := []loadscout.VentMaterial{
		loadscout.VentMetalFlue, loadscout.VentPVC, loadscout.VentMixed, loadscout.VentUnknown,
	}
	for _, afue := range afues {
		for _, vent := range vents {
			_, _, flags := svc.Enrich(&loadscout.EquipmentAttributes{
				ModelNumber:  "NOT-IN-TABLE",
				AFUE:         afue,
				VentMaterial: vent,
			})
			require.NotNil(t, flags)
			assert.LessOrEqual(t, len(flags.Notes), 1)
		}
	}
}

func TestFlags_CleanRecordYieldsEmptyFlags(t *testing.T) {
	svc := testEnricher(t)

	_, _, flags := svc.Enrich(&loadscout.EquipmentAttributes{
		AFUE:           floatPtr(96),
		AFUEProvenance: loadscout.ProvenanceLabel,
		VentMaterial:   loadscout.VentPVC,
	})

	require.NotNil(t, flags)
	assert.False(t, flags.AFUEVentMismatch)
	assert.Empty(t, flags.Notes)
}

func TestFlags_BackfilledAFUEFeedsFlagCheck(t *testing.T) {
	svc := testEnricher(t)

	// The table fills AFUE 96; combined with a metal flue that must trip
	// the mismatch even though the plate itself showed no AFUE.
	_, _, flags := svc.Enrich(&loadscout.EquipmentAttributes{
		ModelNumber:  "GMVC960804CNA",
		VentMaterial: loadscout.VentMetalFlue,
	})

	require.NotNil(t, flags)
	assert.True(t, flags.AFUEVentMismatch)
}
