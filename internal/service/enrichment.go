package service

import (
	"loadscout"
	"loadscout/internal/lookup"

	"github.com/jonboulle/clockwork"
)

// partsWarrantyYears: units at most this old are likely still in parts
// warranty. No other thresholds apply.
const partsWarrantyYears = 10

// condensingAFUEThreshold separates 90%+ condensing equipment, which vents
// through PVC, from 80%-class units on a metal flue.
const condensingAFUEThreshold = 90

const (
	noteAFUEVentMismatch = "an AFUE of 90%+ with metal-flue-only venting is inconsistent; this combination usually indicates an 80%-class unit, so confirm the rating plate manually"
	notePVCSuggestsHighs = "PVC venting typically indicates 90%+ condensing equipment; read the AFUE from the rating plate to confirm"
)

// EquipmentEnrichmentService applies three pure derivations to one
// equipment record: AFUE backfill from the lookup table, warranty status
// from manufacture year, and cross-field consistency flags. Inputs are
// never mutated.
type EquipmentEnrichmentService struct {
	table *lookup.Table
	clock clockwork.Clock
}

func NewEquipmentEnrichmentService(table *lookup.Table, clock clockwork.Clock) *EquipmentEnrichmentService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &EquipmentEnrichmentService{table: table, clock: clock}
}

// Enrich runs the three sub-steps in fixed order: backfill, then warranty,
// then flags, the latter two over the possibly-backfilled record.
func (s *EquipmentEnrichmentService) Enrich(attrs *loadscout.EquipmentAttributes) (*loadscout.EquipmentAttributes, loadscout.WarrantyStatus, *loadscout.EquipmentFlags) {
	enriched := s.backfillAFUE(attrs)
	return enriched, s.deriveWarranty(enriched), deriveFlags(enriched)
}

// backfillAFUE fills a missing AFUE from the model-number table. A measured
// AFUE is never overwritten, and provenance never downgrades: the lookup
// only claims provenance when the existing one is absent or unknown.
func (s *EquipmentEnrichmentService) backfillAFUE(attrs *loadscout.EquipmentAttributes) *loadscout.EquipmentAttributes {
	if attrs == nil || attrs.AFUE != nil {
		return attrs
	}

	afue, ok := s.table.AFUE(attrs.ModelNumber)
	if !ok {
		return attrs
	}

	out := *attrs
	out.AFUE = &afue
	if !out.AFUEProvenance.StrongerThan(loadscout.ProvenanceModelLookup) {
		out.AFUEProvenance = loadscout.ProvenanceModelLookup
	}
	return &out
}

// deriveWarranty computes the age-based warranty guess from the current
// year. Unknown manufacture year yields an all-unknown status.
func (s *EquipmentEnrichmentService) deriveWarranty(attrs *loadscout.EquipmentAttributes) loadscout.WarrantyStatus {
	if attrs == nil || attrs.ManufactureYear == nil {
		return loadscout.WarrantyStatus{Status: loadscout.WarrantyUnknown}
	}

	age := s.clock.Now().UTC().Year() - *attrs.ManufactureYear
	status := loadscout.WarrantyLikelyOut
	if age <= partsWarrantyYears {
		status = loadscout.WarrantyLikelyInParts
	}

	return loadscout.WarrantyStatus{
		ManufactureYear:     attrs.ManufactureYear,
		ApproximateAgeYears: &age,
		Status:              status,
	}
}

// deriveFlags checks AFUE against vent material. The two findings are
// mutually exclusive; at most one note is ever added. Nil input yields nil
// (no equipment data), distinct from an empty flags record.
func deriveFlags(attrs *loadscout.EquipmentAttributes) *loadscout.EquipmentFlags {
	if attrs == nil {
		return nil
	}

	if attrs.AFUE != nil && *attrs.AFUE >= condensingAFUEThreshold && attrs.VentMaterial == loadscout.VentMetalFlue {
		return &loadscout.EquipmentFlags{
			AFUEVentMismatch: true,
			Notes:            []string{noteAFUEVentMismatch},
		}
	}
	if attrs.AFUE == nil && attrs.VentMaterial == loadscout.VentPVC {
		return &loadscout.EquipmentFlags{
			AFUEVentMismatch: false,
			Notes:            []string{notePVCSuggestsHighs},
		}
	}
	return &loadscout.EquipmentFlags{AFUEVentMismatch: false, Notes: []string{}}
}
