package service

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"loadscout"
)

// IntakeService is the one place raw vision-model output enters the
// pipeline. The model's JSON may be partial, wrongly typed, or not JSON at
// all; none of that is an error. An unusable payload normalizes to an
// absent record, an unusable field to its sentinel, so "upstream gave us
// nothing" and "upstream said unknown" stay distinguishable downstream.
type IntakeService struct{}

func NewIntakeService() *IntakeService {
	return &IntakeService{}
}

// Bounds for a plausible manufacture year on a rating plate.
const (
	minManufactureYear = 1900
	maxManufactureYear = 2100
)

// NormalizeExterior converts a raw exterior-analysis payload into a
// fully-defaulted attributes record, or nil when the payload is unusable.
func (s *IntakeService) NormalizeExterior(raw json.RawMessage) *loadscout.HouseExteriorAttributes {
	fields, ok := objectFields(raw)
	if !ok {
		return nil
	}

	return &loadscout.HouseExteriorAttributes{
		StoryCount:        storyCountField(fields["story_count"]),
		SidingMaterial:    sidingFrom(stringField(fields["siding_material"])),
		WindowDensity:     windowDensityFrom(stringField(fields["window_density"])),
		GutterPresence:    gutterPresenceFrom(stringField(fields["gutter_presence"])),
		ExteriorCondition: conditionFrom(stringField(fields["exterior_condition"])),
		Confidence:        confidenceField(fields["confidence"]),
	}
}

// NormalizeEquipment converts a raw equipment-analysis payload into a
// fully-defaulted attributes record, or nil when the payload is unusable.
func (s *IntakeService) NormalizeEquipment(raw json.RawMessage) *loadscout.EquipmentAttributes {
	fields, ok := objectFields(raw)
	if !ok {
		return nil
	}

	attrs := &loadscout.EquipmentAttributes{
		EquipmentType:   equipmentTypeFrom(stringField(fields["equipment_type"])),
		Manufacturer:    textOrUnknown(stringField(fields["manufacturer"])),
		ModelNumber:     textOrUnknown(stringField(fields["model_number"])),
		SerialNumber:    textOrUnknown(stringField(fields["serial_number"])),
		NominalTonnage:  floatField(fields["nominal_tonnage"]),
		InputBTUH:       floatField(fields["input_btuh"]),
		OutputBTUH:      floatField(fields["output_btuh"]),
		SEER:            floatField(fields["seer"]),
		SEER2:           floatField(fields["seer2"]),
		HSPF:            floatField(fields["hspf"]),
		HSPF2:           floatField(fields["hspf2"]),
		AFUE:            floatField(fields["afue"]),
		HeatStripKW:     floatField(fields["heat_strip_kw"]),
		ManufactureYear: yearField(fields["manufacture_year"]),
		Refrigerant:     optionalText(stringField(fields["refrigerant"])),
		Stages:          stagesFrom(stringField(fields["stages"])),
		VentMaterial:    ventMaterialFrom(stringField(fields["vent_material"])),
		AFUEProvenance:  provenanceFrom(stringField(fields["afue_provenance"])),
	}

	// A known AFUE cannot carry unknown provenance; a value the model read
	// without saying where defaults to the rating label.
	if attrs.AFUE != nil && attrs.AFUEProvenance == loadscout.ProvenanceUnknown {
		attrs.AFUEProvenance = loadscout.ProvenanceLabel
	}

	return attrs
}

// objectFields unwraps a payload into per-field raw values. Empty input,
// JSON null, non-objects, and malformed JSON all report not-ok.
func objectFields(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, false
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return nil, false
	}
	return m, true
}

// stringField extracts a string value, tolerating absence and wrong types.
func stringField(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// floatField extracts a numeric value, accepting both JSON numbers and
// numeric strings (vision models emit either).
func floatField(raw json.RawMessage) *float64 {
	if raw == nil {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, perr := strconv.ParseFloat(strings.TrimSpace(s), 64); perr == nil {
			return &v
		}
	}
	return nil
}

func yearField(raw json.RawMessage) *int {
	f := floatField(raw)
	if f == nil {
		return nil
	}
	y := int(*f)
	if float64(y) != *f || y < minManufactureYear || y > maxManufactureYear {
		return nil
	}
	return &y
}

func storyCountField(raw json.RawMessage) *float64 {
	f := floatField(raw)
	if f == nil || !loadscout.IsValidStoryCount(*f) {
		return nil
	}
	return f
}

func confidenceField(raw json.RawMessage) float64 {
	f := floatField(raw)
	if f == nil {
		return 0
	}
	switch {
	case *f < 0:
		return 0
	case *f > 1:
		return 1
	default:
		return *f
	}
}

// enumToken lowercases and hyphenates a label so "Fiber Cement" and
// "fiber_cement" both match "fiber-cement".
func enumToken(s string) string {
	t := strings.ToLower(strings.TrimSpace(s))
	t = strings.ReplaceAll(t, "_", "-")
	return strings.ReplaceAll(t, " ", "-")
}

func sidingFrom(s string) loadscout.SidingMaterial {
	switch m := loadscout.SidingMaterial(enumToken(s)); m {
	case loadscout.SidingVinyl, loadscout.SidingWood, loadscout.SidingFiberCement,
		loadscout.SidingStucco, loadscout.SidingBrick, loadscout.SidingMixed:
		return m
	default:
		return loadscout.SidingUnknown
	}
}

func windowDensityFrom(s string) loadscout.WindowDensity {
	switch d := loadscout.WindowDensity(enumToken(s)); d {
	case loadscout.WindowsFew, loadscout.WindowsAverage, loadscout.WindowsMany:
		return d
	case loadscout.WindowsUnclear:
		return loadscout.WindowsUnclear
	default:
		return loadscout.WindowsUnknown
	}
}

func gutterPresenceFrom(s string) loadscout.GutterPresence {
	switch g := loadscout.GutterPresence(enumToken(s)); g {
	case loadscout.GuttersYes, loadscout.GuttersNo:
		return g
	default:
		return loadscout.GuttersUnclear
	}
}

func conditionFrom(s string) loadscout.ExteriorCondition {
	switch c := loadscout.ExteriorCondition(enumToken(s)); c {
	case loadscout.ConditionGood, loadscout.ConditionPoor:
		return c
	default:
		return loadscout.ConditionAverage
	}
}

func equipmentTypeFrom(s string) loadscout.EquipmentType {
	switch t := loadscout.EquipmentType(enumToken(s)); t {
	case loadscout.EquipFurnace, loadscout.EquipAirHandler, loadscout.EquipHeatPump,
		loadscout.EquipACCondenser, loadscout.EquipPackageUnit:
		return t
	default:
		return loadscout.EquipOther
	}
}

func stagesFrom(s string) loadscout.Stages {
	switch st := loadscout.Stages(enumToken(s)); st {
	case loadscout.StagesSingle, loadscout.StagesTwoStage, loadscout.StagesVariable:
		return st
	default:
		return loadscout.StagesUnknown
	}
}

func ventMaterialFrom(s string) loadscout.VentMaterial {
	switch v := loadscout.VentMaterial(enumToken(s)); v {
	case loadscout.VentMetalFlue, loadscout.VentPVC, loadscout.VentMixed:
		return v
	default:
		return loadscout.VentUnknown
	}
}

func provenanceFrom(s string) loadscout.AFUEProvenance {
	switch p := loadscout.AFUEProvenance(enumToken(s)); p {
	case loadscout.ProvenanceLabel, loadscout.ProvenanceInferred, loadscout.ProvenanceModelLookup:
		return p
	default:
		return loadscout.ProvenanceUnknown
	}
}

func textOrUnknown(s string) string {
	if t := strings.TrimSpace(s); t != "" {
		return t
	}
	return "unknown"
}

func optionalText(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}
