package loadscout

// EquipmentType classifies the unit whose rating plate was photographed.
type EquipmentType string

const (
	EquipFurnace     EquipmentType = "furnace"
	EquipAirHandler  EquipmentType = "air-handler"
	EquipHeatPump    EquipmentType = "heat-pump"
	EquipACCondenser EquipmentType = "ac-condenser"
	EquipPackageUnit EquipmentType = "package-unit"
	EquipOther       EquipmentType = "other"
)

// Stages: single | two-stage | variable | unknown.
type Stages string

const (
	StagesSingle   Stages = "single"
	StagesTwoStage Stages = "two-stage"
	StagesVariable Stages = "variable"
	StagesUnknown  Stages = "unknown"
)

// VentMaterial is the combustion exhaust piping material. Metal-only venting
// correlates with 80%-class furnaces; PVC with condensing 90%+ units.
type VentMaterial string

const (
	VentMetalFlue VentMaterial = "metal-flue"
	VentPVC       VentMaterial = "pvc"
	VentMixed     VentMaterial = "mixed"
	VentUnknown   VentMaterial = "unknown"
)

// AFUEProvenance records where the AFUE value came from.
type AFUEProvenance string

const (
	ProvenanceLabel       AFUEProvenance = "label"
	ProvenanceInferred    AFUEProvenance = "inferred"
	ProvenanceModelLookup AFUEProvenance = "model-lookup"
	ProvenanceUnknown     AFUEProvenance = "unknown"
)

// rank orders provenance by strength. Enrichment never replaces a stronger
// provenance with a weaker one.
func (p AFUEProvenance) rank() int {
	switch p {
	case ProvenanceLabel:
		return 3
	case ProvenanceInferred:
		return 2
	case ProvenanceModelLookup:
		return 1
	default:
		return 0
	}
}

// StrongerThan reports whether p outranks other.
func (p AFUEProvenance) StrongerThan(other AFUEProvenance) bool {
	return p.rank() > other.rank()
}

// EquipmentAttributes is the structured reading of one or more rating-plate
// photos. Numeric fields are nil when the plate was unreadable; free-text
// fields fall back to "unknown".
type EquipmentAttributes struct {
	EquipmentType   EquipmentType  `json:"equipment_type"`
	Manufacturer    string         `json:"manufacturer"`
	ModelNumber     string         `json:"model_number"`
	SerialNumber    string         `json:"serial_number"`
	NominalTonnage  *float64       `json:"nominal_tonnage"`
	InputBTUH       *float64       `json:"input_btuh"`
	OutputBTUH      *float64       `json:"output_btuh"`
	SEER            *float64       `json:"seer"`
	SEER2           *float64       `json:"seer2"`
	HSPF            *float64       `json:"hspf"`
	HSPF2           *float64       `json:"hspf2"`
	AFUE            *float64       `json:"afue"`
	HeatStripKW     *float64       `json:"heat_strip_kw"`
	ManufactureYear *int           `json:"manufacture_year"`
	Refrigerant     *string        `json:"refrigerant"`
	Stages          Stages         `json:"stages"`
	VentMaterial    VentMaterial   `json:"vent_material"`
	AFUEProvenance  AFUEProvenance `json:"afue_provenance"`
}

// WarrantyState: likely-in-parts-warranty | likely-out-of-warranty | unknown.
type WarrantyState string

const (
	WarrantyLikelyInParts WarrantyState = "likely-in-parts-warranty"
	WarrantyLikelyOut     WarrantyState = "likely-out-of-warranty"
	WarrantyUnknown       WarrantyState = "unknown"
)

// WarrantyStatus is derived from the manufacture year and the current date.
// It is recomputed whenever equipment data changes, never cached.
type WarrantyStatus struct {
	ManufactureYear     *int          `json:"manufacture_year"`
	ApproximateAgeYears *int          `json:"approximate_age_years"`
	Status              WarrantyState `json:"status"`
}

// EquipmentFlags carries cross-field consistency findings. A nil
// *EquipmentFlags means no equipment data existed; an empty one means the
// data raised nothing.
type EquipmentFlags struct {
	AFUEVentMismatch bool     `json:"afue_vent_mismatch"`
	Notes            []string `json:"notes"`
}
