package domain

// Experiment tags as written in the TAG line of a DTA header.
const (
	TagCyclicVoltammetry = "CV"
	TagChronoAmperometry = "CHRONOA"
	TagImpedance         = "EISPOT"
	TagOpenCircuit       = "CORPOT"
	TagSquareWave        = "SQUARE_WAVE"
	TagVFP600            = "VFP600"
)

// Well-known column names.
const (
	ColumnPoint     = "Pt"
	ColumnTime      = "T"
	ColumnOverload  = "Over"
	ColumnPotential = "Vf"
	ColumnCurrent   = "Im"
)
