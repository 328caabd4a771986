package domain

// Arch identifies the upper (maxillary) or lower (mandibular) arch.
type Arch string

const (
	ArchUpper Arch = "upper"
	ArchLower Arch = "lower"
)

// Orientation is the direction a quadrant is traversed when rendered
// left-to-right on the map.
type Orientation int

const (
	// DistalToMesial reads from the back of the mouth toward the midline
	// (patient-right quadrants).
	DistalToMesial Orientation = iota
	// MesialToDistal reads from the midline outward (patient-left quadrants).
	MesialToDistal
)

// Surface selects one of the two interproximal surfaces of a tooth.
type Surface string

const (
	SurfaceMesial Surface = "mesial"
	SurfaceDistal Surface = "distal"
)

// AttachmentField names an editable step field of an attachment.
type AttachmentField string

const (
	FieldBeginTime AttachmentField = "beginTime"
	FieldEndTime   AttachmentField = "endTime"
)
