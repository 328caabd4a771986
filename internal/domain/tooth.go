package domain

import (
	"math"
	"strconv"
)

// Quadrant is one of the four fixed FDI tooth sequences, listed in map
// display order.
type Quadrant struct {
	Name        string
	Arch        Arch
	Teeth       []string
	Orientation Orientation
}

var (
	UpperRight = Quadrant{Name: "UR", Arch: ArchUpper, Orientation: DistalToMesial,
		Teeth: []string{"18", "17", "16", "15", "14", "13", "12", "11"}}
	UpperLeft = Quadrant{Name: "UL", Arch: ArchUpper, Orientation: MesialToDistal,
		Teeth: []string{"21", "22", "23", "24", "25", "26", "27", "28"}}
	LowerRight = Quadrant{Name: "LR", Arch: ArchLower, Orientation: DistalToMesial,
		Teeth: []string{"48", "47", "46", "45", "44", "43", "42", "41"}}
	LowerLeft = Quadrant{Name: "LL", Arch: ArchLower, Orientation: MesialToDistal,
		Teeth: []string{"31", "32", "33", "34", "35", "36", "37", "38"}}
)

// Quadrants returns all four quadrants: upper arch right then left, lower
// arch right then left.
func Quadrants() []Quadrant {
	return []Quadrant{UpperRight, UpperLeft, LowerRight, LowerLeft}
}

// Midline is the adjacency between the two central incisors of an arch.
type Midline struct {
	Arch  Arch
	Right string
	Left  string
}

var (
	UpperMidline = Midline{Arch: ArchUpper, Right: "11", Left: "21"}
	LowerMidline = Midline{Arch: ArchLower, Right: "41", Left: "31"}
)

// AllTeeth returns the 32 FDI identifiers in map display order.
func AllTeeth() []string {
	teeth := make([]string, 0, 32)
	for _, q := range Quadrants() {
		teeth = append(teeth, q.Teeth...)
	}
	return teeth
}

// IsValidTooth reports whether id is one of the 32 permanent-dentition FDI numerals.
func IsValidTooth(id string) bool {
	for _, t := range AllTeeth() {
		if t == id {
			return true
		}
	}
	return false
}

// ToothNumber returns the numeric value of an FDI identifier for ordering.
// Non-numeric identifiers sort last.
func ToothNumber(id string) int {
	n, err := strconv.Atoi(id)
	if err != nil {
		return math.MaxInt
	}
	return n
}
