package importer

import (
	_ "embed"
	"fmt"

	"github.com/alexanderramin/orthoplan/internal/domain"
)

//go:embed sample.json
var sampleJSON []byte

// SampleJSON returns the built-in example document.
func SampleJSON() []byte {
	out := make([]byte, len(sampleJSON))
	copy(out, sampleJSON)
	return out
}

// Sample returns the built-in example plan.
func Sample() *domain.Plan {
	p, err := ParsePlan(sampleJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded sample plan is invalid: %v", err))
	}
	return p
}
