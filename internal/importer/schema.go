package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/orthoplan/internal/domain"
)

// ErrEmptyInput is returned when there is nothing to parse.
var ErrEmptyInput = errors.New("please paste your JSON content first")

// ParsePlan decodes a plan document from raw text. The document must carry a
// non-empty string "id" and an "attachList" array; every other collection
// may be absent. Field-level checks run after decoding.
func ParsePlan(data []byte) (*domain.Plan, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ValidationError{Problems: []string{fmt.Sprintf("not a JSON object: %v", err)}}
	}
	if err := checkRequired(raw); err != nil {
		return nil, err
	}

	var p domain.Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &ValidationError{Problems: []string{fmt.Sprintf("decoding plan: %v", err)}}
	}
	if err := ValidatePlan(&p); err != nil {
		return nil, err
	}
	p.Normalize()
	return &p, nil
}

// LoadFile reads and parses a plan document from path.
func LoadFile(path string) (*domain.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}
	p, err := ParsePlan(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// checkRequired type-checks the two fields every document must carry.
func checkRequired(raw map[string]json.RawMessage) error {
	var id string
	idRaw, ok := raw["id"]
	if !ok || json.Unmarshal(idRaw, &id) != nil || id == "" {
		return &ValidationError{Problems: []string{"invalid format: missing 'id' or 'attachList'"}}
	}
	attRaw, ok := raw["attachList"]
	if !ok || !isArray(attRaw) {
		return &ValidationError{Problems: []string{"invalid format: missing 'id' or 'attachList'"}}
	}
	return nil
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
