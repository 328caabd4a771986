package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/orthoplan/internal/domain"
)

// Marshal serializes p as indented JSON, the same shape ParsePlan reads.
func Marshal(p *domain.Plan) ([]byte, error) {
	out := p.Clone()
	out.Normalize()
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding plan: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportName is the file name a plan is offered under.
func ExportName(p *domain.Plan) string {
	id := p.ID
	if id == "" {
		id = "setup"
	}
	id = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ':' {
			return '_'
		}
		return r
	}, id)
	return fmt.Sprintf("orthoplan-%s.json", id)
}

// Export writes p into dir under ExportName and returns the written path.
func Export(p *domain.Plan, dir string) (string, error) {
	data, err := Marshal(p)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, ExportName(p))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
