package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/orthoplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlan_Minimal(t *testing.T) {
	p, err := ParsePlan([]byte(`{"id":"abc-123","attachList":[]}`))
	require.NoError(t, err)

	assert.Equal(t, "abc-123", p.ID)
	assert.NotNil(t, p.Attachments)
	assert.NotNil(t, p.IprEvents)
	assert.NotNil(t, p.PrecisionCuts)
	assert.NotNil(t, p.Extractions)
	assert.Empty(t, p.IprEvents)
}

func TestParsePlan_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"missing id", `{"attachList":[]}`, "missing 'id' or 'attachList'"},
		{"empty id", `{"id":"","attachList":[]}`, "missing 'id' or 'attachList'"},
		{"numeric id", `{"id":42,"attachList":[]}`, "missing 'id' or 'attachList'"},
		{"missing attachList", `{"id":"x"}`, "missing 'id' or 'attachList'"},
		{"attachList not array", `{"id":"x","attachList":{}}`, "missing 'id' or 'attachList'"},
		{"not an object", `[1,2,3]`, "not a JSON object"},
		{"broken json", `{"id":`, "not a JSON object"},
		{"wrong field type", `{"id":"x","attachList":[],"upperEndIn":"ten"}`, "decoding plan"},
		{"negative bound", `{"id":"x","attachList":[],"lowerEndIn":-1}`, "LowerEndIn must be >= 0"},
		{"attachment without tooth", `{"id":"x","attachList":[{"name":"a","beginTime":0,"endTime":3}]}`, "Tooth is required"},
		{"negative ipr", `{"id":"x","attachList":[],"iprList":[{"tooth":"11","step":1,"mesialIpr":-0.1}]}`, "Mesial must be >= 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePlan([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParsePlan_EmptyInput(t *testing.T) {
	_, err := ParsePlan([]byte("   \n\t"))
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestValidationError_MultipleProblems(t *testing.T) {
	_, err := ParsePlan([]byte(`{"id":"x","attachList":[],"upperEndIn":-1,"lowerEndIn":-2}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 validation errors")
}

func TestSample(t *testing.T) {
	p := Sample()

	assert.Equal(t, "57a2a6a4-bcf6-4318-be89-8facb903502d", p.ID)
	assert.Equal(t, "57a2a6a4", p.DisplayID())
	assert.Equal(t, 15, p.UpperEndIn)
	assert.Equal(t, 46, p.LowerEndIn)
	assert.Len(t, p.Attachments, 15)
	assert.Len(t, p.IprEvents, 3)

	guids := map[string]bool{}
	for _, a := range p.Attachments {
		guids[a.GUID] = true
	}
	assert.Len(t, guids, 15, "attachment guids must be unique")
}

func TestSampleJSON_ReturnsCopy(t *testing.T) {
	a := SampleJSON()
	a[0] = 'X'
	assert.Equal(t, byte('{'), SampleJSON()[0])
}

func TestMarshal_RoundTrip(t *testing.T) {
	orig := Sample()

	data, err := Marshal(orig)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "}\n"))

	back, err := ParsePlan(data)
	require.NoError(t, err)
	assert.Equal(t, orig, back)
}

func TestMarshal_EmptyCollectionsAreArrays(t *testing.T) {
	data, err := Marshal(&domain.Plan{ID: "x"})
	require.NoError(t, err)

	assert.Contains(t, string(data), `"attachList": []`)
	assert.Contains(t, string(data), `"iprList": []`)
	assert.NotContains(t, string(data), `"attachList": null`)
}

func TestExportName(t *testing.T) {
	assert.Equal(t, "orthoplan-abc.json", ExportName(&domain.Plan{ID: "abc"}))
	assert.Equal(t, "orthoplan-setup.json", ExportName(&domain.Plan{}))
	assert.Equal(t, "orthoplan-a_b_c_d.json", ExportName(&domain.Plan{ID: `a/b\c:d`}))
}

func TestExport_WritesFile(t *testing.T) {
	dir := t.TempDir()

	path, err := Export(Sample(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "orthoplan-57a2a6a4-bcf6-4318-be89-8facb903502d.json"), path)

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Sample(), loaded)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFile_InvalidWrapsValidationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"x"}`), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "bad.json")
}
